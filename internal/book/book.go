package book

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book matches an id.
	ErrNotFound = errors.New("book not found")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid book")
)

// Book represents a book record.
type Book struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists the fields that made a request unacceptable.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "invalid book: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
