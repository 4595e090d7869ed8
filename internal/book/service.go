package book

import (
	"context"
	"strings"
)

// Service checks inputs before they reach the Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book ordered by title, then author.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new book and returns its id.
func (s *Service) Create(ctx context.Context, title, author string) (int64, error) {
	if err := validate(title, author); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, title, author)
}

// Update replaces title and author of the book with b.ID.
func (s *Service) Update(ctx context.Context, b Book) error {
	if err := validate(b.Title, b.Author); err != nil {
		return err
	}
	return s.repo.Update(ctx, b)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validate(title, author string) error {
	var fields []FieldError
	if strings.TrimSpace(title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "must not be blank"})
	}
	if strings.TrimSpace(author) == "" {
		fields = append(fields, FieldError{Field: "author", Message: "must not be blank"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
