package book

import (
	"context"
	"fmt"
)

// SampleBooks is the catalogue a fresh store starts with. The first entry
// gets id 1 on an empty table.
var SampleBooks = []Book{
	{Title: "Hands-on Rust", Author: "Wolverson, Herbert"},
	{Title: "Rust Brain Teasers", Author: "Wolverson, Herbert"},
	{Title: "The Go Programming Language", Author: "Donovan, Alan"},
	{Title: "Learning Go", Author: "Bodner, Jon"},
	{Title: "Designing Data-Intensive Applications", Author: "Kleppmann, Martin"},
	{Title: "The Pragmatic Programmer", Author: "Thomas, David"},
}

// Seeder is the part of the repository Seed needs.
type Seeder interface {
	Create(ctx context.Context, title, author string) (int64, error)
	Count(ctx context.Context) (int, error)
}

// Seed inserts SampleBooks unless the table already holds data. force skips
// the emptiness check. It returns the number of rows inserted.
func Seed(ctx context.Context, repo Seeder, force bool) (int, error) {
	if !force {
		n, err := repo.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, nil
		}
	}

	for i, b := range SampleBooks {
		if _, err := repo.Create(ctx, b.Title, b.Author); err != nil {
			return i, fmt.Errorf("insert %q: %w", b.Title, err)
		}
	}
	return len(SampleBooks), nil
}
