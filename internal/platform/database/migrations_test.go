package database

import (
	"io/fs"
	"path"
	"strings"
	"testing"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no embedded migrations")
	}

	for _, name := range files {
		b, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		s := string(b)
		if !strings.Contains(s, "-- +goose Up") {
			t.Fatalf("%s missing '-- +goose Up'", name)
		}
		if !strings.Contains(s, "-- +goose Down") {
			t.Fatalf("%s missing '-- +goose Down'", name)
		}
	}
}

func TestSQLMigrations_DialectsStayInStep(t *testing.T) {
	names := func(dir string) map[string]bool {
		entries, err := fs.ReadDir(migrationsFS, path.Join("migrations", dir))
		if err != nil {
			t.Fatalf("ReadDir(%s): %v", dir, err)
		}
		out := map[string]bool{}
		for _, e := range entries {
			out[e.Name()] = true
		}
		return out
	}

	sqlite, postgres := names("sqlite"), names("postgres")
	for name := range sqlite {
		if !postgres[name] {
			t.Errorf("%s exists for sqlite but not postgres", name)
		}
	}
	for name := range postgres {
		if !sqlite[name] {
			t.Errorf("%s exists for postgres but not sqlite", name)
		}
	}
}
