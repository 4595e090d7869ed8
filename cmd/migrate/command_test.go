package main

import (
	"bytes"
	"context"
	"testing"

	"bookshelf/internal/platform/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand(t *testing.T) {
	ctx := context.Background()
	pool, err := database.Connect(ctx, database.Config{URL: "sqlite::memory:"})
	require.NoError(t, err)
	defer pool.Close()

	var out bytes.Buffer
	require.NoError(t, runCommand(ctx, pool, "up", &out))
	assert.Contains(t, out.String(), "00001_create_books.sql")
	assert.Contains(t, out.String(), "Migrations applied successfully")

	out.Reset()
	require.NoError(t, runCommand(ctx, pool, "version", &out))
	assert.Equal(t, "version 2\n", out.String())

	out.Reset()
	require.NoError(t, runCommand(ctx, pool, "status", &out))
	assert.Contains(t, out.String(), "applied")

	out.Reset()
	require.NoError(t, runCommand(ctx, pool, "down", &out))
	assert.Contains(t, out.String(), "00002_books_title_author_idx.sql")

	assert.Error(t, runCommand(ctx, pool, "sideways", &out))
}
