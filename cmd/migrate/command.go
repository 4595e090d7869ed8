package main

import (
	"context"
	"fmt"
	"io"

	"bookshelf/internal/platform/database"
)

func runCommand(ctx context.Context, pool *database.Pool, command string, out io.Writer) error {
	provider, err := database.NewMigrator(pool.DB.DB, pool.Dialect())
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		for _, r := range results {
			fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		fmt.Fprintln(out, "Migrations applied successfully")
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		fmt.Fprintf(out, "rolled back %s\n", result.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		for _, s := range statuses {
			fmt.Fprintf(out, "%-10s %s\n", s.State, s.Source.Path)
		}
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		fmt.Fprintf(out, "version %d\n", version)
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, version", command)
	}
	return nil
}
