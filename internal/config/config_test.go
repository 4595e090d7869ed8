package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite::memory:", cfg.DatabaseURL)
	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.DBQueryTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.AllowedOrigins())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/books")
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("DB_QUERY_TIMEOUT", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.DBQueryTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{DatabaseURL: "sqlite::memory:", DBMaxConns: 0, DBQueryTimeout: time.Second, MaxBodyBytes: 1}
	assert.Error(t, cfg.Validate())

	cfg.DBMaxConns = 1
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, ".env")

	if err := os.WriteFile(p, []byte("DATABASE_URL=from_file\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("DATABASE_URL", "from_env")

	cwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	if got := os.Getenv("DATABASE_URL"); got != "from_env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}

func TestSeedOnStartup(t *testing.T) {
	tests := []struct {
		name string
		url  string
		seed string
		want bool
	}{
		{name: "memory default", url: "sqlite::memory:", want: true},
		{name: "shared memory default", url: "file:books?mode=memory&cache=shared", want: true},
		{name: "file default", url: "sqlite:///tmp/books.db", want: false},
		{name: "postgres default", url: "postgres://localhost/books", want: false},
		{name: "memory disabled", url: "sqlite::memory:", seed: "false", want: false},
		{name: "postgres enabled", url: "postgres://localhost/books", seed: "true", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{DatabaseURL: tt.url, SeedSampleData: tt.seed}
			assert.Equal(t, tt.want, cfg.SeedOnStartup())
		})
	}
}

func TestLoad_RejectsBadSeedFlag(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("SEED_SAMPLE_DATA", "maybe")

	_, err := Load()
	assert.ErrorContains(t, err, "SEED_SAMPLE_DATA")
}

func TestDatabase_CarriesPoolSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/books")
	t.Setenv("DB_MAX_CONNS", "3")
	t.Setenv("DB_CONNECT_TIMEOUT", "750ms")

	cfg, err := Load()
	require.NoError(t, err)

	db := cfg.Database()
	assert.Equal(t, "postgres://localhost/books", db.URL)
	assert.Equal(t, 3, db.MaxConns)
	assert.Equal(t, 750*time.Millisecond, db.ConnectTimeout)
}
