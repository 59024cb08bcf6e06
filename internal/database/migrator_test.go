package database

import (
	"context"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestSplitSQLStatements(t *testing.T) {
	sql := `-- schema
CREATE TABLE a (id INT);
CREATE INDEX idx_a ON a (id);

DO $$
BEGIN
  RAISE NOTICE 'semicolon inside; stays put';
END
$$;
`
	statements := splitSQLStatements(sql)
	if len(statements) != 3 {
		t.Fatalf("got %d statements, want 3: %q", len(statements), statements)
	}
	if !strings.Contains(statements[2], "stays put") {
		t.Errorf("dollar-quoted block split apart: %q", statements[2])
	}
}

func TestSplitSQLStatementsTrailingWithoutSemicolon(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE b (id INT)")
	if len(statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(statements))
	}
}

func TestRunMigrationsReadsFromSubdirectory(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	table := "migrator_subdir_check"
	filename := "900_migrator_subdir_check.sql"
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+table)
		pool.Exec(context.Background(), "DELETE FROM schema_migrations WHERE filename = $1", filename)
	})

	// The migration lives under a subdirectory; the migrator must join the
	// configured dir when reading, not assume the FS root.
	fsys := fstest.MapFS{
		"sub/" + filename: &fstest.MapFile{
			Data: []byte("CREATE TABLE IF NOT EXISTS " + table + " (id INT);"),
		},
	}

	m := NewMigratorWithFS(pool, fsys, "sub")
	if err := m.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	var n int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Errorf("migration did not create %s: %v", table, err)
	}

	// Second run is a no-op.
	if err := m.RunMigrations(ctx); err != nil {
		t.Errorf("re-run: %v", err)
	}
}
