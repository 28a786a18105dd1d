// Package migrations applies the SQL schema embedded in this package with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

// Up applies all pending migrations. An up-to-date schema is not an error.
func Up(ctx context.Context, dsn string) error {
	return run(dsn, func(p *goose.Provider) error {
		_, err := p.Up(ctx)
		return err
	})
}

// Down rolls back every applied migration.
func Down(ctx context.Context, dsn string) error {
	return run(dsn, func(p *goose.Provider) error {
		_, err := p.DownTo(ctx, 0)
		return err
	})
}

func run(dsn string, step func(*goose.Provider) error) error {
	source, err := fs.Sub(files, "sql")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, source)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create migration provider: %w", err)
	}
	defer func() {
		_ = provider.Close()
	}()

	if err = step(provider); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
