package postgres

import (
	"context"

	"github.com/aussiebroadwan/authapp/internal/auth/store/drivers/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// ApplyMigrations runs every pending goose migration embedded in the binary.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, s.db, migrations.Migrations)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}
