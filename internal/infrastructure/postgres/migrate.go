package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones embebidas sobre el esquema de un tenant.
type Migrator struct {
	db     *sql.DB
	m      *migrate.Migrate
	schema string
}

// NewMigrator abre una conexión database/sql (driver pgx) con search_path = schema,
// crea el esquema si no existe y prepara golang-migrate con la tabla de versiones dentro del esquema.
func NewMigrator(ctx context.Context, dsn, schema string) (*Migrator, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	connCfg.RuntimeParams["search_path"] = schema
	db := stdlib.OpenDB(*connCfg)

	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear esquema %s: %w", schema, err)
	}

	drv, err := migratepg.WithInstance(db, &migratepg.Config{SchemaName: schema})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("driver de migración: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("fuente de migraciones: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("inicializar migrate: %w", err)
	}
	return &Migrator{db: db, m: m, schema: schema}, nil
}

// Up aplica las migraciones pendientes. Sin cambios no es error.
func (g *Migrator) Up(ctx context.Context) error {
	if err := g.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			zerolog.Ctx(ctx).Debug().Str("schema", g.schema).Msg("migraciones al día")
			return nil
		}
		var dirty migrate.ErrDirty
		if errors.As(err, &dirty) {
			return fmt.Errorf("esquema %s en estado sucio (versión %d): requiere intervención manual", g.schema, dirty.Version)
		}
		return fmt.Errorf("aplicar migraciones en %s: %w", g.schema, err)
	}
	version, _, _ := g.m.Version()
	zerolog.Ctx(ctx).Info().Str("schema", g.schema).Uint("version", version).Msg("migraciones aplicadas")
	return nil
}

// Down revierte todas las migraciones del esquema.
func (g *Migrator) Down(ctx context.Context) error {
	if err := g.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revertir migraciones en %s: %w", g.schema, err)
	}
	zerolog.Ctx(ctx).Info().Str("schema", g.schema).Msg("migraciones revertidas")
	return nil
}

// Close libera la fuente y la conexión.
func (g *Migrator) Close() error {
	srcErr, dbErr := g.m.Close()
	return errors.Join(srcErr, dbErr)
}

// MigrateTenant crea y migra el esquema de un tenant en una sola llamada.
func MigrateTenant(ctx context.Context, dsn, schema string) error {
	mg, err := NewMigrator(ctx, dsn, schema)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up(ctx)
}
