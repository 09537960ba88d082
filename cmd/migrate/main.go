// Command migrate aplica o revierte las migraciones embebidas en el esquema de un tenant.
//
// Uso:
//
//	go run ./cmd/migrate -tenant acme
//	go run ./cmd/migrate -schema tenant_acme -down
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/erp-core/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-core/pkg/config"
	"github.com/jhoicas/erp-core/pkg/logger"
)

func main() {
	tenant := flag.String("tenant", "", "tenant a migrar (esquema = TENANT_SCHEMA_PREFIX + tenant)")
	schema := flag.String("schema", "", "esquema explícito; tiene prioridad sobre -tenant")
	down := flag.Bool("down", false, "revertir todas las migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Service: cfg.App.Name, Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")
	ctx := log.WithContext(context.Background())

	target := *schema
	if target == "" {
		t := *tenant
		if t == "" {
			t = cfg.Tenant.Default
		}
		target = cfg.Tenant.Schema(t)
	}

	mg, err := postgres.NewMigrator(ctx, cfg.DB.ConnectionString(), target)
	if err != nil {
		log.Fatal().Err(err).Str("schema", target).Msg("inicializar migraciones")
	}

	if *down {
		err = mg.Down(ctx)
	} else {
		err = mg.Up(ctx)
	}
	if closeErr := mg.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("cerrar migrador")
	}
	if err != nil {
		log.Error().Err(err).Str("schema", target).Msg("migraciones")
		os.Exit(1)
	}
}
