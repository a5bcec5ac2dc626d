// migrate aplica o revierte las migraciones del esquema.
//
// Uso: go run ./cmd/migrate up | down | steps N | version
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/almacen-api/internal/infrastructure/migration"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, "uso: migrate up | down | steps N | version")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m, err := migration.New(pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(os.Args) < 3 {
			usage()
		}
		n, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil || n == 0 {
			usage()
		}
		err = m.Steps(n)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		fmt.Printf("versión %d (dirty=%t)\n", v, dirty)
		return
	default:
		usage()
	}
	if err != nil {
		log.Fatal().Err(err).Str("comando", os.Args[1]).Msg("migración fallida")
	}
}
