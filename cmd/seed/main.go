// seed importa el catálogo inicial (recursos, unidades de medida y clientes) desde un XML
// usando los mismos casos de uso que la API. Los nombres ya existentes se omiten.
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/almacen-api/internal/infrastructure/migration"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type counter struct{ created, skipped int }

func (c *counter) record(err error) error {
	switch {
	case err == nil:
		c.created++
	case errors.Is(err, domain.ErrDuplicateName):
		c.skipped++
	default:
		return err
	}
	return nil
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	f, err := os.Open(xmlPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", xmlPath).Msg("abrir XML")
	}
	defer f.Close()

	cat, err := catalogxml.Parse(f)
	if err != nil {
		log.Fatal().Err(err).Msg("decodificar catálogo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		m, err := migration.New(pool, log)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := m.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = m.Close()
	}

	repos := postgres.NewRepos(pool)
	quiet := logger.Nop()
	resources := usecase.NewResourceUseCase(repos.Resources, quiet)
	units := usecase.NewUnitUseCase(repos.Units, quiet)
	clients := usecase.NewClientUseCase(repos.Clients, quiet)

	var res, uom, cli counter
	for _, name := range cat.Resources {
		_, err := resources.Create(ctx, dto.CreateResourceRequest{Name: name})
		if err := res.record(err); err != nil {
			log.Fatal().Err(err).Str("recurso", name).Msg("crear recurso")
		}
	}
	for _, name := range cat.Units {
		_, err := units.Create(ctx, dto.CreateUnitRequest{Name: name})
		if err := uom.record(err); err != nil {
			log.Fatal().Err(err).Str("unidad", name).Msg("crear unidad de medida")
		}
	}
	for _, c := range cat.Clients {
		_, err := clients.Create(ctx, dto.CreateClientRequest{Name: c.Name, Address: c.Address})
		if err := cli.record(err); err != nil {
			log.Fatal().Err(err).Str("cliente", c.Name).Msg("crear cliente")
		}
	}

	log.Info().
		Int("recursos", res.created).Int("recursos_omitidos", res.skipped).
		Int("unidades", uom.created).Int("unidades_omitidas", uom.skipped).
		Int("clientes", cli.created).Int("clientes_omitidos", cli.skipped).
		Msg("catálogo importado")
}
