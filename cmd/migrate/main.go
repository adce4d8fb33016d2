// migrate aplica el esquema embebido de stockflow sobre PostgreSQL.
//
// Uso: go run ./cmd/migrate [-log-level info] <up|down|steps N|version|force N>
// La conexión sale de la misma configuración que la API (DATABASE_URL o DB_*).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/stockflow/internal/infrastructure/migration"
	"github.com/jhoicas/stockflow/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow/pkg/config"
	"github.com/jhoicas/stockflow/pkg/logger"
)

func main() {
	logLevel := flag.String("log-level", "info", "nivel de log (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: *logLevel})

	url, err := postgres.MigrationURL(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("URL de migraciones")
	}
	m, err := migration.New(url, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	log.Info().Str("command", command).Msg("migrate")

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = withInt(args, func(n int) error { return m.Steps(n) })
	case "force":
		err = withInt(args, m.Force)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		}
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		os.Exit(1)
	}
}

func withInt(args []string, fn func(int) error) error {
	if len(args) < 2 {
		return fmt.Errorf("%s requiere un número", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("número inválido %q", args[1])
	}
	return fn(n)
}

func printUsage() {
	fmt.Println(`stockflow migrate

Uso:
  migrate [flags] <comando> [argumentos]

Comandos:
  up           Aplica todas las migraciones pendientes
  down         Revierte todas las migraciones
  steps <n>    Aplica n migraciones (positivo sube, negativo baja)
  version      Muestra la versión actual
  force <n>    Fija la versión sin ejecutar (para salir de dirty)

Flags:
  -log-level   Nivel de log (default: info)`)
}
