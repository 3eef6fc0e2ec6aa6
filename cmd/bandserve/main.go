// Command bandserve compiles the firmware filter-band sources at
// startup and serves selection queries and table introspection over
// HTTP. The compiled model is immutable; a firmware change means a
// restart.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/calummace/rfband/internal/compile"
	"github.com/calummace/rfband/internal/config"
	"github.com/calummace/rfband/internal/firmware"
	"github.com/calummace/rfband/internal/logger"
	"github.com/calummace/rfband/internal/observability"
	"github.com/calummace/rfband/internal/server"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()
	log := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "bandserve",
	}, os.Stdout)

	src, err := compile.LoadSource(cfg.HeaderPath, cfg.ArrayPath)
	if err != nil {
		log.Error().Err(err).Msg("load firmware sources")
		return 1
	}

	m, err := compile.Compile(src, firmware.DefaultGrammar(), log)
	if err != nil {
		log.Error().Err(err).Msg("compile filter band table")
		return 1
	}

	observability.ExposeBuildInfo(version)
	observability.SetTableEntries(m.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", cfg.Addr).Str("version", version).Msg("starting bandserve")
	if err := server.Run(ctx, cfg, m, log); err != nil {
		log.Error().Err(err).Msg("http server")
		return 1
	}
	return 0
}
