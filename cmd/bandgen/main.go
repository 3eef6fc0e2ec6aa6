// Command bandgen compiles the firmware filter-band sources into the
// generated Go artifact. It takes no arguments: paths come from the
// environment (or a .env file), and it exits non-zero when the source
// shape is incompatible or the table is empty.
package main

import (
	"fmt"
	"os"

	"github.com/calummace/rfband/internal/compile"
	"github.com/calummace/rfband/internal/config"
	"github.com/calummace/rfband/internal/firmware"
	"github.com/calummace/rfband/internal/gencode"
	"github.com/calummace/rfband/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()
	log := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "bandgen",
	}, os.Stderr)

	src, err := compile.LoadSource(cfg.HeaderPath, cfg.ArrayPath)
	if err != nil {
		log.Error().Err(err).Msg("load firmware sources")
		return 1
	}

	g := firmware.DefaultGrammar()
	m, err := compile.Compile(src, g, log)
	if err != nil {
		log.Error().Err(err).Msg("compile filter band table")
		return 1
	}

	if err := gencode.WriteFile(cfg.OutPath, m, cfg.GenPackage, g); err != nil {
		log.Error().Err(err).Msg("write artifact")
		return 1
	}

	fmt.Printf("generated %s with %d filter entries\n", cfg.OutPath, m.Len())
	return 0
}
