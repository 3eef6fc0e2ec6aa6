// Package config loads runtime configuration from the environment,
// with an optional .env file for local runs.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	LogLevel   string
	LogConsole bool

	// Firmware source snapshot and artifact locations.
	HeaderPath string
	ArrayPath  string
	OutPath    string
	GenPackage string

	// Size of the HTTP-layer select response cache; 0 disables it.
	SelectCacheSize int
}

func FromEnv() Config {
	_ = godotenv.Load() // ignore missing file

	return Config{
		Addr:            getenv("ADDR", ":8087"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogConsole:      getbool("LOG_CONSOLE", false),
		HeaderPath:      getenv("BAND_HEADER_PATH", "firmware/rxFilterBands.h"),
		ArrayPath:       getenv("BAND_ARRAY_PATH", "firmware/rxFilterBands.c"),
		OutPath:         getenv("BAND_OUT_PATH", "bandtab/bandtab_gen.go"),
		GenPackage:      getenv("BAND_GEN_PACKAGE", "bandtab"),
		SelectCacheSize: getint("SELECT_CACHE_SIZE", 256),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return def
}
