package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "LOG_LEVEL", "LOG_CONSOLE", "BAND_HEADER_PATH", "BAND_ARRAY_PATH", "BAND_OUT_PATH", "BAND_GEN_PACKAGE", "SELECT_CACHE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	if cfg.Addr != ":8087" {
		t.Errorf("Addr = %q, want :8087", cfg.Addr)
	}
	if cfg.LogLevel != "info" || cfg.LogConsole {
		t.Errorf("log config = %q/%v, want info/false", cfg.LogLevel, cfg.LogConsole)
	}
	if cfg.GenPackage != "bandtab" {
		t.Errorf("GenPackage = %q, want bandtab", cfg.GenPackage)
	}
	if cfg.SelectCacheSize != 256 {
		t.Errorf("SelectCacheSize = %d, want 256", cfg.SelectCacheSize)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("LOG_CONSOLE", "TRUE")
	t.Setenv("BAND_HEADER_PATH", "/tmp/x.h")
	t.Setenv("SELECT_CACHE_SIZE", "0")

	cfg := FromEnv()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if !cfg.LogConsole {
		t.Errorf("LogConsole should parse case-insensitively")
	}
	if cfg.HeaderPath != "/tmp/x.h" {
		t.Errorf("HeaderPath = %q", cfg.HeaderPath)
	}
	if cfg.SelectCacheSize != 0 {
		t.Errorf("SelectCacheSize = %d, want 0", cfg.SelectCacheSize)
	}
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("SELECT_CACHE_SIZE", "lots")
	if cfg := FromEnv(); cfg.SelectCacheSize != 256 {
		t.Errorf("SelectCacheSize = %d, want default 256", cfg.SelectCacheSize)
	}
}
