package dashboard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigEmptyPathIsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("defaults: got %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFillsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitrine.yaml")
	err := os.WriteFile(path, []byte("listen_addr: \":9999\"\npostal:\n  debounce_ms: 500\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("listen_addr: %q", cfg.ListenAddr)
	}
	if cfg.Postal.DebounceMS != 500 {
		t.Errorf("postal debounce: %d", cfg.Postal.DebounceMS)
	}
	// Everything unset takes the default.
	if cfg.Postal.BaseURL != DefaultConfig().Postal.BaseURL {
		t.Errorf("postal base url not defaulted: %q", cfg.Postal.BaseURL)
	}
	if cfg.Browser.MemoryLimitMB != 512 {
		t.Errorf("browser memory limit not defaulted: %d", cfg.Browser.MemoryLimitMB)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/vitrine.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
