package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("MINIBOOK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultProfile != "" || cfg.PreviewAddr() != DefaultPreviewAddr {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	var nilCfg *Config
	if nilCfg.Glyphs() != "" || nilCfg.PreviewAddr() != DefaultPreviewAddr {
		t.Fatalf("nil config accessors should return defaults")
	}
}

func TestSaveConfig_RoundTripAndBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIBOOK_CONFIG_DIR", dir)

	first := &Config{DefaultProfile: "full", TUI: &TUIConfig{Glyphs: "ascii"}}
	if err := SaveConfig(first); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	second := &Config{DefaultProfile: "expanded", Preview: &PreviewConfig{Addr: "127.0.0.1:9000"}}
	if err := SaveConfig(second); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.DefaultProfile != "expanded" || got.PreviewAddr() != "127.0.0.1:9000" {
		t.Fatalf("unexpected config: %+v", got)
	}

	bak, err := os.ReadFile(filepath.Join(dir, "config.yaml.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if want := "defaultProfile: full"; !strings.Contains(string(bak), want) {
		t.Fatalf("backup should hold the previous config, got:\n%s", bak)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	t.Setenv("MINIBOOK_CONFIG_DIR", t.TempDir())

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := SaveConfig(&Config{DefaultProfile: fmt.Sprintf("p-%d", i)}); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config should stay parseable: %v", err)
	}
	if cfg.DefaultProfile == "" {
		t.Fatalf("expected one writer to win")
	}
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MINIBOOK_TEST_A=from-file\nMINIBOOK_TEST_B=file-b\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("MINIBOOK_TEST_A", "from-env")
	t.Setenv("MINIBOOK_TEST_B", "")
	os.Unsetenv("MINIBOOK_TEST_B")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("MINIBOOK_TEST_A"); got != "from-env" {
		t.Fatalf("existing env should win, got %q", got)
	}
	if got := os.Getenv("MINIBOOK_TEST_B"); got != "file-b" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv without .env: %v", err)
	}
}
