package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

type Config struct {
	// DefaultProfile is the length profile key used when --profile is not given.
	DefaultProfile string `yaml:"defaultProfile,omitempty" json:"defaultProfile,omitempty"`
	// DefaultTemplate is applied by `minibook new` when no template is named.
	DefaultTemplate string `yaml:"defaultTemplate,omitempty" json:"defaultTemplate,omitempty"`
	// ExportDir is where exports go when no explicit output path is given.
	ExportDir string `yaml:"exportDir,omitempty" json:"exportDir,omitempty"`

	Preview *PreviewConfig `yaml:"preview,omitempty" json:"preview,omitempty"`
	TUI     *TUIConfig     `yaml:"tui,omitempty" json:"tui,omitempty"`
}

type PreviewConfig struct {
	Addr string `yaml:"addr,omitempty" json:"addr,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the tree glyph set ("unicode" or "ascii").
	Glyphs string `yaml:"glyphs,omitempty" json:"glyphs,omitempty"`
	// MarkdownStyle is a glamour style name ("dark", "light", "notty"); empty means auto.
	MarkdownStyle string `yaml:"markdownStyle,omitempty" json:"markdownStyle,omitempty"`
}

const DefaultPreviewAddr = "127.0.0.1:3336"

// PreviewAddr returns the configured preview address or DefaultPreviewAddr.
func (c *Config) PreviewAddr() string {
	if c != nil && c.Preview != nil && strings.TrimSpace(c.Preview.Addr) != "" {
		return strings.TrimSpace(c.Preview.Addr)
	}
	return DefaultPreviewAddr
}

func (c *Config) Glyphs() string {
	if c != nil && c.TUI != nil {
		return strings.TrimSpace(c.TUI.Glyphs)
	}
	return ""
}

func (c *Config) MarkdownStyle() string {
	if c != nil && c.TUI != nil {
		return strings.TrimSpace(c.TUI.MarkdownStyle)
	}
	return ""
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.minibook).
	if v := strings.TrimSpace(os.Getenv("MINIBOOK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".minibook"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadDotEnv loads .env from the working directory into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// AtomicWriteFile writes b to path through a temp file in the same directory.
func AtomicWriteFile(path string, b []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	return atomicWriteFile(dir, "."+filepath.Base(path)+".*.tmp", path, b, perm)
}

func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Keep the previous config around; ignore errors so a bad backup never blocks a save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.yaml.bak.*.tmp", path+".bak", prev, 0o644)
	}

	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}
