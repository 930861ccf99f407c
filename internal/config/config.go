package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DataDirName is the per-project directory holding config, index and logs.
const DataDirName = ".slides"

// Config represents the slides configuration
type Config struct {
	// Image index
	IndexPath  string   `toml:"index_path"`
	MediaRoots []string `toml:"media_roots"`

	// Display pipeline
	Delay         Duration `toml:"delay"`
	DecodeFailure string   `toml:"decode_failure"` // "skip" or "abort"
	RunPolicy     string   `toml:"run_policy"`     // "allow", "replace" or "reject"

	// Permission grants applied at startup
	AutoGrant []string `toml:"auto_grant"`

	// UI / logging
	LogLevel string `toml:"log_level"`
	Theme    string `toml:"theme"`
}

// Duration wraps time.Duration so it reads and writes as "1s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		IndexPath:     filepath.Join(DataDirName, "media.db"),
		MediaRoots:    []string{"${HOME}/Pictures"},
		Delay:         Duration{time.Second},
		DecodeFailure: "skip",
		RunPolicy:     "replace",
		AutoGrant:     []string{},
		LogLevel:      "info",
		Theme:         "dark",
	}
}

// Validate checks enumerated values and ranges
func (c *Config) Validate() error {
	var errs []error
	switch c.DecodeFailure {
	case "skip", "abort":
	default:
		errs = append(errs, fmt.Errorf("decode_failure must be skip or abort, got %q", c.DecodeFailure))
	}
	switch c.RunPolicy {
	case "allow", "replace", "reject":
	default:
		errs = append(errs, fmt.Errorf("run_policy must be allow, replace or reject, got %q", c.RunPolicy))
	}
	if c.Delay.Duration < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %s", c.Delay.Duration))
	}
	if strings.TrimSpace(c.IndexPath) == "" {
		errs = append(errs, errors.New("index_path must be set"))
	}
	return errors.Join(errs...)
}

// Manager handles configuration loading and saving
type Manager struct {
	projectPath string
	configPath  string
	raw         *Config // as written on disk
	config      *Config // with environment and paths resolved
}

// NewManager creates a new configuration manager
func NewManager(projectPath string) *Manager {
	dataDir := filepath.Join(projectPath, DataDirName)
	m := &Manager{
		projectPath: projectPath,
		configPath:  filepath.Join(dataDir, "config.toml"),
		raw:         DefaultConfig(),
	}
	m.config = m.resolve(*m.raw)
	return m
}

// DataDir returns the directory holding config, index and logs.
func (m *Manager) DataDir() string {
	return filepath.Dir(m.configPath)
}

// Load reads the configuration from disk, creating defaults if needed
func (m *Manager) Load() error {
	if err := os.MkdirAll(m.DataDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", DataDirName, err)
	}

	if err := m.ensureGitignore(); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(m.configPath, cfg); err != nil {
		return fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	m.raw = cfg
	m.config = m.resolve(*cfg)
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m.raw); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	next := *m.raw
	switch key {
	case "index_path":
		next.IndexPath = value
	case "delay":
		var d Duration
		if err := d.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid delay %q: %w", value, err)
		}
		next.Delay = d
	case "decode_failure":
		next.DecodeFailure = value
	case "run_policy":
		next.RunPolicy = value
	case "log_level":
		next.LogLevel = value
	case "theme":
		next.Theme = value
	case "media_roots":
		next.MediaRoots = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	m.raw = &next
	m.config = m.resolve(next)
	return m.Save()
}

// Grant records a permanently granted capability and saves.
func (m *Manager) Grant(capability string) error {
	for _, c := range m.raw.AutoGrant {
		if c == capability {
			return nil
		}
	}
	m.raw.AutoGrant = append(m.raw.AutoGrant, capability)
	m.config = m.resolve(*m.raw)
	return m.Save()
}

// resolve expands environment variables and anchors the index path to the
// project directory. The saved file keeps the unexpanded values.
func (m *Manager) resolve(cfg Config) *Config {
	cfg.IndexPath = expandString(cfg.IndexPath)
	if !filepath.IsAbs(cfg.IndexPath) {
		cfg.IndexPath = filepath.Join(m.projectPath, cfg.IndexPath)
	}
	roots := make([]string, 0, len(cfg.MediaRoots))
	for _, r := range cfg.MediaRoots {
		if r = expandString(r); r != "" {
			roots = append(roots, r)
		}
	}
	cfg.MediaRoots = roots
	cfg.AutoGrant = append([]string(nil), cfg.AutoGrant...)
	return &cfg
}

// ensureGitignore creates a .gitignore in the data directory
func (m *Manager) ensureGitignore() error {
	gitignorePath := filepath.Join(m.DataDir(), ".gitignore")

	if _, err := os.Stat(gitignorePath); !os.IsNotExist(err) {
		return nil
	}

	gitignoreContent := `# slides data directory
*.log
*.db
*.db-journal
*.db-wal
*.db-shm
!config.toml
!.gitignore
`

	return os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644)
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandString expands $VAR and ${VAR}. Unknown variables are left as-is.
func expandString(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
