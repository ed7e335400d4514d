// Package config loads and saves rv32asm's configuration file, a TOML
// document with one section per concern: assembly, output, lint, and API.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration surface for the CLI, the TUI browser,
// the minimal GUI, and the HTTP API.
type Config struct {
	Assemble struct {
		// StrictUnknownMnemonics makes an unrecognised mnemonic a hard
		// pass-one error. Disabling it reproduces the original's weaker
		// behaviour of skipping the mnemonic in pass one and failing
		// only when pass two tries to encode it (spec.md section 9).
		StrictUnknownMnemonics bool `toml:"strict_unknown_mnemonics"`
	} `toml:"assemble"`

	Output struct {
		// Format is "hex" or "binary" (spec.md section 4.4).
		Format string `toml:"format"`
	} `toml:"output"`

	Lint struct {
		WarnUnusedLabels  bool `toml:"warn_unused_labels"`
		WarnDeadBranches  bool `toml:"warn_dead_branches"`
		WarnRegisterTypos bool `toml:"warn_register_typos"`
	} `toml:"lint"`

	API struct {
		Port int `toml:"port"`
	} `toml:"api"`
}

// Default returns the configuration rv32asm uses when no config file is
// present: strict mnemonic checking, hex output.
func Default() *Config {
	cfg := &Config{}
	cfg.Assemble.StrictUnknownMnemonics = true
	cfg.Output.Format = "hex"
	cfg.Lint.WarnUnusedLabels = true
	cfg.Lint.WarnDeadBranches = true
	cfg.Lint.WarnRegisterTypos = true
	cfg.API.Port = 8080
	return cfg
}

// Path returns the platform-specific config file path.
func Path() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32asm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "rv32asm.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32asm")

	default:
		return "rv32asm.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "rv32asm.toml"
	}
	return filepath.Join(configDir, "rv32asm.toml")
}

// Load reads the default config file, falling back to Default() if it
// does not exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the given config file, falling back to Default() if it
// does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// SaveTo writes the configuration to path as TOML.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}
