// Package config loads cern's TOML configuration.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"cern/pkg/compiler"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "cern.toml"

// Config holds the complete tool configuration
type Config struct {
	Parser   ParserConfig   `toml:"parser"`
	Output   OutputConfig   `toml:"output"`
	Compiler CompilerConfig `toml:"compiler"`
	Log      LogConfig      `toml:"log"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	ArenaBytes int `toml:"arena_bytes"`
}

// OutputConfig names the generated files
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Source string `toml:"source"`
	Binary string `toml:"binary"`
}

// CompilerConfig describes the external C++ compiler invocation
type CompilerConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Timeout Duration `toml:"timeout"`
	Skip    bool     `toml:"skip"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// Resolve loads path when set, otherwise DefaultFile when it exists in the
// working directory, otherwise the built-in defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Parser
	if c.Parser.ArenaBytes <= 0 {
		c.Parser.ArenaBytes = compiler.DefaultArenaCapacity
	}

	tc := compiler.DefaultToolchain()

	// Output
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.Source == "" {
		c.Output.Source = tc.SourceName
	}
	if c.Output.Binary == "" {
		c.Output.Binary = tc.BinaryName
	}

	// Compiler
	if c.Compiler.Command == "" {
		c.Compiler.Command = tc.Command
	}
	if c.Compiler.Args == nil {
		c.Compiler.Args = tc.Args
	}
	if c.Compiler.Timeout.Duration == 0 {
		c.Compiler.Timeout.Duration = tc.Timeout
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// expandEnvVars expands environment variables in path-like values
func (c *Config) expandEnvVars() {
	c.Output.Dir = os.ExpandEnv(c.Output.Dir)
	c.Compiler.Command = os.ExpandEnv(c.Compiler.Command)
}

// parseLevel maps a level name to slog.Level; unknown names fall back to info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the structured logger described by the [log] section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Toolchain builds the external compiler invocation from the configuration.
func (c *Config) Toolchain(stdout io.Writer) *compiler.Toolchain {
	return &compiler.Toolchain{
		Command:    c.Compiler.Command,
		Args:       c.Compiler.Args,
		SourceName: c.Output.Source,
		BinaryName: c.Output.Binary,
		Timeout:    c.Compiler.Timeout.Duration,
		Stdout:     stdout,
	}
}
