// Package config loads the settings of a discolight run from defaults, a
// YAML file, .env files and environment variables, in increasing order of
// precedence. Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultThreshold       = 2.0
	DefaultProgressPerTick = 1.0
	DefaultRenderFreqHz    = 1000.0
	DefaultTickDelay       = time.Millisecond
	DefaultMonitorPort     = 0
)

// EnvPrefix starts the name of every environment variable the loader reads.
const EnvPrefix = "DISCOLIGHT_"

// ErrInvalidThreshold reports a progress threshold outside [0, 100].
var ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")

// Config holds the settings of a run.
type Config struct {
	// Seed seeds the colour generator. 0 picks a seed from the clock.
	Seed int64 `yaml:"seed"`

	// Threshold is the render progress, in percent, waited for every
	// iteration.
	Threshold float64 `yaml:"threshold"`

	// MaxIterations stops the loop after that many iterations. 0 runs until
	// interrupted.
	MaxIterations int `yaml:"max_iterations"`

	Render    RenderConfig    `yaml:"render"`
	Recording RecordingConfig `yaml:"recording"`
	Monitor   MonitorConfig   `yaml:"monitor"`
}

// RenderConfig configures the simulated renderer.
type RenderConfig struct {
	ProgressPerTick float64       `yaml:"progress_per_tick"`
	FreqHz          float64       `yaml:"freq_hz"`
	TickDelay       time.Duration `yaml:"tick_delay"`
}

// RecordingConfig configures the SQLite recording.
type RecordingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Output is the database path without the .sqlite3 extension. Empty
	// picks a unique name.
	Output string `yaml:"output"`
}

// MonitorConfig configures the monitoring web server.
type MonitorConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
	Open    bool `yaml:"open"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Threshold: DefaultThreshold,
		Render: RenderConfig{
			ProgressPerTick: DefaultProgressPerTick,
			FreqHz:          DefaultRenderFreqHz,
			TickDelay:       DefaultTickDelay,
		},
		Monitor: MonitorConfig{Port: DefaultMonitorPort},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks that all the values are usable.
func (c *Config) Validate() error {
	if !(c.Threshold >= 0 && c.Threshold <= 100) {
		return ValidationError{
			Field:   "threshold",
			Message: ErrInvalidThreshold.Error(),
			Err:     ErrInvalidThreshold,
		}
	}

	if c.MaxIterations < 0 {
		return ValidationError{Field: "max_iterations", Message: "must not be negative"}
	}

	if !(c.Render.ProgressPerTick > 0 && c.Render.ProgressPerTick <= 100) {
		return ValidationError{
			Field:   "render.progress_per_tick",
			Message: "must be in (0, 100]",
		}
	}

	if !(c.Render.FreqHz > 0) {
		return ValidationError{Field: "render.freq_hz", Message: "must be positive"}
	}

	if c.Render.TickDelay < 0 {
		return ValidationError{Field: "render.tick_delay", Message: "must not be negative"}
	}

	if c.Monitor.Port < 0 || c.Monitor.Port > 65535 {
		return ValidationError{
			Field:   "monitor.port",
			Message: "must be between 0 and 65535",
		}
	}

	return nil
}

// Loader reads a Config.
type Loader struct {
	// File is the YAML file. Empty skips it. A missing file is an error.
	File string

	// EnvFiles are .env files. Missing ones are skipped. Variables already
	// set in the environment win over them.
	EnvFiles []string

	// LookupEnv reads the environment. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Load reads the YAML file and the environment into a Config and validates
// it.
func Load(file string) (*Config, error) {
	return Loader{File: file, EnvFiles: []string{".env"}}.Load()
}

// Load reads the configured sources into a Config and validates it.
func (l Loader) Load() (*Config, error) {
	cfg := Default()

	if l.File != "" {
		if err := readYAML(l.File, &cfg); err != nil {
			return nil, err
		}
	}

	lookup, err := l.lookup()
	if err != nil {
		return nil, err
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readYAML(file string, cfg *Config) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", file, err)
	}

	return nil
}

func (l Loader) lookup() (func(string) (string, bool), error) {
	env := l.LookupEnv
	if env == nil {
		env = os.LookupEnv
	}

	dotenv := make(map[string]string)

	for _, file := range l.EnvFiles {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}

		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}

		for k, v := range values {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := env(key); ok {
			return v, true
		}

		v, ok := dotenv[key]

		return v, ok
	}, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	vars := []struct {
		name  string
		apply func(string) error
	}{
		{"SEED", intVar(&cfg.Seed)},
		{"THRESHOLD", floatVar(&cfg.Threshold)},
		{"MAX_ITERATIONS", func(s string) error {
			n, err := strconv.Atoi(s)
			cfg.MaxIterations = n
			return err
		}},
		{"PROGRESS_PER_TICK", floatVar(&cfg.Render.ProgressPerTick)},
		{"RENDER_FREQ", floatVar(&cfg.Render.FreqHz)},
		{"TICK_DELAY", func(s string) error {
			d, err := time.ParseDuration(s)
			cfg.Render.TickDelay = d
			return err
		}},
		{"RECORD", boolVar(&cfg.Recording.Enabled)},
		{"OUTPUT", func(s string) error {
			cfg.Recording.Output = s
			return nil
		}},
		{"MONITOR", boolVar(&cfg.Monitor.Enabled)},
		{"MONITOR_PORT", func(s string) error {
			n, err := strconv.Atoi(s)
			cfg.Monitor.Port = n
			return err
		}},
	}

	for _, v := range vars {
		value, ok := lookup(EnvPrefix + v.name)
		if !ok {
			continue
		}

		if err := v.apply(value); err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, v.name, value, err)
		}
	}

	return nil
}

func intVar(p *int64) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseInt(s, 10, 64)
		*p = n
		return err
	}
}

func floatVar(p *float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		*p = f
		return err
	}
}

func boolVar(p *bool) func(string) error {
	return func(s string) error {
		b, err := strconv.ParseBool(s)
		*p = b
		return err
	}
}
