// Package config reads and writes the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/equiv"
	"github.com/sleepypower/circuit-simplifier/internal/simplify"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".circuit-simplifier.yaml"

// Config holds the settings shared by the commands. Command-line flags
// override them.
type Config struct {
	// Strategy is the equivalence strategy: truth-table, sat or bdd.
	Strategy string `yaml:"strategy"`

	// MaxVariables bounds the variable count of the truth-table strategy.
	MaxVariables int `yaml:"max_variables"`

	// Workers is the number of goroutines enumerating a truth table.
	Workers int `yaml:"workers"`

	// Form is the output form of simplify: auto, dnf or cnf.
	Form string `yaml:"form"`
}

func Default() Config {
	return Config{
		Strategy:     equiv.TruthTable.String(),
		MaxVariables: equiv.DefaultMaxVariables,
		Workers:      1,
		Form:         simplify.FormAuto.String(),
	}
}

// Load reads the configuration at path on top of the defaults. An empty path
// reads DefaultFile if it exists and the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	cfg, err = Decode(f)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r. Fields absent from r keep their
// default value; unknown fields are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := equiv.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if _, err := simplify.ParseForm(c.Form); err != nil {
		return err
	}
	if c.MaxVariables < 0 || c.MaxVariables > boolexpr.MaxBoundVariables {
		return fmt.Errorf("max_variables must be in [0, %d], got %d", boolexpr.MaxBoundVariables, c.MaxVariables)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// CheckerOptions returns the equivalence options described by c.
func (c Config) CheckerOptions(logger *zap.Logger) (equiv.Options, error) {
	strategy, err := equiv.ParseStrategy(c.Strategy)
	if err != nil {
		return equiv.Options{}, err
	}
	return equiv.Options{
		Strategy:     strategy,
		MaxVariables: c.MaxVariables,
		Workers:      c.Workers,
		Logger:       logger,
	}, nil
}

// Write creates or truncates path with cfg.
func Write(path string, cfg Config) error {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
