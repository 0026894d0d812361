// Package config loads benchmark run settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the on-disk shape of a benchmark run.
type Config struct {
	Sizes        []int    `yaml:"sizes" validate:"required,min=1,dive,gt=0"`
	Trials       int      `yaml:"trials" validate:"gte=1"`
	Seed         int64    `yaml:"seed"`
	Backends     []string `yaml:"backends" validate:"dive,oneof=Array LinkedList HashMap BST"`
	SearchSample int      `yaml:"search_sample" validate:"gte=1"`
	MutateSample int      `yaml:"mutate_sample" validate:"gte=1,ltefield=SearchSample"`
	Output       Output   `yaml:"output"`
}

// Output controls where results are written.
type Output struct {
	CSV         string `yaml:"csv"`
	JSON        bool   `yaml:"json"`
	Growth      bool   `yaml:"growth"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Sizes:        []int{100, 1000, 5000, 10000},
		Trials:       3,
		Seed:         42,
		Backends:     []string{"Array", "LinkedList", "HashMap", "BST"},
		SearchSample: 100,
		MutateSample: 10,
		Output: Output{
			CSV: "performance_results.csv",
		},
	}
}

// Load reads path over the defaults and validates the result. Keys absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			v := verrs[0]

			return fmt.Errorf("%w: %s failed %q (value %v)",
				ErrInvalid, v.Namespace(), v.Tag(), v.Value())
		}

		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// WriteDefault writes the default config to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	return nil
}
