// Package config loads the deployment configuration: vector length, whether
// document import is on, which model to load and how to log.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Model formats understood by the model package.
const (
	FormatHashtron = "hashtron"
	FormatLogistic = "logistic"
)

// Config is the root of the YAML file.
type Config struct {
	Vector     VectorConfig     `yaml:"vector"`
	Model      ModelConfig      `yaml:"model"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type VectorConfig struct {
	Length         int   `yaml:"length"`          // 34 or 51 depending on the model version
	DocumentImport *bool `yaml:"document_import"` // nil means enabled
}

type ModelConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "hashtron" (default) or "logistic"
	Layers []int  `yaml:"layers"` // hashtron layer sizes, last one must be 1

	Premodulo uint32 `yaml:"premodulo"` // hashtron input modulo, 0 keeps the raw feature
}

type ClassifierConfig struct {
	Threshold *float32 `yaml:"threshold"` // nil means 0.5
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" (default) or "json"
}

// Default returns the configuration used without a file.
func Default() *Config {
	cfg := new(Config)
	cfg.SetDefaults()
	return cfg
}

// Load reads the YAML file at path, fills defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data, fills defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every unset setting.
func (cfg *Config) SetDefaults() {
	if cfg.Vector.Length == 0 {
		cfg.Vector.Length = 34
	}
	if cfg.Vector.DocumentImport == nil {
		on := true
		cfg.Vector.DocumentImport = &on
	}
	if cfg.Model.Format == "" {
		cfg.Model.Format = FormatHashtron
	}
	if cfg.Model.Format == FormatHashtron && len(cfg.Model.Layers) == 0 {
		cfg.Model.Layers = []int{15, 1}
	}
	if cfg.Classifier.Threshold == nil {
		t := float32(0.5)
		cfg.Classifier.Threshold = &t
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate reports the first setting that can't work.
func (cfg *Config) Validate() error {
	if cfg.Vector.Length <= 0 {
		return fmt.Errorf("vector.length must be positive, got %d", cfg.Vector.Length)
	}
	switch cfg.Model.Format {
	case FormatHashtron:
		if err := validateLayers(cfg.Model.Layers); err != nil {
			return err
		}
	case FormatLogistic:
	default:
		return fmt.Errorf("unknown model.format %q", cfg.Model.Format)
	}
	if math.IsNaN(float64(cfg.Threshold())) {
		return errors.New("classifier.threshold is NaN")
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging.format %q", cfg.Logging.Format)
	}
	return nil
}

func validateLayers(layers []int) error {
	if len(layers) == 0 || layers[len(layers)-1] != 1 {
		return errors.New("model.layers must end with a single hashtron")
	}
	for i, n := range layers {
		if n <= 0 {
			return fmt.Errorf("model.layers[%d] must be positive, got %d", i, n)
		}
		// a combiner packs the whole previous layer into one 32 bit feature
		if i+1 < len(layers) && n > 32 {
			return fmt.Errorf("model.layers[%d] can have at most 32 hashtrons, got %d", i, n)
		}
	}
	return nil
}

// DocumentImport reports whether vectors may be loaded from documents.
func (cfg *Config) DocumentImport() bool {
	return cfg.Vector.DocumentImport == nil || *cfg.Vector.DocumentImport
}

// Threshold reports the decision threshold.
func (cfg *Config) Threshold() float32 {
	if cfg.Classifier.Threshold == nil {
		return 0.5
	}
	return *cfg.Classifier.Threshold
}
