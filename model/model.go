// Package model loads model files into classifier.Model implementations.
package model

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/neurlang/intentclassifier/classifier"
	"github.com/neurlang/intentclassifier/config"
)

// Opener loads the model described by cfg, accepting vectors of inputLen
// features.
type Opener func(cfg config.ModelConfig, inputLen int) (classifier.Model, error)

// Openers maps model.format values to their loader.
var Openers = map[string]Opener{
	config.FormatHashtron: OpenHashtron,
	config.FormatLogistic: OpenLogistic,
}

// Option configures Open.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger reporting loaded models, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// Open loads the model file named by cfg.
func Open(cfg config.ModelConfig, inputLen int, opts ...Option) (classifier.Model, error) {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	open, ok := Openers[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown model format %q (known: %v)", cfg.Format, formats())
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("no %s model path configured", cfg.Format)
	}
	m, err := open(cfg, inputLen)
	if err != nil {
		return nil, fmt.Errorf("loading %s model %s: %w", cfg.Format, cfg.Path, err)
	}
	o.log.Info("model loaded", "format", cfg.Format, "path", cfg.Path, "inputs", m.InputLen())
	return m, nil
}

func formats() []string {
	var out []string
	for k := range Openers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
