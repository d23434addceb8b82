package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/neurlang/intentclassifier/classifier"
	"github.com/neurlang/intentclassifier/config"
)

// Logistic is a logistic regression over the features. Its score is
// sigmoid(weights·input + bias).
type Logistic struct {
	Weights []float32 `json:"weights"`
	Bias    float32   `json:"bias"`

	closed atomic.Bool
}

// OpenLogistic reads a JSON {"weights": [...], "bias": b} file.
func OpenLogistic(cfg config.ModelConfig, inputLen int) (classifier.Model, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	var l Logistic
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if len(l.Weights) != inputLen {
		return nil, fmt.Errorf("model has %d weights, configured vector length is %d", len(l.Weights), inputLen)
	}
	return &l, nil
}

func (l *Logistic) InputLen() int {
	return len(l.Weights)
}

// Infer computes the score of input.
func (l *Logistic) Infer(input []float32) ([][]float32, error) {
	if l.closed.Load() {
		return nil, errClosed
	}
	if len(input) != len(l.Weights) {
		return nil, errors.New("input length differs from the number of weights")
	}
	var z = float64(l.Bias)
	for i, w := range l.Weights {
		z += float64(w) * float64(input[i])
	}
	return [][]float32{{float32(1 / (1 + math.Exp(-z)))}}, nil
}

// Close drops the model.
func (l *Logistic) Close() error {
	if l.closed.Swap(true) {
		return errClosed
	}
	return nil
}
