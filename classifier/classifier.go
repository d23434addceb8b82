// Package classifier runs single predictions of a loaded binary classifier.
package classifier

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/neurlang/intentclassifier/vector"
)

// Model is a loaded binary classifier. Infer returns the output tensor of
// one forward pass; the score is element [0][0].
type Model interface {
	InputLen() int
	Infer(input []float32) ([][]float32, error)
	Close() error
}

// State of an Invoker.
type State int

const (
	Unloaded State = iota
	Loaded
	Closed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var errNotLoaded = errors.New("classifier has no model loaded")

// Invoker owns a model and turns feature vectors into labels. Predict may be
// called from many goroutines; Close waits for running predictions and no
// prediction starts after Close returned.
type Invoker struct {
	mu             sync.RWMutex
	model          Model
	state          State
	threshold      float32
	expectedLength int
	log            *slog.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithThreshold sets the decision threshold, DefaultThreshold otherwise.
func WithThreshold(t float32) Option {
	return func(i *Invoker) {
		i.threshold = t
	}
}

// WithExpectedLength overrides the vector length reported by the model.
func WithExpectedLength(n int) Option {
	return func(i *Invoker) {
		i.expectedLength = n
	}
}

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(i *Invoker) {
		if l != nil {
			i.log = l
		}
	}
}

// New takes ownership of model. A nil model gives an Unloaded invoker.
func New(model Model, opts ...Option) *Invoker {
	i := &Invoker{
		threshold: DefaultThreshold,
		log:       slog.Default(),
	}
	if model != nil {
		i.model = model
		i.state = Loaded
		i.expectedLength = model.InputLen()
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// State reports the lifecycle state.
func (i *Invoker) State() State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// Threshold reports the decision threshold.
func (i *Invoker) Threshold() float32 {
	return i.threshold
}

// ExpectedLength reports the vector length the model accepts.
func (i *Invoker) ExpectedLength() int {
	return i.expectedLength
}

// Predict runs v through the model once and labels the score.
// Every failure is returned as an *InferenceError.
func (i *Invoker) Predict(v vector.FeatureVector) (Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	switch i.state {
	case Unloaded:
		return Result{}, &InferenceError{Kind: InvokerClosed, Err: errNotLoaded}
	case Closed:
		return Result{}, &InferenceError{Kind: InvokerClosed}
	}
	if len(v) != i.expectedLength {
		return Result{}, &InferenceError{Kind: ShapeMismatch, Expected: i.expectedLength, Actual: len(v)}
	}

	score, err := i.infer(v)
	if err != nil {
		i.log.Error("inference failed", "error", err)
		return Result{}, &InferenceError{Kind: Underlying, Err: err}
	}
	if math.IsNaN(float64(score)) {
		i.log.Warn("model returned NaN score")
	}

	r := Result{
		ID:        uuid.New(),
		Label:     Decide(score, i.threshold),
		Score:     score,
		Threshold: i.threshold,
	}
	i.log.Debug("prediction", "id", r.ID, "label", r.Label, "score", r.Score)
	return r, nil
}

func (i *Invoker) infer(v vector.FeatureVector) (score float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panicked: %v", r)
		}
	}()
	input := make([]float32, len(v))
	copy(input, v)
	out, err := i.model.Infer(input)
	if err != nil {
		return 0, err
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return 0, errors.New("model returned an empty output")
	}
	return out[0][0], nil
}

// Close releases the model. Only the first call reaches the model.
func (i *Invoker) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != Loaded {
		i.state = Closed
		return nil
	}
	i.state = Closed
	m := i.model
	i.model = nil
	if err := m.Close(); err != nil {
		return fmt.Errorf("closing model: %w", err)
	}
	return nil
}
