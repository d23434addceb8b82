package model

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/neurlang/intentclassifier/classifier"
	"github.com/neurlang/intentclassifier/config"
	"github.com/neurlang/intentclassifier/layer/full"
	"github.com/neurlang/intentclassifier/net/feedforward"
)

var errClosed = errors.New("model is closed")

// Hashtron is a feedforward hashtron network. Its score is the output bit,
// 0 or 1.
type Hashtron struct {
	net      *feedforward.FeedforwardNetwork
	inputLen int
	closed   atomic.Bool
}

// NewNetwork builds an untrained network with the given layer sizes. Every
// layer but the last is joined to the next by a full combiner packing all
// its bits into one feature, so those layers hold at most 32 hashtrons.
// A non zero premodulo reduces every hashtron input modulo premodulo first.
func NewNetwork(layers []int, premodulo uint32) (*feedforward.FeedforwardNetwork, error) {
	var net feedforward.FeedforwardNetwork
	for i, n := range layers {
		if n <= 0 {
			return nil, fmt.Errorf("layer %d: size must be positive, got %d", i, n)
		}
		net.NewLayerP(n, 0, premodulo)
		if i+1 < len(layers) {
			if n > 32 {
				return nil, fmt.Errorf("layer %d: at most 32 hashtrons can feed a combiner, got %d", i, n)
			}
			combiner, err := full.New(n, 0, byte(n))
			if err != nil {
				return nil, err
			}
			net.NewCombiner(combiner)
		}
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return &net, nil
}

// NewHashtron wraps a trained network.
func NewHashtron(net *feedforward.FeedforwardNetwork, inputLen int) (*Hashtron, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}
	if inputLen <= 0 {
		return nil, errors.New("input length must be positive")
	}
	return &Hashtron{net: net, inputLen: inputLen}, nil
}

// OpenHashtron reads lzw compressed hashtron weights into a network shaped
// by cfg.Layers and cfg.Premodulo.
func OpenHashtron(cfg config.ModelConfig, inputLen int) (classifier.Model, error) {
	net, err := NewNetwork(cfg.Layers, cfg.Premodulo)
	if err != nil {
		return nil, err
	}
	if err := net.ReadCompressedWeightsFromFile(cfg.Path); err != nil {
		return nil, err
	}
	return NewHashtron(net, inputLen)
}

func (h *Hashtron) InputLen() int {
	return h.inputLen
}

// Infer runs the network once.
func (h *Hashtron) Infer(input []float32) ([][]float32, error) {
	if h.closed.Load() {
		return nil, errClosed
	}
	if len(input) != h.inputLen {
		return nil, errors.New("input length differs from the model input length")
	}
	bit := h.net.Infer(feedforward.Sample(input)) & 1
	return [][]float32{{float32(bit)}}, nil
}

// Close drops the network.
func (h *Hashtron) Close() error {
	if h.closed.Swap(true) {
		return errClosed
	}
	return nil
}
