// Package feedforward implements a feedforward network of hashtrons
package feedforward

import "errors"

import "github.com/neurlang/intentclassifier/hash"
import "github.com/neurlang/intentclassifier/hashtron"
import "github.com/neurlang/intentclassifier/layer"
import "github.com/neurlang/intentclassifier/parallel"

// FeedforwardNetworkInput is one individual input to the feedforward network
type FeedforwardNetworkInput interface {

	// Feature extracts the input of hashtron n in the first layer
	Feature(n int) uint32
}

// SingleValue is a single value returned by the final layer
type SingleValue uint32

// Feature extracts the feature from SingleValue
func (v SingleValue) Feature(n int) uint32 {
	return uint32(v)
}

// FeedforwardNetwork is the feedforward network. Hashtron layers sit on even
// positions, the combiner joining a layer to the next one sits right after it.
type FeedforwardNetwork struct {
	layers    [][]hashtron.Hashtron
	mapping   []byte
	combiners []layer.Layer
	premodulo []uint32
}

// Len returns the number of hashtrons inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, v := range f.layers {
		o += len(v)
	}
	return
}

// LenLayers returns the number of layers. Each Layer and Combiner counts as a layer here.
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetHashtron gets n-th hashtron pointer in the network.
func (f FeedforwardNetwork) GetHashtron(n int) *hashtron.Hashtron {
	for _, v := range f.layers {
		if n < len(v) {
			return &v[n]
		}
		n -= len(v)
	}
	return nil
}

// NewLayer adds a hashtron layer to the end of network with n hashtrons, each recognizing bits bits.
func (f *FeedforwardNetwork) NewLayer(n int, bits byte) {
	f.NewLayerP(n, bits, 0)
}

// NewLayerP adds a hashtron layer to the end of network with n hashtrons, each recognizing bits bits, and input feature pre-modulo.
func (f *FeedforwardNetwork) NewLayerP(n int, bits byte, premodulo uint32) {
	if bits == 0 {
		bits = 1
	}
	f.layers = append(f.layers, make([]hashtron.Hashtron, n))
	f.mapping = append(f.mapping, bits)
	f.combiners = append(f.combiners, nil)
	f.premodulo = append(f.premodulo, premodulo)
}

// NewCombiner adds a combiner layer to the end of network
func (f *FeedforwardNetwork) NewCombiner(layer layer.Layer) {
	f.layers = append(f.layers, nil)
	f.mapping = append(f.mapping, 0)
	f.combiners = append(f.combiners, layer)
	f.premodulo = append(f.premodulo, 0)
}

// ErrBadTopology is returned by Validate for networks that can't run
var ErrBadTopology = errors.New("feedforward network topology is invalid")

// Validate checks that layers and combiners alternate, that every combiner
// accepts the bits of the layer before it and that the network ends with a
// single hashtron.
func (f FeedforwardNetwork) Validate() error {
	if len(f.layers) == 0 || len(f.layers)%2 == 0 {
		return ErrBadTopology
	}
	for l := 0; l < len(f.layers); l++ {
		if l%2 == 1 {
			if f.combiners[l] == nil || f.combiners[l].Size() != len(f.layers[l-1]) {
				return ErrBadTopology
			}
			continue
		}
		if len(f.layers[l]) == 0 || f.combiners[l] != nil {
			return ErrBadTopology
		}
	}
	if len(f.layers[len(f.layers)-1]) != 1 {
		return ErrBadTopology
	}
	return nil
}

// Forward solves the output of hashtron layer l based on that layer's input in.
// Hashtrons followed by a combiner run concurrently.
func (f FeedforwardNetwork) Forward(in FeedforwardNetworkInput, l int) FeedforwardNetworkInput {
	if len(f.combiners) > l+1 && f.combiners[l+1] != nil {
		var combiner = f.combiners[l+1].Lay()
		parallel.ForEach(len(f.layers[l]), hash.Parallelism(), func(i int) {
			var feat = in.Feature(i)
			if f.premodulo[l] != 0 {
				feat = hash.Hash(feat, uint32(i), f.premodulo[l])
			}
			var bit = f.layers[l][i].Forward(feat, false)
			combiner.Put(i, bit&1 != 0)
		})
		return combiner
	}

	var feat = in.Feature(0)
	if f.premodulo[l] != 0 {
		feat = hash.Hash(feat, 0, f.premodulo[l])
	}
	return SingleValue(f.layers[l][0].Forward(feat, false))
}

// Infer infers the network output based on input
func (f FeedforwardNetwork) Infer(in FeedforwardNetworkInput) uint16 {
	var output = in
	for l := 0; l < f.LenLayers(); l += 2 {
		output = f.Forward(output, l)
	}
	return uint16(output.Feature(0)) & uint16(f.GetClasses()-1)
}

// GetBits reports the number of bits predicted by this network
func (f FeedforwardNetwork) GetBits() (ret byte) {
	if len(f.mapping) == 0 {
		return 1
	}
	ret = f.mapping[len(f.mapping)-1]
	if ret == 0 {
		ret = 1
	}
	return
}

// GetClasses reports the number of classes predicted by this network
func (f FeedforwardNetwork) GetClasses() uint32 {
	return 1 << f.GetBits()
}
