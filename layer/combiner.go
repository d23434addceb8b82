// Package layer defines the combiner and layer interfaces of the feedforward network
package layer

// Combiner collects the output bits of one hashtron layer and packs them
// into the input features of the next layer.
type Combiner interface {

	// Put inserts the bit of hashtron n.
	Put(n int, v bool)

	// Feature returns the input feature of hashtron n in the next layer.
	Feature(n int) (o uint32)
}
