package feedforward

import "github.com/neurlang/intentclassifier/hash"

// Sample feeds a float feature vector into the first layer. Every hashtron
// sees the whole vector, hashed with its own position as salt.
type Sample []float32

// Feature extracts the input of hashtron n in the first layer
func (s Sample) Feature(n int) uint32 {
	return hash.VectorHash(uint32(n), s)
}
