// Package hash implements the fast modular hash used by the hashtron engine
package hash

import "math"

// Hash mixes n with salt s and reduces the result into the range 0 to max-1.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = n - s

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// modular stage, multiply shift trick by Daniel Lemire
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// VectorHash folds the float values into a single 32bit feature salted by n.
// Positions matter, so permuted vectors produce different features.
func VectorHash(n uint32, values []float32) uint32 {
	var ret = Hash(n, 0x9E3779B9, math.MaxUint32)
	for i, v := range values {
		ret = Hash(ret^math.Float32bits(v), uint32(i)+1, math.MaxUint32)
	}
	return ret
}
