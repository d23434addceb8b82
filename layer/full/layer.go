// Package full implements a fully connected layer and combiner
package full

import "errors"

import "github.com/neurlang/intentclassifier/layer"

// FullLayer is a layer where the next hashtrons each read a window of
// maxbits consecutive bits, starting at n*stride for hashtron n.
type FullLayer struct {
	size    int
	stride  byte
	maxbits byte
}

// Full is the combiner of a FullLayer
type Full struct {
	vec     []bool
	stride  byte
	maxbits byte
}

// MustNew creates a new full layer, panicking on bad arguments
func MustNew(size int, stride, maxbits byte) *FullLayer {
	o, err := New(size, stride, maxbits)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with size inputs. A zero stride lets every
// next hashtron read the same window.
func New(size int, stride, maxbits byte) (o *FullLayer, err error) {
	if size <= 0 {
		return nil, errors.New("full layer size must be positive")
	}
	if maxbits == 0 || maxbits > 32 {
		return nil, errors.New("full layer window must be 1 to 32 bits")
	}
	o = new(FullLayer)
	o.size = size
	o.stride = stride
	o.maxbits = maxbits
	return
}

// Lay turns full layer into a combiner
func (i *FullLayer) Lay() layer.Combiner {
	o := new(Full)
	o.vec = make([]bool, i.size)
	o.stride = i.stride
	o.maxbits = i.maxbits
	return o
}

// Size reports the number of bits the combiner accepts
func (i *FullLayer) Size() int {
	return i.size
}
