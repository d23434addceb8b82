package layer

// Layer describes a combiner. Every inference gets its own combiner from Lay,
// so a Layer is safe to share between concurrent inferences.
type Layer interface {

	// Lay creates a combiner
	Lay() Combiner

	// Size reports how many bits the combiner accepts
	Size() int
}
