package hash

import (
	"testing"

	"github.com/klauspost/cpuid/v2"
)

// performance benchmark
func BenchmarkHash(b *testing.B) {
	n := uint32(0)
	s := uint32(0)
	for i := 0; i < b.N; i++ {
		n = Hash(n, s, uint32(i)+1)
		s++
	}
}

// loop length test
func TestHash(t *testing.T) {
	const bound1 = 20
	const bound2 = 10000
	var count uint64
	for max := uint32(1); max <= 1<<bound1; max <<= 1 {
		var visited = make([]bool, max)
		var current uint32
		for s := uint32(0); s < bound2; s++ {
			current = Hash(current, s, max)
			if current == 0 || visited[current] {
				visited = make([]bool, max)
				continue
			}
			visited[current] = true
			count++
		}
	}
	if count == 0 {
		t.Errorf("hash never left zero")
	}
}

func TestVectorHashOrder(t *testing.T) {
	a := VectorHash(0, []float32{1, 0, 1})
	b := VectorHash(0, []float32{1, 1, 0})
	if a == b {
		t.Errorf("permuted vectors collide: %d", a)
	}
	if VectorHash(0, []float32{1, 0, 1}) != a {
		t.Errorf("vector hash is not deterministic")
	}
	if VectorHash(1, []float32{1, 0, 1}) == a {
		t.Errorf("salt does not change the feature")
	}
}

func TestParallelism(t *testing.T) {
	if Parallelism() < 1 {
		t.Errorf("parallelism %d below 1", Parallelism())
	}
}

// sanity check fuzz
func FuzzHash(f *testing.F) {
	f.Add(uint32(0), uint32(0), uint32(0))
	f.Fuzz(func(t *testing.T, n, s, max uint32) {
		out := Hash(n, s, max)
		if max == 0 && out != 0 {
			t.Errorf("Hard error: Hash(%d, %d, 0) == %d (max=0 should be 0)", n, s, out)
		}
		if max > 1 && out >= max {
			t.Errorf("Hard error: Hash(%d, %d, %d) == %d (output bigger or equal than max)", n, s, max, out)
		}
	})
}

func TestParallelismFollowsCores(t *testing.T) {
	if n := cpuid.CPU.LogicalCores; n > 0 && Parallelism() != n {
		t.Errorf("parallelism %d, logical cores %d", Parallelism(), n)
	}
}
