package hash

import "runtime"

import "github.com/klauspost/cpuid/v2"

var parallelism = detectParallelism()

func detectParallelism() int {
	var n = cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Parallelism reports the recommended number of hashtrons to evaluate
// concurrently on this platform. Can't return 0.
func Parallelism() int {
	return parallelism
}

// CPUBrand reports the processor brand name and its detected feature set.
func CPUBrand() (brand string, features []string) {
	return cpuid.CPU.BrandName, cpuid.CPU.FeatureSet()
}
