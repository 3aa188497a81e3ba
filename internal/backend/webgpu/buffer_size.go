package webgpu

import "math/bits"

const (
	// minStagingSize is the smallest staging capacity class.
	minStagingSize = 4 * 1024
	// maxPooledPerClass bounds the idle buffers kept per capacity class.
	maxPooledPerClass = 8
)

// stagingCapacity rounds size up to its capacity class: the next power of
// two, at least minStagingSize.
func stagingCapacity(size uint64) uint64 {
	if size <= minStagingSize {
		return minStagingSize
	}
	return 1 << bits.Len64(size-1)
}
