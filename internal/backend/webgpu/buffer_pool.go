//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

// stagingUsage is the usage of every read-back buffer.
const stagingUsage = wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst

// StagingPool recycles read-back buffers between dispatches. Buffers are
// bucketed by capacity class so a request reuses any buffer of its class.
type StagingPool struct {
	device *wgpu.Device

	free map[uint64][]*wgpu.Buffer
	mu   sync.Mutex

	// Statistics
	hits   uint64
	misses uint64
}

// NewStagingPool creates an empty pool for device.
func NewStagingPool(device *wgpu.Device) *StagingPool {
	return &StagingPool{
		device: device,
		free:   make(map[uint64][]*wgpu.Buffer),
	}
}

// Acquire returns an unmapped staging buffer holding at least size bytes.
func (p *StagingPool) Acquire(size uint64) *wgpu.Buffer {
	capacity := stagingCapacity(size)

	p.mu.Lock()
	defer p.mu.Unlock()

	if bucket := p.free[capacity]; len(bucket) > 0 {
		buffer := bucket[len(bucket)-1]
		p.free[capacity] = bucket[:len(bucket)-1]
		p.hits++
		return buffer
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: stagingUsage,
		Size:  capacity,
	})
}

// Release returns an unmapped buffer obtained from Acquire(size). The buffer
// is destroyed when its bucket is full.
func (p *StagingPool) Release(buffer *wgpu.Buffer, size uint64) {
	capacity := stagingCapacity(size)

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free[capacity]) >= maxPooledPerClass {
		buffer.Release()
		return
	}
	p.free[capacity] = append(p.free[capacity], buffer)
}

// Clear releases all pooled buffers.
// Should be called when the backend is released.
func (p *StagingPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for capacity, bucket := range p.free {
		for _, buffer := range bucket {
			buffer.Release()
		}
		delete(p.free, capacity)
	}
}

// Stats returns pool hits, misses and the number of idle buffers.
func (p *StagingPool) Stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, bucket := range p.free {
		pooled += len(bucket)
	}
	return p.hits, p.misses, pooled
}
