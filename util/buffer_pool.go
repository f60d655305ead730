package util

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Matrix2DPool provides pooling for 2D scratch matrices to reduce
// allocations. The hierarchical kernels grab one scratch band per team,
// so band shapes repeat and pool nicely.
type Matrix2DPool[T any] struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

var float64Pool2D = &Matrix2DPool[float64]{pools: make(map[string]*sync.Pool)}

// getPoolKey generates a key for the pool map
func getPoolKey(height, width int) string {
	return fmt.Sprintf("%d_%d", height, width)
}

// Get retrieves a matrix from the pool or creates a new one
func (p *Matrix2DPool[T]) Get(height, width int) [][]T {
	if height == 0 || width == 0 {
		return MakeMatrix2D[T](height, width)
	}

	key := getPoolKey(height, width)

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		if matrix := pool.Get(); matrix != nil {
			p.hits.Add(1)
			return matrix.([][]T)
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return MakeMatrix2D[T](height, width)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return MakeMatrix2D[T](height, width)
}

// Put returns a matrix to the pool
func (p *Matrix2DPool[T]) Put(matrix [][]T) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return
	}

	height := len(matrix)
	width := len(matrix[0])
	key := getPoolKey(height, width)

	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(matrix)
	}
}

// GetMetrics returns pool usage statistics
func (p *Matrix2DPool[T]) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// GetScratchBand retrieves a pooled float64 scratch band for kernel use.
// Contents are unspecified, callers overwrite every row they read.
func GetScratchBand(height, width int) [][]float64 {
	return float64Pool2D.Get(height, width)
}

// ReturnScratchBand hands a scratch band back to the pool.
func ReturnScratchBand(band [][]float64) {
	float64Pool2D.Put(band)
}
