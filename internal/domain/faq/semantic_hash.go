package faq

import (
	"errors"
	"math/rand"
)

const (
	defaultSemanticHashPlanes = 64
	defaultSemanticHashSeed   = 1337
)

// semanticHasher buckets term vectors into deterministic 64-bit signatures
// using random projection planes. Planes are drawn once for the vocabulary
// dimension, so a hasher is rebuilt whenever the vocabulary changes.
type semanticHasher struct {
	dims   int
	planes [][]float32
}

func newSemanticHasher(planeCount int, seed int64, dims int) (*semanticHasher, error) {
	if dims <= 0 {
		return nil, errors.New("semantic hasher requires positive dimension")
	}
	if planeCount <= 0 || planeCount > 64 {
		planeCount = defaultSemanticHashPlanes
	}

	rng := rand.New(rand.NewSource(seed)) // deterministic planes
	planes := make([][]float32, planeCount)
	for i := range planes {
		plane := make([]float32, dims)
		for j := range plane {
			plane[j] = float32(rng.NormFloat64())
		}
		planes[i] = plane
	}
	return &semanticHasher{dims: dims, planes: planes}, nil
}

// Hash returns the signature of vector. Zero vectors have no signature.
func (h *semanticHasher) Hash(vector []float32) (uint64, bool) {
	if h == nil || len(vector) != h.dims || IsZeroVector(vector) {
		return 0, false
	}
	var hash uint64
	for i, plane := range h.planes {
		if dot(vector, plane) >= 0 {
			hash |= 1 << (63 - i)
		}
	}
	return hash, true
}

func dot(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var sum float64
	for i := 0; i < length; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
