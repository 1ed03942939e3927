package faq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSemanticHasherDeterministic(t *testing.T) {
	vector := []float32{0.1, -0.2, 0.3, 0.4}

	hasher, err := newSemanticHasher(8, 99, len(vector))
	require.NoError(t, err)
	first, ok := hasher.Hash(vector)
	require.True(t, ok)
	second, ok := hasher.Hash(vector)
	require.True(t, ok)
	require.Equal(t, first, second)

	other, err := newSemanticHasher(8, 99, len(vector))
	require.NoError(t, err)
	third, ok := other.Hash(vector)
	require.True(t, ok)
	require.Equal(t, first, third, "hashes must match across instances")
}

func TestSemanticHasherSkipsUnusableVectors(t *testing.T) {
	hasher, err := newSemanticHasher(8, 99, 3)
	require.NoError(t, err)

	_, ok := hasher.Hash(nil)
	require.False(t, ok)
	_, ok = hasher.Hash([]float32{0, 0, 0})
	require.False(t, ok)
	_, ok = hasher.Hash([]float32{1, 2})
	require.False(t, ok, "dimension mismatch")
}

func TestSemanticHasherRejectsZeroDimensions(t *testing.T) {
	_, err := newSemanticHasher(8, 99, 0)
	require.Error(t, err)
}
