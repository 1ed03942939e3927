package faq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFitVectorizerSmoothedIDF(t *testing.T) {
	v, err := FitVectorizer([]string{"internship", "internship pay", "summer job"})
	require.NoError(t, err)

	require.Equal(t, []string{"internship", "job", "pay", "summer"}, v.Terms())
	require.Equal(t, 4, v.Dimensions())

	idf, ok := v.IDF("internship")
	require.True(t, ok)
	require.InDelta(t, math.Log(4.0/3.0)+1, idf, 1e-9)

	idf, ok = v.IDF("pay")
	require.True(t, ok)
	require.InDelta(t, math.Log(2.0)+1, idf, 1e-9)

	_, ok = v.IDF("unknown")
	require.False(t, ok)
}

func TestTransformIgnoresUnseenTerms(t *testing.T) {
	v, err := FitVectorizer([]string{"internship", "internship pay", "summer job"})
	require.NoError(t, err)

	require.Equal(t, []float32{1, 0, 0, 0}, v.Transform("internship visa"))
	require.True(t, IsZeroVector(v.Transform("visa stipend")))
	require.True(t, IsZeroVector(v.Transform("")))
}

func TestTransformProducesUnitVectors(t *testing.T) {
	v, err := FitVectorizer([]string{"internship", "internship pay", "summer job"})
	require.NoError(t, err)

	vector := v.Transform("pay pay internship summer")
	var norm float64
	for _, x := range vector {
		norm += float64(x) * float64(x)
	}
	require.InDelta(t, 1.0, norm, 1e-6)

	payIDF, _ := v.IDF("pay")
	internIDF, _ := v.IDF("internship")
	require.InDelta(t, 2*payIDF/internIDF, float64(vector[2]/vector[0]), 1e-5)
}

func TestFitVectorizerRejectsEmptyVocabulary(t *testing.T) {
	_, err := FitVectorizer([]string{"", "a b c"})
	require.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = FitVectorizer(nil)
	require.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestCosineSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	require.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	require.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
