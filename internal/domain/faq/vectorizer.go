package faq

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ErrEmptyVocabulary is returned when no document contributes a term.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no usable terms")

const minTermLength = 2

// Vectorizer holds a TF-IDF vocabulary learned once over normalized documents.
// It is immutable after Fit.
type Vectorizer struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// FitVectorizer learns the vocabulary and smoothed inverse document
// frequencies of the given normalized documents.
func FitVectorizer(documents []string) (*Vectorizer, error) {
	df := make(map[string]int)
	for _, doc := range documents {
		for _, term := range lo.Uniq(termsOf(doc)) {
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := lo.Keys(df)
	sort.Strings(terms)

	n := float64(len(documents))
	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &Vectorizer{vocabulary: vocabulary, terms: terms, idf: idf}, nil
}

// Transform maps a normalized document onto the frozen vocabulary. Unseen
// terms are ignored; a document sharing no term yields the zero vector.
func (v *Vectorizer) Transform(document string) []float32 {
	weights := make([]float64, len(v.terms))
	for _, term := range termsOf(document) {
		if idx, ok := v.vocabulary[term]; ok {
			weights[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, w := range weights {
		norm += w * w
	}
	norm = math.Sqrt(norm)

	vector := make([]float32, len(weights))
	if norm == 0 {
		return vector
	}
	for i, w := range weights {
		vector[i] = float32(w / norm)
	}
	return vector
}

// Terms returns the vocabulary in index order.
func (v *Vectorizer) Terms() []string {
	return append([]string(nil), v.terms...)
}

// IDF returns the inverse document frequency of term and whether it is known.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}

// Dimensions is the length of every vector produced by Transform.
func (v *Vectorizer) Dimensions() int {
	return len(v.terms)
}

func termsOf(document string) []string {
	return lo.Filter(strings.Fields(document), func(term string, _ int) bool {
		return utf8.RuneCountInString(term) >= minTermLength
	})
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector has no magnitude.
func CosineSimilarity(a, b []float32) float64 {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	var dotProduct, normA, normB float64
	for i := 0; i < length; i++ {
		dotProduct += float64(a[i]) * float64(b[i])
	}
	for _, x := range a {
		normA += float64(x) * float64(x)
	}
	for _, x := range b {
		normB += float64(x) * float64(x)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// IsZeroVector reports whether every component of vector is zero.
func IsZeroVector(vector []float32) bool {
	for _, x := range vector {
		if x != 0 {
			return false
		}
	}
	return true
}
