package faqrepo

import (
	"context"
	"sync"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

// MemoryRepository is an in-memory QuestionRepository holding records in corpus order.
type MemoryRepository struct {
	mu sync.RWMutex

	records []faq.QuestionRecord
	byText  map[string]int
	byHash  map[uint64]int
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byText: make(map[string]int),
		byHash: make(map[uint64]int),
	}
}

// Replace implements faq.QuestionRepository.
func (r *MemoryRepository) Replace(_ context.Context, records []faq.QuestionRecord) error {
	cloned := make([]faq.QuestionRecord, len(records))
	byText := make(map[string]int, len(records))
	byHash := make(map[uint64]int, len(records))
	for i, record := range records {
		record.Vector = append([]float32(nil), record.Vector...)
		cloned[i] = record
		// first occurrence wins so lookups agree with similarity tie-breaking
		if _, exists := byText[record.Normalized]; !exists && record.Normalized != "" {
			byText[record.Normalized] = i
		}
		if record.SemanticHash != nil {
			if _, exists := byHash[*record.SemanticHash]; !exists {
				byHash[*record.SemanticHash] = i
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = cloned
	r.byText = byText
	r.byHash = byHash
	return nil
}

// FindExact implements faq.QuestionRepository.
func (r *MemoryRepository) FindExact(_ context.Context, normalized string) (faq.QuestionRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byText[normalized]
	if !ok {
		return faq.QuestionRecord{}, false, nil
	}
	return r.records[idx], true, nil
}

// FindBySemanticHash implements faq.QuestionRepository.
func (r *MemoryRepository) FindBySemanticHash(_ context.Context, hash uint64) (faq.QuestionRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byHash[hash]
	if !ok {
		return faq.QuestionRecord{}, false, nil
	}
	return r.records[idx], true, nil
}

// FindNearest implements faq.QuestionRepository.
func (r *MemoryRepository) FindNearest(_ context.Context, vector []float32) (faq.SimilarityMatch, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		best   faq.SimilarityMatch
		hasAny bool
	)
	for _, candidate := range r.records {
		score := faq.CosineSimilarity(vector, candidate.Vector)
		if !hasAny || score > best.Score {
			hasAny = true
			best = faq.SimilarityMatch{
				Question: candidate,
				Score:    score,
			}
		}
	}
	if !hasAny {
		return faq.SimilarityMatch{}, false, nil
	}
	return best, true, nil
}

var _ faq.QuestionRepository = (*MemoryRepository)(nil)
