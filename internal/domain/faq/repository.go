package faq

import "context"

// SimilarityMatch contains the best vector match and its cosine similarity.
type SimilarityMatch struct {
	Question QuestionRecord
	Score    float64
}

// QuestionRepository indexes the corpus for exact, hash and nearest-neighbour lookups.
type QuestionRepository interface {
	// Replace swaps the indexed records for a freshly built corpus.
	Replace(ctx context.Context, records []QuestionRecord) error
	FindExact(ctx context.Context, normalized string) (QuestionRecord, bool, error)
	FindBySemanticHash(ctx context.Context, hash uint64) (QuestionRecord, bool, error)
	// FindNearest returns the highest scoring record; ties go to the lowest ID.
	FindNearest(ctx context.Context, vector []float32) (SimilarityMatch, bool, error)
}

// KeywordHit is a full-text search result.
type KeywordHit struct {
	ID    int64
	Score float64
}

// KeywordIndex is a BM25 full-text index over normalized questions.
type KeywordIndex interface {
	Rebuild(ctx context.Context, records []QuestionRecord) error
	Search(ctx context.Context, normalized string, limit int) ([]KeywordHit, error)
	Close() error
}
