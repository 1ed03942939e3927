package faq

// SearchMode identifies the lookup strategy.
type SearchMode string

const (
	// SearchModeExact only considers normalized text equality.
	SearchModeExact SearchMode = "exact"
	// SearchModeSimilarity ranks entries by TF-IDF cosine similarity.
	SearchModeSimilarity SearchMode = "similarity"
	// SearchModeSemanticHash maps questions to a deterministic LSH bucket.
	SearchModeSemanticHash SearchMode = "semantic_hash"
	// SearchModeKeyword uses the BM25 full-text index.
	SearchModeKeyword SearchMode = "keyword"
	// SearchModeHybrid tries exact before falling back to similarity.
	SearchModeHybrid SearchMode = "hybrid"
)

// Entry is a fixed question/answer pair of the corpus.
type Entry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Request encapsulates a FAQ search query.
type Request struct {
	Question string     `json:"question"`
	Mode     SearchMode `json:"mode"`
}

// Response is returned to the CLI and HTTP transports.
type Response struct {
	Question        string          `json:"question"`
	Answer          string          `json:"answer"`
	MatchedQuestion string          `json:"matchedQuestion"`
	EntryID         int64           `json:"entryId"`
	Score           float64         `json:"score"`
	Mode            SearchMode      `json:"mode"`
	Recommendations []TrendingQuery `json:"recommendations"`
	DurationMs      int64           `json:"durationMs,omitempty"`
}

// TrendingQuery represents a frequently served FAQ entry.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// QuestionRecord is an indexed corpus entry. ID is the entry position.
type QuestionRecord struct {
	ID           int64
	QuestionText string
	Normalized   string
	Answer       string
	Vector       []float32
	SemanticHash *uint64
}

// Entry returns the question/answer pair behind the record.
func (r QuestionRecord) Entry() Entry {
	return Entry{Question: r.QuestionText, Answer: r.Answer}
}
