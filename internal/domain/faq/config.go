package faq

// Config holds runtime knobs for the FAQ service.
type Config struct {
	// DefaultMode is used when a request does not name a mode.
	DefaultMode SearchMode
	// SimilarityThreshold rejects similarity matches scoring below it. Zero disables the check.
	SimilarityThreshold float64
	TopRecommendations  int
}
