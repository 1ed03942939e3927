package faq

import "context"

// Store defines the persistence contract for trending counters.
type Store interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}
