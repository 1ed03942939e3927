package faqsearch

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/blugelabs/bluge"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

const (
	idField       = "_id"
	questionField = "question"
)

// BlugeIndex is an in-memory BM25 index over normalized FAQ questions.
type BlugeIndex struct {
	mu       sync.RWMutex
	writer   *bluge.Writer
	docCount int
}

// NewBlugeIndex returns an empty index; call Rebuild to populate it.
func NewBlugeIndex() *BlugeIndex {
	return &BlugeIndex{}
}

// Rebuild indexes records into a fresh writer and swaps it in.
func (i *BlugeIndex) Rebuild(_ context.Context, records []faq.QuestionRecord) error {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return fmt.Errorf("open bluge writer: %w", err)
	}

	batch := bluge.NewBatch()
	count := 0
	for _, record := range records {
		if record.Normalized == "" {
			continue
		}
		doc := bluge.NewDocument(strconv.FormatInt(record.ID, 10)).
			AddField(bluge.NewTextField(questionField, record.Normalized))
		batch.Update(doc.ID(), doc)
		count++
	}
	if err := writer.Batch(batch); err != nil {
		_ = writer.Close()
		return fmt.Errorf("index questions: %w", err)
	}

	i.mu.Lock()
	previous := i.writer
	i.writer = writer
	i.docCount = count
	i.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// Search returns up to limit hits ordered by score, then by corpus position.
func (i *BlugeIndex) Search(ctx context.Context, normalized string, limit int) ([]faq.KeywordHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.writer == nil || normalized == "" || i.docCount == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 1
	}

	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open bluge reader: %w", err)
	}
	defer reader.Close()

	query := bluge.NewMatchQuery(normalized).SetField(questionField)
	// fetch every candidate so ties can be broken by position
	request := bluge.NewTopNSearch(i.docCount, query)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	var hits []faq.KeywordHit
	match, err := iterator.Next()
	for err == nil && match != nil {
		id := int64(-1)
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field != idField {
				return true
			}
			if parsed, parseErr := strconv.ParseInt(string(value), 10, 64); parseErr == nil {
				id = parsed
			}
			return false
		})
		if visitErr != nil {
			return nil, visitErr
		}
		if id >= 0 {
			hits = append(hits, faq.KeywordHit{ID: id, Score: match.Score})
		}
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("iterate keyword hits: %w", err)
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score == hits[b].Score {
			return hits[a].ID < hits[b].ID
		}
		return hits[a].Score > hits[b].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Close releases the underlying writer.
func (i *BlugeIndex) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.writer == nil {
		return nil
	}
	err := i.writer.Close()
	i.writer = nil
	return err
}

var _ faq.KeywordIndex = (*BlugeIndex)(nil)
