package faq

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	apperrors "github.com/yanqian/internship-faqbot/pkg/errors"
)

// Service exposes FAQ matching capabilities.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	// FindBestAnswer returns the answer of the entry most similar to query.
	FindBestAnswer(ctx context.Context, query string) (string, error)
	Trending(ctx context.Context) ([]TrendingQuery, error)
	Entries() []Entry
	// Reload rebuilds the vocabulary and every index from entries.
	Reload(ctx context.Context, entries []Entry) error
}

type service struct {
	cfg        Config
	normalizer *Normalizer
	repo       QuestionRepository
	store      Store
	keywords   KeywordIndex
	logger     *slog.Logger

	mu         sync.RWMutex
	records    []QuestionRecord
	vectorizer *Vectorizer
	hasher     *semanticHasher
}

// NewService wires up the FAQ domain. The corpus is loaded through Reload.
func NewService(cfg Config, normalizer *Normalizer, repo QuestionRepository, store Store, keywords KeywordIndex, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		normalizer: normalizer,
		repo:       repo,
		store:      store,
		keywords:   keywords,
		logger:     logger.With("component", "faq.service"),
	}
}

func (s *service) Reload(ctx context.Context, entries []Entry) error {
	if err := ValidateEntries(entries); err != nil {
		return apperrors.Wrap("corpus_error", "invalid faq corpus", err)
	}

	normalized := lo.Map(entries, func(entry Entry, _ int) string {
		return s.normalizer.Normalize(entry.Question)
	})
	vectorizer, err := FitVectorizer(normalized)
	if err != nil {
		return apperrors.Wrap("corpus_error", "failed to build vocabulary", err)
	}
	hasher, err := newSemanticHasher(defaultSemanticHashPlanes, defaultSemanticHashSeed, vectorizer.Dimensions())
	if err != nil {
		return apperrors.Wrap("corpus_error", "failed to build semantic hasher", err)
	}

	records := make([]QuestionRecord, len(entries))
	for i, entry := range entries {
		vector := vectorizer.Transform(normalized[i])
		record := QuestionRecord{
			ID:           int64(i),
			QuestionText: entry.Question,
			Normalized:   normalized[i],
			Answer:       entry.Answer,
			Vector:       vector,
		}
		if hash, ok := hasher.Hash(vector); ok {
			record.SemanticHash = &hash
		}
		records[i] = record
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Replace(ctx, records); err != nil {
		return apperrors.Wrap("faq_error", "failed to index questions", err)
	}
	if err := s.keywords.Rebuild(ctx, records); err != nil {
		if len(s.records) > 0 {
			if restoreErr := s.repo.Replace(ctx, s.records); restoreErr != nil {
				s.logger.Error("faq repository restore failed", "error", restoreErr)
			}
		}
		return apperrors.Wrap("faq_error", "failed to build keyword index", err)
	}

	s.records = records
	s.vectorizer = vectorizer
	s.hasher = hasher
	s.logger.Info("faq corpus loaded", "entries", len(records), "vocabulary", vectorizer.Dimensions())
	return nil
}

func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, apperrors.Wrap("invalid_input", "question cannot be empty", nil)
	}

	mode := s.sanitizeMode(req.Mode)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.vectorizer == nil {
		return Response{}, apperrors.Wrap("faq_error", "faq corpus not loaded", nil)
	}

	normalized := s.normalizer.Normalize(question)

	var (
		vector     []float32
		record     QuestionRecord
		score      float64
		foundMatch bool
		actualMode = mode
	)

	for _, candidate := range resolveSearchPlan(mode) {
		switch candidate {
		case SearchModeExact:
			if normalized == "" {
				continue
			}
			rec, found, err := s.repo.FindExact(ctx, normalized)
			if err != nil {
				return Response{}, apperrors.Wrap("faq_error", "exact lookup failed", err)
			}
			if found {
				record, score, foundMatch = rec, 1, true
				actualMode = SearchModeExact
			}
		case SearchModeSemanticHash:
			vector = s.ensureVector(vector, normalized)
			hash, ok := s.hasher.Hash(vector)
			if !ok {
				continue
			}
			rec, found, err := s.repo.FindBySemanticHash(ctx, hash)
			if err != nil {
				return Response{}, apperrors.Wrap("faq_error", "semantic hash lookup failed", err)
			}
			if found {
				record, foundMatch = rec, true
				score = CosineSimilarity(vector, s.vectorOf(rec.ID))
				actualMode = SearchModeSemanticHash
			}
		case SearchModeSimilarity:
			vector = s.ensureVector(vector, normalized)
			if IsZeroVector(vector) {
				continue
			}
			match, found, err := s.repo.FindNearest(ctx, vector)
			if err != nil {
				return Response{}, apperrors.Wrap("faq_error", "similarity lookup failed", err)
			}
			if found && s.passesThreshold(match.Score) {
				record, score, foundMatch = match.Question, match.Score, true
				actualMode = SearchModeSimilarity
			}
		case SearchModeKeyword:
			if normalized == "" {
				continue
			}
			hits, err := s.keywords.Search(ctx, normalized, 1)
			if err != nil {
				return Response{}, apperrors.Wrap("faq_error", "keyword lookup failed", err)
			}
			if len(hits) > 0 && hits[0].ID >= 0 && hits[0].ID < int64(len(s.records)) {
				record, score, foundMatch = s.records[hits[0].ID], hits[0].Score, true
				actualMode = SearchModeKeyword
			}
		}
		if foundMatch {
			break
		}
	}

	if !foundMatch {
		return Response{}, apperrors.Wrap("no_match", "no faq entry matches the question", nil)
	}

	if err := s.store.IncrementQuery(ctx, record.Normalized, record.QuestionText); err != nil {
		s.logger.Warn("faq trending increment failed", "error", err)
	}

	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		s.logger.Warn("faq trending fetch failed", "error", err)
		recs = nil
	}

	s.logger.Debug("faq answered", "mode", actualMode, "entry", record.ID, "score", score)

	return Response{
		Question:        question,
		Answer:          record.Answer,
		MatchedQuestion: record.QuestionText,
		EntryID:         record.ID,
		Score:           score,
		Mode:            actualMode,
		Recommendations: recs,
		DurationMs:      time.Since(start).Milliseconds(),
	}, nil
}

func (s *service) FindBestAnswer(ctx context.Context, query string) (string, error) {
	resp, err := s.Answer(ctx, Request{Question: query})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap("faq_error", "failed to load trending queries", err)
	}
	return recs, nil
}

func (s *service) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.records, func(record QuestionRecord, _ int) Entry {
		return record.Entry()
	})
}

func (s *service) ensureVector(current []float32, normalized string) []float32 {
	if current != nil {
		return current
	}
	return s.vectorizer.Transform(normalized)
}

func (s *service) vectorOf(id int64) []float32 {
	if id < 0 || id >= int64(len(s.records)) {
		return nil
	}
	return s.records[id].Vector
}

func (s *service) passesThreshold(score float64) bool {
	return s.cfg.SimilarityThreshold <= 0 || score >= s.cfg.SimilarityThreshold
}

func (s *service) sanitizeMode(mode SearchMode) SearchMode {
	if IsValidMode(mode) {
		return mode
	}
	if IsValidMode(s.cfg.DefaultMode) {
		return s.cfg.DefaultMode
	}
	return SearchModeSimilarity
}

// IsValidMode reports whether mode names a known lookup strategy.
func IsValidMode(mode SearchMode) bool {
	switch mode {
	case SearchModeExact, SearchModeSimilarity, SearchModeSemanticHash, SearchModeKeyword, SearchModeHybrid:
		return true
	default:
		return false
	}
}

func resolveSearchPlan(mode SearchMode) []SearchMode {
	switch mode {
	case SearchModeExact:
		return []SearchMode{SearchModeExact}
	case SearchModeSemanticHash:
		return []SearchMode{SearchModeSemanticHash}
	case SearchModeKeyword:
		return []SearchMode{SearchModeKeyword}
	case SearchModeHybrid:
		return []SearchMode{SearchModeExact, SearchModeSimilarity}
	default:
		return []SearchMode{SearchModeSimilarity}
	}
}
