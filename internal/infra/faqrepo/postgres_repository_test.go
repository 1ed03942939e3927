package faqrepo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

// Runs against a pgvector-enabled database when FAQ_TEST_POSTGRES_DSN is set.
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("FAQ_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FAQ_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))

	hash := uint64(1) << 63
	require.NoError(t, repo.Replace(ctx, []faq.QuestionRecord{
		{ID: 0, QuestionText: "What is an internship?", Normalized: "internship", Answer: "a", Vector: []float32{1, 0}},
		{ID: 1, QuestionText: "What is an internship??", Normalized: "internship", Answer: "b", Vector: []float32{1, 0}, SemanticHash: &hash},
		{ID: 2, QuestionText: "When should I apply?", Normalized: "apply", Answer: "c", Vector: []float32{0, 1}},
	}))

	rec, found, err := repo.FindExact(ctx, "internship")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "a", rec.Answer)

	rec, found, err = repo.FindBySemanticHash(ctx, hash)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(1), rec.ID)
	require.Equal(t, hash, *rec.SemanticHash)

	match, found, err := repo.FindNearest(ctx, []float32{0.9, 0.1})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(0), match.Question.ID)
	require.Greater(t, match.Score, 0.9)
}
