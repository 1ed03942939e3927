package faqstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

func TestMemoryStoreTopQueries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.IncrementQuery(ctx, "internship pay unpaid", "Are internships paid or unpaid?"))
	require.NoError(t, store.IncrementQuery(ctx, "internship", "What is an internship?"))
	require.NoError(t, store.IncrementQuery(ctx, "internship", "what is an internship"))
	require.NoError(t, store.IncrementQuery(ctx, "apply summer internship", "When should I apply for summer internships?"))
	require.NoError(t, store.IncrementQuery(ctx, "", "ignored"))

	top, err := store.TopQueries(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "What is an internship?", Count: 2},
		{Query: "Are internships paid or unpaid?", Count: 1},
	}, top)

	all, err := store.TopQueries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
