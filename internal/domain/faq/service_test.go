package faq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSearchPlan(t *testing.T) {
	tests := []struct {
		mode SearchMode
		plan []SearchMode
	}{
		{SearchModeExact, []SearchMode{SearchModeExact}},
		{SearchModeSemanticHash, []SearchMode{SearchModeSemanticHash}},
		{SearchModeSimilarity, []SearchMode{SearchModeSimilarity}},
		{SearchModeKeyword, []SearchMode{SearchModeKeyword}},
		{SearchModeHybrid, []SearchMode{SearchModeExact, SearchModeSimilarity}},
	}

	for _, tc := range tests {
		require.Equal(t, tc.plan, resolveSearchPlan(tc.mode), "mode %s", tc.mode)
	}
}

func TestSanitizeMode(t *testing.T) {
	svc := &service{cfg: Config{DefaultMode: SearchModeHybrid}}
	require.Equal(t, SearchModeKeyword, svc.sanitizeMode(SearchModeKeyword))
	require.Equal(t, SearchModeHybrid, svc.sanitizeMode(""))
	require.Equal(t, SearchModeHybrid, svc.sanitizeMode("fuzzy"))

	bare := &service{}
	require.Equal(t, SearchModeSimilarity, bare.sanitizeMode(""))
}

func TestValidateEntries(t *testing.T) {
	require.NoError(t, ValidateEntries(DefaultEntries()))
	require.Len(t, DefaultEntries(), 10)
	require.ErrorIs(t, ValidateEntries(nil), ErrEmptyCorpus)
	require.EqualError(t, ValidateEntries([]Entry{{Question: "q", Answer: " "}}), "entry 0: answer cannot be empty")
	require.EqualError(t, ValidateEntries([]Entry{{Question: "", Answer: "a"}}), "entry 0: question cannot be empty")
}
