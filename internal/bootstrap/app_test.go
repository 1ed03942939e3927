package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/internship-faqbot/internal/domain/dialogue"
	"github.com/yanqian/internship-faqbot/internal/domain/faq"
	"github.com/yanqian/internship-faqbot/internal/infra/config"
	"github.com/yanqian/internship-faqbot/internal/infra/corpus"
	"github.com/yanqian/internship-faqbot/internal/infra/faqrepo"
	"github.com/yanqian/internship-faqbot/internal/infra/faqsearch"
	"github.com/yanqian/internship-faqbot/internal/infra/faqstore"
	apperrors "github.com/yanqian/internship-faqbot/pkg/errors"
)

func TestChatTranscript(t *testing.T) {
	app := newTestApp(t, &config.Config{}, corpus.NewBuiltinSource())

	in := strings.NewReader("hi\nAre internships paid or unpaid?\nqwertyuiop\nbye\nQ\n")
	var out strings.Builder
	require.NoError(t, app.Chat(context.Background(), in, &out))

	want := strings.Join([]string{
		"FAQ Chatbot: Type 'quit' or 'q' to exit",
		"You: Bot: Hello! How can I help you today?",
		"You: Bot: " + faq.DefaultEntries()[1].Answer,
		"You: Bot: I'm sorry, I don't understand that question. Could you rephrase it?",
		"You: Bot: Goodbye! Have a great day!",
		"You: ",
	}, "\n")
	require.Equal(t, want, out.String())
}

func TestAskEntriesTrending(t *testing.T) {
	app := newTestApp(t, &config.Config{}, corpus.NewBuiltinSource())
	ctx := context.Background()

	resp, err := app.Ask(ctx, "How can I make my internship application stand out?", faq.SearchModeExact)
	require.NoError(t, err)
	require.Equal(t, int64(6), resp.EntryID)

	_, err = app.Ask(ctx, "zebra", "")
	require.True(t, apperrors.IsCode(err, "no_match"))

	require.Len(t, app.Entries(), 10)
	trending, err := app.Trending(ctx)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{{Query: "How can I make my internship application stand out?", Count: 1}}, trending)
}

func TestNewAppFailsOnInvalidCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - question: Why?\n    answer: \"\"\n"), 0o600))

	_, err := NewApp(context.Background(), &config.Config{}, newTestLogger(), newTestService(t), corpus.NewFileSource(path), newTestResponder(nil), nil)
	require.Error(t, err)
}

func TestChatReloadsWatchedCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - question: Where is the office?\n    answer: Downtown.\n"), 0o600))

	cfg := &config.Config{}
	cfg.FAQ.Corpus.Watch = true
	app := newTestApp(t, cfg, corpus.NewFileSource(path))

	ctx, cancel := context.WithCancel(context.Background())
	reader, writer := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- app.Chat(ctx, reader, io.Discard)
	}()
	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - question: Where is the office?\n    answer: Uptown.\n"), 0o600))
	require.Eventually(t, func() bool {
		answer, err := app.svc.FindBestAnswer(context.Background(), "office")
		return err == nil && answer == "Uptown."
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o600))
	time.Sleep(500 * time.Millisecond)
	require.Len(t, app.Entries(), 1, "invalid corpus keeps the previous index")

	cancel()
	_ = writer.Close()
	require.NoError(t, <-done)
}

func newTestApp(t *testing.T, cfg *config.Config, source faq.CorpusSource) *App {
	t.Helper()
	svc := newTestService(t)
	app, err := NewApp(context.Background(), cfg, newTestLogger(), svc, source, newTestResponder(svc), nil)
	require.NoError(t, err)
	return app
}

func newTestService(t *testing.T) faq.Service {
	t.Helper()
	index := faqsearch.NewBlugeIndex()
	t.Cleanup(func() { _ = index.Close() })
	return faq.NewService(faq.Config{}, faq.NewNormalizer(), faqrepo.NewMemoryRepository(), faqstore.NewMemoryStore(), index, newTestLogger())
}

func newTestResponder(matcher dialogue.Matcher) *dialogue.Responder {
	return dialogue.NewResponder(dialogue.Config{}, matcher, newTestLogger())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
