package corpus

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

const sampleCorpus = `
entries:
  - question: Where is the office?
    answer: Downtown.
  - question: Is there a dress code?
    answer: Business casual.
`

func TestDecodeEntries(t *testing.T) {
	entries, err := decodeEntries([]byte(sampleCorpus))
	require.NoError(t, err)
	require.Equal(t, []faq.Entry{
		{Question: "Where is the office?", Answer: "Downtown."},
		{Question: "Is there a dress code?", Answer: "Business casual."},
	}, entries)
}

func TestDecodeEntriesRejectsInvalidDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "no entries", doc: "entries: []\n"},
		{name: "blank answer", doc: "entries:\n  - question: Why?\n    answer: \"  \"\n"},
		{name: "blank question", doc: "entries:\n  - answer: Because.\n"},
		{name: "unknown field", doc: "entries:\n  - question: Why?\n    answer: Because.\n    score: 3\n"},
		{name: "not yaml", doc: "entries: [\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeEntries([]byte(tc.doc))
			require.Error(t, err)
		})
	}
}

func TestBuiltinSource(t *testing.T) {
	entries, err := NewBuiltinSource().Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, faq.DefaultEntries(), entries)
	require.Equal(t, "builtin", NewBuiltinSource().Describe())
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCorpus), 0o600))

	source := NewFileSource(path)
	entries, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "file:"+path, source.Describe())

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	require.Error(t, err)
}

func TestObjectSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/faq-bucket/corpus/faq.yaml" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("ETag", `"abc"`)
		w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		_, _ = io.WriteString(w, sampleCorpus)
	}))
	t.Cleanup(server.Close)

	source, err := NewObjectSource(ObjectSourceConfig{
		Endpoint:  server.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "faq-bucket",
		Region:    "us-east-1",
		Key:       "corpus/faq.yaml",
		UseSSL:    true,
	}, newTestLogger())
	require.NoError(t, err)
	require.Equal(t, "s3://faq-bucket/corpus/faq.yaml", source.Describe())

	entries, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Business casual.", entries[1].Answer)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "example.r2.cloudflarestorage.com", sanitizeEndpoint(" https://example.r2.cloudflarestorage.com/bucket "))
	require.Equal(t, "localhost:9000", sanitizeEndpoint("http://localhost:9000"))
	require.Equal(t, "", sanitizeEndpoint(""))
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCorpus), 0o600))

	watcher, err := NewWatcher(path, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })
	watcher.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.Run(ctx, func(context.Context) { calls.Add(1) })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))
	updated := strings.Replace(sampleCorpus, "Downtown.", "Uptown.", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	<-done
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
