package dialogue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/internship-faqbot/pkg/errors"
)

func TestRespond(t *testing.T) {
	matcher := &stubMatcher{answers: map[string]string{"What is an internship?": "temporary work"}}
	r := NewResponder(Config{}, matcher, newTestLogger())

	cases := []struct {
		name  string
		input string
		want  Reply
	}{
		{name: "greeting", input: "hi", want: Reply{Text: "Hello! How can I help you today?"}},
		{name: "greeting any case", input: "HeLLo", want: Reply{Text: "Hello! How can I help you today?"}},
		{name: "greeting trimmed", input: "  hey ", want: Reply{Text: "Hello! How can I help you today?"}},
		{name: "farewell keeps running", input: "Goodbye", want: Reply{Text: "Goodbye! Have a great day!"}},
		{name: "quit", input: "QUIT", want: Reply{Stop: true}},
		{name: "short quit", input: "q", want: Reply{Stop: true}},
		{name: "question", input: "What is an internship?", want: Reply{Text: "temporary work"}},
		{name: "no match", input: "zebra", want: Reply{Text: "I'm sorry, I don't understand that question. Could you rephrase it?"}},
		{name: "greeting inside a sentence is a question", input: "hi there", want: Reply{Text: "I'm sorry, I don't understand that question. Could you rephrase it?"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, r.Respond(context.Background(), tc.input))
		})
	}
}

func TestRespondFallsBackOnAnyError(t *testing.T) {
	matcher := &stubMatcher{err: errors.New("index exploded")}
	r := NewResponder(Config{}, matcher, newTestLogger())

	reply := r.Respond(context.Background(), "anything")
	require.Equal(t, DefaultConfig().FallbackReply, reply.Text)
	require.False(t, reply.Stop)
}

func TestCustomPhrases(t *testing.T) {
	cfg := Config{
		Greetings:     []string{"Yo"},
		GreetingReply: "Sup",
		QuitWords:     []string{"exit"},
	}
	r := NewResponder(cfg, &stubMatcher{}, newTestLogger())

	require.Equal(t, Reply{Text: "Sup"}, r.Respond(context.Background(), "yo"))
	require.True(t, r.IsQuit("EXIT"))
	require.False(t, r.IsQuit("q"))
	require.Equal(t, "Goodbye! Have a great day!", r.Respond(context.Background(), "bye").Text)
}

func TestSessionRun(t *testing.T) {
	matcher := &stubMatcher{answers: map[string]string{"What is an internship?": "temporary work"}}
	r := NewResponder(Config{}, matcher, newTestLogger())
	session := r.NewSession()
	require.NotEmpty(t, session.ID)
	require.Equal(t, StateRunning, session.State())

	in := strings.NewReader("hello\nWhat is an internship?\nbye\nq\nnever read\n")
	var out strings.Builder
	require.NoError(t, session.Run(context.Background(), in, &out))

	want := "FAQ Chatbot: Type 'quit' or 'q' to exit\n" +
		"You: Bot: Hello! How can I help you today?\n" +
		"You: Bot: temporary work\n" +
		"You: Bot: Goodbye! Have a great day!\n" +
		"You: "
	require.Equal(t, want, out.String())
	require.Equal(t, StateStopped, session.State())
	require.Equal(t, 3, session.Turns())
	require.Equal(t, []string{"What is an internship?"}, matcher.calls)
}

func TestSessionStopsAtEndOfInput(t *testing.T) {
	r := NewResponder(Config{}, &stubMatcher{}, newTestLogger())
	session := r.NewSession()

	var out strings.Builder
	require.NoError(t, session.Run(context.Background(), strings.NewReader("hi"), &out))
	require.Equal(t, "FAQ Chatbot: Type 'quit' or 'q' to exit\nYou: Bot: Hello! How can I help you today?\nYou: ", out.String())
	require.Equal(t, StateStopped, session.State())
}

func TestSessionStopsOnCancel(t *testing.T) {
	r := NewResponder(Config{}, &stubMatcher{}, newTestLogger())
	session := r.NewSession()

	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx, reader, io.Discard)
	}()

	_, err := writer.Write([]byte("hi\n"))
	require.NoError(t, err)
	cancel()
	require.NoError(t, <-done)
	require.Equal(t, StateStopped, session.State())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubMatcher struct {
	answers map[string]string
	err     error
	calls   []string
}

func (s *stubMatcher) FindBestAnswer(_ context.Context, query string) (string, error) {
	s.calls = append(s.calls, query)
	if s.err != nil {
		return "", s.err
	}
	if answer, ok := s.answers[query]; ok {
		return answer, nil
	}
	return "", apperrors.Wrap("no_match", "no faq entry matches the question", nil)
}
