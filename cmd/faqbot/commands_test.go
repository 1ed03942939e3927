package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCommandWithStderr(t, stdin, args...)
	return out, err
}

func runCommandWithStderr(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestAskCommand(t *testing.T) {
	out, err := runCommand(t, "", "ask", "Can", "international", "students", "apply", "for", "internships?")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Bot: Yes, but they may need additional documentation"), out)

	out, err = runCommand(t, "", "ask", "hello")
	require.NoError(t, err)
	require.Equal(t, "Bot: Hello! How can I help you today?\n", out)

	out, err = runCommand(t, "", "ask", "--mode", "exact", "internship", "perks")
	require.NoError(t, err)
	require.Equal(t, "Bot: I'm sorry, I don't understand that question. Could you rephrase it?\n", out)

	_, err = runCommand(t, "", "ask", "--mode", "fuzzy", "internship")
	require.EqualError(t, err, `unknown mode "fuzzy"`)
}

func TestAskCommandQuitWordPrintsNothing(t *testing.T) {
	for _, word := range []string{"quit", "Q"} {
		out, err := runCommand(t, "", "ask", word)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestTrendingCommandExplainsStore(t *testing.T) {
	out, stderr, err := runCommandWithStderr(t, "", "trending")
	require.NoError(t, err)
	require.Contains(t, out, "QUESTION")
	require.Contains(t, stderr, "faq.redis.enabled")

	out, err = runCommand(t, "", "trending", "--help")
	require.NoError(t, err)
	require.Contains(t, out, "FAQ_REDIS_ENABLED")
}

func TestRootCommandChats(t *testing.T) {
	out, err := runCommand(t, "hey\nquit\n")
	require.NoError(t, err)
	require.Equal(t, "FAQ Chatbot: Type 'quit' or 'q' to exit\nYou: Bot: Hello! How can I help you today?\nYou: ", out)
}

func TestListCommand(t *testing.T) {
	out, err := runCommand(t, "", "list")
	require.NoError(t, err)
	require.Contains(t, out, "What is an internship?")
	require.Contains(t, out, "What's the difference between an internship and a co-op?")
}

func TestStartupFailsOnInvalidConfig(t *testing.T) {
	t.Setenv("FAQ_MODE", "fuzzy")
	_, err := runCommand(t, "", "list")
	require.Error(t, err)
}
