package dialogue

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	apperrors "github.com/yanqian/internship-faqbot/pkg/errors"
)

// State is the lifecycle of a chat session.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// Matcher finds the answer for a free-form question.
type Matcher interface {
	FindBestAnswer(ctx context.Context, query string) (string, error)
}

// Reply is the outcome of a single user turn.
type Reply struct {
	Text string `json:"reply"`
	Stop bool   `json:"stop"`
}

// Responder maps user input to bot replies.
type Responder struct {
	cfg     Config
	matcher Matcher
	logger  *slog.Logger

	quit      map[string]struct{}
	greetings map[string]struct{}
	farewells map[string]struct{}
}

// NewResponder builds a responder; blank config fields take their defaults.
func NewResponder(cfg Config, matcher Matcher, logger *slog.Logger) *Responder {
	cfg = cfg.withDefaults()
	return &Responder{
		cfg:       cfg,
		matcher:   matcher,
		logger:    logger.With("component", "dialogue.responder"),
		quit:      phraseSet(cfg.QuitWords),
		greetings: phraseSet(cfg.Greetings),
		farewells: phraseSet(cfg.Farewells),
	}
}

// Config returns the effective configuration.
func (r *Responder) Config() Config {
	return r.cfg
}

// IsQuit reports whether input ends the session.
func (r *Responder) IsQuit(input string) bool {
	_, ok := r.quit[canonical(input)]
	return ok
}

// Respond produces the reply for one line of input. Quit words stop the
// session without a reply text; matcher failures become the fallback reply.
func (r *Responder) Respond(ctx context.Context, input string) Reply {
	key := canonical(input)
	if _, ok := r.quit[key]; ok {
		return Reply{Stop: true}
	}
	if _, ok := r.greetings[key]; ok {
		return Reply{Text: r.cfg.GreetingReply}
	}
	if _, ok := r.farewells[key]; ok {
		return Reply{Text: r.cfg.FarewellReply}
	}

	answer, err := r.matcher.FindBestAnswer(ctx, input)
	if err != nil {
		r.logger.Debug("falling back", "code", apperrors.CodeOf(err), "error", err)
		return Reply{Text: r.cfg.FallbackReply}
	}
	return Reply{Text: answer}
}

func canonical(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func phraseSet(words []string) map[string]struct{} {
	return lo.SliceToMap(words, func(word string) (string, struct{}) {
		return canonical(word), struct{}{}
	})
}
