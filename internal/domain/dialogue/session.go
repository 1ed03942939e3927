package dialogue

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Session runs the interactive loop over a reader and a writer.
type Session struct {
	ID        string
	responder *Responder
	logger    *slog.Logger
	state     State
	turns     int
}

// NewSession starts a session in the running state.
func (r *Responder) NewSession() *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		responder: r,
		logger:    r.logger.With("session", id),
		state:     StateRunning,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Turns returns how many replies were produced.
func (s *Session) Turns() int {
	return s.turns
}

type line struct {
	text string
	err  error
}

// Run prints the banner and serves lines from in until a quit word, end of
// input or cancellation of ctx.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg := s.responder.cfg
	if _, err := fmt.Fprintln(out, cfg.Banner); err != nil {
		return err
	}
	s.logger.Info("chat session started")
	defer func() {
		s.state = StateStopped
		s.logger.Info("chat session stopped", "turns", s.turns)
	}()

	lines := make(chan line, 1)
	next := make(chan struct{})
	go scanLines(in, lines, next)
	defer close(next)

	for {
		if _, err := fmt.Fprint(out, cfg.Prompt); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case next <- struct{}{}:
		}

		var l line
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case l, ok = <-lines:
		}
		if !ok {
			return nil
		}
		if l.err != nil {
			return fmt.Errorf("read input: %w", l.err)
		}

		reply := s.responder.Respond(ctx, l.text)
		if reply.Stop {
			return nil
		}
		s.turns++
		if _, err := fmt.Fprintln(out, cfg.ReplyPrefix+reply.Text); err != nil {
			return err
		}
	}
}

// scanLines reads one line per request on next so no input is consumed
// after the session stops.
func scanLines(in io.Reader, lines chan<- line, next <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(in)
	for range next {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				lines <- line{err: err}
			}
			return
		}
		lines <- line{text: scanner.Text()}
	}
}
