package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yanqian/internship-faqbot/internal/domain/dialogue"
	"github.com/yanqian/internship-faqbot/internal/domain/faq"
	"github.com/yanqian/internship-faqbot/internal/infra/config"
	"github.com/yanqian/internship-faqbot/internal/infra/corpus"
)

// App owns the loaded FAQ service and the ways of driving it: the
// interactive chat, one-shot commands and the HTTP server.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	svc       faq.Service
	source    faq.CorpusSource
	responder *dialogue.Responder
	server    *http.Server
}

// NewApp is used by Wire to build the runnable app. The corpus is loaded
// eagerly so an invalid corpus fails startup.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc faq.Service, source faq.CorpusSource, responder *dialogue.Responder, server *http.Server) (*App, error) {
	app := &App{
		cfg:       cfg,
		logger:    logger.With("component", "bootstrap"),
		svc:       svc,
		source:    source,
		responder: responder,
		server:    server,
	}
	if err := app.Reload(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// Reload fetches the corpus from its source and rebuilds every index.
func (a *App) Reload(ctx context.Context) error {
	entries, err := a.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus from %s: %w", a.source.Describe(), err)
	}
	if err := a.svc.Reload(ctx, entries); err != nil {
		return fmt.Errorf("index corpus from %s: %w", a.source.Describe(), err)
	}
	a.logger.Info("corpus ready", "source", a.source.Describe(), "entries", len(entries))
	return nil
}

// Chat runs the interactive loop until a quit word, end of input or ctx is done.
func (a *App) Chat(ctx context.Context, in io.Reader, out io.Writer) error {
	stop, err := a.watchCorpus(ctx)
	if err != nil {
		return err
	}
	defer stop()
	return a.responder.NewSession().Run(ctx, in, out)
}

// Reply runs a single dialogue turn.
func (a *App) Reply(ctx context.Context, input string) dialogue.Reply {
	return a.responder.Respond(ctx, input)
}

// FallbackReply is the text shown when no entry matches.
func (a *App) FallbackReply() string {
	return a.responder.Config().FallbackReply
}

// Ask answers a single question.
func (a *App) Ask(ctx context.Context, question string, mode faq.SearchMode) (faq.Response, error) {
	return a.svc.Answer(ctx, faq.Request{Question: question, Mode: mode})
}

// Entries lists the loaded corpus.
func (a *App) Entries() []faq.Entry {
	return a.svc.Entries()
}

// Trending returns the most frequently matched questions.
func (a *App) Trending(ctx context.Context) ([]faq.TrendingQuery, error) {
	return a.svc.Trending(ctx)
}

// Serve starts the HTTP server and blocks until shutdown.
func (a *App) Serve(ctx context.Context) error {
	stop, err := a.watchCorpus(ctx)
	if err != nil {
		return err
	}
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		timeout := a.cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// watchCorpus reloads file corpora on change when enabled. The returned func
// stops the watcher and waits for it.
func (a *App) watchCorpus(ctx context.Context) (func(), error) {
	fileSource, ok := a.source.(*corpus.FileSource)
	if !a.cfg.FAQ.Corpus.Watch || !ok {
		return func() {}, nil
	}

	watcher, err := corpus.NewWatcher(fileSource.Path(), a.logger)
	if err != nil {
		return nil, err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		watcher.Run(watchCtx, func(ctx context.Context) {
			if err := a.Reload(ctx); err != nil {
				a.logger.Warn("corpus reload failed, keeping previous index", "error", err)
			}
		})
	}()

	return func() {
		cancel()
		wg.Wait()
		_ = watcher.Close()
	}, nil
}
