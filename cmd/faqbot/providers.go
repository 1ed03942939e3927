package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/internship-faqbot/internal/domain/dialogue"
	"github.com/yanqian/internship-faqbot/internal/domain/faq"
	"github.com/yanqian/internship-faqbot/internal/infra/config"
	"github.com/yanqian/internship-faqbot/internal/infra/corpus"
	"github.com/yanqian/internship-faqbot/internal/infra/faqrepo"
	"github.com/yanqian/internship-faqbot/internal/infra/faqsearch"
	"github.com/yanqian/internship-faqbot/internal/infra/faqstore"
	"github.com/yanqian/internship-faqbot/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		DefaultMode:         faq.SearchMode(cfg.FAQ.Mode),
		SimilarityThreshold: cfg.FAQ.SimilarityThreshold,
		TopRecommendations:  cfg.FAQ.TopRecommendations,
	}
}

func provideDialogueConfig(cfg *config.Config) dialogue.Config {
	chat := dialogue.DefaultConfig()
	if len(cfg.Chat.QuitWords) > 0 {
		chat.QuitWords = cfg.Chat.QuitWords
	}
	if len(cfg.Chat.Greetings) > 0 {
		chat.Greetings = cfg.Chat.Greetings
	}
	if len(cfg.Chat.Farewells) > 0 {
		chat.Farewells = cfg.Chat.Farewells
	}
	if cfg.Chat.GreetingReply != "" {
		chat.GreetingReply = cfg.Chat.GreetingReply
	}
	if cfg.Chat.FarewellReply != "" {
		chat.FarewellReply = cfg.Chat.FarewellReply
	}
	if cfg.Chat.FallbackReply != "" {
		chat.FallbackReply = cfg.Chat.FallbackReply
	}
	return chat
}

func provideMatcher(svc faq.Service) dialogue.Matcher {
	return svc
}

func provideCorpusSource(cfg *config.Config, logger *slog.Logger) (faq.CorpusSource, error) {
	switch cfg.FAQ.Corpus.Source {
	case config.CorpusSourceFile:
		return corpus.NewFileSource(cfg.FAQ.Corpus.Path), nil
	case config.CorpusSourceS3:
		store := cfg.FAQ.Corpus.ObjectStorage
		return corpus.NewObjectSource(corpus.ObjectSourceConfig{
			Endpoint:  store.Endpoint,
			AccessKey: store.AccessKey,
			SecretKey: store.SecretKey,
			Bucket:    store.Bucket,
			Region:    store.Region,
			Key:       store.Key,
			UseSSL:    store.UseSSL,
		}, logger)
	case config.CorpusSourceBuiltin:
		return corpus.NewBuiltinSource(), nil
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.FAQ.Corpus.Source)
	}
}

func provideKeywordIndex() (faq.KeywordIndex, func()) {
	index := faqsearch.NewBlugeIndex()
	return index, func() { _ = index.Close() }
}

func provideFAQRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (faq.QuestionRepository, func()) {
	fallback := faqrepo.NewMemoryRepository()
	noop := func() {}
	dsn := strings.TrimSpace(cfg.FAQ.Postgres.DSN)
	if dsn == "" {
		logger.Debug("faq postgres dsn not set, using memory repository")
		return fallback, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, noop
	}
	if cfg.FAQ.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.FAQ.Postgres.MaxConns
	}
	if cfg.FAQ.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.FAQ.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, noop
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	repo := faqrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(pingCtx); err != nil {
		logger.Error("postgres schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noop
	}
	logger.Info("faq postgres repository enabled")
	return repo, pool.Close
}

func provideFAQStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	noop := func() {}
	if !cfg.FAQ.Redis.Enabled {
		return faqstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return faqstore.NewMemoryStore(), noop
	}
	logger.Info("faq valkey store enabled", "addr", cfg.FAQ.Redis.Addr)
	return faqstore.NewValkeyStore(client, cfg.FAQ.Redis.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.FAQ.Redis.Addr, "://") {
		return valkey.ParseURL(cfg.FAQ.Redis.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.FAQ.Redis.Addr}}, nil
}
