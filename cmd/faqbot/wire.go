//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/yanqian/internship-faqbot/internal/bootstrap"
	"github.com/yanqian/internship-faqbot/internal/domain/dialogue"
	"github.com/yanqian/internship-faqbot/internal/domain/faq"
	"github.com/yanqian/internship-faqbot/internal/infra/config"
	httpiface "github.com/yanqian/internship-faqbot/internal/interface/http"
)

func initializeApp(ctx context.Context) (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideFAQConfig,
		provideDialogueConfig,
		provideFAQRepository,
		provideFAQStore,
		provideKeywordIndex,
		provideCorpusSource,
		provideMatcher,
		faq.NewNormalizer,
		faq.NewService,
		dialogue.NewResponder,
		wire.Bind(new(httpiface.Responder), new(*dialogue.Responder)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
