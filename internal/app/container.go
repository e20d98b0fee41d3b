// Package app holds the process-wide state: the live portfolio document,
// the CMS workspace and the read-side use cases built on top of them.
package app

import (
	"fmt"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/adapters/fixture"
	"github.com/khoahotran/portfolio-cms/adapters/markdown"
	"github.com/khoahotran/portfolio-cms/adapters/media_storage"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/cms"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type Container struct {
	Repo      portfolio.Repository
	Publisher service.EventPublisher
	Workspace *cms.Workspace
	Pages     *site.PageUseCase
	Feed      *site.FeedUseCase
}

func NewContainer(cfg config.Config, log logger.Logger) (*Container, error) {
	doc, err := fixture.Load(cfg.Data.FixturePath, log)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	images, err := media_storage.NewImageURLBuilder(cfg, log)
	if err != nil {
		return nil, err
	}

	repo := persistence.NewMemoryPortfolioRepo(doc, log)
	publisher := event.NewContentEventPublisher(cfg, log)
	settings := site.SiteSettings{
		Tagline:    cfg.Site.Tagline,
		FooterNote: cfg.Site.FooterNote,
		BaseURL:    cfg.Site.BaseURL,
	}

	return &Container{
		Repo:      repo,
		Publisher: publisher,
		Workspace: cms.NewWorkspace(repo, publisher, cfg.App.StartInCMS, log),
		Pages:     site.NewPageUseCase(repo, images, markdown.NewRenderer(log), settings, log),
		Feed:      site.NewFeedUseCase(repo, settings, log),
	}, nil
}

func (c *Container) Close() error {
	return c.Publisher.Close()
}
