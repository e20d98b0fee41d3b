package site

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type FeedUseCase struct {
	repo     portfolio.Repository
	settings SiteSettings
	now      func() time.Time
	logger   logger.Logger
}

func NewFeedUseCase(repo portfolio.Repository, settings SiteSettings, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		repo:     repo,
		settings: settings,
		now:      time.Now,
		logger:   log,
	}
}

// Execute builds a feed of projects, featured ones first.
func (uc *FeedUseCase) Execute(ctx context.Context) *feeds.Feed {
	ctx, span := tracer.Start(ctx, "BuildFeed")
	defer span.End()

	doc := uc.repo.Get(ctx)
	base := strings.TrimRight(uc.settings.BaseURL, "/")
	now := uc.now()

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - Projects", doc.Profile.Name),
		Link:        &feeds.Link{Href: base + "/#projects"},
		Description: doc.Profile.Title,
		Author:      &feeds.Author{Name: doc.Profile.Name, Email: doc.Profile.Email},
		Created:     now,
	}

	ordered := make([]portfolio.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		if p.Featured {
			ordered = append(ordered, p)
		}
	}
	for _, p := range doc.Projects {
		if !p.Featured {
			ordered = append(ordered, p)
		}
	}

	feed.Items = make([]*feeds.Item, 0, len(ordered))
	for _, p := range ordered {
		link := p.URL
		if link == "" {
			link = fmt.Sprintf("%s/#project-%d", base, p.ID)
		}
		item := &feeds.Item{
			Id:          fmt.Sprintf("%s/#project-%d", base, p.ID),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
			Created:     now,
		}
		feed.Items = append(feed.Items, item)
	}

	uc.logger.Info("Project feed generated successfully", zap.Int("item_count", len(feed.Items)))
	return feed
}
