package http

import (
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type FeedHandler struct {
	feedUseCase *site.FeedUseCase
	logger      logger.Logger
}

func NewFeedHandler(uc *site.FeedUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: uc,
		logger:      log,
	}
}

func (h *FeedHandler) RSS(c *gin.Context) {
	feed := h.feedUseCase.Execute(c.Request.Context())

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}

func (h *FeedHandler) Atom(c *gin.Context) {
	feed := h.feedUseCase.Execute(c.Request.Context())

	c.Header("Content-Type", "application/atom+xml; charset=utf-8")
	if err := feed.WriteAtom(c.Writer); err != nil {
		h.logger.Error("Failed to write Atom feed to response", err)
	}
}
