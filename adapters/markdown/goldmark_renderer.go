package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type goldmarkRenderer struct {
	md     goldmark.Markdown
	logger logger.Logger
}

// NewRenderer renders GitHub-flavoured markdown. Raw HTML in the source is
// dropped, so the output is safe to embed.
func NewRenderer(log logger.Logger) service.MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &goldmarkRenderer{md: md, logger: log}
}

func (r *goldmarkRenderer) Render(src string) template.HTML {
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		r.logger.Warn("Markdown conversion failed, falling back to escaped text", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
