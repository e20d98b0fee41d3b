package site

import (
	"context"
	"html/template"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var tracer = otel.Tracer("site_usecase")

type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Navigation is the in-page menu, in display order.
func Navigation() []NavItem {
	return []NavItem{
		{Label: "About", Href: "#about"},
		{Label: "Experience", Href: "#experience"},
		{Label: "Projects", Href: "#projects"},
		{Label: "Education", Href: "#education"},
		{Label: "Contact", Href: "#contact"},
	}
}

type ExperienceView struct {
	portfolio.Experience
	DescriptionHTML template.HTML
}

type ProjectView struct {
	portfolio.Project
	Thumbnail       string
	DescriptionHTML template.HTML
}

type Footer struct {
	Year int
	Name string
	Note string
}

// Page is everything the public portfolio template renders.
type Page struct {
	Profile        portfolio.Profile
	Tagline        string
	BioHTML        template.HTML
	Mailto         string
	Nav            []NavItem
	Experiences    []ExperienceView
	Projects       []ProjectView
	Education      []portfolio.Education
	Certifications []portfolio.Certification
	Footer         Footer
}

type SiteSettings struct {
	Tagline    string
	FooterNote string
	BaseURL    string
}

type PageUseCase struct {
	repo     portfolio.Repository
	images   service.ImageURLBuilder
	markdown service.MarkdownRenderer
	settings SiteSettings
	now      func() time.Time
	logger   logger.Logger
}

func NewPageUseCase(repo portfolio.Repository, images service.ImageURLBuilder, md service.MarkdownRenderer, settings SiteSettings, log logger.Logger) *PageUseCase {
	return &PageUseCase{
		repo:     repo,
		images:   images,
		markdown: md,
		settings: settings,
		now:      time.Now,
		logger:   log,
	}
}

// Document returns the raw portfolio snapshot.
func (uc *PageUseCase) Document(ctx context.Context) portfolio.Document {
	return uc.repo.Get(ctx)
}

// Execute projects the current document into the public page.
func (uc *PageUseCase) Execute(ctx context.Context) Page {
	ctx, span := tracer.Start(ctx, "RenderPage")
	defer span.End()

	doc := uc.repo.Get(ctx)
	page := Page{
		Profile:        doc.Profile,
		Tagline:        uc.settings.Tagline,
		BioHTML:        uc.markdown.Render(doc.Profile.Bio),
		Mailto:         Mailto(doc.Profile.Email),
		Nav:            Navigation(),
		Experiences:    make([]ExperienceView, 0, len(doc.Experiences)),
		Projects:       make([]ProjectView, 0, len(doc.Projects)),
		Education:      doc.Education,
		Certifications: doc.Certifications,
		Footer: Footer{
			Year: uc.now().Year(),
			Name: doc.Profile.Name,
			Note: uc.settings.FooterNote,
		},
	}

	for _, e := range doc.Experiences {
		page.Experiences = append(page.Experiences, ExperienceView{
			Experience:      e,
			DescriptionHTML: uc.markdown.Render(e.Description),
		})
	}
	for _, p := range doc.Projects {
		page.Projects = append(page.Projects, ProjectView{
			Project:         p,
			Thumbnail:       uc.images.Thumbnail(p.Image),
			DescriptionHTML: uc.markdown.Render(p.Description),
		})
	}

	span.SetAttributes(
		attribute.Int("experiences", len(page.Experiences)),
		attribute.Int("projects", len(page.Projects)),
	)
	return page
}

// Mailto is empty for an empty address.
func Mailto(email string) string {
	if email == "" {
		return ""
	}
	return "mailto:" + email
}
