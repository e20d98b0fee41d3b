package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/cms"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type RouterDeps struct {
	Workspace *cms.Workspace
	Pages     *site.PageUseCase
	Feed      *site.FeedUseCase
	Logger    logger.Logger
}

// NewRouter wires the HTML site, the editor forms, the feeds and the JSON API.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	ws := deps.Workspace
	log := deps.Logger

	pageHandler := NewPageHandler(ws, deps.Pages, log)
	apiHandler := NewAPIHandler(ws, deps.Pages, log)
	feedHandler := NewFeedHandler(deps.Feed, log)

	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), RequestLoggerMiddleware(log), ErrorMiddleware(log))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", pageHandler.Home)
	router.GET("/feed.xml", feedHandler.RSS)
	router.GET("/feed.atom", feedHandler.Atom)

	shell := router.Group("/shell")
	{
		shell.POST("/editing", pageHandler.EnterEditing)
		shell.POST("/viewing", pageHandler.ExitEditing)
		shell.POST("/section", pageHandler.SelectSection)
	}

	showTab := func(t cms.EducationTab) func() {
		return func() { ws.Education.SelectTab(t) }
	}

	forms := router.Group("/cms", RequireEditingMiddleware(ws.Shell))
	{
		forms.POST("/profile", pageHandler.SubmitProfile)
		forms.POST("/education/tab", pageHandler.SelectEducationTab)

		(&collectionPages[portfolio.Experience]{
			editor: ws.Experiences,
			field:  portfolio.AchievementsField.Name,
			decode: formDecoder[ExperienceForm, portfolio.Experience](),
			logger: log,
		}).register(forms.Group("/" + string(section.CollectionExperiences)))

		(&collectionPages[portfolio.Project]{
			editor: ws.Projects,
			field:  portfolio.TechnologiesField.Name,
			decode: formDecoder[ProjectForm, portfolio.Project](),
			logger: log,
		}).register(forms.Group("/" + string(section.CollectionProjects)))

		(&collectionPages[portfolio.Education]{
			editor: ws.Education.Education,
			decode: formDecoder[EducationForm, portfolio.Education](),
			onOpen: showTab(cms.TabEducation),
			logger: log,
		}).register(forms.Group("/" + string(section.CollectionEducation)))

		(&collectionPages[portfolio.Certification]{
			editor: ws.Education.Certifications,
			decode: formDecoder[CertificationForm, portfolio.Certification](),
			onOpen: showTab(cms.TabCertifications),
			logger: log,
		}).register(forms.Group("/" + string(section.CollectionCertifications)))
	}

	api := router.Group("/api")
	{
		api.GET("/health", apiHandler.Health)
		api.GET("/portfolio", apiHandler.GetPortfolio)

		api.GET("/shell", apiHandler.GetShell)
		api.POST("/shell/editing", apiHandler.EnterEditing)
		api.POST("/shell/viewing", apiHandler.ExitEditing)
		api.PUT("/shell/section", apiHandler.SelectSection)

		editors := api.Group("/cms", RequireEditingMiddleware(ws.Shell))
		{
			profile := editors.Group("/profile")
			profile.GET("", apiHandler.GetProfileEditor)
			profile.POST("/begin-edit", apiHandler.BeginEditProfile)
			profile.PUT("/draft", apiHandler.UpdateProfileDraft)
			profile.PUT("/pending", apiHandler.SetProfilePending)
			profile.POST("/list-items", apiHandler.AddProfileSkill)
			profile.POST("/list-items/remove", apiHandler.RemoveProfileSkill)
			profile.POST("/commit", apiHandler.CommitProfile)
			profile.POST("/cancel", apiHandler.CancelProfile)

			editors.GET("/education-tab", apiHandler.GetEducationTab)
			editors.PUT("/education-tab", apiHandler.SelectEducationTab)

			(&collectionAPI[portfolio.Experience]{editor: ws.Experiences}).
				register(editors.Group("/" + string(section.CollectionExperiences)))
			(&collectionAPI[portfolio.Project]{editor: ws.Projects}).
				register(editors.Group("/" + string(section.CollectionProjects)))
			(&collectionAPI[portfolio.Education]{editor: ws.Education.Education}).
				register(editors.Group("/" + string(section.CollectionEducation)))
			(&collectionAPI[portfolio.Certification]{editor: ws.Education.Certifications}).
				register(editors.Group("/" + string(section.CollectionCertifications)))
		}
	}

	return router, nil
}
