package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/cms"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

const (
	templatePortfolio = "portfolio.html"
	templateCMS       = "cms.html"
)

type SectionLink struct {
	Section section.Section
	Label   string
	Active  bool
}

// CMSView is everything the editor template renders.
type CMSView struct {
	Name           string
	Shell          cms.ShellState
	Sections       []SectionLink
	Profile        cms.ProfileState
	Experiences    cms.EditorState[portfolio.Experience]
	Projects       cms.EditorState[portfolio.Project]
	Education      cms.EditorState[portfolio.Education]
	Certifications cms.EditorState[portfolio.Certification]
	Tab            cms.EducationTab
}

type PageHandler struct {
	workspace *cms.Workspace
	pages     *site.PageUseCase
	logger    logger.Logger
}

func NewPageHandler(ws *cms.Workspace, pages *site.PageUseCase, log logger.Logger) *PageHandler {
	return &PageHandler{workspace: ws, pages: pages, logger: log}
}

// Home renders the portfolio, or the editor while the shell is Editing.
// ?cms=true switches the shell to Editing first. The shell is shared by the
// whole process, so this changes the page for every visitor until someone
// returns to the portfolio.
func (h *PageHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("cms") == "true" {
		h.workspace.EnterEditing(ctx)
	}

	if h.workspace.Shell.State().Mode == cms.ModeEditing {
		c.HTML(http.StatusOK, templateCMS, h.cmsView(c))
		return
	}
	c.HTML(http.StatusOK, templatePortfolio, h.pages.Execute(ctx))
}

func (h *PageHandler) EnterEditing(c *gin.Context) {
	h.workspace.EnterEditing(c.Request.Context())
	redirectHome(c)
}

func (h *PageHandler) ExitEditing(c *gin.Context) {
	h.workspace.ExitEditing(c.Request.Context())
	redirectHome(c)
}

func (h *PageHandler) SelectSection(c *gin.Context) {
	var req SectionForm
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.NewInvalidInput("section is required", err))
		return
	}
	sec, err := section.Parse(req.Section)
	if err != nil {
		c.Error(apperror.NewInvalidInput("unknown section "+req.Section, err))
		return
	}
	if err := h.workspace.SelectSection(c.Request.Context(), sec); err != nil {
		c.Error(err)
		return
	}
	redirectHome(c)
}

func (h *PageHandler) SubmitProfile(c *gin.Context) {
	var form ProfileForm
	var act ActionForm
	if err := bindForms(c, &form, &act); err != nil {
		c.Error(err)
		return
	}
	action, value, err := act.Resolve()
	if err != nil {
		c.Error(err)
		return
	}

	err = h.workspace.Profile.Submit(c.Request.Context(), cms.SubmitInput[portfolio.Profile]{
		Draft:   form.ToDomain(),
		Pending: act.Pending,
		Action:  action,
		Field:   portfolio.SkillsField.Name,
		Value:   value,
	})
	if err != nil {
		c.Error(err)
		return
	}
	redirectHome(c)
}

func (h *PageHandler) SelectEducationTab(c *gin.Context) {
	var req TabForm
	if err := c.ShouldBind(&req); err != nil {
		c.Error(apperror.NewInvalidInput("tab is required", err))
		return
	}
	tab, err := cms.ParseEducationTab(req.Tab)
	if err != nil {
		c.Error(err)
		return
	}
	h.workspace.Education.SelectTab(tab)
	redirectHome(c)
}

func (h *PageHandler) cmsView(c *gin.Context) CMSView {
	ctx := c.Request.Context()
	shell := h.workspace.Shell.State()

	links := make([]SectionLink, 0, len(section.All()))
	for _, s := range section.All() {
		links = append(links, SectionLink{Section: s, Label: s.Label(), Active: s == shell.Section})
	}

	profile := h.workspace.Profile.State(ctx)
	return CMSView{
		Name:           profile.Profile.Name,
		Shell:          shell,
		Sections:       links,
		Profile:        profile,
		Experiences:    h.workspace.Experiences.State(ctx),
		Projects:       h.workspace.Projects.State(ctx),
		Education:      h.workspace.Education.Education.State(ctx),
		Certifications: h.workspace.Education.Certifications.State(ctx),
		Tab:            h.workspace.Education.Tab(),
	}
}

// collectionPages serves the HTML editor forms of one collection.
type collectionPages[T any] struct {
	editor *cms.CollectionEditor[T]
	field  string
	decode func(c *gin.Context) (T, error)
	// onOpen runs before a draft is opened, e.g. to show the right tab.
	onOpen func()
	logger logger.Logger
}

func (p *collectionPages[T]) register(g *gin.RouterGroup) {
	g.POST("/new", p.new)
	g.POST("/items/:id/edit", p.edit)
	g.POST("/items/:id/delete", p.delete)
	g.POST("/draft", p.submit)
}

func (p *collectionPages[T]) new(c *gin.Context) {
	p.open()
	id := p.editor.BeginCreate(c.Request.Context())
	p.logger.Debug("Draft opened", zap.String("collection", string(p.editor.Collection())), zap.Int("record_id", id))
	redirectHome(c)
}

func (p *collectionPages[T]) edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	p.open()
	if err := p.editor.BeginEdit(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	redirectHome(c)
}

func (p *collectionPages[T]) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	p.editor.Delete(c.Request.Context(), id)
	redirectHome(c)
}

func (p *collectionPages[T]) submit(c *gin.Context) {
	draft, err := p.decode(c)
	if err != nil {
		c.Error(err)
		return
	}
	var act ActionForm
	if err := c.ShouldBind(&act); err != nil {
		c.Error(apperror.NewInvalidInput("invalid form", err))
		return
	}
	action, value, err := act.Resolve()
	if err != nil {
		c.Error(err)
		return
	}

	field := act.Field
	if field == "" {
		field = p.field
	}
	err = p.editor.Submit(c.Request.Context(), cms.SubmitInput[T]{
		Draft:   draft,
		Pending: act.Pending,
		Action:  action,
		Field:   field,
		Value:   value,
	})
	if err != nil {
		c.Error(err)
		return
	}
	redirectHome(c)
}

func (p *collectionPages[T]) open() {
	if p.onOpen != nil {
		p.onOpen()
	}
}

// formDecoder binds a form struct and converts it to its record.
func formDecoder[F interface{ ToDomain() T }, T any]() func(c *gin.Context) (T, error) {
	return func(c *gin.Context) (T, error) {
		var f F
		if err := c.ShouldBind(&f); err != nil {
			var zero T
			return zero, apperror.NewInvalidInput("invalid form", err)
		}
		return f.ToDomain(), nil
	}
}

func bindForms(c *gin.Context, targets ...any) error {
	for _, t := range targets {
		if err := c.ShouldBind(t); err != nil {
			return apperror.NewInvalidInput("invalid form", err)
		}
	}
	return nil
}

func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperror.NewInvalidInput("invalid record ID", err)
	}
	return id, nil
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
