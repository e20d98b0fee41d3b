package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-cms/internal/application/usecase/cms"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type APIHandler struct {
	workspace *cms.Workspace
	pages     *site.PageUseCase
	logger    logger.Logger
}

func NewAPIHandler(ws *cms.Workspace, pages *site.PageUseCase, log logger.Logger) *APIHandler {
	return &APIHandler{workspace: ws, pages: pages, logger: log}
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (h *APIHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.pages.Document(c.Request.Context()))
}

func (h *APIHandler) GetShell(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace.Shell.State())
}

func (h *APIHandler) EnterEditing(c *gin.Context) {
	h.workspace.EnterEditing(c.Request.Context())
	c.JSON(http.StatusOK, h.workspace.Shell.State())
}

func (h *APIHandler) ExitEditing(c *gin.Context) {
	h.workspace.ExitEditing(c.Request.Context())
	c.JSON(http.StatusOK, h.workspace.Shell.State())
}

func (h *APIHandler) SelectSection(c *gin.Context) {
	var req SectionForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for section", err))
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
	c.JSON(http.StatusOK, h.workspace.Shell.State())
}

// Profile editor

func (h *APIHandler) GetProfileEditor(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace.Profile.State(c.Request.Context()))
}

func (h *APIHandler) BeginEditProfile(c *gin.Context) {
	h.workspace.Profile.BeginEdit(c.Request.Context())
	c.JSON(http.StatusOK, h.workspace.Profile.State(c.Request.Context()))
}

func (h *APIHandler) UpdateProfileDraft(c *gin.Context) {
	var p portfolio.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}
	if !h.workspace.Profile.UpdateDraft(c.Request.Context(), p) {
		c.Error(apperror.NewInvalidState("profile is not being edited"))
		return
	}
	c.JSON(http.StatusOK, h.workspace.Profile.State(c.Request.Context()))
}

func (h *APIHandler) SetProfilePending(c *gin.Context) {
	var req PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for pending input", err))
		return
	}
	h.workspace.Profile.SetPending(c.Request.Context(), req.Value)
	c.JSON(http.StatusOK, h.workspace.Profile.State(c.Request.Context()))
}

func (h *APIHandler) AddProfileSkill(c *gin.Context) {
	var req PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}
	added := h.workspace.Profile.AddSkill(c.Request.Context(), req.Value)
	c.JSON(http.StatusOK, gin.H{"changed": added, "state": h.workspace.Profile.State(c.Request.Context())})
}

func (h *APIHandler) RemoveProfileSkill(c *gin.Context) {
	var req PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skill", err))
		return
	}
	removed := h.workspace.Profile.RemoveSkill(c.Request.Context(), req.Value)
	c.JSON(http.StatusOK, gin.H{"changed": removed, "state": h.workspace.Profile.State(c.Request.Context())})
}

func (h *APIHandler) CommitProfile(c *gin.Context) {
	ok := h.workspace.Profile.Commit(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"changed": ok, "state": h.workspace.Profile.State(c.Request.Context())})
}

func (h *APIHandler) CancelProfile(c *gin.Context) {
	h.workspace.Profile.Cancel(c.Request.Context())
	c.JSON(http.StatusOK, h.workspace.Profile.State(c.Request.Context()))
}

func (h *APIHandler) GetEducationTab(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tab": h.workspace.Education.Tab()})
}

func (h *APIHandler) SelectEducationTab(c *gin.Context) {
	var req TabForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for tab", err))
		return
	}
	tab, err := cms.ParseEducationTab(req.Tab)
	if err != nil {
		c.Error(err)
		return
	}
	h.workspace.Education.SelectTab(tab)
	c.JSON(http.StatusOK, gin.H{"tab": tab})
}

// collectionAPI exposes one collection editor as JSON endpoints.
type collectionAPI[T any] struct {
	editor *cms.CollectionEditor[T]
}

func (a *collectionAPI[T]) register(g *gin.RouterGroup) {
	g.GET("", a.state)
	g.POST("/begin-create", a.beginCreate)
	g.POST("/items/:id/edit", a.beginEdit)
	g.DELETE("/items/:id", a.delete)
	g.PUT("/draft", a.updateDraft)
	g.PUT("/pending", a.setPending)
	g.POST("/list-items", a.addListItem)
	g.POST("/list-items/remove", a.removeListItem)
	g.POST("/commit", a.commit)
	g.POST("/cancel", a.cancel)
}

func (a *collectionAPI[T]) state(c *gin.Context) {
	c.JSON(http.StatusOK, a.editor.State(c.Request.Context()))
}

func (a *collectionAPI[T]) beginCreate(c *gin.Context) {
	a.editor.BeginCreate(c.Request.Context())
	c.JSON(http.StatusCreated, a.editor.State(c.Request.Context()))
}

func (a *collectionAPI[T]) beginEdit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := a.editor.BeginEdit(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a.editor.State(c.Request.Context()))
}

func (a *collectionAPI[T]) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}
	removed := a.editor.Delete(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"changed": removed, "state": a.editor.State(c.Request.Context())})
}

func (a *collectionAPI[T]) updateDraft(c *gin.Context) {
	var draft T
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for draft", err))
		return
	}
	if !a.editor.UpdateDraft(c.Request.Context(), draft) {
		c.Error(apperror.NewInvalidState("no draft is being edited"))
		return
	}
	c.JSON(http.StatusOK, a.editor.State(c.Request.Context()))
}

func (a *collectionAPI[T]) setPending(c *gin.Context) {
	var req PendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for pending input", err))
		return
	}
	a.editor.SetPending(c.Request.Context(), req.Value)
	c.JSON(http.StatusOK, a.editor.State(c.Request.Context()))
}

func (a *collectionAPI[T]) addListItem(c *gin.Context) {
	var req ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for list item", err))
		return
	}
	added, err := a.editor.AddListItem(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": added, "state": a.editor.State(c.Request.Context())})
}

func (a *collectionAPI[T]) removeListItem(c *gin.Context) {
	var req ListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for list item", err))
		return
	}
	removed, err := a.editor.RemoveListItem(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": removed, "state": a.editor.State(c.Request.Context())})
}

func (a *collectionAPI[T]) commit(c *gin.Context) {
	ok := a.editor.Commit(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"changed": ok, "state": a.editor.State(c.Request.Context())})
}

func (a *collectionAPI[T]) cancel(c *gin.Context) {
	a.editor.Cancel(c.Request.Context())
	c.JSON(http.StatusOK, a.editor.State(c.Request.Context()))
}
