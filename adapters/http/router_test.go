package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/adapters/markdown"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/cms"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type passthroughImages struct{}

func (passthroughImages) Thumbnail(src string) string { return src }

type RouterSuite struct {
	suite.Suite
	repo   portfolio.Repository
	ws     *cms.Workspace
	router *gin.Engine
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()

	s.repo = persistence.NewMemoryPortfolioRepo(portfolio.Document{
		Profile: portfolio.Profile{
			Name:     "Amara Nwosu",
			Title:    "Digital Health Lead",
			Bio:      "Building **health** systems.",
			Email:    "amara@example.com",
			LinkedIn: "https://www.linkedin.com/in/amara",
			Location: "Lagos",
			Skills:   []string{"Strategy"},
		},
		Projects: []portfolio.Project{
			{ID: 1, Title: "A", Technologies: []string{"React"}},
		},
		Experiences: []portfolio.Experience{
			{ID: 1, Title: "Engineer", Company: "Clinic", Achievements: []string{}},
		},
	}, log)

	s.ws = cms.NewWorkspace(s.repo, event.NewLogPublisher(log), false, log)
	settings := site.SiteSettings{Tagline: "Health Tech Innovator", FooterNote: "Thanks for visiting.", BaseURL: "http://localhost:8080"}

	router, err := NewRouter(RouterDeps{
		Workspace: s.ws,
		Pages:     site.NewPageUseCase(s.repo, passthroughImages{}, markdown.NewRenderer(log), settings, log),
		Feed:      site.NewFeedUseCase(s.repo, settings, log),
		Logger:    log,
	})
	s.Require().NoError(err)
	s.router = router
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) do(method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, path, bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded")
}

func (s *RouterSuite) doJSON(method, path string, payload any) *httptest.ResponseRecorder {
	buf := &bytes.Buffer{}
	if payload != nil {
		s.Require().NoError(json.NewEncoder(buf).Encode(payload))
	}
	return s.do(method, path, buf, "application/json")
}

func (s *RouterSuite) enterEditing() {
	s.ws.EnterEditing(context.Background())
}

func (s *RouterSuite) TestHomeRendersPortfolio() {
	w := s.do(http.MethodGet, "/", nil, "")
	s.Equal(http.StatusOK, w.Code)

	body := w.Body.String()
	s.Contains(body, "Amara Nwosu")
	s.Contains(body, `href="mailto:amara@example.com"`)
	s.Contains(body, `target="_blank" rel="noopener noreferrer"`)
	s.Contains(body, "<strong>health</strong>")
	s.Contains(body, `href="#experience"`)
	s.Contains(body, "Admin CMS")
	s.Contains(body, "Thanks for visiting.")
	s.NotContains(body, "Featured Project")
}

func (s *RouterSuite) TestCMSQueryEntersEditing() {
	w := s.do(http.MethodGet, "/?cms=true", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Back to Portfolio")
	s.Equal(cms.ModeEditing, s.ws.Shell.State().Mode)

	w = s.do(http.MethodGet, "/", nil, "")
	s.Contains(w.Body.String(), "Back to Portfolio", "editing persists")

	w = s.postForm("/shell/viewing", url.Values{})
	s.Equal(http.StatusSeeOther, w.Code)
	s.Contains(s.do(http.MethodGet, "/", nil, "").Body.String(), "Admin CMS")
}

func (s *RouterSuite) TestFormCreateProject() {
	s.postForm("/shell/editing", url.Values{})
	s.Equal(http.StatusSeeOther, s.postForm("/shell/section", url.Values{"section": {"projects"}}).Code)
	s.Equal(http.StatusSeeOther, s.postForm("/cms/projects/new", url.Values{}).Code)

	page := s.do(http.MethodGet, "/", nil, "").Body.String()
	s.Contains(page, "Add New Project")

	w := s.postForm("/cms/projects/draft", url.Values{
		"title":   {"B"},
		"pending": {"Go"},
		"action":  {"add-item"},
	})
	s.Equal(http.StatusSeeOther, w.Code)

	st := s.ws.Projects.State(context.Background())
	s.Equal("B", st.Draft.Title)
	s.Equal([]string{"Go"}, st.Draft.Technologies)
	s.Empty(st.Pending)

	w = s.postForm("/cms/projects/draft", url.Values{
		"title":        {"B"},
		"technologies": {"Go"},
		"action":       {"save"},
	})
	s.Equal(http.StatusSeeOther, w.Code)

	s.Equal([]portfolio.Project{
		{ID: 1, Title: "A", Technologies: []string{"React"}},
		{ID: 2, Title: "B", Technologies: []string{"Go"}},
	}, s.repo.Get(context.Background()).Projects)
}

func (s *RouterSuite) TestFormRemoveAchievementAndFeature() {
	s.enterEditing()
	s.Equal(http.StatusSeeOther, s.postForm("/cms/experiences/items/1/edit", url.Values{}).Code)
	s.postForm("/cms/experiences/draft", url.Values{"title": {"Engineer"}, "pending": {"Led rollout"}, "action": {"add-item"}})
	s.postForm("/cms/experiences/draft", url.Values{"title": {"Engineer"}, "achievements": {"Led rollout"}, "remove": {"Led rollout"}})
	s.Empty(s.ws.Experiences.State(context.Background()).Draft.Achievements)

	s.postForm("/cms/projects/items/1/edit", url.Values{})
	s.postForm("/cms/projects/draft", url.Values{"title": {"A"}, "technologies": {"React"}, "featured": {"true"}, "action": {"save"}})
	s.True(s.repo.Get(context.Background()).Projects[0].Featured)

	s.ws.ExitEditing(context.Background())
	s.Contains(s.do(http.MethodGet, "/", nil, "").Body.String(), "Featured Project")
}

func (s *RouterSuite) TestFormErrors() {
	w := s.postForm("/shell/section", url.Values{"section": {"projects"}})
	s.Equal(http.StatusConflict, w.Code, "viewing mode rejects section switch")

	s.postForm("/shell/editing", url.Values{})
	w = s.postForm("/shell/section", url.Values{"section": {"hobbies"}})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.postForm("/cms/projects/items/abc/edit", url.Values{})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.postForm("/cms/projects/items/99/edit", url.Values{})
	s.Equal(http.StatusNotFound, w.Code)

	w = s.postForm("/cms/projects/draft", url.Values{"action": {"save"}})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterSuite) TestEnterInListEditorAddsPendingItem() {
	s.enterEditing()
	s.Require().Equal(http.StatusSeeOther, s.postForm("/shell/section", url.Values{"section": {"projects"}}).Code)
	s.Require().Equal(http.StatusSeeOther, s.postForm("/cms/projects/items/1/edit", url.Values{}).Code)

	page := s.do(http.MethodGet, "/", nil, "").Body.String()
	start := strings.Index(page, `action="/cms/projects/draft"`)
	s.Require().GreaterOrEqual(start, 0)
	form := page[start:]
	form = form[:strings.Index(form, "</form>")]

	first := form[strings.Index(form, `<button type="submit"`):]
	first = first[:strings.Index(first, ">")]
	s.Contains(first, `name="action" value="add-item"`, "Enter submits with the first submit button")
	s.Less(strings.Index(form, `value="add-item"`), strings.Index(form, `name="remove"`))

	w := s.postForm("/cms/projects/draft", url.Values{
		"title":        {"A"},
		"technologies": {"React"},
		"pending":      {"Go"},
		"action":       {"add-item"},
	})
	s.Equal(http.StatusSeeOther, w.Code)

	st := s.ws.Projects.State(context.Background())
	s.Equal([]string{"React", "Go"}, st.Draft.Technologies)
	s.Empty(st.Pending)
}

func (s *RouterSuite) TestEditorRoutesRequireEditing() {
	w := s.postForm("/cms/projects/new", url.Values{})
	s.Equal(http.StatusConflict, w.Code)
	s.False(s.ws.Projects.State(context.Background()).Editing)

	w = s.doJSON(http.MethodDelete, "/api/cms/projects/items/1", nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Len(s.repo.Get(context.Background()).Projects, 1)

	w = s.doJSON(http.MethodPost, "/api/cms/profile/begin-edit", nil)
	s.Equal(http.StatusConflict, w.Code)

	s.enterEditing()
	s.Equal(http.StatusSeeOther, s.postForm("/cms/projects/new", url.Values{}).Code)
	s.True(s.ws.Projects.State(context.Background()).Editing)
}

func (s *RouterSuite) TestFormEducationTabs() {
	s.enterEditing()
	s.Equal(http.StatusSeeOther, s.postForm("/cms/certifications/new", url.Values{}).Code)
	s.Equal(cms.TabCertifications, s.ws.Education.Tab())

	s.postForm("/cms/certifications/draft", url.Values{"name": {"PMP"}, "issuer": {"PMI"}, "action": {"save"}})
	s.Equal([]portfolio.Certification{{ID: 1, Name: "PMP", Issuer: "PMI"}}, s.repo.Get(context.Background()).Certifications)

	s.Equal(http.StatusSeeOther, s.postForm("/cms/education/tab", url.Values{"tab": {"education"}}).Code)
	s.Equal(cms.TabEducation, s.ws.Education.Tab())
	s.Equal(http.StatusBadRequest, s.postForm("/cms/education/tab", url.Values{"tab": {"awards"}}).Code)
}

func (s *RouterSuite) TestProfileForm() {
	s.enterEditing()
	s.postForm("/cms/profile", url.Values{"action": {"edit"}})
	s.True(s.ws.Profile.State(context.Background()).Editing)

	s.postForm("/cms/profile", url.Values{
		"name": {"Amara N."}, "skills": {"Strategy"}, "pending": {"Kafka"}, "action": {"add-item"},
	})
	s.postForm("/cms/profile", url.Values{
		"name": {"Amara N."}, "skills": {"Strategy", "Kafka"}, "action": {"save"},
	})

	p := s.repo.Get(context.Background()).Profile
	s.Equal("Amara N.", p.Name)
	s.Equal([]string{"Strategy", "Kafka"}, p.Skills)
}

func (s *RouterSuite) TestAPIEditProjectFeatured() {
	s.enterEditing()
	w := s.doJSON(http.MethodPost, "/api/cms/projects/items/1/edit", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var st cms.EditorState[portfolio.Project]
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &st))
	s.True(st.Editing)
	s.Equal(1, st.EditingID)

	draft := st.Draft
	draft.Featured = true
	s.Equal(http.StatusOK, s.doJSON(http.MethodPut, "/api/cms/projects/draft", draft).Code)
	s.Equal(http.StatusOK, s.doJSON(http.MethodPost, "/api/cms/projects/commit", nil).Code)

	s.Equal([]portfolio.Project{
		{ID: 1, Title: "A", Technologies: []string{"React"}, Featured: true},
	}, s.repo.Get(context.Background()).Projects)
}

func (s *RouterSuite) TestAPIListItemsAndDelete() {
	s.enterEditing()
	s.doJSON(http.MethodPost, "/api/cms/projects/begin-create", nil)

	w := s.doJSON(http.MethodPost, "/api/cms/projects/list-items", ListItemRequest{Field: "technologies", Value: "Go"})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"changed":true`)

	w = s.doJSON(http.MethodPost, "/api/cms/projects/list-items", ListItemRequest{Field: "technologies", Value: "Go"})
	s.Contains(w.Body.String(), `"changed":false`)

	w = s.doJSON(http.MethodPost, "/api/cms/projects/list-items", ListItemRequest{Field: "skills", Value: "Go"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doJSON(http.MethodDelete, "/api/cms/projects/items/1", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(s.repo.Get(context.Background()).Projects)
	s.True(s.ws.Projects.State(context.Background()).Editing, "delete keeps the open draft")

	w = s.doJSON(http.MethodPost, "/api/cms/projects/cancel", nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.doJSON(http.MethodPut, "/api/cms/projects/draft", portfolio.Project{Title: "late"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterSuite) TestAPIShell() {
	w := s.doJSON(http.MethodPut, "/api/shell/section", SectionForm{Section: "education"})
	s.Equal(http.StatusConflict, w.Code)

	s.Equal(http.StatusOK, s.doJSON(http.MethodPost, "/api/shell/editing", nil).Code)
	w = s.doJSON(http.MethodPut, "/api/shell/section", SectionForm{Section: "education"})
	s.Equal(http.StatusOK, w.Code)

	var st cms.ShellState
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &st))
	s.Equal(cms.ShellState{Mode: cms.ModeEditing, Section: "education"}, st)

	w = s.doJSON(http.MethodPut, "/api/shell/section", map[string]string{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestAPIProfileAndPortfolio() {
	s.enterEditing()
	s.doJSON(http.MethodPost, "/api/cms/profile/begin-edit", nil)
	w := s.doJSON(http.MethodPost, "/api/cms/profile/list-items", PendingRequest{Value: "Go"})
	s.Contains(w.Body.String(), `"changed":true`)
	s.doJSON(http.MethodPost, "/api/cms/profile/commit", nil)

	w = s.doJSON(http.MethodGet, "/api/portfolio", nil)
	s.Equal(http.StatusOK, w.Code)

	var doc portfolio.Document
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &doc))
	s.Equal([]string{"Strategy", "Go"}, doc.Profile.Skills)
}

func (s *RouterSuite) TestFeeds() {
	w := s.do(http.MethodGet, "/feed.xml", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.True(strings.HasPrefix(w.Header().Get("Content-Type"), "application/rss+xml"))
	s.Contains(w.Body.String(), "<title>A</title>")

	w = s.do(http.MethodGet, "/feed.atom", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "<feed")
}

func (s *RouterSuite) TestRequestID() {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("abc-123", w.Header().Get(HeaderRequestID))

	w = s.do(http.MethodGet, "/api/health", nil, "")
	s.NotEmpty(w.Header().Get(HeaderRequestID))
}
