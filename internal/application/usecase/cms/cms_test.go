package cms

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.ContentChangedEvent
	err    error
}

func (p *recordingPublisher) PublishContentChanged(_ context.Context, evt service.ContentChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []service.ContentChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]service.ContentChangedEvent(nil), p.events...)
}

type WorkspaceSuite struct {
	suite.Suite
	ctx  context.Context
	repo portfolio.Repository
	pub  *recordingPublisher
	ws   *Workspace
}

func (s *WorkspaceSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = persistence.NewMemoryPortfolioRepo(portfolio.Document{
		Profile: portfolio.Profile{Name: "Amara", Skills: []string{"Go"}},
		Experiences: []portfolio.Experience{
			{ID: 1, Title: "Engineer", Achievements: []string{"Shipped"}},
		},
		Projects: []portfolio.Project{
			{ID: 1, Title: "A", Technologies: []string{"React"}},
		},
		Education:      []portfolio.Education{{ID: 1, Degree: "BSc"}},
		Certifications: []portfolio.Certification{{ID: 1, Name: "CKA"}},
	}, logger.NewNopLogger())
	s.pub = &recordingPublisher{}
	s.ws = NewWorkspace(s.repo, s.pub, false, logger.NewNopLogger())
}

func TestWorkspaceSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceSuite))
}

func (s *WorkspaceSuite) projects() []portfolio.Project {
	return s.repo.Get(s.ctx).Projects
}

func (s *WorkspaceSuite) TestCreateProjectAppendsWithNextID() {
	id := s.ws.Projects.BeginCreate(s.ctx)
	s.Equal(2, id)

	st := s.ws.Projects.State(s.ctx)
	s.True(st.Editing)
	s.True(st.IsNew)
	s.Equal(2, st.Draft.ID)

	draft := st.Draft
	draft.Title = "B"
	s.True(s.ws.Projects.UpdateDraft(s.ctx, draft))
	added, err := s.ws.Projects.AddListItem(s.ctx, "technologies", "Go")
	s.Require().NoError(err)
	s.True(added)
	s.True(s.ws.Projects.Commit(s.ctx))

	s.Equal([]portfolio.Project{
		{ID: 1, Title: "A", Technologies: []string{"React"}},
		{ID: 2, Title: "B", Technologies: []string{"Go"}},
	}, s.projects())

	st = s.ws.Projects.State(s.ctx)
	s.False(st.Editing)
	s.Zero(st.EditingID)

	events := s.pub.Events()
	s.Require().Len(events, 1)
	s.Equal(service.ContentUpserted, events[0].EventType)
	s.Equal("projects", events[0].Collection)
	s.Equal(2, events[0].RecordID)
}

func (s *WorkspaceSuite) TestEditProjectKeepsPosition() {
	s.Require().NoError(s.ws.Projects.BeginEdit(s.ctx, 1))
	st := s.ws.Projects.State(s.ctx)
	s.False(st.IsNew)

	draft := st.Draft
	draft.Featured = true
	s.ws.Projects.UpdateDraft(s.ctx, draft)
	s.True(s.ws.Projects.Commit(s.ctx))

	s.Equal([]portfolio.Project{
		{ID: 1, Title: "A", Technologies: []string{"React"}, Featured: true},
	}, s.projects())
}

func (s *WorkspaceSuite) TestBeginEditUnknownID() {
	err := s.ws.Projects.BeginEdit(s.ctx, 42)
	s.Require().Error(err)
	s.True(errors.Is(err, apperror.ErrNotFound))
	s.False(s.ws.Projects.State(s.ctx).Editing)
}

func (s *WorkspaceSuite) TestCancelLeavesCollection() {
	before := s.projects()
	s.ws.Projects.BeginCreate(s.ctx)
	s.ws.Projects.Cancel(s.ctx)
	s.Equal(before, s.projects())
	s.False(s.ws.Projects.Commit(s.ctx), "commit after cancel is a no-op")
	s.Empty(s.pub.Events())
}

func (s *WorkspaceSuite) TestDuplicateTechnologyRejected() {
	s.Require().NoError(s.ws.Projects.BeginEdit(s.ctx, 1))
	added, err := s.ws.Projects.AddListItem(s.ctx, "technologies", "React")
	s.Require().NoError(err)
	s.False(added)

	_, err = s.ws.Projects.AddListItem(s.ctx, "achievements", "x")
	s.True(errors.Is(err, apperror.ErrInvalidInput))
}

func (s *WorkspaceSuite) TestDeletePublishesOnlyOnRemoval() {
	s.False(s.ws.Experiences.Delete(s.ctx, 9))
	s.Empty(s.pub.Events())

	s.True(s.ws.Experiences.Delete(s.ctx, 1))
	s.Empty(s.repo.Get(s.ctx).Experiences)
	events := s.pub.Events()
	s.Require().Len(events, 1)
	s.Equal(service.ContentDeleted, events[0].EventType)
}

func (s *WorkspaceSuite) TestSubmitAddsAchievementFromPostedDraft() {
	s.Require().NoError(s.ws.Experiences.BeginEdit(s.ctx, 1))

	posted := portfolio.Experience{ID: 99, Title: "Lead", Achievements: []string{"Shipped"}}
	err := s.ws.Experiences.Submit(s.ctx, SubmitInput[portfolio.Experience]{
		Draft:  posted,
		Action: ActionAddItem,
		Field:  "achievements",
		Value:  "  Hired a team ",
	})
	s.Require().NoError(err)

	st := s.ws.Experiences.State(s.ctx)
	s.Equal(1, st.Draft.ID, "id stays pinned")
	s.Equal("Lead", st.Draft.Title)
	s.Equal([]string{"Shipped", "Hired a team"}, st.Draft.Achievements)
	s.Equal("Engineer", s.repo.Get(s.ctx).Experiences[0].Title, "store untouched until save")

	s.Require().NoError(s.ws.Experiences.Submit(s.ctx, SubmitInput[portfolio.Experience]{
		Draft:  st.Draft,
		Action: ActionSave,
	}))
	s.Equal("Lead", s.repo.Get(s.ctx).Experiences[0].Title)
	s.Len(s.pub.Events(), 1)
}

func (s *WorkspaceSuite) TestSubmitWithoutDraft() {
	err := s.ws.Projects.Submit(s.ctx, SubmitInput[portfolio.Project]{Action: ActionSave})
	s.True(errors.Is(err, apperror.ErrConflict))
}

func (s *WorkspaceSuite) TestSubmitUnknownAction() {
	s.ws.Projects.BeginCreate(s.ctx)
	err := s.ws.Projects.Submit(s.ctx, SubmitInput[portfolio.Project]{Action: "publish"})
	s.True(errors.Is(err, apperror.ErrInvalidInput))
}

func (s *WorkspaceSuite) TestProfileEditAndSkills() {
	s.ws.Profile.BeginEdit(s.ctx)
	st := s.ws.Profile.State(s.ctx)
	s.True(st.Editing)
	s.Equal("Amara", st.Draft.Name)

	s.True(s.ws.Profile.AddSkill(s.ctx, "Kafka"))
	s.True(s.ws.Profile.RemoveSkill(s.ctx, "Go"))
	s.True(s.ws.Profile.Commit(s.ctx))

	p := s.repo.Get(s.ctx).Profile
	s.Equal([]string{"Kafka"}, p.Skills)
	s.Equal("Amara", p.Name)
}

func (s *WorkspaceSuite) TestProfileSubmitEditThenSave() {
	s.Require().NoError(s.ws.Profile.Submit(s.ctx, SubmitInput[portfolio.Profile]{Action: ActionEdit}))
	draft := s.ws.Profile.State(s.ctx).Draft
	draft.Title = "CTO"
	s.Require().NoError(s.ws.Profile.Submit(s.ctx, SubmitInput[portfolio.Profile]{Draft: draft, Action: ActionSave}))
	s.Equal("CTO", s.repo.Get(s.ctx).Profile.Title)
}

func (s *WorkspaceSuite) TestEducationTabsSaveTogether() {
	s.ws.Education.SelectTab(TabCertifications)
	s.Equal(TabCertifications, s.ws.Education.Tab())

	id := s.ws.Education.Certifications.BeginCreate(s.ctx)
	s.Equal(2, id)
	s.ws.Education.Certifications.UpdateDraft(s.ctx, portfolio.Certification{Name: "AWS SA"})
	s.True(s.ws.Education.Certifications.Commit(s.ctx))

	doc := s.repo.Get(s.ctx)
	s.Equal([]portfolio.Education{{ID: 1, Degree: "BSc"}}, doc.Education)
	s.Equal([]portfolio.Certification{{ID: 1, Name: "CKA"}, {ID: 2, Name: "AWS SA"}}, doc.Certifications)

	s.True(s.ws.Education.Education.Delete(s.ctx, 1))
	doc = s.repo.Get(s.ctx)
	s.Empty(doc.Education)
	s.Len(doc.Certifications, 2)
}

func (s *WorkspaceSuite) TestShellTransitions() {
	s.Equal(ShellState{Mode: ModeViewing, Section: section.Profile}, s.ws.Shell.State())

	err := s.ws.SelectSection(s.ctx, section.Projects)
	s.True(errors.Is(err, apperror.ErrConflict))

	s.ws.EnterEditing(s.ctx)
	s.Require().NoError(s.ws.SelectSection(s.ctx, section.Projects))
	s.Equal(ShellState{Mode: ModeEditing, Section: section.Projects}, s.ws.Shell.State())

	s.ws.ExitEditing(s.ctx)
	s.Equal(ModeViewing, s.ws.Shell.State().Mode)
	s.Equal(section.Projects, s.ws.Shell.State().Section, "section is remembered")
}

func (s *WorkspaceSuite) TestLeavingSectionDropsDraft() {
	s.ws.EnterEditing(s.ctx)
	s.Require().NoError(s.ws.SelectSection(s.ctx, section.Projects))
	s.ws.Projects.BeginCreate(s.ctx)

	s.Require().NoError(s.ws.SelectSection(s.ctx, section.Education))
	s.False(s.ws.Projects.State(s.ctx).Editing)

	s.ws.Education.SelectTab(TabCertifications)
	s.Require().NoError(s.ws.Education.Certifications.BeginEdit(s.ctx, 1))
	s.ws.ExitEditing(s.ctx)
	s.False(s.ws.Education.Certifications.State(s.ctx).Editing)
	s.Equal(TabEducation, s.ws.Education.Tab())
}

func (s *WorkspaceSuite) TestPublishFailureIsNotSurfaced() {
	s.pub.err = errors.New("kafka down")
	s.ws.Projects.BeginCreate(s.ctx)
	s.True(s.ws.Projects.Commit(s.ctx))
	s.Len(s.projects(), 2)
}

func TestShell_StartEditing(t *testing.T) {
	sh := NewShell(true, logger.NewNopLogger())
	assert.Equal(t, ModeEditing, sh.State().Mode)
	assert.False(t, sh.EnterEditing(context.Background()))
	assert.True(t, sh.ExitEditing(context.Background()))
	assert.False(t, sh.ExitEditing(context.Background()))
}

func TestShell_RequireEditing(t *testing.T) {
	sh := NewShell(false, logger.NewNopLogger())
	err := sh.RequireEditing()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	sh.EnterEditing(context.Background())
	assert.NoError(t, sh.RequireEditing())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("remove-item")
	require.NoError(t, err)
	assert.Equal(t, ActionRemoveItem, a)

	_, err = ParseAction("drop")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	_, err = ParseEducationTab("awards")
	assert.Error(t, err)
}

func TestConcurrentCommits(t *testing.T) {
	repo := persistence.NewMemoryPortfolioRepo(portfolio.Document{}, logger.NewNopLogger())
	ws := NewWorkspace(repo, &recordingPublisher{}, true, logger.NewNopLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ws.Education.Education.BeginCreate(ctx)
			ws.Education.Education.Commit(ctx)
		}()
		go func() {
			defer wg.Done()
			ws.Education.Certifications.BeginCreate(ctx)
			ws.Education.Certifications.Commit(ctx)
		}()
	}
	wg.Wait()

	doc := repo.Get(ctx)
	assert.NotEmpty(t, doc.Education)
	assert.NotEmpty(t, doc.Certifications)
	assert.LessOrEqual(t, len(doc.Education), 10)
}
