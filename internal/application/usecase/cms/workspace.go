package cms

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/editor"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// Workspace groups the shell with one editor per section. A pane's drafts
// live only while it is on screen: leaving a section or the CMS drops them.
type Workspace struct {
	Shell       *Shell
	Profile     *ProfileEditor
	Experiences *CollectionEditor[portfolio.Experience]
	Projects    *CollectionEditor[portfolio.Project]
	Education   *EducationEditor

	logger logger.Logger
}

func NewWorkspace(repo portfolio.Repository, publisher service.EventPublisher, startEditing bool, log logger.Logger) *Workspace {
	expSource := func() []portfolio.Experience { return repo.Get(context.Background()).Experiences }
	projSource := func() []portfolio.Project { return repo.Get(context.Background()).Projects }

	return &Workspace{
		Shell:   NewShell(startEditing, log),
		Profile: NewProfileEditor(repo, publisher, log),
		Experiences: NewCollectionEditor(section.CollectionExperiences, portfolio.ExperienceKeys,
			expSource, repo.ReplaceExperiences,
			[]editor.ListField[portfolio.Experience]{portfolio.AchievementsField}, publisher, log),
		Projects: NewCollectionEditor(section.CollectionProjects, portfolio.ProjectKeys,
			projSource, repo.ReplaceProjects,
			[]editor.ListField[portfolio.Project]{portfolio.TechnologiesField}, publisher, log),
		Education: NewEducationEditor(repo, publisher, log),
		logger:    log,
	}
}

func (w *Workspace) EnterEditing(ctx context.Context) {
	w.Shell.EnterEditing(ctx)
}

// ExitEditing returns to the portfolio and discards every open draft.
func (w *Workspace) ExitEditing(ctx context.Context) {
	if w.Shell.ExitEditing(ctx) {
		for _, s := range section.All() {
			w.resetSection(ctx, s)
		}
	}
}

// SelectSection switches panes, discarding drafts of the pane being left.
func (w *Workspace) SelectSection(ctx context.Context, s section.Section) error {
	prev, err := w.Shell.SelectSection(ctx, s)
	if err != nil {
		return err
	}
	if prev != s {
		w.resetSection(ctx, prev)
		w.logger.Debug("Switched CMS section", zap.String("from", string(prev)), zap.String("to", string(s)))
	}
	return nil
}

func (w *Workspace) resetSection(ctx context.Context, s section.Section) {
	switch s {
	case section.Profile:
		w.Profile.Cancel(ctx)
	case section.Experience:
		w.Experiences.Cancel(ctx)
	case section.Projects:
		w.Projects.Cancel(ctx)
	case section.Education:
		w.Education.Reset(ctx)
	}
}
