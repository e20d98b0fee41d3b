package cms

import (
	"context"
	"sync"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// EducationTab selects which list the education pane shows.
type EducationTab string

const (
	TabEducation      EducationTab = "education"
	TabCertifications EducationTab = "certifications"
)

func ParseEducationTab(s string) (EducationTab, error) {
	switch t := EducationTab(s); t {
	case TabEducation, TabCertifications:
		return t, nil
	}
	return "", apperror.NewInvalidInput("unknown education tab "+s, nil)
}

// EducationEditor pairs the education and certification editors. Both save
// through one ReplaceEducation call, so they share a lock.
type EducationEditor struct {
	Education      *CollectionEditor[portfolio.Education]
	Certifications *CollectionEditor[portfolio.Certification]

	mu  sync.Mutex
	tab EducationTab
}

func NewEducationEditor(repo portfolio.Repository, publisher service.EventPublisher, log logger.Logger) *EducationEditor {
	shared := &sync.Mutex{}

	eduSource := func() []portfolio.Education { return repo.Get(context.Background()).Education }
	eduReplace := func(ctx context.Context, items []portfolio.Education) {
		repo.ReplaceEducation(ctx, items, repo.Get(ctx).Certifications)
	}
	certSource := func() []portfolio.Certification { return repo.Get(context.Background()).Certifications }
	certReplace := func(ctx context.Context, items []portfolio.Certification) {
		repo.ReplaceEducation(ctx, repo.Get(ctx).Education, items)
	}

	return &EducationEditor{
		Education: NewCollectionEditor(section.CollectionEducation, portfolio.EducationKeys,
			eduSource, eduReplace, nil, publisher, log, WithLock(shared)),
		Certifications: NewCollectionEditor(section.CollectionCertifications, portfolio.CertificationKeys,
			certSource, certReplace, nil, publisher, log, WithLock(shared)),
		tab: TabEducation,
	}
}

func (ee *EducationEditor) Tab() EducationTab {
	ee.mu.Lock()
	defer ee.mu.Unlock()
	return ee.tab
}

// SelectTab switches the visible list. Drafts on either tab are kept.
func (ee *EducationEditor) SelectTab(t EducationTab) {
	ee.mu.Lock()
	defer ee.mu.Unlock()
	ee.tab = t
}

// Reset cancels both drafts and returns to the education tab.
func (ee *EducationEditor) Reset(ctx context.Context) {
	ee.Education.Cancel(ctx)
	ee.Certifications.Cancel(ctx)
	ee.SelectTab(TabEducation)
}
