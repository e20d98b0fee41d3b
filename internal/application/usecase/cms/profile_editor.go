package cms

import (
	"context"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/editor"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// ProfileState is the profile editor as seen by a page or API client.
type ProfileState struct {
	Profile portfolio.Profile `json:"profile"`
	Draft   portfolio.Profile `json:"draft"`
	Editing bool              `json:"editing"`
	Pending string            `json:"pending"`
}

// ProfileEditor edits the singleton profile through the collection editor,
// with the profile as a one-element list that never grows.
type ProfileEditor struct {
	inner *CollectionEditor[portfolio.Profile]
}

func NewProfileEditor(repo portfolio.Repository, publisher service.EventPublisher, log logger.Logger) *ProfileEditor {
	source := func() []portfolio.Profile {
		return []portfolio.Profile{repo.Get(context.Background()).Profile}
	}
	replace := func(ctx context.Context, items []portfolio.Profile) {
		if len(items) > 0 {
			repo.ReplaceProfile(ctx, items[0])
		}
	}
	return &ProfileEditor{
		inner: NewCollectionEditor(section.CollectionProfile, portfolio.ProfileKeys, source, replace,
			[]editor.ListField[portfolio.Profile]{portfolio.SkillsField}, publisher, log),
	}
}

func (pe *ProfileEditor) State(ctx context.Context) ProfileState {
	st := pe.inner.State(ctx)
	out := ProfileState{Draft: st.Draft, Editing: st.Editing, Pending: st.Pending}
	if len(st.Items) > 0 {
		out.Profile = st.Items[0]
	}
	return out
}

// BeginEdit copies the current profile into the draft.
func (pe *ProfileEditor) BeginEdit(ctx context.Context) {
	// the singleton always exists
	_ = pe.inner.BeginEdit(ctx, portfolio.ProfileID)
}

func (pe *ProfileEditor) UpdateDraft(ctx context.Context, p portfolio.Profile) bool {
	return pe.inner.UpdateDraft(ctx, p)
}

func (pe *ProfileEditor) SetPending(ctx context.Context, v string) { pe.inner.SetPending(ctx, v) }

func (pe *ProfileEditor) AddSkill(ctx context.Context, value string) bool {
	ok, _ := pe.inner.AddListItem(ctx, portfolio.SkillsField.Name, value)
	return ok
}

func (pe *ProfileEditor) RemoveSkill(ctx context.Context, value string) bool {
	ok, _ := pe.inner.RemoveListItem(ctx, portfolio.SkillsField.Name, value)
	return ok
}

func (pe *ProfileEditor) Commit(ctx context.Context) bool { return pe.inner.Commit(ctx) }

func (pe *ProfileEditor) Cancel(ctx context.Context) { pe.inner.Cancel(ctx) }

// Submit handles a profile form post. ActionEdit opens the draft; every
// other action goes through the collection editor.
func (pe *ProfileEditor) Submit(ctx context.Context, in SubmitInput[portfolio.Profile]) error {
	if in.Action == ActionEdit {
		pe.BeginEdit(ctx)
		return nil
	}
	if in.Field == "" {
		in.Field = portfolio.SkillsField.Name
	}
	return pe.inner.Submit(ctx, in)
}
