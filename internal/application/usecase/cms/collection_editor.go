package cms

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/editor"
	"github.com/khoahotran/portfolio-cms/internal/domain/section"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var tracer = otel.Tracer("cms_usecase")

// EditorState is a consistent snapshot of one editor and its collection.
type EditorState[T any] struct {
	Collection string `json:"collection"`
	Items      []T    `json:"items"`
	Draft      T      `json:"draft"`
	Editing    bool   `json:"editing"`
	IsNew      bool   `json:"is_new"`
	EditingID  int    `json:"editing_id,omitempty"`
	Pending    string `json:"pending"`
}

// SubmitInput carries a full form post: the draft as edited in the browser
// plus the button that was pressed.
type SubmitInput[T any] struct {
	Draft   T
	Pending string
	Action  Action
	Field   string
	Value   string
}

type editorOptions struct {
	lock sync.Locker
}

type EditorOption func(*editorOptions)

// WithLock makes several editors share one lock. Editors whose replace
// callbacks write the same store slice need this.
func WithLock(l sync.Locker) EditorOption {
	return func(o *editorOptions) { o.lock = l }
}

// CollectionEditor serializes access to an editor.Editor and reports every
// replacement as a content event.
type CollectionEditor[T any] struct {
	mu         sync.Locker
	collection section.Collection
	keys       editor.Keys[T]
	source     editor.Source[T]
	ed         *editor.Editor[T]
	fields     map[string]editor.ListField[T]
	publisher  service.EventPublisher
	logger     logger.Logger
}

func NewCollectionEditor[T any](
	collection section.Collection,
	keys editor.Keys[T],
	source editor.Source[T],
	replace editor.ReplaceFunc[T],
	fields []editor.ListField[T],
	publisher service.EventPublisher,
	log logger.Logger,
	opts ...EditorOption,
) *CollectionEditor[T] {
	o := editorOptions{lock: &sync.Mutex{}}
	for _, opt := range opts {
		opt(&o)
	}

	byName := make(map[string]editor.ListField[T], len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	return &CollectionEditor[T]{
		mu:         o.lock,
		collection: collection,
		keys:       keys,
		source:     source,
		ed:         editor.New(keys, source, replace),
		fields:     byName,
		publisher:  publisher,
		logger:     log.With(zap.String("collection", string(collection))),
	}
}

func (ce *CollectionEditor[T]) Collection() section.Collection { return ce.collection }

func (ce *CollectionEditor[T]) State(ctx context.Context) EditorState[T] {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return ce.snapshot()
}

// BeginEdit loads record id into the draft.
func (ce *CollectionEditor[T]) BeginEdit(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "BeginEdit")
	defer span.End()
	span.SetAttributes(attribute.String("collection", string(ce.collection)), attribute.Int("record_id", id))

	ce.mu.Lock()
	defer ce.mu.Unlock()

	r, ok := editor.Find(ce.source(), ce.keys.ID, id)
	if !ok {
		err := apperror.NewNotFound(string(ce.collection), strconv.Itoa(id))
		span.RecordError(err)
		return err
	}
	ce.ed.BeginEdit(r)
	return nil
}

// BeginCreate opens a blank draft and returns its id.
func (ce *CollectionEditor[T]) BeginCreate(ctx context.Context) int {
	_, span := tracer.Start(ctx, "BeginCreate")
	defer span.End()

	ce.mu.Lock()
	defer ce.mu.Unlock()

	id := ce.ed.BeginCreate()
	span.SetAttributes(attribute.String("collection", string(ce.collection)), attribute.Int("record_id", id))
	return id
}

// UpdateDraft replaces the draft's fields; false when nothing is being edited.
func (ce *CollectionEditor[T]) UpdateDraft(ctx context.Context, r T) bool {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return ce.ed.Update(r)
}

func (ce *CollectionEditor[T]) SetPending(ctx context.Context, v string) {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	ce.ed.SetPending(v)
}

func (ce *CollectionEditor[T]) AddListItem(ctx context.Context, field, value string) (bool, error) {
	ce.mu.Lock()
	defer ce.mu.Unlock()

	f, err := ce.field(field)
	if err != nil {
		return false, err
	}
	return ce.ed.AddListItem(f, value), nil
}

func (ce *CollectionEditor[T]) RemoveListItem(ctx context.Context, field, value string) (bool, error) {
	ce.mu.Lock()
	defer ce.mu.Unlock()

	f, err := ce.field(field)
	if err != nil {
		return false, err
	}
	return ce.ed.RemoveListItem(f, value), nil
}

// Commit saves the draft into the collection. It reports false, and does
// nothing, when no draft is active.
func (ce *CollectionEditor[T]) Commit(ctx context.Context) bool {
	ctx, span := tracer.Start(ctx, "Commit")
	defer span.End()

	ce.mu.Lock()
	id := ce.ed.EditingID()
	ok := ce.ed.Commit(ctx)
	ce.mu.Unlock()

	span.SetAttributes(attribute.String("collection", string(ce.collection)), attribute.Bool("committed", ok))
	if !ok {
		return false
	}
	ce.logger.Info("Record saved", zap.Int("record_id", id))
	ce.publish(ctx, service.ContentUpserted, id)
	return true
}

func (ce *CollectionEditor[T]) Cancel(ctx context.Context) {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	ce.ed.Cancel()
}

// Delete removes id from the collection. Unknown ids leave it unchanged.
func (ce *CollectionEditor[T]) Delete(ctx context.Context, id int) bool {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("collection", string(ce.collection)), attribute.Int("record_id", id))

	ce.mu.Lock()
	removed := ce.ed.Delete(ctx, id)
	ce.mu.Unlock()

	if !removed {
		ce.logger.Debug("Delete of unknown record ignored", zap.Int("record_id", id))
		return false
	}
	ce.logger.Info("Record deleted", zap.Int("record_id", id))
	ce.publish(ctx, service.ContentDeleted, id)
	return true
}

// Submit applies a form post atomically: the posted draft is copied in
// first, then the action runs against it.
func (ce *CollectionEditor[T]) Submit(ctx context.Context, in SubmitInput[T]) error {
	ctx, span := tracer.Start(ctx, "Submit")
	defer span.End()
	span.SetAttributes(attribute.String("collection", string(ce.collection)), attribute.String("action", string(in.Action)))

	ce.mu.Lock()
	if !ce.ed.Editing() {
		ce.mu.Unlock()
		err := apperror.NewInvalidState("no draft is being edited")
		span.RecordError(err)
		return err
	}
	ce.ed.Update(in.Draft)
	ce.ed.SetPending(in.Pending)

	var (
		err       error
		committed bool
		id        = ce.ed.EditingID()
	)
	switch in.Action {
	case ActionSave:
		committed = ce.ed.Commit(ctx)
	case ActionCancel:
		ce.ed.Cancel()
	case ActionAddItem:
		var f editor.ListField[T]
		if f, err = ce.field(in.Field); err == nil {
			ce.ed.AddListItem(f, in.Value)
		}
	case ActionRemoveItem:
		var f editor.ListField[T]
		if f, err = ce.field(in.Field); err == nil {
			ce.ed.RemoveListItem(f, in.Value)
		}
	default:
		err = apperror.NewInvalidInput("unsupported action "+string(in.Action), nil)
	}
	ce.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		return err
	}
	if committed {
		ce.logger.Info("Record saved", zap.Int("record_id", id))
		ce.publish(ctx, service.ContentUpserted, id)
	}
	return nil
}

func (ce *CollectionEditor[T]) field(name string) (editor.ListField[T], error) {
	f, ok := ce.fields[name]
	if !ok {
		return f, apperror.NewInvalidInput("unknown list field "+name, nil)
	}
	return f, nil
}

func (ce *CollectionEditor[T]) snapshot() EditorState[T] {
	items := ce.source()
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = ce.keys.Clone(it)
	}
	return EditorState[T]{
		Collection: string(ce.collection),
		Items:      out,
		Draft:      ce.ed.Draft(),
		Editing:    ce.ed.Editing(),
		IsNew:      ce.ed.IsNew(),
		EditingID:  ce.ed.EditingID(),
		Pending:    ce.ed.Pending(),
	}
}

func (ce *CollectionEditor[T]) publish(ctx context.Context, typ service.ContentEventType, id int) {
	evt := service.ContentChangedEvent{
		EventID:    uuid.New(),
		EventType:  typ,
		Collection: string(ce.collection),
		RecordID:   id,
		OccurredAt: time.Now().UTC(),
	}
	if err := ce.publisher.PublishContentChanged(ctx, evt); err != nil {
		ce.logger.Error("Failed to publish content event", err,
			zap.String("event_id", evt.EventID.String()), zap.Int("record_id", id))
	}
}
