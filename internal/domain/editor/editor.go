// Package editor implements the draft/commit pattern shared by every
// collection in the portfolio: a draft record, an editing marker and a
// pending input for list fields, reconciled into the parent list by id.
package editor

import (
	"context"
	"slices"
	"strings"
)

// Keys describes how the editor reads and writes a record's identity.
type Keys[T any] struct {
	ID     func(T) int
	WithID func(T, int) T
	Blank  func() T
	Clone  func(T) T
}

// ListField is a []string field of T edited one item at a time.
type ListField[T any] struct {
	Name   string
	Get    func(T) []string
	Set    func(T, []string) T
	Unique bool
}

// Source returns the current parent collection.
type Source[T any] func() []T

// ReplaceFunc receives the full replacement collection.
type ReplaceFunc[T any] func(ctx context.Context, items []T)

// Editor is not safe for concurrent use; callers serialize access.
type Editor[T any] struct {
	keys      Keys[T]
	source    Source[T]
	replace   ReplaceFunc[T]
	draft     T
	editing   bool
	editingID int
	pending   string
}

func New[T any](keys Keys[T], source Source[T], replace ReplaceFunc[T]) *Editor[T] {
	return &Editor[T]{
		keys:    keys,
		source:  source,
		replace: replace,
		draft:   keys.Blank(),
	}
}

func (e *Editor[T]) Draft() T { return e.keys.Clone(e.draft) }

func (e *Editor[T]) Editing() bool { return e.editing }

// EditingID is zero when no draft is active.
func (e *Editor[T]) EditingID() int {
	if !e.editing {
		return 0
	}
	return e.editingID
}

// IsNew reports whether the active draft has no counterpart in the collection yet.
func (e *Editor[T]) IsNew() bool {
	if !e.editing {
		return false
	}
	_, ok := Find(e.source(), e.keys.ID, e.editingID)
	return !ok
}

func (e *Editor[T]) Pending() string { return e.pending }

func (e *Editor[T]) SetPending(v string) { e.pending = v }

// BeginEdit copies r into the draft. The parent collection is untouched.
func (e *Editor[T]) BeginEdit(r T) {
	e.draft = e.keys.Clone(r)
	e.editingID = e.keys.ID(r)
	e.editing = true
}

// BeginCreate starts a blank draft under the next free id and returns it.
func (e *Editor[T]) BeginCreate() int {
	id := NextID(e.source(), e.keys.ID)
	e.draft = e.keys.WithID(e.keys.Blank(), id)
	e.editingID = id
	e.editing = true
	return id
}

// Update overwrites the draft's fields. The id stays pinned to the
// record being edited. It is a no-op without an active draft.
func (e *Editor[T]) Update(r T) bool {
	if !e.editing {
		return false
	}
	e.draft = e.keys.WithID(e.keys.Clone(r), e.editingID)
	return true
}

// Commit upserts the draft into the collection and hands the result to the
// replace callback. Without an active draft it does nothing.
func (e *Editor[T]) Commit(ctx context.Context) bool {
	if !e.editing {
		return false
	}
	items := Upsert(e.source(), e.keys.ID, e.keys.Clone(e.draft))
	e.replace(ctx, items)
	e.reset()
	return true
}

func (e *Editor[T]) Cancel() {
	e.reset()
}

// Delete drops id from the collection. An in-progress draft is kept.
func (e *Editor[T]) Delete(ctx context.Context, id int) bool {
	items, removed := Remove(e.source(), e.keys.ID, id)
	e.replace(ctx, items)
	return removed
}

// AddListItem appends the trimmed value to the draft's field and clears the
// pending input. Empty values, and duplicates on unique fields, are rejected.
func (e *Editor[T]) AddListItem(f ListField[T], value string) bool {
	if !e.editing {
		return false
	}
	list, ok := AddItem(f.Get(e.draft), value, f.Unique)
	if !ok {
		return false
	}
	e.draft = f.Set(e.draft, list)
	e.pending = ""
	return true
}

func (e *Editor[T]) RemoveListItem(f ListField[T], value string) bool {
	if !e.editing {
		return false
	}
	before := f.Get(e.draft)
	after := RemoveItem(before, value)
	e.draft = f.Set(e.draft, after)
	return len(after) != len(before)
}

func (e *Editor[T]) reset() {
	e.draft = e.keys.Blank()
	e.editing = false
	e.editingID = 0
	e.pending = ""
}

// NextID is max(ids, 0) + 1.
func NextID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, it := range items {
		maxID = max(maxID, id(it))
	}
	return maxID + 1
}

func Find[T any](items []T, id func(T) int, want int) (T, bool) {
	for _, it := range items {
		if id(it) == want {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Upsert replaces the member with r's id in place or appends r.
func Upsert[T any](items []T, id func(T) int, r T) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	for i, it := range out {
		if id(it) == id(r) {
			out[i] = r
			return out
		}
	}
	return append(out, r)
}

func Remove[T any](items []T, id func(T) int, target int) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != target {
			out = append(out, it)
		}
	}
	return out, len(out) != len(items)
}

func AddItem(list []string, value string, unique bool) ([]string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return list, false
	}
	if unique && slices.Contains(list, v) {
		return list, false
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, v), true
}

// RemoveItem drops every entry equal to value.
func RemoveItem(list []string, value string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
