// Package planner implements the itinerary edit engine: structural edits to
// a plan's days and pools under the no-duplicate-per-day invariant.
//
// The engine operates on a private deep copy of the plan. Every operation is
// applied atomically — a failed operation leaves the draft exactly as it was,
// including the cross-day move, which rolls the removed item back into its
// original position. Nothing is persisted until the caller takes the draft
// via Commit and hands it to the trip state container.
package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dynotrip/backend/internal/domain"
)

// Editor holds the in-session editable copy of a plan.
// It is not safe for concurrent use; edits run synchronously within one
// user-interaction turn.
type Editor struct {
	plan domain.Plan
}

// NewEditor starts an edit session over a deep copy of plan. The caller's
// plan is never mutated.
func NewEditor(plan domain.Plan) *Editor {
	return &Editor{plan: plan.Clone()}
}

// Draft returns a deep copy of the current working state.
func (e *Editor) Draft() domain.Plan {
	return e.plan.Clone()
}

// Commit returns a deep copy of the working state for the caller to persist.
// The editor remains usable afterwards.
func (e *Editor) Commit() domain.Plan {
	return e.plan.Clone()
}

// Apply dispatches a single EditOp to the matching operation.
func (e *Editor) Apply(op domain.EditOp) error {
	switch op.Op {
	case domain.EditReorderDay:
		return e.ReorderDayItems(op.DayIndex, op.From, op.To)
	case domain.EditReorderPool:
		return e.ReorderPool(op.Pool, op.From, op.To)
	case domain.EditCopyPoolToDay:
		return e.CopyPoolItemToDay(op.Pool, op.ItemIndex, op.DayIndex, op.AtIndex)
	case domain.EditMoveDayToPool:
		return e.MoveDayItemToPool(op.DayIndex, op.ItemIndex, op.Pool)
	case domain.EditMoveBetweenDays:
		return e.MoveItemBetweenDays(op.FromDay, op.FromIndex, op.ToDay, op.ToIndex)
	case domain.EditDeleteFromDay:
		return e.DeleteFromDay(op.DayIndex, op.ItemIndex)
	case domain.EditMoveWithinDay:
		return e.MoveWithinDay(op.DayIndex, op.ItemIndex, op.Direction)
	default:
		return fmt.Errorf("planner.Editor.Apply: %w: unknown op %q", domain.ErrValidation, op.Op)
	}
}

// ReorderDayItems moves the item at from to position to within one day's
// list. Out-of-range positions make the call a silent no-op; so does
// from == to. Membership and length never change.
func (e *Editor) ReorderDayItems(dayIndex, from, to int) error {
	day, err := e.day(dayIndex)
	if err != nil {
		return fmt.Errorf("planner.Editor.ReorderDayItems: %w", err)
	}
	reorder(&day.Items, from, to)
	return nil
}

// ReorderPool moves an item within the named pool, with the same no-op
// semantics as ReorderDayItems.
func (e *Editor) ReorderPool(pool domain.PoolName, from, to int) error {
	items, err := e.plan.Pool(pool)
	if err != nil {
		return fmt.Errorf("planner.Editor.ReorderPool: %w", err)
	}
	reorder(items, from, to)
	return nil
}

// CopyPoolItemToDay instantiates the pool item at poolIndex into the day at
// dayIndex, inserting at atIndex (clamped to the list bounds). The new
// instance gets a fresh ID and carries the pool item's identity as its
// origin, so multiple days may hold independent copies of the same origin.
//
// Returns domain.ErrDuplicateItem — with the day unchanged — when the day
// already holds an instance of that origin.
func (e *Editor) CopyPoolItemToDay(pool domain.PoolName, poolIndex, dayIndex, atIndex int) error {
	items, err := e.plan.Pool(pool)
	if err != nil {
		return fmt.Errorf("planner.Editor.CopyPoolItemToDay: %w", err)
	}
	if poolIndex < 0 || poolIndex >= len(*items) {
		return fmt.Errorf("planner.Editor.CopyPoolItemToDay: %w: pool index %d out of range", domain.ErrValidation, poolIndex)
	}
	day, err := e.day(dayIndex)
	if err != nil {
		return fmt.Errorf("planner.Editor.CopyPoolItemToDay: %w", err)
	}

	src := (*items)[poolIndex]
	if holdsOrigin(day.Items, src.OriginKey()) {
		return fmt.Errorf("planner.Editor.CopyPoolItemToDay: %w: origin %q already in day %d", domain.ErrDuplicateItem, src.OriginKey(), dayIndex)
	}

	inst := src.Clone()
	inst.ID = uuid.NewString()
	inst.OriginID = src.OriginKey()
	insert(&day.Items, inst, atIndex)
	return nil
}

// MoveDayItemToPool removes the item at itemIndex from the day and appends a
// new instance to the named pool, reconstructing its pool identity: the ID
// becomes the origin when one is present, and the origin tag is cleared.
// A missing item index is a silent no-op.
func (e *Editor) MoveDayItemToPool(dayIndex, itemIndex int, pool domain.PoolName) error {
	items, err := e.plan.Pool(pool)
	if err != nil {
		return fmt.Errorf("planner.Editor.MoveDayItemToPool: %w", err)
	}
	day, err := e.day(dayIndex)
	if err != nil {
		return fmt.Errorf("planner.Editor.MoveDayItemToPool: %w", err)
	}
	if itemIndex < 0 || itemIndex >= len(day.Items) {
		return nil
	}

	it := remove(&day.Items, itemIndex)
	it.ID = it.OriginKey()
	it.OriginID = ""
	*items = append(*items, it)
	return nil
}

// MoveItemBetweenDays moves the item at fromIndex in fromDay to toIndex in
// toDay. When the destination day already holds the item's origin, the item
// is reinserted into the source at its original position and
// domain.ErrDuplicateItem is returned — the operation is a no-op from the
// source's perspective. On success the item keeps its origin tag.
// A missing fromIndex is a silent no-op.
func (e *Editor) MoveItemBetweenDays(fromDay, fromIndex, toDay, toIndex int) error {
	src, err := e.day(fromDay)
	if err != nil {
		return fmt.Errorf("planner.Editor.MoveItemBetweenDays: %w", err)
	}
	dst, err := e.day(toDay)
	if err != nil {
		return fmt.Errorf("planner.Editor.MoveItemBetweenDays: %w", err)
	}
	if fromIndex < 0 || fromIndex >= len(src.Items) {
		return nil
	}

	it := remove(&src.Items, fromIndex)
	if holdsOrigin(dst.Items, it.OriginKey()) {
		insert(&src.Items, it, fromIndex) // roll back
		return fmt.Errorf("planner.Editor.MoveItemBetweenDays: %w: origin %q already in day %d", domain.ErrDuplicateItem, it.OriginKey(), toDay)
	}
	insert(&dst.Items, it, toIndex)
	return nil
}

// DeleteFromDay removes the item at itemIndex unconditionally. A missing
// index is a silent no-op; deletion has no error condition.
func (e *Editor) DeleteFromDay(dayIndex, itemIndex int) error {
	day, err := e.day(dayIndex)
	if err != nil {
		return fmt.Errorf("planner.Editor.DeleteFromDay: %w", err)
	}
	if itemIndex < 0 || itemIndex >= len(day.Items) {
		return nil
	}
	remove(&day.Items, itemIndex)
	return nil
}

// MoveWithinDay swaps the item at itemIndex with its neighbour in the given
// direction (-1 up, +1 down), clamped at the list bounds — moving the first
// item up or the last item down is a no-op, not an error.
func (e *Editor) MoveWithinDay(dayIndex, itemIndex, direction int) error {
	day, err := e.day(dayIndex)
	if err != nil {
		return fmt.Errorf("planner.Editor.MoveWithinDay: %w", err)
	}
	if itemIndex < 0 || itemIndex >= len(day.Items) {
		return nil
	}
	j := itemIndex + direction
	if j < 0 || j >= len(day.Items) {
		return nil
	}
	day.Items[itemIndex], day.Items[j] = day.Items[j], day.Items[itemIndex]
	return nil
}

// day returns a pointer into the draft's day list. A day index that does not
// address an existing day is a caller bug, surfaced as a validation error
// rather than a clamp. Item indices are treated defensively instead; a stale
// drag handle should not fail the whole edit.
func (e *Editor) day(i int) (*domain.Day, error) {
	if i < 0 || i >= len(e.plan.Days) {
		return nil, fmt.Errorf("%w: day index %d out of range", domain.ErrValidation, i)
	}
	return &e.plan.Days[i], nil
}

// holdsOrigin reports whether any item in the list carries the given origin
// key. Origin-based identity is authoritative: an item's own ID only counts
// when it has no origin.
func holdsOrigin(items []domain.Item, key string) bool {
	for _, it := range items {
		if it.OriginKey() == key {
			return true
		}
	}
	return false
}

// reorder moves the element at from to position to. Out-of-range indices and
// from == to leave the list untouched.
func reorder(items *[]domain.Item, from, to int) {
	n := len(*items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	it := remove(items, from)
	insert(items, it, to)
}

// insert places it at index i, clamping i to [0, len].
func insert(items *[]domain.Item, it domain.Item, i int) {
	if i < 0 {
		i = 0
	}
	if i > len(*items) {
		i = len(*items)
	}
	*items = append(*items, domain.Item{})
	copy((*items)[i+1:], (*items)[i:])
	(*items)[i] = it
}

// remove deletes and returns the element at i. The index must be in range.
func remove(items *[]domain.Item, i int) domain.Item {
	it := (*items)[i]
	*items = append((*items)[:i], (*items)[i+1:]...)
	return it
}
