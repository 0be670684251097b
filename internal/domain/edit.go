package domain

// Edit operation names accepted by the plan edit endpoint.
const (
	EditReorderDay      = "reorderDayItems"
	EditReorderPool     = "reorderPool"
	EditCopyPoolToDay   = "copyPoolItemToDay"
	EditMoveDayToPool   = "moveDayItemToPool"
	EditMoveBetweenDays = "moveItemBetweenDays"
	EditDeleteFromDay   = "deleteFromDay"
	EditMoveWithinDay   = "moveWithinDay"
)

// EditOp is one structural edit against the session's plan. Op selects the
// operation; the remaining fields are read per operation and ignored
// otherwise. Indices are zero-based.
type EditOp struct {
	Op string `json:"op"`

	// Pool names the pool for reorderPool, copyPoolItemToDay, and
	// moveDayItemToPool.
	Pool PoolName `json:"pool,omitempty"`

	// DayIndex addresses the day for single-day operations.
	DayIndex int `json:"dayIndex"`

	// ItemIndex addresses the item within a day or pool.
	ItemIndex int `json:"itemIndex"`

	// From / To are the positions for reorder operations.
	From int `json:"from"`
	To   int `json:"to"`

	// FromDay / FromIndex / ToDay / ToIndex address a cross-day move.
	FromDay   int `json:"fromDay"`
	FromIndex int `json:"fromIndex"`
	ToDay     int `json:"toDay"`
	ToIndex   int `json:"toIndex"`

	// AtIndex is the insertion position for copyPoolItemToDay.
	AtIndex int `json:"atIndex"`

	// Direction is -1 or +1 for moveWithinDay.
	Direction int `json:"direction"`
}
