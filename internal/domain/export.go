package domain

// ExportRow is a single row in the flat plan export: one row per item, with
// day fields repeated for every item on that day. Days with no items yield
// one row with zero values for all item fields.
type ExportRow struct {
	// Day fields — repeated for every item on the day.
	DayID    string
	DayTitle string
	DayDate  string

	// Item fields — zero values when the day has no items.
	ItemTitle       string
	ItemDescription string
	Rating          string
	Price           string
	IsMeal          bool
	// Origin is the pool identity the item was copied from, when any.
	Origin string
}
