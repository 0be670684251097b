// Package domain contains the core data types for the DynoTrip backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (session, planner, share, service, handler).
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all plan and preference dates.
// Dates travel as plain strings because they originate in form inputs and
// are never used for arithmetic beyond day synthesis.
const DateLayout = "2006-01-02"

// PlanMeta carries the trip-level metadata attached to a generated plan.
type PlanMeta struct {
	Departure           string `json:"departure,omitempty"`
	Destination         string `json:"destination,omitempty"`
	StartDate           string `json:"startDate,omitempty"`
	EndDate             string `json:"endDate,omitempty"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// Item is a single activity or meal entry. Items inside a Day are owned by
// that Day; items in a pool are owned by the pool.
//
// ID is the instance identity. OriginID is a weak back-reference to the pool
// item this instance was copied from — it is used only for duplicate
// detection and for reconstructing the pool identity when the item is
// returned to a pool. It confers no ownership.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Reviews     []string `json:"reviews,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	Price       string   `json:"price,omitempty"`
	IsMeal      bool     `json:"isMeal,omitempty"`
	OriginID    string   `json:"originId,omitempty"`
}

// OriginKey returns the identity used for duplicate detection within a day:
// the origin when the item was copied from a pool, otherwise its own ID.
func (it Item) OriginKey() string {
	if it.OriginID != "" {
		return it.OriginID
	}
	return it.ID
}

// Clone returns a structural deep copy of the item.
func (it Item) Clone() Item {
	out := it
	out.Photos = cloneStrings(it.Photos)
	out.Reviews = cloneStrings(it.Reviews)
	return out
}

// Day is one dated entry in the itinerary. Items is an ordered sequence —
// the order is the sequence in which activities occur, and reordering never
// changes membership.
type Day struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date,omitempty"`
	Items []Item `json:"items"`
}

// Clone returns a structural deep copy of the day.
func (d Day) Clone() Day {
	out := d
	out.Items = cloneItems(d.Items)
	return out
}

// PoolName identifies one of the two unordered candidate pools on a Plan.
type PoolName string

const (
	PoolSuggested  PoolName = "suggested"
	PoolHiddenGems PoolName = "hiddenGems"
)

// Plan is the root itinerary artifact: ordered days plus the two unordered
// pools of candidate places not yet placed on a specific day.
type Plan struct {
	Meta            PlanMeta `json:"meta"`
	Days            []Day    `json:"days"`
	SuggestedPlaces []Item   `json:"suggestedPlaces,omitempty"`
	HiddenGems      []Item   `json:"hiddenGems,omitempty"`
}

// Clone returns a structural deep copy of the plan. Callers must use this
// instead of serialize/deserialize round-trips when they need an independent
// copy (snapshots, edit drafts).
func (p Plan) Clone() Plan {
	out := p
	out.Days = make([]Day, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.Clone()
	}
	out.SuggestedPlaces = cloneItems(p.SuggestedPlaces)
	out.HiddenGems = cloneItems(p.HiddenGems)
	return out
}

// IsEmpty reports whether the plan has no days and no metadata, i.e. nothing
// has been generated or committed yet.
func (p Plan) IsEmpty() bool {
	return len(p.Days) == 0 && p.Meta == (PlanMeta{})
}

// Pool returns a pointer to the named pool's item slice, or an error wrapping
// ErrValidation for an unknown pool name.
func (p *Plan) Pool(name PoolName) (*[]Item, error) {
	switch name {
	case PoolSuggested:
		return &p.SuggestedPlaces, nil
	case PoolHiddenGems:
		return &p.HiddenGems, nil
	default:
		return nil, fmt.Errorf("%w: unknown pool %q", ErrValidation, name)
	}
}

// SynthesizeDays builds empty titled days covering [startDate, endDate] for
// sessions whose preferences imply a date range before any plan has been
// generated. Malformed or inverted dates yield no days rather than an error —
// the caller simply shows an empty itinerary.
func SynthesizeDays(startDate, endDate string) []Day {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil || end.Before(start) {
		return nil
	}

	var days []Day
	for i, d := 0, start; !d.After(end); i, d = i+1, d.AddDate(0, 0, 1) {
		days = append(days, Day{
			ID:    fmt.Sprintf("day-%d", i+1),
			Title: fmt.Sprintf("Day %d", i+1),
			Date:  d.Format(DateLayout),
			Items: []Item{},
		})
	}
	return days
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneItems(in []Item) []Item {
	if in == nil {
		return nil
	}
	out := make([]Item, len(in))
	for i, it := range in {
		out[i] = it.Clone()
	}
	return out
}
