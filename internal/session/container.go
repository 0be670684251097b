// Package session implements the trip state container: the single source of
// truth for one session's preferences, generated options, plan, and
// selections, persisted through a SessionKV backend.
//
// Persistence is best-effort by design. A read that finds nothing (or finds
// corrupt JSON) falls back to the built-in seed value; a write that fails is
// logged and swallowed so the session continues in memory. Neither path ever
// crashes a request.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/repo"
)

// Storage keys, one per sub-object.
const (
	keyPreferences    = "preferences"
	keyTravelOptions  = "travel_options"
	keyLodgingOptions = "lodging_options"
	keyPlan           = "plan"
	keySelections     = "selections"
)

// State is the full per-session state: the five sub-objects the container
// owns. Every field is always defined — missing storage yields seeds.
type State struct {
	Preferences    domain.Preferences    `json:"preferences"`
	TravelOptions  domain.TravelOptions  `json:"travelOptions"`
	LodgingOptions domain.LodgingOptions `json:"lodgingOptions"`
	Plan           domain.Plan           `json:"generatedPlan"`
	Selections     domain.Selections     `json:"selections"`
}

// Container loads and persists session state and arbitrates generation
// requests: one outstanding generation per session, and responses tagged
// with a stale counter are dropped instead of applied.
type Container struct {
	kv  repo.SessionKV
	log *slog.Logger

	// overlay catches writes that failed against kv so the session keeps its
	// value for the rest of the process lifetime. Reads prefer kv.
	overlay *repo.MemorySessionKV

	mu        sync.Mutex
	inflight  map[string]bool
	latestGen map[string]uint64
}

// NewContainer constructs a Container over the given storage backend.
func NewContainer(kv repo.SessionKV, log *slog.Logger) *Container {
	return &Container{
		kv:        kv,
		log:       log,
		overlay:   repo.NewMemorySessionKV(),
		inflight:  make(map[string]bool),
		latestGen: make(map[string]uint64),
	}
}

// Load reads all five sub-objects. Any missing or corrupt entry falls back
// to its seed value; Load itself cannot fail.
func (c *Container) Load(ctx context.Context, sessionID string) State {
	var s State
	if !c.loadJSON(ctx, sessionID, keyPreferences, &s.Preferences) {
		s.Preferences = domain.SeedPreferences()
	}
	if !c.loadJSON(ctx, sessionID, keyTravelOptions, &s.TravelOptions) {
		s.TravelOptions = domain.SeedTravelOptions()
	}
	if !c.loadJSON(ctx, sessionID, keyLodgingOptions, &s.LodgingOptions) {
		s.LodgingOptions = domain.SeedLodgingOptions()
	}
	if !c.loadJSON(ctx, sessionID, keyPlan, &s.Plan) {
		s.Plan = domain.SeedPlan()
	}
	if !c.loadJSON(ctx, sessionID, keySelections, &s.Selections) {
		s.Selections = domain.SeedSelections()
	}
	return s
}

// SetPreferences replaces and persists the preferences sub-object.
func (c *Container) SetPreferences(ctx context.Context, sessionID string, p domain.Preferences) {
	c.persist(ctx, sessionID, keyPreferences, p)
}

// SetTravelOptions replaces and persists the travel options sub-object.
func (c *Container) SetTravelOptions(ctx context.Context, sessionID string, t domain.TravelOptions) {
	c.persist(ctx, sessionID, keyTravelOptions, t)
}

// SetLodgingOptions replaces and persists the lodging options sub-object.
func (c *Container) SetLodgingOptions(ctx context.Context, sessionID string, l domain.LodgingOptions) {
	c.persist(ctx, sessionID, keyLodgingOptions, l)
}

// SetPlan replaces and persists the committed plan.
func (c *Container) SetPlan(ctx context.Context, sessionID string, p domain.Plan) {
	c.persist(ctx, sessionID, keyPlan, p)
}

// SetSelections replaces and persists the selections sub-object.
func (c *Container) SetSelections(ctx context.Context, sessionID string, s domain.Selections) {
	c.persist(ctx, sessionID, keySelections, s)
}

// ResetToSeed restores all five sub-objects to their seed values and
// persists the reset. There is no deleted terminal state — a subsequent
// Load yields the seeds whether or not persistence succeeded.
func (c *Container) ResetToSeed(ctx context.Context, sessionID string) {
	c.persist(ctx, sessionID, keyPreferences, domain.SeedPreferences())
	c.persist(ctx, sessionID, keyTravelOptions, domain.SeedTravelOptions())
	c.persist(ctx, sessionID, keyLodgingOptions, domain.SeedLodgingOptions())
	c.persist(ctx, sessionID, keyPlan, domain.SeedPlan())
	c.persist(ctx, sessionID, keySelections, domain.SeedSelections())
}

// ClearSelections empties only the selections sub-object, leaving plan and
// preferences intact. The cleared state is distinct from the seed in intent;
// selections is the only sub-object with an explicit cleared state.
func (c *Container) ClearSelections(ctx context.Context, sessionID string) {
	c.persist(ctx, sessionID, keySelections, domain.EmptySelections())
}

// StartGeneration registers an outstanding generation for the session and
// returns its counter value. Returns domain.ErrGenerationInFlight when one
// is already outstanding — a new request must not be issued until the
// current one finishes (cooperative single-flight, not a lock).
func (c *Container) StartGeneration(sessionID string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inflight[sessionID] {
		return 0, domain.ErrGenerationInFlight
	}
	c.inflight[sessionID] = true
	c.latestGen[sessionID]++
	return c.latestGen[sessionID], nil
}

// SupersedeGeneration bumps the counter without registering an outstanding
// call, marking any in-flight response stale. The mock fallback uses it so a
// late upstream response cannot overwrite the user's chosen fallback plan.
func (c *Container) SupersedeGeneration(sessionID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latestGen[sessionID]++
	return c.latestGen[sessionID]
}

// EndGeneration clears the outstanding flag. Call it in a defer next to
// StartGeneration regardless of the outcome.
func (c *Container) EndGeneration(sessionID string) {
	c.mu.Lock()
	c.inflight[sessionID] = false
	c.mu.Unlock()
}

// ApplyGenerated merges the provided fields of a generation response into
// the session. Responses whose counter is no longer the latest are dropped —
// an outstanding call may complete after the user has moved on, and its
// result must not clobber a fresher view. When the session has no stored
// selections yet, selections is initialized to the seed so downstream
// consumers always see a defined object.
//
// Returns false when the response was dropped as stale.
func (c *Container) ApplyGenerated(ctx context.Context, sessionID string, gen uint64, resp domain.GeneratedResponse) bool {
	c.mu.Lock()
	stale := gen != c.latestGen[sessionID]
	c.mu.Unlock()
	if stale {
		c.log.Info("dropping stale generation response", "session_id", sessionID, "generation", gen)
		return false
	}

	if resp.Plan != nil {
		c.persist(ctx, sessionID, keyPlan, *resp.Plan)
	}
	if resp.TravelOptions != nil {
		c.persist(ctx, sessionID, keyTravelOptions, *resp.TravelOptions)
	}
	if resp.LodgingOptions != nil {
		c.persist(ctx, sessionID, keyLodgingOptions, *resp.LodgingOptions)
	}

	if _, err := c.kv.Get(ctx, sessionID, keySelections); errors.Is(err, domain.ErrNotFound) {
		c.persist(ctx, sessionID, keySelections, domain.SeedSelections())
	}
	return true
}

// loadJSON reads and decodes one sub-object. Returns false — leaving dst
// untouched for the caller to seed — when the entry is absent, unreadable,
// or corrupt. The in-memory overlay answers when the backend cannot.
func (c *Container) loadJSON(ctx context.Context, sessionID, key string, dst any) bool {
	raw, err := c.kv.Get(ctx, sessionID, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.log.Warn("session read failed, trying overlay", "session_id", sessionID, "key", key, "error", err)
		}
		raw, err = c.overlay.Get(ctx, sessionID, key)
		if err != nil {
			return false
		}
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.log.Warn("corrupt session entry, using seed", "session_id", sessionID, "key", key, "error", err)
		return false
	}
	return true
}

// persist encodes and stores one sub-object. Backend failures are logged and
// swallowed; the value lands in the in-memory overlay instead so the session
// continues with what it had.
func (c *Container) persist(ctx context.Context, sessionID, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("session encode failed", "session_id", sessionID, "key", key, "error", err)
		return
	}
	if err := c.kv.Set(ctx, sessionID, key, string(raw)); err != nil {
		c.log.Warn("session persist failed, continuing in memory", "session_id", sessionID, "key", key, "error", err)
		_ = c.overlay.Set(ctx, sessionID, key, string(raw))
	}
}
