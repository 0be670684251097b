package service

import (
	"context"
	"fmt"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/session"
	"github.com/dynotrip/backend/internal/share"
)

// ShareService publishes read-only snapshots of a session's committed plan
// and resolves them for public viewers.
type ShareService struct {
	store    share.Store
	sessions *session.Container
}

// NewShareService constructs a ShareService over the given token store.
func NewShareService(store share.Store, sessions *session.Container) *ShareService {
	return &ShareService{store: store, sessions: sessions}
}

// PublishSession snapshots the session's committed plan and returns the new
// share entry. Only an object-level check applies: an empty or placeholder
// plan publishes fine — the viewer page tolerates partial shapes.
func (s *ShareService) PublishSession(ctx context.Context, sessionID string) (domain.ShareEntry, error) {
	plan := s.sessions.Load(ctx, sessionID).Plan

	entry, err := s.store.Publish(ctx, plan)
	if err != nil {
		return domain.ShareEntry{}, fmt.Errorf("service.ShareService.PublishSession: %w", err)
	}
	return entry, nil
}

// Resolve returns the snapshot behind token. Propagates domain.ErrNotFound
// and domain.ErrShareExpired; callers collapse both into one viewer message.
func (s *ShareService) Resolve(ctx context.Context, token string) (domain.Plan, error) {
	plan, err := s.store.Resolve(ctx, token)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.ShareService.Resolve: %w", err)
	}
	return plan, nil
}
