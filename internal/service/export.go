package service

import (
	"context"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/session"
)

// ExportService assembles the flat export of a session's plan.
type ExportService struct {
	sessions *session.Container
}

// NewExportService constructs an ExportService.
func NewExportService(sessions *session.Container) *ExportService {
	return &ExportService{sessions: sessions}
}

// Export returns one ExportRow per itinerary item plus the state it was
// built from (the PDF renderer needs the plan metadata and selections too).
// Days with no items contribute one row with empty item fields. A session
// without a generated plan exports the same synthesized date-range days the
// session view shows, so the two surfaces never disagree on day count.
func (s *ExportService) Export(ctx context.Context, sessionID string) ([]domain.ExportRow, session.State, error) {
	st := s.sessions.Load(ctx, sessionID)
	if st.Plan.IsEmpty() {
		if days := domain.SynthesizeDays(st.Preferences.StartDate, st.Preferences.EndDate); days != nil {
			st.Plan.Days = days
		}
	}

	rows := make([]domain.ExportRow, 0, len(st.Plan.Days))
	for _, day := range st.Plan.Days {
		if len(day.Items) == 0 {
			rows = append(rows, domain.ExportRow{
				DayID:    day.ID,
				DayTitle: day.Title,
				DayDate:  day.Date,
			})
			continue
		}
		for _, it := range day.Items {
			rows = append(rows, domain.ExportRow{
				DayID:           day.ID,
				DayTitle:        day.Title,
				DayDate:         day.Date,
				ItemTitle:       it.Title,
				ItemDescription: it.Description,
				Rating:          it.Rating,
				Price:           it.Price,
				IsMeal:          it.IsMeal,
				Origin:          it.OriginID,
			})
		}
	}
	return rows, st, nil
}
