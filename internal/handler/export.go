// Export of the session's plan as a flat table (JSON or CSV) or as a
// printable PDF with an optional share-link QR code.

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/session"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day_id", "day_title", "day_date",
	"item_title", "item_description", "rating", "price", "is_meal", "origin",
}

// GetExport handles GET /session/export.
// ?format=csv returns CSV, ?format=pdf returns a printable PDF; the default
// is JSON. With format=pdf, ?share=1 publishes a snapshot first and embeds
// its link as a QR code. Export reads the committed state and never mutates it.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Header.Get("X-Session-ID"))

	rows, st, err := s.export.Export(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		s.writeCSV(w, rows)
	case "pdf":
		shareURL := ""
		if r.URL.Query().Get("share") == "1" {
			entry, err := s.shares.PublishSession(r.Context(), sid)
			if err != nil {
				writeError(w, err)
				return
			}
			shareURL = s.publicBaseURL + "/share/" + entry.Token
		}
		s.writePDF(w, st, shareURL)
	default:
		writeJSON(w, http.StatusOK, exportRowsToJSON(rows))
	}
}

// exportRow is the JSON shape of one flat export row.
type exportRow struct {
	DayID           string `json:"dayId"`
	DayTitle        string `json:"dayTitle"`
	DayDate         string `json:"dayDate,omitempty"`
	ItemTitle       string `json:"itemTitle,omitempty"`
	ItemDescription string `json:"itemDescription,omitempty"`
	Rating          string `json:"rating,omitempty"`
	Price           string `json:"price,omitempty"`
	IsMeal          bool   `json:"isMeal,omitempty"`
	Origin          string `json:"origin,omitempty"`
}

func exportRowsToJSON(rows []domain.ExportRow) []exportRow {
	out := make([]exportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRow(r))
	}
	return out
}

// writeCSV encodes the rows as CSV with a header line.
func (s *Server) writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — writes to bytes.Buffer never fail.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.DayID, r.DayTitle, r.DayDate,
			r.ItemTitle, r.ItemDescription, r.Rating, r.Price,
			strconv.FormatBool(r.IsMeal), r.Origin,
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=trip-plan.csv`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// writePDF renders the plan as an A4 document: trip header, one section per
// day, and a QR code linking to the published snapshot when shareURL is set.
func (s *Server) writePDF(w http.ResponseWriter, st session.State, shareURL string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := "Trip Plan"
	if st.Plan.Meta.Destination != "" {
		title = "Trip Plan: " + st.Plan.Meta.Destination
	}
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if st.Plan.Meta.Departure != "" {
		pdf.Cell(0, 7, fmt.Sprintf("From: %s", st.Plan.Meta.Departure))
		pdf.Ln(7)
	}
	if st.Plan.Meta.StartDate != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Dates: %s to %s", st.Plan.Meta.StartDate, st.Plan.Meta.EndDate))
		pdf.Ln(7)
	}
	if leg, ok := st.Selections.Transport[domain.LegOutbound]; ok && leg.Mode != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Outbound: %s %s, departs %s", leg.Operator, leg.Mode, leg.DepartureTime))
		pdf.Ln(7)
	}
	if st.Selections.Hotels != nil && st.Selections.Hotels.Booking != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Stay: %s", st.Selections.Hotels.Booking.Name))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	for _, day := range st.Plan.Days {
		pdf.SetFont("Arial", "B", 12)
		heading := day.Title
		if day.Date != "" {
			heading = fmt.Sprintf("%s (%s)", day.Title, day.Date)
		}
		pdf.Cell(0, 8, heading)
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		if len(day.Items) == 0 {
			pdf.Cell(0, 6, "  (nothing planned yet)")
			pdf.Ln(6)
		}
		for _, it := range day.Items {
			label := it.Title
			if it.IsMeal {
				label = label + " (meal)"
			}
			pdf.Cell(0, 6, "  - "+label)
			pdf.Ln(6)
			if it.Description != "" {
				pdf.SetTextColor(100, 100, 100)
				pdf.Cell(0, 5, "      "+it.Description)
				pdf.SetTextColor(0, 0, 0)
				pdf.Ln(6)
			}
		}
		pdf.Ln(2)
	}

	if shareURL != "" {
		qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("share-qr", 160, 10, 35, 35, false, opts, 0, "")
			pdf.SetFont("Arial", "", 8)
			pdf.SetXY(155, 46)
			pdf.Cell(45, 4, "Scan to view online")
			pdf.SetXY(10, pdf.GetY())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
			Code:    "internal_error",
			Message: "failed to render PDF",
		}})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=trip-plan.pdf`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
