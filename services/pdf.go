package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type PDFData struct {
	Destination  string
	CheckInDate  string
	CheckOutDate string
	Days         int
	FlightsText  string
	HotelsText   string
	Itinerary    string
}

// GeneratePDFBytes renders a generated itinerary as a PDF and returns raw
// bytes (no filesystem involved).
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripScout", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Generated Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	body := func(text string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, text, "", "L", false)
		pdf.Ln(4)
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Destination", data.Destination)
	row("Check-in", fmtDateReadable(data.CheckInDate))
	row("Check-out", fmtDateReadable(data.CheckOutDate))
	row("Duration", fmt.Sprintf("%d day(s)", data.Days))
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Travel Details ────────────────────────────────────────
	if strings.TrimSpace(data.FlightsText) != "" {
		sectionHeader("Flights")
		body(data.FlightsText)
	}
	if strings.TrimSpace(data.HotelsText) != "" {
		sectionHeader("Hotels")
		body(data.HotelsText)
	}

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader("Itinerary")
	body(data.Itinerary)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripScout · Not a booking confirmation · Verify details with providers",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
