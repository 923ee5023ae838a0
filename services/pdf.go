package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"goginie/models"
)

// TripSummaryLine is one category row of a trip summary.
type TripSummaryLine struct {
	Category  string
	Label     string
	Available bool
	Status    string
	Subtotal  float64
}

// TripSummaryData is everything the trip summary PDF renders.
type TripSummaryData struct {
	ConfirmationCode string
	Preferences      models.TripPreferences
	Phase            string
	Lines            []TripSummaryLine
	TotalCost        float64
	Notes            []string
	Itinerary        *models.Itinerary
}

// ─── Document scaffolding ─────────────────────────────────────────────────────

type pdfDoc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFDoc(subtitle string) *pdfDoc {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()
	d := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "GoGinie", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67) // gold
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, d.tr(subtitle), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)
	return d
}

func (d *pdfDoc) section(title string) {
	d.pdf.SetFillColor(13, 24, 37)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.CellFormat(170, 8, "  "+d.tr(title), "", 1, "L", true, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(2)
}

func (d *pdfDoc) row(label, value string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.SetTextColor(100, 100, 100)
	d.pdf.CellFormat(55, 7, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetTextColor(20, 20, 20)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(115, 7, d.tr(value), "", 1, "L", false, 0, "")
}

func (d *pdfDoc) total(label string, amount float64) {
	d.pdf.SetFillColor(212, 168, 67)
	d.pdf.SetTextColor(13, 24, 37)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(55, 9, label, "", 0, "L", true, 0, "")
	d.pdf.CellFormat(115, 9, formatINR(amount), "", 1, "L", true, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(4)
}

func (d *pdfDoc) bytes(footer string) ([]byte, error) {
	// ── Footer ────────────────────────────────────────────────
	d.pdf.SetY(-22)
	d.pdf.SetDrawColor(200, 200, 200)
	d.pdf.SetLineWidth(0.3)
	d.pdf.Line(20, d.pdf.GetY(), 190, d.pdf.GetY())
	d.pdf.SetFont("Helvetica", "I", 8)
	d.pdf.SetTextColor(150, 150, 150)
	d.pdf.CellFormat(0, 8, d.tr(footer), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ─── Booking receipt ──────────────────────────────────────────────────────────

// GenerateReceiptPDF renders a single booking as a downloadable receipt.
func GenerateReceiptPDF(b models.BookingRecord) ([]byte, error) {
	d := newPDFDoc("Booking Receipt")

	if b.Status == models.StatusCancelled {
		// ── Watermark ────────────────────────────────────────────
		d.pdf.SetTextColor(235, 200, 200)
		d.pdf.SetFont("Helvetica", "B", 55)
		d.pdf.TransformBegin()
		d.pdf.TransformRotate(42, 50, 200)
		d.pdf.Text(50, 200, "CANCELLED")
		d.pdf.TransformEnd()
		d.pdf.SetTextColor(0, 0, 0)
	}

	d.section("Booking")
	d.row("Confirmation", b.ConfirmationCode)
	d.row("Booking ID", b.ID)
	d.row("Type", strings.ToUpper(string(b.Type)))
	d.row("Status", strings.ToUpper(string(b.Status)))
	d.row("Booked", b.Timestamp.UTC().Format("02 Jan 2006, 15:04 UTC"))
	if b.TripCode != "" {
		d.row("Trip", b.TripCode)
	}
	d.pdf.Ln(4)

	d.section("Item")
	d.row("Title", b.Title)
	if b.ItemID != "" {
		d.row("Reference", b.ItemID)
	}
	keys := make([]string, 0, len(b.Details))
	for k := range b.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d.row(titleCase(k), b.Details[k])
	}
	d.pdf.Ln(4)

	d.total("AMOUNT", b.Amount)

	return d.bytes("Generated by GoGinie · Keep this receipt for your records")
}

// ─── Trip summary ─────────────────────────────────────────────────────────────

// GenerateTripSummaryPDF renders the plan, per-category outcome and itinerary.
func GenerateTripSummaryPDF(data TripSummaryData) ([]byte, error) {
	d := newPDFDoc("Trip Summary")
	p := data.Preferences

	d.section("Trip Overview")
	if data.ConfirmationCode != "" {
		d.row("Confirmation", data.ConfirmationCode)
	}
	d.row("Route", fmt.Sprintf("%s → %s", p.StartLocation, p.Destination))
	d.row("Departure", fmtDateReadable(p.DepartureDate))
	d.row("Return", fmtDateReadable(p.ReturnDate))
	d.row("Duration", fmt.Sprintf("%d days", p.Duration))
	d.row("Travellers", fmt.Sprintf("%d", p.GroupSize))
	d.row("Budget", formatINR(p.Budget))
	d.row("Status", data.Phase)
	d.row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	d.pdf.Ln(4)

	d.section("Bookings")
	for _, l := range data.Lines {
		value := "Not available"
		if l.Available {
			value = fmt.Sprintf("%s · %s · %s", l.Label, formatINR(l.Subtotal), l.Status)
		}
		d.row(titleCase(l.Category), value)
	}
	for _, n := range data.Notes {
		d.row("Note", n)
	}
	d.pdf.Ln(2)
	d.total("TOTAL", data.TotalCost)

	if it := data.Itinerary; it != nil && len(it.Days) > 0 {
		d.section("Itinerary")
		for _, day := range it.Days {
			d.pdf.SetFont("Helvetica", "B", 10)
			d.pdf.CellFormat(170, 7, d.tr(fmt.Sprintf("%s  %s", day.Day, fmtDateReadable(day.Date))), "", 1, "L", false, 0, "")
			d.pdf.SetFont("Helvetica", "", 9)
			d.pdf.SetTextColor(40, 40, 40)
			for _, a := range day.Activities {
				line := fmt.Sprintf("%s  %s @ %s (%s)", a.Time, a.Activity, a.Location, formatINR(a.Cost))
				d.pdf.MultiCell(170, 5, d.tr(line), "", "L", false)
			}
			d.pdf.SetTextColor(0, 0, 0)
			d.pdf.Ln(2)
		}
	}

	return d.bytes("Generated by GoGinie · Prices shown in INR")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatINR(amount float64) string {
	return fmt.Sprintf("INR %.0f", amount)
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse(models.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
