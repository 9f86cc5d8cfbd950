package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"transfers/internal/domain"
	"transfers/internal/domain/models"
	"transfers/internal/repositories"
	"transfers/internal/utils"

	"github.com/phpdave11/gofpdf"
)

type ReceiptService struct {
	TripRepo  repositories.TripRepository
	RequestID string
}

// BuildReceipt renders the booking-confirmation receipt for an accepted
// trip. Pending trips have nothing to receipt yet.
func (s ReceiptService) BuildReceipt(reference string) ([]byte, string, error) {
	trip, err := s.TripRepo.GetByReference(reference)
	if err != nil {
		return nil, "", err
	}
	if trip.Status != models.TripStatusAccepted {
		return nil, "", domain.ConflictError{Resource: "trip", Msg: "booking is not confirmed yet"}
	}
	return buildReceiptPDF(trip)
}

func buildReceiptPDF(t models.Trip) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Reference : "+t.BookingReference)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued    : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Name    : %s", orDash(t.CustomerName)),
		fmt.Sprintf("Email   : %s", orDash(t.CustomerEmail)),
		fmt.Sprintf("Phone   : %s", orDash(t.CustomerPhone)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	desc := fmt.Sprintf("Transfer %s -> %s (%s)",
		orDash(t.PickupAddress), orDash(t.DropoffAddress),
		orDash(utils.FormatDisplayDate(t.ScheduledAt)),
	)
	if t.ReturnAt != "" {
		desc += fmt.Sprintf(", return %s", utils.FormatDisplayDate(t.ReturnAt))
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, fmt.Sprintf("Vehicle: %s, %d passenger(s)", orDash(t.VehicleType), t.Passengers))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: EUR "+fmt.Sprintf("%.2f", t.Amount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this receipt to your driver at pickup.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(t.BookingReference))
	return buf.Bytes(), filename, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
