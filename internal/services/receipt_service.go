package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/example/adbottle/internal/models"
)

// ReceiptService renders order receipts as PDF.
type ReceiptService struct {
	trackingBaseURL string
	unitPrices      func() map[string]int64
}

// NewReceiptService constructs a ReceiptService. unitPrices supplies the
// current per-size prices for the line items.
func NewReceiptService(trackingBaseURL string, unitPrices func() map[string]int64) *ReceiptService {
	return &ReceiptService{trackingBaseURL: trackingBaseURL, unitPrices: unitPrices}
}

// GenerateReceiptPDF renders a one-page receipt for the campaign, with a QR
// code linking to the public tracking page.
func (s *ReceiptService) GenerateReceiptPDF(campaign *models.Campaign) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Bottle Campaign Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Campaign", campaign.CampaignID},
		{"Customer", campaign.CustomerName},
		{"Status", string(campaign.Status)},
		{"Submitted", campaign.SubmittedAt.Format("2006-01-02 15:04")},
		{"Distribution", campaign.DistributionOption},
		{"Payment", fmt.Sprintf("%s (%s)", campaign.PaymentMethod, campaign.PaymentStatus)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Line items.
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(50, 8, "Bottle size", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Line total", "B", 1, "R", false, 0, "")

	prices := s.unitPrices()
	pdf.SetFont("Arial", "", 11)
	for _, line := range receiptLines(campaign) {
		price := prices[line.size]
		pdf.CellFormat(50, 8, line.size, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", line.quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("INR %d", price), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("INR %d", price*int64(line.quantity)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(130, 8, "Packs (12 bottles each)", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%d", campaign.PackCount), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("INR %.0f", campaign.TotalAmount), "", 1, "R", false, 0, "")

	// Tracking QR.
	trackingURL := fmt.Sprintf("%s/track/%s", s.trackingBaseURL, campaign.CampaignID)
	qrPng, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("tracking-qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("tracking-qr", 10, 230, 40, 40, false, opts, 0, "")
	pdf.SetXY(55, 245)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Scan to track your campaign: "+trackingURL)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type receiptLine struct {
	size     string
	quantity int
}

func receiptLines(campaign *models.Campaign) []receiptLine {
	if campaign.IsMixed() {
		var breakdown map[string]int
		if err := json.Unmarshal(campaign.BottleBreakdown, &breakdown); err == nil {
			sizes := make([]string, 0, len(breakdown))
			for size := range breakdown {
				sizes = append(sizes, size)
			}
			sort.Strings(sizes)

			lines := make([]receiptLine, 0, len(sizes))
			for _, size := range sizes {
				lines = append(lines, receiptLine{size: size, quantity: breakdown[size]})
			}
			return lines
		}
	}
	return []receiptLine{{size: campaign.BottleType, quantity: campaign.Quantity}}
}
