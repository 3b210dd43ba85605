package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidModel is returned when an invoice cannot be rendered.
var ErrInvalidModel = errors.New("invoice has no vehicle lines")

// ChargeRow is one charge category of the printed charges table.
type ChargeRow struct {
	Label  string
	Amount decimal.Decimal
}

// DocumentLine is the identifier block of one vehicle on the printed invoice.
type DocumentLine struct {
	SINo        int
	LRNo        string
	VehicleNo   string
	ContainerNo string
}

// RenderedDocument is an immutable snapshot of an invoice taken at render time.
type RenderedDocument struct {
	Header InvoiceHeader
	Lines  []DocumentLine

	// Charges lists Freight first, then each other category with a positive total.
	Charges []ChargeRow

	TotalFreight   decimal.Decimal
	TotalAdvance   decimal.Decimal
	TotalBalance   decimal.Decimal
	BalanceInWords string

	RenderedAt time.Time
}

// chargeCategory pairs a printed label with the line field it aggregates.
type chargeCategory struct {
	label  string
	field  LineField
	always bool
}

var chargeCategories = []chargeCategory{
	{"Freight", LineFreight, true},
	{"Unloading Ch.", LineUnloadingCharges, false},
	{"Detention Ch.", LineDetention, false},
	{"Weight Ch.", LineWeightCharges, false},
	{"Other Ch.", LineOthers, false},
	{"Commission", LineCommission, false},
}

// RenderDocument builds the printable snapshot of inv. The invoice itself is
// not modified.
func RenderDocument(inv *Invoice, at time.Time) (*RenderedDocument, error) {
	if inv == nil || len(inv.Lines) == 0 {
		return nil, ErrInvalidModel
	}

	doc := &RenderedDocument{
		Header:     inv.Header,
		Lines:      make([]DocumentLine, 0, len(inv.Lines)),
		RenderedAt: at,
	}

	for i, l := range inv.Lines {
		doc.Lines = append(doc.Lines, DocumentLine{
			SINo:        i + 1,
			LRNo:        l.LRNo,
			VehicleNo:   l.VehicleNo,
			ContainerNo: l.ContainerNo,
		})
		doc.TotalFreight = doc.TotalFreight.Add(ParseAmount(l.TotalFreight))
		doc.TotalAdvance = doc.TotalAdvance.Add(ParseAmount(l.Advance))
		doc.TotalBalance = doc.TotalBalance.Add(ParseAmount(l.Balance))
	}

	for _, cat := range chargeCategories {
		sum := decimal.Zero
		for _, l := range inv.Lines {
			sum = sum.Add(ParseAmount(l.Value(cat.field)))
		}
		sum = RoundAmount(sum)
		if cat.always || sum.IsPositive() {
			doc.Charges = append(doc.Charges, ChargeRow{Label: cat.label, Amount: sum})
		}
	}

	doc.TotalFreight = RoundAmount(doc.TotalFreight)
	doc.TotalAdvance = RoundAmount(doc.TotalAdvance)
	doc.TotalBalance = RoundAmount(doc.TotalBalance)
	doc.BalanceInWords = NumberToWords(doc.TotalBalance)

	return doc, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DocumentFilename returns the download name for a rendered invoice,
// e.g. "Invoice_42.pdf". A blank invoice number becomes "DRAFT".
func DocumentFilename(doc *RenderedDocument, ext string) string {
	no := strings.TrimSpace(doc.Header.InvoiceNo)
	if no == "" {
		no = "DRAFT"
	}
	no = strings.Trim(unsafeFilenameChars.ReplaceAllString(no, "_"), "_")
	if no == "" {
		no = "DRAFT"
	}
	return fmt.Sprintf("Invoice_%s.%s", no, ext)
}
