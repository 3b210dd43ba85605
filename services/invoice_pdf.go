package services

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfGrey      = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfCharcoal  = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfHighlight = &props.Color{Red: 220, Green: 38, Blue: 38}
	pdfShade     = &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
)

// PDFRenderer renders invoices as A4 PDFs with maroto.
type PDFRenderer struct{}

// Format implements DocumentRenderer.
func (PDFRenderer) Format() string { return FormatPDF }

// Render implements DocumentRenderer.
func (PDFRenderer) Render(ctx context.Context, doc *RenderedDocument, profile CompanyProfile) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, externalRenderError(FormatPDF, err)
	}
	body, err := GenerateInvoicePDF(doc, profile)
	if err != nil {
		return nil, externalRenderError(FormatPDF, err)
	}
	return &Document{
		Filename:    DocumentFilename(doc, FormatPDF),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

// GenerateInvoicePDF creates the invoice PDF and returns its bytes.
func GenerateInvoicePDF(doc *RenderedDocument, profile CompanyProfile) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addInvoiceHeader(m, profile)
	addBillInfo(m, doc)
	addPartyBlock(m, doc)
	addTripDetails(m, doc)
	addChargesTable(m, doc)
	addBalanceDue(m, doc)
	addBankAndTerms(m, profile)
	addInvoiceSignature(m, profile)

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}

	return pdf.GetBytes(), nil
}

// addInvoiceHeader adds the centred company block.
func addInvoiceHeader(m core.Maroto, profile CompanyProfile) {
	centred := props.Text{Size: 8, Align: align.Center, Color: pdfGrey}

	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(text.New(profile.Name, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Center,
				Color: pdfCharcoal,
			})),
		),
	)
	for _, line := range []string{profile.Tagline, profile.Address, fmtField("PAN NO.", profile.PAN)} {
		if line == "" {
			continue
		}
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(line, centred))))
	}

	m.AddRows(row.New(4))
}

// addBillInfo adds the bill number and date.
func addBillInfo(m core.Maroto, doc *RenderedDocument) {
	bold := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}
	boldRight := bold
	boldRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("BILL NO. "+doc.Header.InvoiceNo, bold)),
			col.New(6).Add(text.New("DATE: "+doc.Header.BillDate, boldRight)),
		),
	)
}

// addPartyBlock adds the billed party's name and address.
func addPartyBlock(m core.Maroto, doc *RenderedDocument) {
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("Bill To: "+doc.Header.PartyName, props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		).WithStyle(pdfShade),
		row.New(6).Add(
			col.New(12).Add(text.New("Address: "+doc.Header.PartyAddress, props.Text{
				Size:  8,
				Align: align.Left,
			})),
		).WithStyle(pdfShade),
	)

	m.AddRows(row.New(3))
}

// addTripDetails adds the loading/unloading dates and the route.
func addTripDetails(m core.Maroto, doc *RenderedDocument) {
	style := props.Text{Size: 8, Align: align.Left}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("Loading Date: "+doc.Header.LoadingDate, style)),
			col.New(6).Add(text.New("Unloading Date: "+doc.Header.UnloadingDate, style)),
		),
		row.New(6).Add(
			col.New(4).Add(text.New("From: "+doc.Header.From, style)),
			col.New(4).Add(text.New("To: "+doc.Header.To, style)),
			col.New(4).Add(text.New("Back To: "+doc.Header.BackTo, style)),
		),
	)

	m.AddRows(row.New(3))
}

// addChargesTable adds the combined vehicle/charges table. The vehicle info
// and the three totals span all charge rows, so they are printed in the first
// rows and the remaining cells are left blank.
func addChargesTable(m core.Maroto, doc *RenderedDocument) {
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: pdfWhite,
	}
	headerCell := &props.Cell{BackgroundColor: pdfCharcoal}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("Vehicle Information", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Charge Name", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Amount", headerText)).WithStyle(headerCell),
			col.New(4).Add(
				text.New("Total Freight / Total Advance / Balance", headerText),
			).WithStyle(headerCell),
		),
	)

	vehicleStyle := props.Text{Size: 7, Align: align.Left}
	chargeStyle := props.Text{Size: 7, Align: align.Left}
	amountStyle := props.Text{Size: 7, Align: align.Right}
	totalStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}

	totals := []string{
		"Total Freight: " + FormatAmount(doc.TotalFreight),
		"Total Advance: " + FormatAmount(doc.TotalAdvance),
		"Balance: " + FormatAmount(doc.TotalBalance),
	}

	n := max(len(doc.Lines), len(doc.Charges), len(totals))
	for i := 0; i < n; i++ {
		vehicleCol := col.New(4)
		if i < len(doc.Lines) {
			vehicleCol.Add(text.New(VehicleInfo(doc.Lines[i]), vehicleStyle))
		}
		chargeCol, amountCol := col.New(2), col.New(2)
		if i < len(doc.Charges) {
			chargeCol.Add(text.New(doc.Charges[i].Label, chargeStyle))
			amountCol.Add(text.New(FormatAmount(doc.Charges[i].Amount), amountStyle))
		}
		totalCol := col.New(4)
		if i < len(totals) {
			totalCol.Add(text.New(totals[i], totalStyle))
		}
		m.AddRows(row.New(6).Add(vehicleCol, chargeCol, amountCol, totalCol))
	}

	grandText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("TOTAL (INR)", grandText)),
			col.New(2).Add(text.New(FormatAmount(doc.TotalFreight), grandText)),
			col.New(2).Add(text.New(FormatAmount(doc.TotalAdvance), grandText)),
			col.New(2).Add(text.New(FormatAmount(doc.TotalBalance), grandText)),
		).WithStyle(pdfShade),
	)

	m.AddRows(row.New(3))
}

// addBalanceDue adds the balance due with its amount in words.
func addBalanceDue(m core.Maroto, doc *RenderedDocument) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(text.New("Total Balance Due: INR "+FormatAmount(doc.TotalBalance), props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		).WithStyle(pdfShade),
		row.New(7).Add(
			col.New(12).Add(text.New(fmt.Sprintf("(In Words: %s)", doc.BalanceInWords), props.Text{
				Size:  8,
				Style: fontstyle.BoldItalic,
				Align: align.Right,
				Color: pdfHighlight,
			})),
		).WithStyle(pdfShade),
	)

	m.AddRows(row.New(4))
}

// addBankAndTerms adds the bank details beside the payment notes.
func addBankAndTerms(m core.Maroto, profile CompanyProfile) {
	sectionLabel := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: pdfCharcoal}
	value := props.Text{Size: 7, Align: align.Left}

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New("BANK DETAILS", sectionLabel)),
			col.New(8).Add(text.New("Note:", sectionLabel)),
		),
	)

	bank := []string{
		fmtField("Name", profile.Name),
		fmtField("Bank", profile.BankName),
		fmtField("A/c No.", profile.AccountNo),
		fmtField("IFSC", profile.IFSC),
		fmtField("Branch", profile.Branch),
	}
	var notes []string
	if profile.InterestTerms != "" {
		notes = append(notes, "1) "+profile.InterestTerms)
	}
	if profile.PaymentTerms != "" {
		notes = append(notes, fmt.Sprintf("%d) %s", len(notes)+1, profile.PaymentTerms))
	}

	for i := 0; i < max(len(bank), len(notes)); i++ {
		bankCol, noteCol := col.New(4), col.New(8)
		if i < len(bank) && bank[i] != "" {
			bankCol.Add(text.New(bank[i], value))
		}
		if i < len(notes) {
			noteCol.Add(text.New(notes[i], value))
		}
		m.AddRows(row.New(8).Add(bankCol, noteCol))
	}

	m.AddRows(row.New(4))
}

// addInvoiceSignature adds the signatory block and the closing footer.
func addInvoiceSignature(m core.Maroto, profile CompanyProfile) {
	right := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(row.New(12))
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("Authorised Signatory", right))),
		row.New(6).Add(col.New(12).Add(text.New("for "+profile.Name+".", right))),
	)

	m.AddRows(row.New(8))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(text.New("Thank you for your business!", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: align.Center,
			})),
		).WithStyle(pdfShade),
	)
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}
