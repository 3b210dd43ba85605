package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelRenderer renders invoices as single-sheet workbooks with excelize.
type ExcelRenderer struct{}

// Format implements DocumentRenderer.
func (ExcelRenderer) Format() string { return FormatXLSX }

// Render implements DocumentRenderer.
func (ExcelRenderer) Render(ctx context.Context, doc *RenderedDocument, profile CompanyProfile) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, externalRenderError(FormatXLSX, err)
	}
	body, err := GenerateInvoiceExcel(doc, profile)
	if err != nil {
		return nil, externalRenderError(FormatXLSX, err)
	}
	return &Document{
		Filename:    DocumentFilename(doc, FormatXLSX),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Body:        body,
	}, nil
}

// InvoiceSheetName is the name of the invoice worksheet.
const InvoiceSheetName = "Invoice"

// GenerateInvoiceExcel creates the invoice workbook and returns its bytes.
// Columns A-F follow the printed table: vehicle info, charge name, amount,
// total freight, total advance, balance.
func GenerateInvoiceExcel(doc *RenderedDocument, profile CompanyProfile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := InvoiceSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]
	widths := []float64{48, 18, 14, 14, 14, 14}
	for i, c := range columns {
		if err := f.SetColWidth(sheet, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	centredStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create centred style: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	amountFmt := "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:       thinBorders(),
		CustomNumFmt: &amountFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:       thinBorders(),
		CustomNumFmt: &amountFmt,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Company and bill header ─────────────────────────────────────────

	row := 1
	mergedLine := func(value string, style int) error {
		cell := fmt.Sprintf("A%d", row)
		if err := f.MergeCell(sheet, cell, fmt.Sprintf("%s%d", lastCol, row)); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheet, cell, sanitizeExcelCell(value))
		f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, row), style)
		row++
		return nil
	}

	if err := mergedLine(profile.Name, titleStyle); err != nil {
		return nil, err
	}
	for _, line := range []string{profile.Tagline, profile.Address, fmtField("PAN NO.", profile.PAN)} {
		if line == "" {
			continue
		}
		if err := mergedLine(line, centredStyle); err != nil {
			return nil, err
		}
	}
	row++

	h := doc.Header
	pairs := [][2]string{
		{"BILL NO. " + h.InvoiceNo, "DATE: " + h.BillDate},
		{"Bill To: " + h.PartyName, "Address: " + h.PartyAddress},
		{"Loading Date: " + h.LoadingDate, "Unloading Date: " + h.UnloadingDate},
		{"From: " + h.From + " | To: " + h.To, "Back To: " + h.BackTo},
	}
	for _, p := range pairs {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(p[0]))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sanitizeExcelCell(p[1]))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), boldStyle)
		row++
	}
	row++

	// ── Charges table ───────────────────────────────────────────────────

	headers := []string{"Vehicle Information", "Charge Name", "Amount", "Total Freight", "Total Advance", "Balance"}
	for i, hd := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", columns[i], row), hd)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), headerStyle)
	row++

	first := row
	last := first + len(doc.Charges) - 1
	for i, c := range doc.Charges {
		r := first + i
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), c.Label)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), c.Amount.InexactFloat64())
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), bodyStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("C%d", r), fmt.Sprintf("C%d", r), amountStyle)
	}

	// Vehicle info and the three totals span every charge row.
	var info string
	for i, l := range doc.Lines {
		if i > 0 {
			info += "\n"
		}
		info += VehicleInfo(l)
	}
	spans := []struct {
		col   string
		value any
		style int
	}{
		{"A", sanitizeExcelCell(info), bodyStyle},
		{"D", doc.TotalFreight.InexactFloat64(), totalStyle},
		{"E", doc.TotalAdvance.InexactFloat64(), totalStyle},
		{"F", doc.TotalBalance.InexactFloat64(), totalStyle},
	}
	for _, s := range spans {
		top, bottom := fmt.Sprintf("%s%d", s.col, first), fmt.Sprintf("%s%d", s.col, last)
		if last > first {
			if err := f.MergeCell(sheet, top, bottom); err != nil {
				return nil, fmt.Errorf("merge %s: %w", top, err)
			}
		}
		f.SetCellValue(sheet, top, s.value)
		f.SetCellStyle(sheet, top, bottom, s.style)
	}
	row = last + 1

	// TOTAL (INR)
	if err := f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row)); err != nil {
		return nil, fmt.Errorf("merge total row: %w", err)
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TOTAL (INR)")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), doc.TotalFreight.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), doc.TotalAdvance.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), doc.TotalBalance.InexactFloat64())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), totalStyle)
	row += 2

	// ── Balance due, bank details and terms ─────────────────────────────

	footer := []string{
		"Total Balance Due: INR " + FormatAmount(doc.TotalBalance),
		fmt.Sprintf("(In Words: %s)", doc.BalanceInWords),
		"",
		"BANK DETAILS",
		fmtField("Name", profile.Name),
		fmtField("Bank", profile.BankName),
		fmtField("A/c No.", profile.AccountNo),
		fmtField("IFSC", profile.IFSC),
		fmtField("Branch", profile.Branch),
		"",
		"Note:",
		profile.InterestTerms,
		profile.PaymentTerms,
		"",
		"Authorised Signatory",
		"for " + profile.Name + ".",
	}
	balanceRow := fmt.Sprintf("A%d", row)
	for _, line := range footer {
		if line != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(line))
		}
		row++
	}
	f.SetCellStyle(sheet, balanceRow, balanceRow, boldStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
