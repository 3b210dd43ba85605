package templates

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"ptcmobile/services"
)

const documentStyles = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: Arial, sans-serif; padding: 10px; font-size: 12px; background: white; }
.container { max-width: 100%; margin: 0 auto; }
.header { text-align: center; margin-bottom: 15px; padding: 15px; background: #f0f0f0; border-radius: 8px; }
.header h1 { color: #003366; font-size: 20px; margin-bottom: 5px; }
.header p { font-size: 10px; color: #666; margin: 2px 0; }
.bill-info { display: flex; justify-content: space-between; margin-bottom: 12px; padding: 8px; background: #fff9e6; }
.bill-info div { font-weight: bold; color: #dc2626; font-size: 11px; }
.party-section { padding: 10px; border: 1px solid #000; margin-bottom: 10px; }
.party-name { font-size: 14px; font-weight: bold; margin-bottom: 5px; }
.trip-row { display: flex; justify-content: space-between; padding: 8px; border: 1px solid #000; margin-bottom: 5px; font-size: 10px; flex-wrap: wrap; }
.trip-row span { margin: 2px 5px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 12px; font-size: 10px; }
th, td { border: 1px solid #000; padding: 6px 4px; text-align: left; }
th { background: #dcdcdc; font-weight: bold; text-align: center; font-size: 9px; }
td.amount { text-align: right; }
.vehicle-info-item { margin-bottom: 6px; font-size: 9px; line-height: 1.4; }
.vehicle-info-item span { color: #dc2626; }
.total-cell { font-weight: bold; text-align: right; vertical-align: top; padding-top: 10px; }
.grand-total { background: #f0f0f0; font-weight: bold; }
.balance-due { background: #f0f0f0; padding: 10px; font-size: 12px; font-weight: bold; text-align: right; border: 1px solid #000; margin-bottom: 12px; }
.bank-terms { display: grid; grid-template-columns: 1fr 2fr; gap: 8px; margin-top: 12px; }
.bank-details, .terms { padding: 8px; border: 1px solid #000; font-size: 9px; line-height: 1.5; }
.signature-section { margin-top: 25px; text-align: right; padding-right: 10px; }
.signature-section div { margin-top: 40px; font-weight: bold; font-size: 11px; }
.footer { margin-top: 25px; padding: 12px; background: #f0f0f0; text-align: center; font-size: 9px; border-radius: 8px; }
@media (max-width: 600px) {
  body { padding: 5px; font-size: 10px; }
  th, td { padding: 4px 2px; font-size: 8px; }
  .bank-terms { grid-template-columns: 1fr; }
}
`

// InvoiceDocument renders the complete printable invoice as an HTML
// document. Every value taken from the invoice or profile is escaped and
// money is printed with two decimals.
func InvoiceDocument(doc *services.RenderedDocument, profile services.CompanyProfile) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		h.raw(`<title>`)
		h.text(services.DocumentFilename(doc, services.FormatPDF))
		h.raw(`</title><style>`)
		h.raw(documentStyles)
		h.raw(`</style></head><body><div class="container">`)

		writeCompanyHeader(h, profile)
		writeBillInfo(h, doc.Header)
		writeTripDetails(h, doc.Header)
		writeChargesTable(h, doc)

		h.raw(`<div class="balance-due">Total Balance Due: INR `)
		h.text(services.FormatAmount(doc.TotalBalance))
		h.raw(`<br><span style="font-size: 11px;">(In Words: `)
		h.text(doc.BalanceInWords)
		h.raw(`)</span></div>`)

		writeBankAndTerms(h, profile)

		h.raw(`<div class="signature-section"><div><strong>Authorised Signatory</strong><br>for `)
		h.text(profile.Name)
		h.raw(`.</div></div>`)
		h.raw(`<div class="footer"><p><strong>Thank you for your business!</strong></p></div>`)
		h.raw(`</div></body></html>`)
	})
}

// RenderMarkup returns the invoice document as an HTML string.
func RenderMarkup(ctx context.Context, doc *services.RenderedDocument, profile services.CompanyProfile) (string, error) {
	var buf bytes.Buffer
	if err := InvoiceDocument(doc, profile).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render invoice markup: %w", err)
	}
	return buf.String(), nil
}

func writeCompanyHeader(h *htmlWriter, profile services.CompanyProfile) {
	h.raw(`<div class="header"><h1>`)
	h.text(profile.Name)
	h.raw(`</h1>`)
	for _, line := range []string{profile.Tagline, profile.Address} {
		if line == "" {
			continue
		}
		h.raw(`<p>`)
		h.text(line)
		h.raw(`</p>`)
	}
	if profile.PAN != "" {
		h.raw(`<p>PAN NO.: `)
		h.text(profile.PAN)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
}

func writeBillInfo(h *htmlWriter, hd services.InvoiceHeader) {
	h.raw(`<div class="bill-info"><div>BILL NO. `)
	h.text(hd.InvoiceNo)
	h.raw(`</div><div>DATE: `)
	h.text(hd.BillDate)
	h.raw(`</div></div>`)

	h.raw(`<div class="party-section"><div class="party-name">Bill To: `)
	h.text(hd.PartyName)
	h.raw(`</div><div style="font-size: 11px;">Address: `)
	h.text(hd.PartyAddress)
	h.raw(`</div></div>`)
}

func writeTripDetails(h *htmlWriter, hd services.InvoiceHeader) {
	rows := [][][2]string{
		{{"Loading Date:", hd.LoadingDate}, {"Unloading Date:", hd.UnloadingDate}},
		{{"From:", hd.From}, {"To:", hd.To}, {"Back To:", hd.BackTo}},
	}
	for _, row := range rows {
		h.raw(`<div class="trip-row">`)
		for _, f := range row {
			h.raw(`<span><strong>`)
			h.raw(f[0])
			h.raw(`</strong> `)
			h.text(f[1])
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
	}
}

// writeChargesTable writes the combined table. The vehicle cell and the three
// total cells span every charge row.
func writeChargesTable(h *htmlWriter, doc *services.RenderedDocument) {
	span := strconv.Itoa(len(doc.Charges))

	h.raw(`<table><thead><tr>`)
	h.raw(`<th style="width: 35%;">Vehicle Information</th>`)
	h.raw(`<th style="width: 18%;">Charge Name</th>`)
	h.raw(`<th style="width: 14%;">Amount</th>`)
	h.raw(`<th style="width: 11%;">Total Freight</th>`)
	h.raw(`<th style="width: 11%;">Total Advance</th>`)
	h.raw(`<th style="width: 11%;">Balance</th>`)
	h.raw(`</tr></thead><tbody>`)

	for i, c := range doc.Charges {
		h.raw(`<tr>`)
		if i == 0 {
			h.rawf(`<td rowspan="%s" style="vertical-align: top; padding: 8px 6px;">`, span)
			for _, l := range doc.Lines {
				h.rawf(`<div class="vehicle-info-item"><strong>%d.</strong> LR: <span>`, l.SINo)
				h.text(services.OrDash(l.LRNo))
				h.raw(`</span> | Veh: <span>`)
				h.text(services.OrDash(l.VehicleNo))
				h.raw(`</span> | Cont: <span>`)
				h.text(services.OrDash(l.ContainerNo))
				h.raw(`</span></div>`)
			}
			h.raw(`</td>`)
		}
		h.raw(`<td>`)
		h.text(c.Label)
		h.raw(`</td><td class="amount">`)
		h.text(services.FormatAmount(c.Amount))
		h.raw(`</td>`)
		if i == 0 {
			for _, total := range []string{
				services.FormatAmount(doc.TotalFreight),
				services.FormatAmount(doc.TotalAdvance),
				services.FormatAmount(doc.TotalBalance),
			} {
				h.rawf(`<td rowspan="%s" class="total-cell">%s</td>`, span, templ.EscapeString(total))
			}
		}
		h.raw(`</tr>`)
	}

	h.raw(`<tr class="grand-total"><td colspan="3" style="text-align: right; padding: 8px;"><strong>TOTAL (INR)</strong></td>`)
	for _, total := range []string{
		services.FormatAmount(doc.TotalFreight),
		services.FormatAmount(doc.TotalAdvance),
		services.FormatAmount(doc.TotalBalance),
	} {
		h.raw(`<td class="amount">`)
		h.text(total)
		h.raw(`</td>`)
	}
	h.raw(`</tr></tbody></table>`)
}

func writeBankAndTerms(h *htmlWriter, profile services.CompanyProfile) {
	h.raw(`<div class="bank-terms"><div class="bank-details"><strong>BANK DETAILS</strong><br><br><strong>Bank Account:</strong><br>`)
	for _, f := range [][2]string{
		{"Name", profile.Name},
		{"Bank", profile.BankName},
		{"A/c No.", profile.AccountNo},
		{"IFSC", profile.IFSC},
		{"Branch", profile.Branch},
	} {
		if f[1] == "" {
			continue
		}
		h.raw(f[0])
		h.raw(`: `)
		h.text(f[1])
		h.raw(`<br>`)
	}
	h.raw(`</div><div class="terms"><strong>Note:</strong><br><br>`)
	n := 0
	for _, term := range []string{profile.InterestTerms, profile.PaymentTerms} {
		if term == "" {
			continue
		}
		n++
		if n > 1 {
			h.raw(`<br><br>`)
		}
		h.rawf(`%d) `, n)
		h.text(term)
	}
	h.raw(`</div></div>`)
}
