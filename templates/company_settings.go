package templates

import (
	"context"

	"github.com/a-h/templ"

	"ptcmobile/services"
)

// CompanySettingsData is the company profile form state.
type CompanySettingsData struct {
	Profile services.CompanyProfile
	Errors  map[string]string
}

type profileField struct {
	name  string
	label string
	value func(p services.CompanyProfile) string
	long  bool
}

var profileFields = []profileField{
	{"name", "Company Name", func(p services.CompanyProfile) string { return p.Name }, false},
	{"tagline", "Tagline", func(p services.CompanyProfile) string { return p.Tagline }, false},
	{"address", "Address", func(p services.CompanyProfile) string { return p.Address }, true},
	{"pan", "PAN No.", func(p services.CompanyProfile) string { return p.PAN }, false},
	{"bank_name", "Bank", func(p services.CompanyProfile) string { return p.BankName }, false},
	{"account_no", "Account No.", func(p services.CompanyProfile) string { return p.AccountNo }, false},
	{"ifsc", "IFSC", func(p services.CompanyProfile) string { return p.IFSC }, false},
	{"branch", "Branch", func(p services.CompanyProfile) string { return p.Branch }, false},
	{"interest_terms", "Interest Terms", func(p services.CompanyProfile) string { return p.InterestTerms }, true},
	{"payment_terms", "Payment Terms", func(p services.CompanyProfile) string { return p.PaymentTerms }, true},
}

// CompanySettingsPage is the full settings page.
func CompanySettingsPage(data CompanySettingsData) templ.Component {
	return Page("Company Settings", CompanySettingsForm(data))
}

// CompanySettingsForm edits the letterhead, bank and terms printed on every
// invoice.
func CompanySettingsForm(data CompanySettingsData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<form id="company-settings" class="card" hx-post="/settings/company" hx-target="#company-settings" hx-swap="outerHTML">`)
		h.raw(`<h3>Company Profile</h3>`)
		if msg, ok := data.Errors["_form"]; ok {
			h.raw(`<p class="error">`)
			h.text(msg)
			h.raw(`</p>`)
		}
		h.raw(`<div class="grid">`)
		for _, f := range profileFields {
			h.raw(`<div><label for="`)
			h.raw(f.name)
			h.raw(`">`)
			h.text(f.label)
			h.raw(`</label>`)
			if f.long {
				h.raw(`<textarea id="`)
				h.raw(f.name)
				h.raw(`" name="`)
				h.raw(f.name)
				h.raw(`" rows="3">`)
				h.text(f.value(data.Profile))
				h.raw(`</textarea>`)
			} else {
				h.raw(`<input id="`)
				h.raw(f.name)
				h.raw(`" name="`)
				h.raw(f.name)
				h.raw(`" value="`)
				h.text(f.value(data.Profile))
				h.raw(`">`)
			}
			if msg, ok := data.Errors[f.name]; ok {
				h.raw(`<p class="error">`)
				h.text(msg)
				h.raw(`</p>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div><div class="actions" style="margin-top: 12px;"><button type="submit">Save</button></div></form>`)
	})
}
