package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ptcmobile/services"
	"ptcmobile/templates"
)

// HandleCompanySettings returns a handler that shows the company profile form.
func HandleCompanySettings(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.CompanySettingsData{
			Profile: d.profile(),
			Errors:  make(map[string]string),
		}
		return renderCompanySettings(e, data)
	}
}

// HandleCompanySettingsSave returns a handler that validates and stores the
// company profile.
func HandleCompanySettingsSave(d *InvoiceDeps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		profile := extractCompanyProfile(e)
		data := templates.CompanySettingsData{Profile: profile, Errors: make(map[string]string)}

		if err := services.SaveCompanyProfile(d.App, profile); err != nil {
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				for field, ferr := range verrs {
					data.Errors[field] = ferr.Error()
				}
				SetToast(e, ToastError, "Please fix the highlighted fields")
				return renderCompanySettings(e, data)
			}
			d.Logger.Error("company_settings: save failed", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save company profile")
		}

		d.Logger.Info("company_settings: saved", zap.String("name", profile.Name))
		SetToast(e, ToastSuccess, "Company profile saved")
		if !isHTMX(e) {
			return e.Redirect(http.StatusSeeOther, "/settings/company")
		}
		return renderCompanySettings(e, data)
	}
}

func renderCompanySettings(e *core.RequestEvent, data templates.CompanySettingsData) error {
	var component templ.Component
	if isHTMX(e) {
		component = templates.CompanySettingsForm(data)
	} else {
		component = templates.CompanySettingsPage(data)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// extractCompanyProfile reads the profile fields from the submitted form.
func extractCompanyProfile(e *core.RequestEvent) services.CompanyProfile {
	v := func(name string) string { return strings.TrimSpace(e.Request.FormValue(name)) }
	return services.CompanyProfile{
		Name:          v("name"),
		Tagline:       v("tagline"),
		Address:       v("address"),
		PAN:           v("pan"),
		BankName:      v("bank_name"),
		AccountNo:     v("account_no"),
		IFSC:          v("ifsc"),
		Branch:        v("branch"),
		InterestTerms: v("interest_terms"),
		PaymentTerms:  v("payment_terms"),
	}
}
