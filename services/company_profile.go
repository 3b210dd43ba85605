package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// CompanyProfilesCollection holds the single issuing-company record.
const CompanyProfilesCollection = "company_profiles"

// CompanyProfile is the issuing company printed on every invoice: the header
// block, bank details, payment terms and signature.
type CompanyProfile struct {
	Name          string `json:"name" mapstructure:"name"`
	Tagline       string `json:"tagline" mapstructure:"tagline"`
	Address       string `json:"address" mapstructure:"address"`
	PAN           string `json:"pan" mapstructure:"pan"`
	BankName      string `json:"bankName" mapstructure:"bank_name"`
	AccountNo     string `json:"accountNo" mapstructure:"account_no"`
	IFSC          string `json:"ifsc" mapstructure:"ifsc"`
	Branch        string `json:"branch" mapstructure:"branch"`
	InterestTerms string `json:"interestTerms" mapstructure:"interest_terms"`
	PaymentTerms  string `json:"paymentTerms" mapstructure:"payment_terms"`
}

// DefaultCompanyProfile returns Palak Transport Corp's details.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:          "PALAK TRANSPORT CORP",
		Tagline:       "Transport & Logistics Services",
		Address:       "KALAMBOLI, MAHARASHTRA",
		PAN:           "AWWPP1314Q",
		BankName:      "HDFC BANK LTD.",
		AccountNo:     "50200044714511",
		IFSC:          "HDFC0002822",
		Branch:        "KALAMBOLI",
		InterestTerms: "12% Interest will be charged if the payment of this bill is not made within 15 days from the date of bill.",
		PaymentTerms:  `You are requested to make payment to this bill by cross or order cheque in favour of "PALAK TRANSPORT CORP"`,
	}
}

// Validate checks the fields an invoice cannot be printed without.
func (p CompanyProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&p.PAN, validation.Length(0, 20)),
		validation.Field(&p.IFSC, validation.Length(0, 20)),
	)
}

// profileFields maps record field names to profile values.
func (p *CompanyProfile) profileFields() map[string]*string {
	return map[string]*string{
		"name":           &p.Name,
		"tagline":        &p.Tagline,
		"address":        &p.Address,
		"pan":            &p.PAN,
		"bank_name":      &p.BankName,
		"account_no":     &p.AccountNo,
		"ifsc":           &p.IFSC,
		"branch":         &p.Branch,
		"interest_terms": &p.InterestTerms,
		"payment_terms":  &p.PaymentTerms,
	}
}

// CompanyProfileFieldNames lists the record fields of a company profile.
func CompanyProfileFieldNames() []string {
	return []string{
		"name", "tagline", "address", "pan", "bank_name", "account_no",
		"ifsc", "branch", "interest_terms", "payment_terms",
	}
}

// CompanyProfileFromRecord reads a company_profiles record.
func CompanyProfileFromRecord(rec *core.Record) CompanyProfile {
	var p CompanyProfile
	for name, ptr := range p.profileFields() {
		*ptr = rec.GetString(name)
	}
	return p
}

// ApplyToRecord copies the profile onto rec.
func (p CompanyProfile) ApplyToRecord(rec *core.Record) {
	for name, ptr := range p.profileFields() {
		rec.Set(name, *ptr)
	}
}

// findCompanyProfileRecord returns the first company_profiles record, or nil
// when none exists.
func findCompanyProfileRecord(app *pocketbase.PocketBase) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(CompanyProfilesCollection)
	if err != nil {
		return nil, fmt.Errorf("company profiles collection: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "id != ''", "created", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("query company profile: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// LoadCompanyProfile returns the stored company profile, or fallback when
// no record exists or it cannot be read.
func LoadCompanyProfile(app *pocketbase.PocketBase, fallback CompanyProfile) CompanyProfile {
	rec, err := findCompanyProfileRecord(app)
	if err != nil {
		zap.L().Warn("company_profile: load failed, using fallback", zap.Error(err))
		return fallback
	}
	if rec == nil {
		return fallback
	}
	return CompanyProfileFromRecord(rec)
}

// SaveCompanyProfile validates p and stores it, updating the existing record
// when there is one.
func SaveCompanyProfile(app *pocketbase.PocketBase, p CompanyProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	rec, err := findCompanyProfileRecord(app)
	if err != nil {
		return err
	}
	if rec == nil {
		col, err := app.FindCollectionByNameOrId(CompanyProfilesCollection)
		if err != nil {
			return fmt.Errorf("company profiles collection: %w", err)
		}
		rec = core.NewRecord(col)
	}

	p.ApplyToRecord(rec)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("save company profile: %w", err)
	}
	return nil
}
