package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Calculator errors.
var (
	ErrIndexOutOfRange = errors.New("line index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrDerivedField    = errors.New("field is derived and cannot be set")
)

// HeaderField names an editable invoice header field.
type HeaderField string

const (
	HeaderInvoiceNo     HeaderField = "invoiceNo"
	HeaderBillDate      HeaderField = "billDate"
	HeaderPartyName     HeaderField = "partyName"
	HeaderPartyAddress  HeaderField = "partyAddress"
	HeaderFrom          HeaderField = "from"
	HeaderTo            HeaderField = "to"
	HeaderBackTo        HeaderField = "backTo"
	HeaderLoadingDate   HeaderField = "loadingDate"
	HeaderUnloadingDate HeaderField = "unloadingDate"
	HeaderCommission    HeaderField = "commission"
)

// HeaderFields lists the header fields in form order.
var HeaderFields = []HeaderField{
	HeaderInvoiceNo, HeaderBillDate, HeaderPartyName,
	HeaderLoadingDate, HeaderUnloadingDate, HeaderFrom, HeaderTo, HeaderBackTo,
	HeaderPartyAddress,
}

// LineField names a field of a vehicle line.
type LineField string

const (
	LineLRNo             LineField = "lrNo"
	LineVehicleNo        LineField = "vehicleNo"
	LineContainerNo      LineField = "containerNo"
	LineFreight          LineField = "freight"
	LineUnloadingCharges LineField = "unloadingCharges"
	LineDetention        LineField = "detention"
	LineWeightCharges    LineField = "weightCharges"
	LineOthers           LineField = "others"
	LineCommission       LineField = "commission"
	LineAdvance          LineField = "advance"
	LineTotalFreight     LineField = "totalFreight"
	LineBalance          LineField = "balance"
)

// IdentifierFields are the free-text fields of a line.
var IdentifierFields = []LineField{LineLRNo, LineVehicleNo, LineContainerNo}

// AmountFields are the charge fields followed by advance. Changing any of
// them recomputes the line's total and balance.
var AmountFields = []LineField{
	LineFreight, LineUnloadingCharges, LineDetention, LineWeightCharges,
	LineOthers, LineCommission, LineAdvance,
}

// InvoiceHeader holds the bill and trip details. Values are stored exactly as
// typed; Commission is derived from the lines.
type InvoiceHeader struct {
	InvoiceNo     string `json:"invoiceNo"`
	BillDate      string `json:"billDate"`
	PartyName     string `json:"partyName"`
	PartyAddress  string `json:"partyAddress"`
	From          string `json:"from"`
	To            string `json:"to"`
	BackTo        string `json:"backTo"`
	LoadingDate   string `json:"loadingDate"`
	UnloadingDate string `json:"unloadingDate"`
	Commission    string `json:"commission"`
}

// VehicleLine is one transported vehicle on the invoice.
type VehicleLine struct {
	LRNo             string `json:"lrNo"`
	VehicleNo        string `json:"vehicleNo"`
	ContainerNo      string `json:"containerNo"`
	Freight          string `json:"freight"`
	UnloadingCharges string `json:"unloadingCharges"`
	Detention        string `json:"detention"`
	WeightCharges    string `json:"weightCharges"`
	Others           string `json:"others"`
	Commission       string `json:"commission"`
	TotalFreight     string `json:"totalFreight"`
	Advance          string `json:"advance"`
	Balance          string `json:"balance"`
}

// Invoice is the editable invoice: a header plus vehicle lines in print order.
type Invoice struct {
	Header InvoiceHeader `json:"header"`
	Lines  []VehicleLine `json:"vehicles"`
}

// InvoiceTotals are the running totals shown under the entry form.
type InvoiceTotals struct {
	TotalFreight    decimal.Decimal
	TotalCommission decimal.Decimal
	TotalAdvance    decimal.Decimal
	TotalBalance    decimal.Decimal
}

// NewInvoice returns a blank invoice dated billDate with one zeroed line.
func NewInvoice(billDate time.Time) *Invoice {
	inv := &Invoice{
		Header: InvoiceHeader{
			InvoiceNo: "1",
			BillDate:  billDate.Format(time.DateOnly),
		},
	}
	inv.AddLine()
	return inv
}

// SampleInvoice returns the sample Sahil Roadways trip used for demos.
func SampleInvoice() *Invoice {
	inv := &Invoice{
		Header: InvoiceHeader{
			InvoiceNo:     "1",
			BillDate:      time.Now().Format(time.DateOnly),
			PartyName:     "SAHIL ROADWAYS",
			PartyAddress:  "KALAMBOLI",
			From:          "IMPEX",
			To:            "BHILAD",
			BackTo:        "PANINDIA",
			LoadingDate:   "2024-08-16",
			UnloadingDate: "2024-08-18",
		},
		Lines: []VehicleLine{{
			LRNo:             "10886",
			VehicleNo:        "MH 43 Y 7655",
			ContainerNo:      "BMOU-6382983",
			Freight:          "28000",
			UnloadingCharges: "4602",
			Detention:        "0",
			WeightCharges:    "0",
			Others:           "0",
			Commission:       "500",
			Advance:          "26000",
		}},
	}
	inv.Lines[0].recompute()
	inv.RecomputeHeaderCommission()
	return inv
}

// SetHeaderField stores value verbatim in the named header field.
func (inv *Invoice) SetHeaderField(field HeaderField, value string) error {
	switch field {
	case HeaderInvoiceNo:
		inv.Header.InvoiceNo = value
	case HeaderBillDate:
		inv.Header.BillDate = value
	case HeaderPartyName:
		inv.Header.PartyName = value
	case HeaderPartyAddress:
		inv.Header.PartyAddress = value
	case HeaderFrom:
		inv.Header.From = value
	case HeaderTo:
		inv.Header.To = value
	case HeaderBackTo:
		inv.Header.BackTo = value
	case HeaderLoadingDate:
		inv.Header.LoadingDate = value
	case HeaderUnloadingDate:
		inv.Header.UnloadingDate = value
	case HeaderCommission:
		return fmt.Errorf("header %q: %w", field, ErrDerivedField)
	default:
		return fmt.Errorf("header %q: %w", field, ErrUnknownField)
	}
	return nil
}

// HeaderValue returns the stored value of a header field.
func (inv *Invoice) HeaderValue(field HeaderField) string {
	switch field {
	case HeaderInvoiceNo:
		return inv.Header.InvoiceNo
	case HeaderBillDate:
		return inv.Header.BillDate
	case HeaderPartyName:
		return inv.Header.PartyName
	case HeaderPartyAddress:
		return inv.Header.PartyAddress
	case HeaderFrom:
		return inv.Header.From
	case HeaderTo:
		return inv.Header.To
	case HeaderBackTo:
		return inv.Header.BackTo
	case HeaderLoadingDate:
		return inv.Header.LoadingDate
	case HeaderUnloadingDate:
		return inv.Header.UnloadingDate
	case HeaderCommission:
		return inv.Header.Commission
	}
	return ""
}

// SetLineField stores value in a field of the line at index. Amount fields
// trigger recomputation of the line total and balance.
func (inv *Invoice) SetLineField(index int, field LineField, value string) error {
	if index < 0 || index >= len(inv.Lines) {
		return fmt.Errorf("line %d of %d: %w", index, len(inv.Lines), ErrIndexOutOfRange)
	}
	line := &inv.Lines[index]

	ptr := line.field(field)
	if ptr == nil {
		if field == LineTotalFreight || field == LineBalance {
			return fmt.Errorf("line field %q: %w", field, ErrDerivedField)
		}
		return fmt.Errorf("line field %q: %w", field, ErrUnknownField)
	}
	*ptr = value

	if slices.Contains(AmountFields, field) {
		line.recompute()
	}
	inv.RecomputeHeaderCommission()
	return nil
}

// AddLine appends a line. It copies the last line's amounts as a starting
// point and leaves the identifiers blank.
func (inv *Invoice) AddLine() {
	if n := len(inv.Lines); n > 0 {
		next := inv.Lines[n-1]
		next.LRNo = ""
		next.VehicleNo = ""
		next.ContainerNo = ""
		inv.Lines = append(inv.Lines, next)
	} else {
		inv.Lines = append(inv.Lines, VehicleLine{
			Freight:          "0.00",
			UnloadingCharges: "0.00",
			Detention:        "0.00",
			WeightCharges:    "0.00",
			Others:           "0.00",
			Commission:       "0.00",
			TotalFreight:     "0.00",
			Advance:          "0.00",
			Balance:          "0.00",
		})
	}
	inv.RecomputeHeaderCommission()
}

// RemoveLine deletes the line at index. An invoice always keeps one line, so
// removal is skipped (false, nil) when only one remains.
func (inv *Invoice) RemoveLine(index int) (bool, error) {
	if len(inv.Lines) <= 1 {
		return false, nil
	}
	if index < 0 || index >= len(inv.Lines) {
		return false, fmt.Errorf("line %d of %d: %w", index, len(inv.Lines), ErrIndexOutOfRange)
	}
	inv.Lines = append(inv.Lines[:index], inv.Lines[index+1:]...)
	inv.RecomputeHeaderCommission()
	return true, nil
}

// RecomputeHeaderCommission sets the header commission to the sum of the
// line commissions.
func (inv *Invoice) RecomputeHeaderCommission() {
	sum := decimal.Zero
	for _, l := range inv.Lines {
		sum = sum.Add(ParseAmount(l.Commission))
	}
	inv.Header.Commission = FormatAmount(RoundAmount(sum))
}

// Totals sums the per-line values for the entry form summary.
func (inv *Invoice) Totals() InvoiceTotals {
	var t InvoiceTotals
	for _, l := range inv.Lines {
		t.TotalFreight = t.TotalFreight.Add(ParseAmount(l.TotalFreight))
		t.TotalAdvance = t.TotalAdvance.Add(ParseAmount(l.Advance))
		t.TotalBalance = t.TotalBalance.Add(ParseAmount(l.Balance))
	}
	t.TotalCommission = ParseAmount(inv.Header.Commission)
	t.TotalFreight = RoundAmount(t.TotalFreight)
	t.TotalAdvance = RoundAmount(t.TotalAdvance)
	t.TotalBalance = RoundAmount(t.TotalBalance)
	return t
}

// Clone returns a deep copy.
func (inv *Invoice) Clone() *Invoice {
	c := &Invoice{Header: inv.Header}
	c.Lines = append([]VehicleLine(nil), inv.Lines...)
	return c
}

// Value returns the stored value of a line field.
func (l VehicleLine) Value(field LineField) string {
	switch field {
	case LineTotalFreight:
		return l.TotalFreight
	case LineBalance:
		return l.Balance
	}
	if p := l.field(field); p != nil {
		return *p
	}
	return ""
}

// field maps an editable field name to its storage.
func (l *VehicleLine) field(field LineField) *string {
	switch field {
	case LineLRNo:
		return &l.LRNo
	case LineVehicleNo:
		return &l.VehicleNo
	case LineContainerNo:
		return &l.ContainerNo
	case LineFreight:
		return &l.Freight
	case LineUnloadingCharges:
		return &l.UnloadingCharges
	case LineDetention:
		return &l.Detention
	case LineWeightCharges:
		return &l.WeightCharges
	case LineOthers:
		return &l.Others
	case LineCommission:
		return &l.Commission
	case LineAdvance:
		return &l.Advance
	}
	return nil
}

// recompute derives TotalFreight and Balance from the charges and advance.
func (l *VehicleLine) recompute() {
	total := sumAmounts(l.Freight, l.UnloadingCharges, l.Detention, l.WeightCharges, l.Others, l.Commission)
	balance := total.Sub(ParseAmount(l.Advance))
	l.TotalFreight = FormatAmount(RoundAmount(total))
	l.Balance = FormatAmount(RoundAmount(balance))
}
