package services

import (
	"encoding/json"
	"fmt"
	"io"
)

// Recompute derives every line's total and balance and the header
// commission from the stored charges.
func (inv *Invoice) Recompute() {
	for i := range inv.Lines {
		inv.Lines[i].recompute()
	}
	inv.RecomputeHeaderCommission()
}

// DecodeInvoice reads an invoice in its JSON form. Derived values in the
// input are ignored and recomputed.
func DecodeInvoice(r io.Reader) (*Invoice, error) {
	var inv Invoice
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	if len(inv.Lines) == 0 {
		return nil, ErrInvalidModel
	}
	inv.Recompute()
	return &inv, nil
}
