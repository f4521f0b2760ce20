// Package upi holds the payment request model, the form layer that validates
// user input into it, and the builder for UPI deep links.
package upi

import "strconv"

// PaymentRequest is a validated set of UPI payment parameters. Values are
// immutable once built; every form submission produces a fresh one.
type PaymentRequest struct {
	payeeAddress string
	payeeName    string
	amount       float64
	hasAmount    bool
	remark       string
}

// NewPaymentRequest validates the given fields with the same rules as the
// form layer. A nil amount means the payer enters the amount.
func NewPaymentRequest(payeeAddress, payeeName string, amount *float64, remark string) (PaymentRequest, error) {
	f := Form{VPA: payeeAddress, Name: payeeName, Remark: remark}
	if amount != nil {
		f.Amount = FormatAmount(*amount)
	}
	return f.Validate()
}

// PayeeAddress returns the VPA the payment goes to.
func (r PaymentRequest) PayeeAddress() string { return r.payeeAddress }

// PayeeName returns the display name of the payee.
func (r PaymentRequest) PayeeName() string { return r.payeeName }

// Amount returns the fixed amount and whether one was set.
func (r PaymentRequest) Amount() (float64, bool) { return r.amount, r.hasAmount }

// HasAmount reports whether the request carries a fixed amount.
func (r PaymentRequest) HasAmount() bool { return r.hasAmount }

// Remark returns the transaction note, empty when absent.
func (r PaymentRequest) Remark() string { return r.remark }

// HasRemark reports whether a transaction note is set.
func (r PaymentRequest) HasRemark() bool { return r.remark != "" }

// IsZero reports whether r is the zero value, i.e. was never validated.
func (r PaymentRequest) IsZero() bool { return r.payeeAddress == "" && r.payeeName == "" }

// FormatAmount renders an amount as a plain decimal without currency symbol
// or exponent: 250 -> "250", 12.5 -> "12.5".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ScanCaption is the first caption line printed under the QR code.
func ScanCaption(r PaymentRequest) string {
	return "Scan to pay " + r.payeeName
}

// AmountCaption is the second caption line, empty when no amount is set.
func AmountCaption(r PaymentRequest) string {
	if !r.hasAmount {
		return ""
	}
	return "Amount: " + RupeeSign + FormatAmount(r.amount)
}

// RupeeSign is the Indian rupee currency symbol used in captions.
const RupeeSign = "₹"
