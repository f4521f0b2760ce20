package upi

import (
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRemarkLength is the longest remark accepted, in characters.
const MaxRemarkLength = 15

// Form is the raw input collected from the user. Amount stays text so an
// empty field can be told apart from zero.
type Form struct {
	VPA    string `form:"vpa" json:"vpa" validate:"required"`
	Name   string `form:"name" json:"name" validate:"required"`
	Amount string `form:"amount" json:"amount" validate:"omitempty,upi_amount"`
	Remark string `form:"remark" json:"remark" validate:"omitempty,max=15"`
}

// ValidationErrors maps a form field name to the message shown next to it.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[f])
	}
	return "invalid payment form: " + strings.Join(msgs, "; ")
}

var messages = map[string]string{
	"vpa":    "VPA is required",
	"name":   "Name is required",
	"amount": "Amount must be greater than 0",
	"remark": "Remark must be under 15 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("upi_amount", validAmount); err != nil {
		panic(err)
	}
	return v
}

func validAmount(fl validator.FieldLevel) bool {
	_, err := parseAmount(fl.Field().String())
	return err == nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// Validate trims the input, checks it and returns the resulting request.
// On failure the error is a ValidationErrors keyed by form field name.
func (f Form) Validate() (PaymentRequest, error) {
	in := Form{
		VPA:    strings.TrimSpace(f.VPA),
		Name:   strings.TrimSpace(f.Name),
		Amount: strings.TrimSpace(f.Amount),
		Remark: f.Remark,
	}

	if err := validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return PaymentRequest{}, err
		}
		out := make(ValidationErrors, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = messages[fe.Field()]
		}
		return PaymentRequest{}, out
	}

	req := PaymentRequest{
		payeeAddress: in.VPA,
		payeeName:    in.Name,
		remark:       in.Remark,
	}
	if in.Amount != "" {
		// already checked by upi_amount
		req.amount, _ = parseAmount(in.Amount)
		req.hasAmount = true
	}
	return req, nil
}
