// Package payment implements the card-entry form of the mock checkout:
// keystroke-level input masking plus full-form validation. No real payment
// provider sits behind it by design.
package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Field string

const (
	FieldCardNumber Field = "cardNumber"
	FieldExpiry     Field = "expiry"
	FieldCVV        Field = "cvv"
)

const (
	MsgInvalidCardNumber = "Please enter a valid card number (16 digits)"
	MsgInvalidExpiry     = "Invalid expiry date"
	MsgCardExpired       = "Card has expired"
	MsgInvalidCVV        = "Must be 3-4 digits"
)

var (
	nonDigitRgx = regexp.MustCompile(`\D`)
	expiryRgx   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// Errors carries one user-visible message per field; empty means the field
// passed the last validation run.
type Errors struct {
	CardNumber string `json:"cardNumber,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

func (e Errors) Empty() bool {
	return e == Errors{}
}

// Form holds the three card fields in display-formatted shape: card number
// grouped in fours, expiry with the slash inserted after two digits. The
// semantic value is always recoverable by stripping non-digits.
type Form struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	Errors     Errors `json:"errors"`
}

// Input applies one raw value to a field. Inputs exceeding the field's digit
// budget are rejected outright: the previous value stays. Editing a field
// clears its error; errors are only recomputed by Validate.
func (f *Form) Input(field Field, value string) {
	digits := nonDigitRgx.ReplaceAllString(value, "")

	switch field {
	case FieldCardNumber:
		if len(digits) > 16 {
			return
		}
		f.CardNumber = groupDigits(digits, 4)
		f.Errors.CardNumber = ""

	case FieldExpiry:
		if len(digits) > 4 {
			return
		}
		if len(digits) >= 2 {
			f.Expiry = digits[:2] + "/" + digits[2:]
		} else {
			f.Expiry = digits
		}
		f.Errors.Expiry = ""

	case FieldCVV:
		if len(digits) > 4 {
			return
		}
		f.CVV = digits
		f.Errors.CVV = ""
	}
}

// Validate runs the full-form checks against the given instant and records
// per-field messages. It is pure apart from updating f.Errors and reports
// whether every field passed.
func (f *Form) Validate(now time.Time) bool {
	errs := Errors{}

	if len(nonDigitRgx.ReplaceAllString(f.CardNumber, "")) != 16 {
		errs.CardNumber = MsgInvalidCardNumber
	}

	if !expiryRgx.MatchString(f.Expiry) {
		errs.Expiry = MsgInvalidExpiry
	} else {
		month, _ := strconv.Atoi(f.Expiry[:2])
		year, _ := strconv.Atoi(f.Expiry[3:])

		// Valid through the last instant of the expiry month.
		endOfMonth := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location()).Add(-time.Nanosecond)
		if endOfMonth.Before(now) {
			errs.Expiry = MsgCardExpired
		}
	}

	if len(f.CVV) < 3 {
		errs.CVV = MsgInvalidCVV
	}

	f.Errors = errs

	return errs.Empty()
}

func groupDigits(digits string, size int) string {
	var b strings.Builder

	for i, r := range digits {
		if i > 0 && i%size == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	return b.String()
}
