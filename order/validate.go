package order

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is a field-local validation failure. It blocks step advancement
// only for the owning field and is rendered inline next to it; it never
// aborts the flow.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("order: field %s: %s", e.Field, e.Reason)
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// digits strips every non-digit rune.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePostalCode reduces a postal code to its 8 digits ("01310-100" and
// "01310100" normalize identically). Returns "" when the input cannot be a
// postal code.
func NormalizePostalCode(s string) string {
	d := digits(s)
	if len(d) != 8 {
		return ""
	}
	return d
}

// ValidateCustomer checks every customer field and returns the failures.
// An empty slice means the customer gate is open.
func ValidateCustomer(c Customer) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Reason: "required"})
	}
	if !emailRe.MatchString(c.Email) {
		errs = append(errs, FieldError{Field: "email", Reason: "malformed email"})
	}
	if d := digits(c.Phone); len(d) < 10 || len(d) > 11 {
		errs = append(errs, FieldError{Field: "phone", Reason: "expected 10 or 11 digits"})
	}
	if !validTaxID(c.TaxID) {
		errs = append(errs, FieldError{Field: "taxId", Reason: "invalid tax id"})
	}
	return errs
}

// ValidateAddress checks the delivery address. The postal code must be
// well-formed and the fields a courier needs must be present. The street
// number may be empty only when explicitly marked unset by the buyer — an
// empty number here is reported, not silently accepted.
func ValidateAddress(a Address) []FieldError {
	var errs []FieldError
	if NormalizePostalCode(a.PostalCode) == "" {
		errs = append(errs, FieldError{Field: "postalCode", Reason: "expected 8 digits"})
	}
	if strings.TrimSpace(a.Street) == "" {
		errs = append(errs, FieldError{Field: "street", Reason: "required"})
	}
	if strings.TrimSpace(a.City) == "" {
		errs = append(errs, FieldError{Field: "city", Reason: "required"})
	}
	if strings.TrimSpace(a.State) == "" {
		errs = append(errs, FieldError{Field: "state", Reason: "required"})
	}
	if a.NumberUnset() {
		errs = append(errs, FieldError{Field: "number", Reason: "required"})
	}
	return errs
}

// validTaxID validates a CPF: 11 digits with the two-digit verifier checksum,
// rejecting the all-same-digit degenerate inputs.
func validTaxID(s string) bool {
	d := digits(s)
	if len(d) != 11 {
		return false
	}
	same := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	if cpfDigit(d, 9, 10) != int(d[9]-'0') {
		return false
	}
	return cpfDigit(d, 10, 11) == int(d[10]-'0')
}

// cpfDigit computes verifier digit at position pos using weights starting
// at weight down to 2.
func cpfDigit(d string, pos, weight int) int {
	sum := 0
	for i := 0; i < pos; i++ {
		sum += int(d[i]-'0') * (weight - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		r = 0
	}
	return r
}
