package order

import (
	"regexp"
	"strings"

	"pagsmile-checkout/internal/pagsmile"
)

var (
	digitsOnlyRegex = regexp.MustCompile(`^\d+$`)
	lettersRegex    = regexp.MustCompile(`^[A-Za-z]{2}$`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

// ValidateCustomer checks the checkout form before any gateway call.
// Every failing rule is reported, not just the first, so the client can
// show all problems at once.
func ValidateCustomer(info pagsmile.CustomerInfo) error {
	var errs []string

	if len(strings.TrimSpace(info.Name)) < 3 {
		errs = append(errs, "Name must have at least 3 characters")
	}

	if !strings.Contains(info.Email, "@") {
		errs = append(errs, "Invalid email format")
	}

	if len(info.CPF) != 11 || !digitsOnlyRegex.MatchString(info.CPF) {
		errs = append(errs, "CPF must have 11 digits")
	}

	if len(nonDigitRegex.ReplaceAllString(info.Phone, "")) < 10 {
		errs = append(errs, "Phone must have at least 10 digits")
	}

	if len(info.ZipCode) != 8 || !digitsOnlyRegex.MatchString(info.ZipCode) {
		errs = append(errs, "ZIP code must have 8 digits")
	}

	if !lettersRegex.MatchString(info.State) {
		errs = append(errs, "State must be a 2-letter code")
	}

	if len(strings.TrimSpace(info.City)) < 2 {
		errs = append(errs, "City is required")
	}

	if len(strings.TrimSpace(info.Address)) < 5 {
		errs = append(errs, "Address must have at least 5 characters")
	}

	if len(errs) > 0 {
		return &ValidationError{Messages: errs}
	}
	return nil
}
