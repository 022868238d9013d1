// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/fincalc/pkg/constants"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatPDF,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return fmt.Errorf("expected output format of %s, got %q",
			strings.Join(OutputFormats, ", "), format)
	}
	return nil
}

// ValidateLocale checks that tag is a well-formed BCP 47 language tag.
func ValidateLocale(tag string) (language.Tag, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	return parsed, nil
}

// ValidateCurrency checks that code is a recognized ISO 4217 currency code.
func ValidateCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	return unit, nil
}
