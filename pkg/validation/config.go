package validation

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// ConfigValidator checks the user-facing configuration of the calculators.
type ConfigValidator struct {
	OutputFormat string
	Language     string
	Currency     string
	Overrides    map[string]map[string]float64
}

// Validate returns the first hard error: an unsupported output format or an
// unparseable locale or currency.
func (cv *ConfigValidator) Validate() error {
	if err := ValidateOutputFormat(cv.OutputFormat); err != nil {
		return err
	}
	if _, err := ValidateLocale(cv.Language); err != nil {
		return err
	}
	if _, err := ValidateCurrency(cv.Currency); err != nil {
		return err
	}
	return nil
}

// ValidateAll returns warnings for override values that can never be used.
// Range checks happen when the overrides are applied to the field
// definitions.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string
	for _, slug := range slices.Sorted(maps.Keys(cv.Overrides)) {
		values := cv.Overrides[slug]
		if len(values) == 0 {
			warnings = append(warnings, fmt.Sprintf("Calculator '%s' has an empty override section", slug))
			continue
		}
		for _, key := range slices.Sorted(maps.Keys(values)) {
			if v := values[key]; math.IsNaN(v) || math.IsInf(v, 0) {
				warnings = append(warnings, fmt.Sprintf("Calculator '%s' field '%s' has non-finite default %v", slug, key, v))
			}
		}
	}
	return warnings
}
