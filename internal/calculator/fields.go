package calculator

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/input"
)

func currencyField(key, label string, lo, hi, step, def float64) input.Field {
	return input.Field{Key: key, Label: label, Kind: input.KindCurrency, Unit: "₹", Min: lo, Max: hi, Step: step, Default: def}
}

func percentField(key, label string, lo, hi, step, def float64) input.Field {
	return input.Field{Key: key, Label: label, Kind: input.KindPercent, Unit: "%", Min: lo, Max: hi, Step: step, Default: def}
}

func yearsField(key, label string, lo, hi, def float64) input.Field {
	return input.Field{Key: key, Label: label, Kind: input.KindYears, Unit: "years", Min: lo, Max: hi, Step: 1, Default: def}
}

func ageField(key, label string, lo, hi, def float64) input.Field {
	return input.Field{Key: key, Label: label, Kind: input.KindAge, Unit: "years", Min: lo, Max: hi, Step: 1, Default: def}
}

func toggleField(key, label string, on bool) input.Field {
	f := input.Field{Key: key, Label: label, Kind: input.KindToggle, Min: 0, Max: 1, Step: 1}
	if on {
		f.Default = 1
	}
	return f
}

// choiceField builds a discrete field whose choices are labelled with unit.
func choiceField(key, label, unit string, def float64, values ...float64) input.Field {
	f := input.Field{Key: key, Label: label, Kind: input.KindChoice, Unit: unit, Default: def}
	for i, v := range values {
		f.Choices = append(f.Choices, input.Choice{Value: v, Label: fmt.Sprintf("%g %s", v, unit)})
		if i == 0 || v < f.Min {
			f.Min = v
		}
		if i == 0 || v > f.Max {
			f.Max = v
		}
	}
	return f
}

func yearLabel(year int) string {
	return fmt.Sprintf("Year %d", year)
}

func monthLabel(month int) string {
	return fmt.Sprintf("Month %d", month)
}
