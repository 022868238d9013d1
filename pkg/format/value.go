package format

import (
	"strconv"

	"github.com/iwvelando/fincalc/pkg/input"
)

// Value formats v according to the kind of quantity it holds.
func (f *Formatter) Value(kind input.Kind, v float64) string {
	switch kind {
	case input.KindCurrency:
		return f.Currency(v)
	case input.KindPercent:
		return f.Percent(v, 2)
	case input.KindYears, input.KindAge:
		return strconv.FormatFloat(v, 'f', -1, 64) + " years"
	case input.KindMonths:
		return strconv.FormatFloat(v, 'f', -1, 64) + " months"
	case input.KindToggle:
		if v >= 0.5 {
			return "On"
		}
		return "Off"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Value formats v for the default locale.
func Value(kind input.Kind, v float64) string {
	return defaultFormatter.Value(kind, v)
}
