// Package calculator defines the calculators and the page that recomputes a
// calculator's result whenever one of its inputs changes.
package calculator

import (
	"errors"
	"maps"
	"math"

	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
)

var (
	// ErrUnknownCalculator is returned for a slug that is not registered.
	ErrUnknownCalculator = errors.New("unknown calculator")
	// ErrUnknownField is returned for a key the calculator does not define.
	ErrUnknownField = errors.New("unknown field")
)

// Calculator turns clamped input values into a result. Compute must be a
// pure function of its input.
type Calculator interface {
	Slug() string
	Title() string
	Description() string
	Fields() []input.Field
	Compute(v Values) Result
}

// Linker is implemented by calculators whose fields depend on each other.
// Link receives the key that changed ("" after a bulk update) and rewrites
// dependent values in place.
type Linker interface {
	Link(changed string, v Values)
}

// Bounder is implemented by calculators whose field ranges depend on other
// values.
type Bounder interface {
	Bounds(v Values) map[string]Range
}

// Localizer is implemented by calculators whose results embed formatted
// amounts in text, such as status cards and notes.
type Localizer interface {
	ComputeIn(f *format.Formatter, v Values) Result
}

// ComputeIn computes c with f for any text the result carries.
func ComputeIn(c Calculator, f *format.Formatter, v Values) Result {
	if l, ok := c.(Localizer); ok {
		return l.ComputeIn(f, v)
	}
	return c.Compute(v)
}

// Range is a dynamic [Min, Max] for one field.
type Range struct {
	Min float64
	Max float64
}

// Values maps field keys to their committed values.
type Values map[string]float64

// Get returns the value for key, or zero.
func (v Values) Get(key string) float64 {
	return v[key]
}

// Int returns the value for key rounded to the nearest integer.
func (v Values) Int(key string) int {
	return int(math.Round(v[key]))
}

// Bool reports whether a toggle value is on.
func (v Values) Bool(key string) bool {
	return v[key] >= 0.5
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	return maps.Clone(v)
}

// Defaults returns the default value of every field.
func Defaults(c Calculator) Values {
	fields := c.Fields()
	values := make(Values, len(fields))
	for _, f := range fields {
		values[f.Key] = f.Clamp(f.Default)
	}
	return values
}

// FieldByKey finds a field definition.
func FieldByKey(c Calculator, key string) (input.Field, bool) {
	for _, f := range c.Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return input.Field{}, false
}
