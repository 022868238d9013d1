// Package input models the numeric inputs of a calculator: a field definition
// with bounds and step, and a Control that keeps a slider position and a text
// box in agreement on one clamped value.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Kind describes how a field's value is presented.
type Kind string

const (
	KindCurrency Kind = "currency"
	KindPercent  Kind = "percent"
	KindYears    Kind = "years"
	KindMonths   Kind = "months"
	KindAge      Kind = "age"
	KindNumber   Kind = "number"
	KindToggle   Kind = "toggle"
	KindChoice   Kind = "choice"
	// KindText marks output that is not a number, such as a status label.
	KindText Kind = "text"
)

var (
	// ErrNotNumeric is returned for text that does not parse as a number.
	ErrNotNumeric = errors.New("value is not numeric")
	// ErrNotFinite is returned for NaN and infinite values.
	ErrNotFinite = errors.New("value is not finite")
)

// Choice is an allowed value of a discrete field.
type Choice struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// Field is the definition of one calculator input.
type Field struct {
	Key         string   `json:"key" yaml:"key"`
	Label       string   `json:"label" yaml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Min         float64  `json:"min" yaml:"min"`
	Max         float64  `json:"max" yaml:"max"`
	Step        float64  `json:"step" yaml:"step"`
	Default     float64  `json:"default" yaml:"default"`
	Choices     []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Validate reports definition errors: inverted bounds, a non-positive step,
// or a default outside the bounds.
func (f Field) Validate() error {
	if f.Key == "" {
		return errors.New("field key is required")
	}
	if f.Min > f.Max {
		return fmt.Errorf("field %s: min %v exceeds max %v", f.Key, f.Min, f.Max)
	}
	if f.Kind != KindChoice && f.Kind != KindToggle && f.Step <= 0 {
		return fmt.Errorf("field %s: step must be positive, got %v", f.Key, f.Step)
	}
	if f.Kind == KindChoice && len(f.Choices) == 0 {
		return fmt.Errorf("field %s: choice field has no choices", f.Key)
	}
	if f.Default < f.Min || f.Default > f.Max {
		return fmt.Errorf("field %s: default %v outside [%v, %v]", f.Key, f.Default, f.Min, f.Max)
	}
	return nil
}

// Clamp bounds v to the field's range. Discrete fields snap to the nearest
// allowed value.
func (f Field) Clamp(v float64) float64 {
	switch f.Kind {
	case KindChoice:
		return f.nearestChoice(v)
	case KindToggle:
		if v >= 0.5 {
			return 1
		}
		return 0
	}
	return mathutil.Clamp(v, f.Min, f.Max)
}

// Snap moves v onto the slider grid Min + k*Step and then clamps it.
func (f Field) Snap(v float64) float64 {
	if f.Kind == KindChoice || f.Kind == KindToggle || f.Step <= 0 {
		return f.Clamp(v)
	}
	steps := math.Round((v - f.Min) / f.Step)
	snapped := f.Min + steps*f.Step
	// Trim the binary noise that step multiplication leaves behind.
	snapped = math.Round(snapped*1e9) / 1e9
	return f.Clamp(snapped)
}

func (f Field) nearestChoice(v float64) float64 {
	if len(f.Choices) == 0 {
		return mathutil.Clamp(v, f.Min, f.Max)
	}
	best := f.Choices[0].Value
	for _, c := range f.Choices[1:] {
		if math.Abs(c.Value-v) < math.Abs(best-v) {
			best = c.Value
		}
	}
	return best
}

// Parse turns user text into a number. Currency symbols, grouping commas,
// whitespace, a trailing percent sign and the field's unit are ignored, and
// choice fields also accept a choice label. The result is not clamped.
func (f Field) Parse(text string) (float64, error) {
	s := strings.TrimSpace(text)

	if f.Kind == KindToggle {
		switch strings.ToLower(s) {
		case "on", "true", "yes", "y", "1":
			return 1, nil
		case "off", "false", "no", "n", "0":
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %q: %w", f.Key, text, ErrNotNumeric)
	}
	if f.Kind == KindChoice {
		for _, c := range f.Choices {
			if strings.EqualFold(c.Label, s) {
				return c.Value, nil
			}
		}
	}

	s = stripDecoration(s, f.Unit)
	v, err := strconv.ParseFloat(s, 64)
	switch {
	case s == "" || (err != nil && !errors.Is(err, strconv.ErrRange)):
		return 0, fmt.Errorf("%s: %q: %w", f.Key, text, ErrNotNumeric)
	case err != nil || !mathutil.IsFinite(v):
		return 0, fmt.Errorf("%s: %q: %w", f.Key, text, ErrNotFinite)
	}
	return v, nil
}

var currencyPrefixes = []string{"₹", "$", "Rs.", "Rs", "INR"}

func stripDecoration(s, unit string) string {
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	if unit != "" {
		s = strings.TrimSpace(strings.TrimSuffix(s, unit))
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", "")
	return strings.Join(strings.Fields(s), "")
}
