package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loanField() Field {
	return Field{
		Key:     "principal",
		Label:   "Loan Amount",
		Kind:    KindCurrency,
		Min:     50000,
		Max:     5000000,
		Step:    10000,
		Default: 500000,
	}
}

func rateField() Field {
	return Field{Key: "rate", Label: "Interest Rate", Kind: KindPercent, Unit: "%", Min: 5, Max: 25, Step: 0.1, Default: 10}
}

func tenureField() Field {
	return Field{
		Key:     "term",
		Label:   "Loan Term",
		Kind:    KindChoice,
		Unit:    "years",
		Min:     5,
		Max:     30,
		Default: 15,
		Choices: []Choice{
			{Value: 5, Label: "5 years"},
			{Value: 10, Label: "10 years"},
			{Value: 15, Label: "15 years"},
			{Value: 20, Label: "20 years"},
			{Value: 25, Label: "25 years"},
			{Value: 30, Label: "30 years"},
		},
	}
}

func TestFieldValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Field)
		expectErr bool
	}{
		{name: "valid", mutate: func(*Field) {}, expectErr: false},
		{name: "missing key", mutate: func(f *Field) { f.Key = "" }, expectErr: true},
		{name: "inverted bounds", mutate: func(f *Field) { f.Min, f.Max = f.Max, f.Min }, expectErr: true},
		{name: "zero step", mutate: func(f *Field) { f.Step = 0 }, expectErr: true},
		{name: "default out of range", mutate: func(f *Field) { f.Default = 1 }, expectErr: true},
		{name: "choice without choices", mutate: func(f *Field) { f.Kind = KindChoice }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loanField()
			tt.mutate(&f)
			err := f.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFieldClamp(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		value    float64
		expected float64
	}{
		{name: "inside range", field: loanField(), value: 750000, expected: 750000},
		{name: "below min", field: loanField(), value: 10, expected: 50000},
		{name: "above max", field: loanField(), value: 1e9, expected: 5000000},
		{name: "NaN goes to min", field: loanField(), value: math.NaN(), expected: 50000},
		{name: "choice snaps to nearest", field: tenureField(), value: 12, expected: 10},
		{name: "choice above all", field: tenureField(), value: 90, expected: 30},
		{name: "toggle on", field: Field{Key: "pf", Kind: KindToggle, Max: 1}, value: 0.7, expected: 1},
		{name: "toggle off", field: Field{Key: "pf", Kind: KindToggle, Max: 1}, value: 0.2, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field.Clamp(tt.value))
		})
	}
}

func TestFieldSnap(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		value    float64
		expected float64
	}{
		{name: "rounds to nearest step", field: loanField(), value: 504999, expected: 500000},
		{name: "rounds up", field: loanField(), value: 505001, expected: 510000},
		{name: "decimal step", field: rateField(), value: 8.47, expected: 8.5},
		{name: "decimal step has no float noise", field: rateField(), value: 5.3, expected: 5.3},
		{name: "snap then clamp", field: rateField(), value: 40, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field.Snap(tt.value))
		})
	}
}

func TestFieldParse(t *testing.T) {
	tests := []struct {
		name      string
		field     Field
		text      string
		expected  float64
		expectErr error
	}{
		{name: "plain", field: loanField(), text: "500000", expected: 500000},
		{name: "rupee symbol and grouping", field: loanField(), text: "₹5,00,000", expected: 500000},
		{name: "Rs prefix", field: loanField(), text: "Rs. 12,500", expected: 12500},
		{name: "dollar prefix", field: loanField(), text: "$1,000.50", expected: 1000.5},
		{name: "surrounding whitespace", field: loanField(), text: "  75000 ", expected: 75000},
		{name: "percent sign", field: rateField(), text: "8.5%", expected: 8.5},
		{name: "unit suffix", field: tenureField(), text: "20 years", expected: 20},
		{name: "choice label", field: tenureField(), text: "25 Years", expected: 25},
		{name: "negative is numeric", field: loanField(), text: "-5", expected: -5},
		{name: "letters", field: loanField(), text: "abc", expectErr: ErrNotNumeric},
		{name: "empty", field: loanField(), text: "", expectErr: ErrNotNumeric},
		{name: "symbol only", field: loanField(), text: "₹", expectErr: ErrNotNumeric},
		{name: "infinity", field: loanField(), text: "Inf", expectErr: ErrNotFinite},
		{name: "NaN", field: loanField(), text: "NaN", expectErr: ErrNotFinite},
		{name: "overflow", field: loanField(), text: "1e400", expectErr: ErrNotFinite},
		{name: "toggle yes", field: Field{Key: "pf", Kind: KindToggle}, text: "yes", expected: 1},
		{name: "toggle off", field: Field{Key: "pf", Kind: KindToggle}, text: "OFF", expected: 0},
		{name: "toggle garbage", field: Field{Key: "pf", Kind: KindToggle}, text: "maybe", expectErr: ErrNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Parse(tt.text)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
