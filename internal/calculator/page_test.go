package calculator

import (
	"sync"
	"testing"

	"github.com/iwvelando/fincalc/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageComputesDefaults(t *testing.T) {
	page := NewPage(EMI{})
	assert.Equal(t, Idle, page.State())
	assert.Equal(t, Values{"principal": 500000, "rate": 10, "tenure": 3}, page.Values())

	card, ok := page.Result().Card("emi")
	require.True(t, ok)
	assert.InDelta(t, 16133.59, card.Value, 0.01)
}

func TestPageSet(t *testing.T) {
	page := NewPage(EMI{})

	result, err := page.Set("principal", 1e9)
	require.NoError(t, err)
	assert.Equal(t, 5000000.0, page.Values()["principal"], "clamped to max")
	card, _ := result.Card("emi")
	assert.InDelta(t, 16133.59*10, card.Value, 0.1)

	_, err = page.Set("nope", 1)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestPageSetTextRejectsGarbage(t *testing.T) {
	page := NewPage(EMI{})
	before := page.Result()

	result, err := page.SetText("principal", "lots")
	require.ErrorIs(t, err, input.ErrNotNumeric)
	assert.Equal(t, before, result)
	assert.Equal(t, 500000.0, page.Values()["principal"])

	_, err = page.SetText("principal", "₹7,50,000")
	require.NoError(t, err)
	assert.Equal(t, 750000.0, page.Values()["principal"])
}

func TestPageApply(t *testing.T) {
	page := NewPage(SIP{})
	result, warnings := page.Apply(map[string]float64{"monthly": 5000, "years": 3, "rate": 0, "extra": 1})

	assert.Equal(t, []string{"extra: unknown field"}, warnings)
	// The rate clamps to the 1% minimum.
	assert.Equal(t, 1.0, page.Values()["rate"])
	value, ok := result.Card("invested")
	require.True(t, ok)
	assert.Equal(t, 180000.0, value.Value)
}

func TestMortgageLinking(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    float64
		expected Values
	}{
		{
			name:     "property value moves the loan",
			key:      "propertyValue",
			value:    5000000,
			expected: Values{"propertyValue": 5000000, "downPayment": 1000000, "loanAmount": 4000000},
		},
		{
			name:     "down payment moves the loan",
			key:      "downPayment",
			value:    1500000,
			expected: Values{"propertyValue": 4000000, "downPayment": 1500000, "loanAmount": 2500000},
		},
		{
			name:     "loan moves the down payment",
			key:      "loanAmount",
			value:    3500000,
			expected: Values{"propertyValue": 4000000, "downPayment": 500000, "loanAmount": 3500000},
		},
		{
			name:     "down payment is capped at half the property",
			key:      "downPayment",
			value:    3000000,
			expected: Values{"propertyValue": 4000000, "downPayment": 2000000, "loanAmount": 2000000},
		},
		{
			name:     "small loan keeps the down payment within its cap",
			key:      "loanAmount",
			value:    500000,
			expected: Values{"propertyValue": 4000000, "downPayment": 2000000, "loanAmount": 2000000},
		},
		{
			name:     "shrinking the property shrinks both",
			key:      "propertyValue",
			value:    1500000,
			expected: Values{"propertyValue": 1500000, "downPayment": 750000, "loanAmount": 750000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(Mortgage{})
			_, err := page.Set(tt.key, tt.value)
			require.NoError(t, err)

			values := page.Values()
			for key, want := range tt.expected {
				assert.Equal(t, want, values[key], key)
			}
		})
	}
}

func TestMortgageDynamicBounds(t *testing.T) {
	page := NewPage(Mortgage{})
	_, err := page.Set("propertyValue", 6000000)
	require.NoError(t, err)

	for _, f := range page.Fields() {
		switch f.Key {
		case "downPayment":
			assert.Equal(t, 3000000.0, f.Max)
		case "loanAmount":
			assert.Equal(t, 6000000.0, f.Max)
		}
	}
}

func TestRetirementAgeFollowsCurrentAge(t *testing.T) {
	page := NewPage(Retirement{})
	_, err := page.Set("currentAge", 65)
	require.NoError(t, err)
	assert.Equal(t, 66.0, page.Values()["retirementAge"])

	_, err = page.Set("retirementAge", 50)
	require.NoError(t, err)
	assert.Equal(t, 66.0, page.Values()["retirementAge"])
}

func TestLeaseDownPaymentBound(t *testing.T) {
	page := NewPage(Lease{})
	_, err := page.Set("downPayment", 900000)
	require.NoError(t, err)
	assert.Equal(t, 500000.0, page.Values()["downPayment"])

	_, err = page.Set("price", 600000)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, page.Values()["downPayment"])
}

func TestPageNeverExposesPartialResult(t *testing.T) {
	page := NewPage(EMI{})

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 200 {
				_, _ = page.Set("principal", float64(50000+(i*200+j)*10000))
			}
		}(i)
	}
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				result := page.Result()
				total, _ := result.Card("totalAmount")
				interest, _ := result.Card("totalInterest")
				pie, ok := result.SeriesByKey("breakdown")
				if !ok {
					t.Error("breakdown series missing")
					return
				}
				principal := pie.Datasets[0].Values[0]
				if diff := total.Value - interest.Value - principal; diff > 1e-3 || diff < -1e-3 {
					t.Errorf("inconsistent result: total %v, interest %v, principal %v", total.Value, interest.Value, principal)
					return
				}
				if state := page.State(); state != Idle {
					t.Errorf("state observed mid-recompute: %v", state)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, Idle, page.State())
}

func TestPageApplyText(t *testing.T) {
	page := NewPage(EMI{})
	result, warnings := page.ApplyText(map[string]string{
		"principal": "₹10,00,000",
		"rate":      "ten",
		"colour":    "blue",
	})

	assert.Equal(t, []string{"colour: unknown field", `rate: "ten": value is not numeric`}, warnings)
	assert.Equal(t, 1000000.0, page.Values()["principal"])
	assert.Equal(t, 10.0, page.Values()["rate"])
	card, _ := result.Card("emi")
	assert.InDelta(t, 16133.59*2, card.Value, 0.02)
}
