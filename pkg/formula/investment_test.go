package formula

import (
	"testing"

	"github.com/iwvelando/fincalc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSIPFutureValue(t *testing.T) {
	tests := []struct {
		name         string
		contribution float64
		rate         float64
		periods      int
		expected     float64
		tolerance    float64
	}{
		{name: "10000 monthly at 12% for 10 years", contribution: 10000, rate: 0.01, periods: 120, expected: 2323390.76, tolerance: 0.01},
		{name: "zero rate is contribution times periods", contribution: 2500, rate: 0, periods: 48, expected: 120000, tolerance: 0},
		{name: "no periods", contribution: 2500, rate: 0.01, periods: 0, expected: 0, tolerance: 0},
		{name: "single period earns one month", contribution: 1000, rate: 0.01, periods: 1, expected: 1010, tolerance: 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SIPFutureValue(tt.contribution, tt.rate, tt.periods)
			testutil.AssertClose(t, "future value", got, tt.expected, tt.tolerance)
		})
	}
}

func TestCalculateSIP(t *testing.T) {
	sip := CalculateSIP(10000, 12, 10)

	assert.Equal(t, 1200000.0, sip.Invested)
	testutil.AssertClose(t, "value", sip.Value, 2323390.76, 0.01)
	testutil.AssertClose(t, "returns", sip.Returns, sip.Value-sip.Invested, 1e-9)

	require.Len(t, sip.Years, 10)
	last := sip.Years[len(sip.Years)-1]
	assert.Equal(t, sip.Value, last.Value, "last breakdown row matches the headline")
	assert.Equal(t, sip.Invested, last.Invested)
	for i := 1; i < len(sip.Years); i++ {
		assert.Greater(t, sip.Years[i].Value, sip.Years[i-1].Value)
	}
}

func TestCalculateSIPZeroRate(t *testing.T) {
	sip := CalculateSIP(5000, 0, 3)
	assert.Equal(t, 180000.0, sip.Value)
	assert.Equal(t, 0.0, sip.Returns)
}

func TestCalculateMutualFund(t *testing.T) {
	t.Run("lumpsum", func(t *testing.T) {
		fund := CalculateMutualFund(MutualFundInput{
			Mode:          FundLumpsum,
			Lumpsum:       100000,
			Years:         5,
			ReturnPercent: 12,
			ExpenseRatio:  1.5,
		})

		testutil.AssertClose(t, "net return", fund.NetReturnPercent, 10.5, 1e-9)
		assert.Equal(t, 100000.0, fund.Invested)
		testutil.AssertClose(t, "value", fund.Value, 164744.68, 0.01)
		testutil.AssertClose(t, "expenses", fund.Expenses, 176234.17-164744.68, 0.02)

		require.Len(t, fund.Years, 5)
		assert.Equal(t, 100000.0, fund.Years[0].YearlyInvestment)
		assert.Equal(t, 0.0, fund.Years[1].YearlyInvestment)
		assert.Equal(t, fund.Value, fund.Years[4].Value)
	})

	t.Run("sip", func(t *testing.T) {
		fund := CalculateMutualFund(MutualFundInput{
			Mode:          FundSIP,
			Monthly:       10000,
			Years:         10,
			ReturnPercent: 13.5,
			ExpenseRatio:  1.5,
		})

		assert.Equal(t, 1200000.0, fund.Invested)
		testutil.AssertClose(t, "value", fund.Value, 2323390.76, 0.01)
		assert.Greater(t, fund.Expenses, 0.0)
		for _, row := range fund.Years {
			assert.Equal(t, 120000.0, row.YearlyInvestment)
			assert.GreaterOrEqual(t, row.GrossValue, row.Value)
		}
	})

	t.Run("zero expense ratio has no expenses", func(t *testing.T) {
		fund := CalculateMutualFund(MutualFundInput{Mode: FundLumpsum, Lumpsum: 50000, Years: 3, ReturnPercent: 10})
		assert.Equal(t, 0.0, fund.Expenses)
	})
}
