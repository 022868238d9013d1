package formula

import (
	"testing"

	"github.com/iwvelando/fincalc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDownPayment(t *testing.T) {
	plan := PlanDownPayment(3000000, 20, 20, 8)

	assert.InDelta(t, 600000.0, plan.DownPayment, 1e-6)
	assert.InDelta(t, 2400000.0, plan.LoanAmount, 1e-6)
	testutil.AssertClose(t, "ltv", plan.LTV, 80, 1e-9)
	testutil.AssertClose(t, "payment", plan.MonthlyPayment, 20074.56, 0.01)
	testutil.AssertClose(t, "total interest", plan.TotalInterest, 2417894.80, 0.01)
}

func TestPlanDownPaymentZeroYears(t *testing.T) {
	plan := PlanDownPayment(3000000, 20, 0, 8)
	assert.Equal(t, 0.0, plan.MonthlyPayment)
	assert.Equal(t, 0.0, plan.TotalInterest)
}

func TestLoanToValue(t *testing.T) {
	assert.Equal(t, 0.0, LoanToValue(100, 0))
	testutil.AssertClose(t, "ltv", LoanToValue(750000, 1000000), 75, 1e-9)
}

func TestDownPaymentSweep(t *testing.T) {
	options := DownPaymentSweep(3000000, 20, 8, 5, 40, 5)
	require.Len(t, options, 8)

	assert.InDelta(t, 5.0, options[0].Percent, 1e-9)
	assert.InDelta(t, 40.0, options[len(options)-1].Percent, 1e-9)
	for i := 1; i < len(options); i++ {
		assert.Greater(t, options[i].DownPayment, options[i-1].DownPayment)
		assert.Less(t, options[i].MonthlyPayment, options[i-1].MonthlyPayment)
	}

	assert.Nil(t, DownPaymentSweep(3000000, 20, 8, 5, 40, 0))
}
