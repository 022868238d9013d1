package formula

import (
	"testing"

	"github.com/iwvelando/fincalc/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLease() LeaseInput {
	return LeaseInput{
		Price:           1000000,
		DownPayment:     200000,
		TermMonths:      36,
		RatePercent:     9,
		ResidualPercent: 40,
	}
}

func TestCalculateLease(t *testing.T) {
	lease := CalculateLease(defaultLease())

	assert.InDelta(t, 400000.0, lease.ResidualAmount, 1e-6)
	testutil.AssertClose(t, "depreciation", lease.MonthlyDepreciation, 11111.11, 0.01)
	testutil.AssertClose(t, "interest", lease.MonthlyInterest, 9000, 1e-9)
	testutil.AssertClose(t, "payment", lease.MonthlyPayment, 20111.11, 0.01)
	testutil.AssertClose(t, "total cost", lease.TotalCost, 924000, 0.01)

	months := make([]int, 0, len(lease.Periods))
	for _, p := range lease.Periods {
		months = append(months, p.Month)
	}
	assert.Equal(t, []int{6, 12, 18, 24, 30, 36}, months)

	last := lease.Periods[len(lease.Periods)-1]
	testutil.AssertClose(t, "cumulative total", last.CumulativeTotal, lease.TotalPayments, 1e-6)

	require.Len(t, lease.Years, 3)
	testutil.AssertClose(t, "running total", lease.Years[2].RunningTotal, lease.TotalCost, 1e-6)
	testutil.AssertClose(t, "first year total", lease.Years[0].Total, lease.MonthlyPayment*12, 1e-6)
}

func TestCalculateLeaseOddTerm(t *testing.T) {
	in := defaultLease()
	in.TermMonths = 40
	lease := CalculateLease(in)

	require.NotEmpty(t, lease.Periods)
	assert.Equal(t, 40, lease.Periods[len(lease.Periods)-1].Month, "term end is always a checkpoint")
	assert.Len(t, lease.Years, 3)
}

func TestCalculateLeaseZeroTerm(t *testing.T) {
	in := defaultLease()
	in.TermMonths = 0
	lease := CalculateLease(in)

	assert.Equal(t, 0.0, lease.MonthlyDepreciation)
	assert.Equal(t, in.DownPayment, lease.TotalCost)
	assert.Empty(t, lease.Periods)
}

func TestCompareLeaseTerms(t *testing.T) {
	options := CompareLeaseTerms(defaultLease(), []int{24, 36, 48, 60})
	require.Len(t, options, 4)

	expected := []struct {
		residual float64
		payment  float64
	}{
		{residual: 45, payment: 23958.33},
		{residual: 40, payment: 20111.11},
		{residual: 35, payment: 18000},
		{residual: 30, payment: 16583.33},
	}
	for i, want := range expected {
		testutil.AssertClose(t, "residual", options[i].ResidualPercent, want.residual, 1e-9)
		testutil.AssertClose(t, "payment", options[i].MonthlyPayment, want.payment, 0.01)
	}
}

func TestCompareLeaseTermsResidualFloor(t *testing.T) {
	in := defaultLease()
	in.ResidualPercent = 22
	options := CompareLeaseTerms(in, []int{60})
	require.Len(t, options, 1)
	assert.Equal(t, 20.0, options[0].ResidualPercent)
}
