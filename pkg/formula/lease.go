package formula

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// LeaseInput holds the parameters of a vehicle lease.
type LeaseInput struct {
	Price           float64
	DownPayment     float64
	TermMonths      int
	RatePercent     float64
	ResidualPercent float64
}

// LeasePeriod is a checkpoint in the lease term.
type LeasePeriod struct {
	Month                  int
	Depreciation           float64
	Interest               float64
	Payment                float64
	CumulativeDepreciation float64
	CumulativeInterest     float64
	CumulativeTotal        float64
}

// LeaseYear summarizes one year of lease payments.
type LeaseYear struct {
	Year         int
	Depreciation float64
	Interest     float64
	Total        float64
	RunningTotal float64 // includes the down payment
}

// Lease is the outcome of a lease calculation.
type Lease struct {
	ResidualAmount      float64
	MonthlyDepreciation float64
	MonthlyInterest     float64
	MonthlyPayment      float64
	TotalPayments       float64
	TotalCost           float64
	Periods             []LeasePeriod
	Years               []LeaseYear
}

// leaseCheckpointMonths is the spacing of the cumulative breakdown.
const leaseCheckpointMonths = 6

// CalculateLease splits a lease payment into depreciation of the financed
// amount down to the residual value and a finance charge on
// (financed + residual).
func CalculateLease(in LeaseInput) Lease {
	var lease Lease
	lease.ResidualAmount = mathutil.ApplyPercentage(in.Price, in.ResidualPercent)
	lease.MonthlyDepreciation, lease.MonthlyInterest = leaseComponents(in, lease.ResidualAmount)
	lease.MonthlyPayment = lease.MonthlyDepreciation + lease.MonthlyInterest
	lease.TotalPayments = lease.MonthlyPayment * float64(max(in.TermMonths, 0))
	lease.TotalCost = lease.TotalPayments + in.DownPayment

	var cumulativeDepreciation, cumulativeInterest float64
	for month := 1; month <= in.TermMonths; month++ {
		cumulativeDepreciation += lease.MonthlyDepreciation
		cumulativeInterest += lease.MonthlyInterest

		if month%leaseCheckpointMonths == 0 || month == in.TermMonths {
			lease.Periods = append(lease.Periods, LeasePeriod{
				Month:                  month,
				Depreciation:           lease.MonthlyDepreciation,
				Interest:               lease.MonthlyInterest,
				Payment:                lease.MonthlyPayment,
				CumulativeDepreciation: cumulativeDepreciation,
				CumulativeInterest:     cumulativeInterest,
				CumulativeTotal:        cumulativeDepreciation + cumulativeInterest,
			})
		}

		if month%constants.MonthsPerYear == 0 {
			lease.Years = append(lease.Years, LeaseYear{
				Year:         month / constants.MonthsPerYear,
				Depreciation: lease.MonthlyDepreciation * constants.MonthsPerYear,
				Interest:     lease.MonthlyInterest * constants.MonthsPerYear,
				Total:        lease.MonthlyPayment * constants.MonthsPerYear,
				RunningTotal: float64(month)*lease.MonthlyPayment + in.DownPayment,
			})
		}
	}
	return lease
}

func leaseComponents(in LeaseInput, residual float64) (depreciation, interest float64) {
	if in.TermMonths > 0 {
		depreciation = (in.Price - in.DownPayment - residual) / float64(in.TermMonths)
	}
	financed := in.Price - in.DownPayment
	interest = (financed + residual) * MonthlyRate(in.RatePercent)
	return depreciation, interest
}

// LeaseOption is one row of a lease term comparison.
type LeaseOption struct {
	TermMonths      int
	ResidualPercent float64
	MonthlyPayment  float64
	TotalCost       float64
}

// Residual value assumptions for comparing terms: every year beyond the
// baseline term costs residualStepPercent, never dropping below the floor.
const (
	residualBaselineTerm = 36
	residualStepPercent  = 5.0
	residualFloorPercent = 20.0
)

// CompareLeaseTerms re-prices the lease for each term with the residual value
// adjusted for the term length.
func CompareLeaseTerms(in LeaseInput, terms []int) []LeaseOption {
	options := make([]LeaseOption, 0, len(terms))
	for _, term := range terms {
		adjusted := in
		adjusted.TermMonths = term
		yearsBeyond := float64(term-residualBaselineTerm) / constants.MonthsPerYear
		adjusted.ResidualPercent = math.Max(residualFloorPercent, in.ResidualPercent-yearsBeyond*residualStepPercent)

		residual := mathutil.ApplyPercentage(adjusted.Price, adjusted.ResidualPercent)
		depreciation, interest := leaseComponents(adjusted, residual)
		monthly := depreciation + interest
		options = append(options, LeaseOption{
			TermMonths:      term,
			ResidualPercent: adjusted.ResidualPercent,
			MonthlyPayment:  monthly,
			TotalCost:       monthly*float64(max(term, 0)) + in.DownPayment,
		})
	}
	return options
}
