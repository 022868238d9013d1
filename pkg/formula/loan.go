// Package formula implements the financial formulas shared by every calculator.
//
// Every function is pure and deterministic: no logging, no errors, no I/O.
// Rates named "percent" are on the 0-100 scale; rates named "rate" are decimal
// fractions per period. Inputs are expected to have been clamped upstream, but
// the division-by-zero edge cases (zero rates, zero terms) are handled here and
// never produce NaN or Inf.
package formula

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
)

// MonthlyRate converts an annual percentage into a per-month decimal rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// AmortizedPayment returns the fixed per-period payment that repays principal
// over periods at periodRate using the standard amortization formula.
func AmortizedPayment(principal, periodRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(periods)
	}

	power := math.Pow(1+periodRate, float64(periods))
	return principal * periodRate * power / (power - 1)
}

// MonthlyPayment is AmortizedPayment for an annual percentage and a term in months.
func MonthlyPayment(principal, annualPercent float64, termMonths int) float64 {
	return AmortizedPayment(principal, MonthlyRate(annualPercent), termMonths)
}

// InterestPayment calculates the interest portion of a payment.
func InterestPayment(balance, periodRate float64) float64 {
	return balance * periodRate
}

// AmortizationRow holds the values for a single period of a schedule.
type AmortizationRow struct {
	Period              int
	Payment             float64
	Principal           float64
	Interest            float64
	Balance             float64
	CumulativePrincipal float64
	CumulativeInterest  float64
}

// Schedule is a full amortization schedule plus its totals.
type Schedule struct {
	Payment       float64
	TotalPayment  float64
	TotalInterest float64
	Rows          []AmortizationRow
}

// Amortize generates exactly periods rows by iterating the running balance.
// The last row's principal absorbs floating point drift so the principal
// column sums to the original principal, and the reported balance is
// clamped at zero.
func Amortize(principal, periodRate float64, periods int) Schedule {
	if periods <= 0 {
		return Schedule{}
	}

	payment := AmortizedPayment(principal, periodRate, periods)
	schedule := Schedule{
		Payment:       payment,
		TotalPayment:  payment * float64(periods),
		TotalInterest: payment*float64(periods) - principal,
	}
	schedule.Rows = make([]AmortizationRow, 0, periods)
	balance := principal
	var cumulativePrincipal, cumulativeInterest float64
	for period := 1; period <= periods; period++ {
		interest := InterestPayment(balance, periodRate)
		principalPaid := payment - interest
		rowPayment := payment
		if period == periods {
			// Final period retires whatever balance remains.
			principalPaid = balance
			rowPayment = principalPaid + interest
		}
		balance -= principalPaid

		cumulativePrincipal += principalPaid
		cumulativeInterest += interest

		schedule.Rows = append(schedule.Rows, AmortizationRow{
			Period:              period,
			Payment:             rowPayment,
			Principal:           principalPaid,
			Interest:            interest,
			Balance:             math.Max(0, balance),
			CumulativePrincipal: cumulativePrincipal,
			CumulativeInterest:  cumulativeInterest,
		})
	}
	return schedule
}

// AggregateYearly folds monthly rows into yearly rows of up to twelve months.
// Period on the returned rows is the year number.
func AggregateYearly(rows []AmortizationRow) []AmortizationRow {
	if len(rows) == 0 {
		return nil
	}

	years := make([]AmortizationRow, 0, (len(rows)+constants.MonthsPerYear-1)/constants.MonthsPerYear)
	for start := 0; start < len(rows); start += constants.MonthsPerYear {
		end := min(start+constants.MonthsPerYear, len(rows))
		year := AmortizationRow{Period: start/constants.MonthsPerYear + 1}
		for _, row := range rows[start:end] {
			year.Payment += row.Payment
			year.Principal += row.Principal
			year.Interest += row.Interest
		}
		last := rows[end-1]
		year.Balance = last.Balance
		year.CumulativePrincipal = last.CumulativePrincipal
		year.CumulativeInterest = last.CumulativeInterest
		years = append(years, year)
	}
	return years
}
