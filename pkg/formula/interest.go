package formula

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// InterestRow is one year of an interest breakdown.
type InterestRow struct {
	Year      int
	Principal float64
	Interest  float64
	Amount    float64
}

// SimpleInterest returns P*R*t/100.
func SimpleInterest(principal, annualPercent, years float64) float64 {
	return principal * annualPercent * years / constants.PercentageMultiplier
}

// CompoundAmount returns P*(1 + R/(100f))^(f*t). A non-positive frequency is
// treated as yearly compounding.
func CompoundAmount(principal, annualPercent float64, frequency int, years float64) float64 {
	if frequency <= 0 {
		frequency = constants.CompoundYearly
	}
	f := float64(frequency)
	return principal * math.Pow(1+mathutil.PercentToDecimal(annualPercent)/f, f*years)
}

// SimpleInterestBreakdown lists the accrued simple interest at the end of each year.
func SimpleInterestBreakdown(principal, annualPercent float64, years int) []InterestRow {
	rows := make([]InterestRow, 0, max(years, 0))
	for year := 1; year <= years; year++ {
		interest := SimpleInterest(principal, annualPercent, float64(year))
		rows = append(rows, InterestRow{
			Year:      year,
			Principal: principal,
			Interest:  interest,
			Amount:    principal + interest,
		})
	}
	return rows
}

// CompoundInterestBreakdown lists the compounded amount at the end of each year.
func CompoundInterestBreakdown(principal, annualPercent float64, frequency, years int) []InterestRow {
	rows := make([]InterestRow, 0, max(years, 0))
	for year := 1; year <= years; year++ {
		amount := CompoundAmount(principal, annualPercent, frequency, float64(year))
		rows = append(rows, InterestRow{
			Year:      year,
			Principal: principal,
			Interest:  amount - principal,
			Amount:    amount,
		})
	}
	return rows
}
