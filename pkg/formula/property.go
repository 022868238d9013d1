package formula

import (
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// DownPaymentPlan describes a property purchase financed by a loan.
type DownPaymentPlan struct {
	DownPayment    float64
	LoanAmount     float64
	LTV            float64 // loan to value, percent
	MonthlyPayment float64
	TotalInterest  float64
}

// PlanDownPayment splits a property value into a down payment and a loan and
// prices the loan over the given years.
func PlanDownPayment(propertyValue, downPaymentPercent float64, years int, annualPercent float64) DownPaymentPlan {
	down := mathutil.ApplyPercentage(propertyValue, downPaymentPercent)
	loan := propertyValue - down
	months := years * constants.MonthsPerYear
	payment := MonthlyPayment(loan, annualPercent, months)

	plan := DownPaymentPlan{
		DownPayment:    down,
		LoanAmount:     loan,
		LTV:            LoanToValue(loan, propertyValue),
		MonthlyPayment: payment,
	}
	if months > 0 {
		plan.TotalInterest = payment*float64(months) - loan
	}
	return plan
}

// LoanToValue returns the loan amount as a percentage of the asset value.
func LoanToValue(loan, value float64) float64 {
	return mathutil.CalculatePercentage(loan, value)
}

// DownPaymentOption is one point of a down payment sweep.
type DownPaymentOption struct {
	Percent        float64
	DownPayment    float64
	MonthlyPayment float64
}

// DownPaymentSweep prices the loan for each down payment percentage from
// fromPercent to toPercent inclusive.
func DownPaymentSweep(propertyValue float64, years int, annualPercent, fromPercent, toPercent, stepPercent float64) []DownPaymentOption {
	if stepPercent <= 0 {
		return nil
	}
	var options []DownPaymentOption
	for percent := fromPercent; percent <= toPercent+constants.RelativeTolerance; percent += stepPercent {
		plan := PlanDownPayment(propertyValue, percent, years, annualPercent)
		options = append(options, DownPaymentOption{
			Percent:        percent,
			DownPayment:    plan.DownPayment,
			MonthlyPayment: plan.MonthlyPayment,
		})
	}
	return options
}
