package formula

import (
	"math"
	"slices"
	"time"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// SalaryInput holds a monthly salary structure.
type SalaryInput struct {
	Basic           float64
	HRAPercent      float64
	Special         float64
	ProvidentFund   bool
	ProfessionalTax float64
	OtherDeductions float64
	Bonus           float64
	BonusMonths     []time.Month
}

// SalaryMonth is one month of pay.
type SalaryMonth struct {
	Month      time.Month
	Gross      float64
	Deductions float64
	Net        float64
	Bonus      bool
}

// Salary is the monthly and annual view of a salary structure.
type Salary struct {
	HRA               float64
	ProvidentFund     float64
	MonthlyGross      float64
	MonthlyDeductions float64
	MonthlyNet        float64
	AnnualGross       float64
	AnnualDeductions  float64
	AnnualNet         float64
	Months            []SalaryMonth
}

// CalculateSalary derives monthly pay from the salary components. The
// provident fund contribution is a share of basic pay capped per month, and
// the bonus is paid on top of gross pay in each bonus month.
func CalculateSalary(in SalaryInput) Salary {
	s := Salary{HRA: mathutil.ApplyPercentage(in.Basic, in.HRAPercent)}
	if in.ProvidentFund {
		s.ProvidentFund = math.Min(mathutil.ApplyPercentage(in.Basic, constants.ProvidentFundPercent),
			constants.ProvidentFundMonthlyCap)
	}
	s.MonthlyGross = in.Basic + s.HRA + in.Special
	s.MonthlyDeductions = s.ProvidentFund + in.ProfessionalTax + in.OtherDeductions
	s.MonthlyNet = s.MonthlyGross - s.MonthlyDeductions

	s.Months = make([]SalaryMonth, 0, constants.MonthsPerYear)
	for month := time.January; month <= time.December; month++ {
		row := SalaryMonth{
			Month:      month,
			Gross:      s.MonthlyGross,
			Deductions: s.MonthlyDeductions,
			Bonus:      slices.Contains(in.BonusMonths, month),
		}
		if row.Bonus {
			row.Gross += in.Bonus
		}
		row.Net = row.Gross - row.Deductions

		s.AnnualGross += row.Gross
		s.AnnualDeductions += row.Deductions
		s.Months = append(s.Months, row)
	}
	s.AnnualNet = s.AnnualGross - s.AnnualDeductions
	return s
}
