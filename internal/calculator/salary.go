package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// Salary breaks a monthly salary structure down into take-home pay.
type Salary struct{}

func (Salary) Slug() string  { return "salary" }
func (Salary) Title() string { return "Salary Calculator" }
func (Salary) Description() string {
	return "Calculate take-home pay and deductions"
}

// bonusKey returns the toggle key for a bonus month, e.g. "bonusMar".
func bonusKey(m time.Month) string {
	return "bonus" + m.String()[:3]
}

func (Salary) Fields() []input.Field {
	fields := []input.Field{
		currencyField("basic", "Basic Salary", 10000, 500000, 1000, 50000),
		percentField("hraPercent", "HRA Percentage", 0, 100, 1, 40),
		currencyField("special", "Special Allowance", 0, 100000, 1000, 20000),
		toggleField("providentFund", "Provident Fund (12% of Basic)", true),
		currencyField("professionalTax", "Professional Tax", 0, 2500, 100, 200),
		currencyField("otherDeductions", "Other Deductions", 0, 100000, 100, 0),
		currencyField("bonus", "Bonus Amount", 0, 1000000, 10000, 100000),
	}
	for m := time.January; m <= time.December; m++ {
		fields = append(fields, toggleField(bonusKey(m), m.String()+" Bonus", m == time.March || m == time.September))
	}
	return fields
}

func (c Salary) Compute(v Values) Result {
	in := formula.SalaryInput{
		Basic:           v.Get("basic"),
		HRAPercent:      v.Get("hraPercent"),
		Special:         v.Get("special"),
		ProvidentFund:   v.Bool("providentFund"),
		ProfessionalTax: v.Get("professionalTax"),
		OtherDeductions: v.Get("otherDeductions"),
		Bonus:           v.Get("bonus"),
	}
	for m := time.January; m <= time.December; m++ {
		if v.Bool(bonusKey(m)) {
			in.BonusMonths = append(in.BonusMonths, m)
		}
	}
	s := formula.CalculateSalary(in)

	monthly := Table{
		Key:         "monthly",
		Title:       "Monthly Breakdown",
		LabelHeader: "Month",
		Columns: []Column{
			currencyColumn("gross", "Gross"),
			currencyColumn("deductions", "Deductions"),
			currencyColumn("net", "Net Pay"),
		},
	}
	distribution := Series{
		Key:      "distribution",
		Title:    "Monthly Distribution",
		Chart:    ChartBar,
		Datasets: []Dataset{{Name: "Net Pay"}, {Name: "Deductions"}},
	}
	for _, m := range s.Months {
		label := m.Month.String()
		if m.Bonus {
			label += " (bonus)"
		}
		monthly.Rows = append(monthly.Rows, Row{Label: label, Values: []float64{m.Gross, m.Deductions, m.Net}})
		distribution.Labels = append(distribution.Labels, m.Month.String()[:3])
		distribution.Datasets[0].Values = append(distribution.Datasets[0].Values, m.Net)
		distribution.Datasets[1].Values = append(distribution.Datasets[1].Values, m.Deductions)
	}

	components := Table{
		Key:         "components",
		Title:       "Salary Components",
		LabelHeader: "Component",
		Columns:     []Column{currencyColumn("amount", "Monthly Amount")},
		Rows: []Row{
			{Label: "Basic Salary", Values: []float64{in.Basic}},
			{Label: "HRA", Values: []float64{s.HRA}},
			{Label: "Special Allowance", Values: []float64{in.Special}},
			{Label: "PF", Values: []float64{-s.ProvidentFund}},
			{Label: "Professional Tax", Values: []float64{-in.ProfessionalTax}},
			{Label: "Other Deductions", Values: []float64{-in.OtherDeductions}},
		},
	}

	bonusMonths := make([]string, 0, len(in.BonusMonths))
	for _, m := range in.BonusMonths {
		bonusMonths = append(bonusMonths, m.String())
	}
	bonus := Card{
		Key:         "bonusFrequency",
		Title:       "Bonus Frequency",
		Kind:        input.KindText,
		Text:        fmt.Sprintf("%dx per year", len(in.BonusMonths)),
		Description: strings.Join(bonusMonths, ", "),
	}

	return Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("gross", "Gross Salary", s.MonthlyGross),
			currencyCard("deductions", "Total Deductions", s.MonthlyDeductions),
			currencyCard("net", "Net Pay", s.MonthlyNet),
			currencyCard("annualGross", "Annual Gross Salary", s.AnnualGross),
			currencyCard("annualDeductions", "Annual Deductions", s.AnnualDeductions),
			currencyCard("annualNet", "Annual Net Pay", s.AnnualNet),
			bonus,
		},
		Tables: []Table{components, monthly},
		Series: []Series{
			{
				Key:    "earnings",
				Title:  "Earnings Breakdown",
				Chart:  ChartPie,
				Labels: []string{"Basic Salary", "HRA", "Special Allowance"},
				Datasets: []Dataset{{
					Name:   "Amount",
					Values: []float64{in.Basic, s.HRA, in.Special},
				}},
			},
			distribution,
			{
				Key:    "comparison",
				Title:  "Salary Comparison",
				Chart:  ChartBar,
				Labels: []string{"Monthly", "Annual (Average)"},
				Datasets: []Dataset{
					{Name: "Gross", Values: []float64{s.MonthlyGross, s.AnnualGross / constants.MonthsPerYear}},
					{Name: "Net Pay", Values: []float64{s.MonthlyNet, s.AnnualNet / constants.MonthsPerYear}},
				},
			},
		},
	}
}
