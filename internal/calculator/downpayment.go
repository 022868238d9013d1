package calculator

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// DownPayment shows how the down payment share changes the loan and its
// monthly cost.
type DownPayment struct{}

func (DownPayment) Slug() string  { return "down-payment" }
func (DownPayment) Title() string { return "Down Payment Calculator" }
func (DownPayment) Description() string {
	return "Determine the down payment you need for a property"
}

func (DownPayment) Fields() []input.Field {
	return []input.Field{
		currencyField("propertyValue", "Property Value", 500000, 10000000, 100000, 3000000),
		percentField("downPaymentPercent", "Down Payment Percentage", 5, 50, 1, 20),
		yearsField("term", "Loan Term", 5, 30, 20),
		percentField("rate", "Interest Rate", 4, 15, 0.1, 8),
	}
}

func (c DownPayment) Compute(v Values) Result {
	property := v.Get("propertyValue")
	years := v.Int("term")
	rate := v.Get("rate")
	plan := formula.PlanDownPayment(property, v.Get("downPaymentPercent"), years, rate)

	comparison := Table{
		Key:         "comparison",
		Title:       "Breakdown by Down Payment Percentage",
		LabelHeader: "Down Payment %",
		Columns: []Column{
			currencyColumn("downPayment", "Down Payment"),
			currencyColumn("loanAmount", "Loan Amount"),
			currencyColumn("monthlyPayment", "Monthly Payment"),
		},
	}
	sweep := Series{
		Key:      "comparison",
		Title:    "Down Payment Comparison",
		Chart:    ChartBar,
		Datasets: []Dataset{{Name: "Down Payment"}, {Name: "Monthly Payment"}},
	}
	for _, opt := range formula.DownPaymentSweep(property, years, rate, 5, 40, 5) {
		label := fmt.Sprintf("%g%%", opt.Percent)
		comparison.Rows = append(comparison.Rows, Row{
			Label:  label,
			Values: []float64{opt.DownPayment, property - opt.DownPayment, opt.MonthlyPayment},
		})
		sweep.Labels = append(sweep.Labels, label)
		sweep.Datasets[0].Values = append(sweep.Datasets[0].Values, opt.DownPayment)
		sweep.Datasets[1].Values = append(sweep.Datasets[1].Values, opt.MonthlyPayment)
	}

	return Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("downPayment", "Down Payment Amount", plan.DownPayment),
			currencyCard("loanAmount", "Loan Amount", plan.LoanAmount),
			currencyCard("monthlyPayment", "Monthly Payment", plan.MonthlyPayment),
			percentCard("ltv", "Loan-to-Value Ratio", plan.LTV),
		},
		Tables: []Table{comparison},
		Series: []Series{
			{
				Key:      "split",
				Title:    "Property Funding",
				Chart:    ChartPie,
				Labels:   []string{"Down Payment", "Loan Amount"},
				Datasets: []Dataset{{Name: "Amount", Values: []float64{plan.DownPayment, plan.LoanAmount}}},
			},
			sweep,
		},
	}
}
