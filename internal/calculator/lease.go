package calculator

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// Lease prices a vehicle lease and compares it across standard terms.
type Lease struct{}

var leaseTerms = []int{24, 36, 48, 60}

func (Lease) Slug() string  { return "lease" }
func (Lease) Title() string { return "Lease Calculator" }
func (Lease) Description() string {
	return "Understand your lease payments and total cost"
}

func (Lease) Fields() []input.Field {
	return []input.Field{
		currencyField("price", "Vehicle Price", 500000, 10000000, 50000, 1000000),
		currencyField("downPayment", "Down Payment", 0, 5000000, 10000, 200000),
		{Key: "term", Label: "Lease Term", Kind: input.KindMonths, Unit: "months", Min: 24, Max: 60, Step: 12, Default: 36},
		percentField("rate", "Interest Rate", 5, 20, 0.1, 9),
		percentField("residual", "Residual Value", 20, 60, 1, 40),
	}
}

// Bounds caps the down payment at half the vehicle price.
func (Lease) Bounds(v Values) map[string]Range {
	return map[string]Range{"downPayment": {Min: 0, Max: v.Get("price") * maxDownPaymentShare}}
}

func leaseInput(v Values) formula.LeaseInput {
	return formula.LeaseInput{
		Price:           v.Get("price"),
		DownPayment:     v.Get("downPayment"),
		TermMonths:      v.Int("term"),
		RatePercent:     v.Get("rate"),
		ResidualPercent: v.Get("residual"),
	}
}

func (c Lease) Compute(v Values) Result {
	in := leaseInput(v)
	lease := formula.CalculateLease(in)

	breakdown := Table{
		Key:         "breakdown",
		Title:       "Payment Breakdown",
		LabelHeader: "Month",
		Columns: []Column{
			currencyColumn("depreciation", "Depreciation"),
			currencyColumn("interest", "Interest"),
			currencyColumn("payment", "Payment"),
			currencyColumn("totalDepreciation", "Total Depreciation"),
			currencyColumn("totalInterest", "Total Interest"),
			currencyColumn("total", "Total Paid"),
		},
	}
	for _, p := range lease.Periods {
		breakdown.Rows = append(breakdown.Rows, Row{
			Label:  monthLabel(p.Month),
			Values: []float64{p.Depreciation, p.Interest, p.Payment, p.CumulativeDepreciation, p.CumulativeInterest, p.CumulativeTotal},
		})
	}

	yearly := Table{
		Key:         "yearly",
		Title:       "Yearly Summary",
		LabelHeader: "Year",
		Columns: []Column{
			currencyColumn("depreciation", "Depreciation"),
			currencyColumn("interest", "Interest"),
			currencyColumn("total", "Payments"),
			currencyColumn("runningTotal", "Running Total"),
		},
	}
	for _, y := range lease.Years {
		yearly.Rows = append(yearly.Rows, Row{
			Label:  yearLabel(y.Year),
			Values: []float64{y.Depreciation, y.Interest, y.Total, y.RunningTotal},
		})
	}

	comparison := Table{
		Key:         "terms",
		Title:       "Lease Term Comparison",
		LabelHeader: "Term",
		Columns: []Column{
			{Key: "residual", Title: "Residual Value", Kind: input.KindPercent},
			currencyColumn("monthlyPayment", "Monthly Payment"),
			currencyColumn("totalCost", "Total Cost"),
		},
	}
	terms := Series{
		Key:      "terms",
		Title:    "Lease Term Comparison",
		Chart:    ChartBar,
		Datasets: []Dataset{{Name: "Monthly Payment"}, {Name: "Total Cost"}},
	}
	for _, opt := range formula.CompareLeaseTerms(in, leaseTerms) {
		label := fmt.Sprintf("%d months", opt.TermMonths)
		comparison.Rows = append(comparison.Rows, Row{
			Label:  label,
			Values: []float64{opt.ResidualPercent, opt.MonthlyPayment, opt.TotalCost},
		})
		terms.Labels = append(terms.Labels, label)
		terms.Datasets[0].Values = append(terms.Datasets[0].Values, opt.MonthlyPayment)
		terms.Datasets[1].Values = append(terms.Datasets[1].Values, opt.TotalCost)
	}

	return Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("monthlyPayment", "Monthly Lease Payment", lease.MonthlyPayment),
			currencyCard("totalPayments", "Total Lease Payments", lease.TotalPayments),
			currencyCard("downPayment", "Down Payment", in.DownPayment),
			currencyCard("totalCost", "Total Lease Cost", lease.TotalCost),
			currencyCard("residualValue", "Residual Value", lease.ResidualAmount),
		},
		Tables: []Table{breakdown, yearly, comparison},
		Series: []Series{
			{
				Key:    "monthly",
				Title:  "Monthly Payment Split",
				Chart:  ChartPie,
				Labels: []string{"Depreciation", "Interest"},
				Datasets: []Dataset{{
					Name:   "Amount",
					Values: []float64{lease.MonthlyDepreciation, lease.MonthlyInterest},
				}},
			},
			terms,
		},
	}
}
