package calculator

import (
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// EMI prices a personal or vehicle loan repaid in equal monthly instalments.
type EMI struct{}

func (EMI) Slug() string  { return "emi" }
func (EMI) Title() string { return "EMI Calculator" }
func (EMI) Description() string {
	return "Calculate your equated monthly installment for loans"
}

func (EMI) Fields() []input.Field {
	return []input.Field{
		currencyField("principal", "Loan Amount", 50000, 5000000, 10000, 500000),
		percentField("rate", "Interest Rate", 5, 25, 0.1, 10),
		yearsField("tenure", "Loan Tenure", 1, 7, 3),
	}
}

func (c EMI) Compute(v Values) Result {
	principal := v.Get("principal")
	months := v.Int("tenure") * constants.MonthsPerYear
	schedule := formula.Amortize(principal, formula.MonthlyRate(v.Get("rate")), months)

	result := Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("emi", "Monthly EMI", schedule.Payment),
			currencyCard("totalAmount", "Total Amount", schedule.TotalPayment),
			currencyCard("totalInterest", "Total Interest", schedule.TotalInterest),
		},
		Series: []Series{principalInterestPie(principal, schedule.TotalInterest)},
	}

	// Month 1, every third month and the final month.
	sampled := make([]formula.AmortizationRow, 0, months/3+2)
	for _, row := range schedule.Rows {
		if row.Period == 1 || row.Period%3 == 0 || row.Period == months {
			sampled = append(sampled, row)
		}
	}

	table := Table{
		Key:         "schedule",
		Title:       "EMI Schedule (Selected Months)",
		LabelHeader: "Month",
		Columns: []Column{
			currencyColumn("payment", "EMI"),
			currencyColumn("principal", "Principal"),
			currencyColumn("interest", "Interest"),
			currencyColumn("balance", "Balance"),
		},
	}
	over := Series{
		Key:   "payments",
		Title: "EMI Payments Over Time",
		Chart: ChartLine,
		Datasets: []Dataset{
			{Name: "Principal"},
			{Name: "Interest"},
			{Name: "Balance"},
		},
	}
	for _, row := range sampled {
		label := monthLabel(row.Period)
		table.Rows = append(table.Rows, Row{Label: label, Values: []float64{row.Payment, row.Principal, row.Interest, row.Balance}})
		over.Labels = append(over.Labels, label)
		over.Datasets[0].Values = append(over.Datasets[0].Values, row.Principal)
		over.Datasets[1].Values = append(over.Datasets[1].Values, row.Interest)
		over.Datasets[2].Values = append(over.Datasets[2].Values, row.Balance)
	}
	result.Tables = append(result.Tables, table)
	result.Series = append(result.Series, over)
	return result
}

func principalInterestPie(principal, interest float64) Series {
	return Series{
		Key:      "breakdown",
		Title:    "Payment Breakdown",
		Chart:    ChartPie,
		Labels:   []string{"Principal", "Interest"},
		Datasets: []Dataset{{Name: "Amount", Values: []float64{principal, interest}}},
	}
}

// yearlyScheduleTable lays out yearly amortization with running totals.
func yearlyScheduleTable(years []formula.AmortizationRow) Table {
	table := Table{
		Key:         "amortization",
		Title:       "Amortization Schedule",
		LabelHeader: "Year",
		Columns: []Column{
			currencyColumn("principal", "Principal Paid"),
			currencyColumn("interest", "Interest Paid"),
			currencyColumn("totalPrincipal", "Total Principal"),
			currencyColumn("totalInterest", "Total Interest"),
			currencyColumn("balance", "Remaining Balance"),
		},
	}
	for _, y := range years {
		table.Rows = append(table.Rows, Row{
			Label:  yearLabel(y.Period),
			Values: []float64{y.Principal, y.Interest, y.CumulativePrincipal, y.CumulativeInterest, y.Balance},
		})
	}
	return table
}
