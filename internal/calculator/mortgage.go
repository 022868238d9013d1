package calculator

import (
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// Mortgage prices a home loan. The loan amount and down payment are linked
// through the property value.
type Mortgage struct{}

const maxDownPaymentShare = 0.5

func (Mortgage) Slug() string  { return "mortgage" }
func (Mortgage) Title() string { return "Mortgage Calculator" }
func (Mortgage) Description() string {
	return "Calculate your mortgage payments and see amortization schedule"
}

func (Mortgage) Fields() []input.Field {
	return []input.Field{
		currencyField("propertyValue", "Property Value", 1000000, 10000000, 100000, 4000000),
		currencyField("downPayment", "Down Payment", 0, 5000000, 50000, 1000000),
		currencyField("loanAmount", "Loan Amount", 500000, 10000000, 100000, 3000000),
		percentField("rate", "Interest Rate", 4, 15, 0.1, 8.5),
		choiceField("term", "Loan Term", "years", 15, 5, 10, 15, 20, 25, 30),
	}
}

// Bounds caps the down payment at half the property value and the loan at
// the full property value.
func (Mortgage) Bounds(v Values) map[string]Range {
	property := v.Get("propertyValue")
	return map[string]Range{
		"downPayment": {Min: 0, Max: property * maxDownPaymentShare},
		"loanAmount":  {Min: 500000, Max: property},
	}
}

// Link keeps loan = property - down payment. Editing the loan moves the down
// payment; any other change, including a bulk update, moves the loan. A loan
// small enough to push the down payment past its cap is raised to match.
func (Mortgage) Link(changed string, v Values) {
	property := v.Get("propertyValue")
	if changed == "loanAmount" {
		down := min(max(property-v.Get("loanAmount"), 0), property*maxDownPaymentShare)
		v["downPayment"] = down
		v["loanAmount"] = property - down
		return
	}
	v["loanAmount"] = property - v.Get("downPayment")
}

func (c Mortgage) Compute(v Values) Result {
	loan := v.Get("loanAmount")
	down := v.Get("downPayment")
	months := v.Int("term") * constants.MonthsPerYear
	schedule := formula.Amortize(loan, formula.MonthlyRate(v.Get("rate")), months)
	years := formula.AggregateYearly(schedule.Rows)

	balance := Series{
		Key:      "balance",
		Title:    "Loan Balance",
		Chart:    ChartArea,
		Datasets: []Dataset{{Name: "Balance"}, {Name: "Total Principal"}, {Name: "Total Interest"}},
	}
	for _, y := range years {
		balance.Labels = append(balance.Labels, yearLabel(y.Period))
		balance.Datasets[0].Values = append(balance.Datasets[0].Values, y.Balance)
		balance.Datasets[1].Values = append(balance.Datasets[1].Values, y.CumulativePrincipal)
		balance.Datasets[2].Values = append(balance.Datasets[2].Values, y.CumulativeInterest)
	}

	return Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("monthlyPayment", "Monthly Payment", schedule.Payment),
			currencyCard("totalPayment", "Total of All Payments", schedule.TotalPayment),
			currencyCard("totalInterest", "Total Interest", schedule.TotalInterest),
			percentCard("ltv", "Loan-to-Value Ratio", formula.LoanToValue(loan, v.Get("propertyValue"))),
		},
		Tables: []Table{yearlyScheduleTable(years)},
		Series: []Series{
			{
				Key:      "breakdown",
				Title:    "Payment Breakdown",
				Chart:    ChartPie,
				Labels:   []string{"Principal", "Interest", "Down Payment"},
				Datasets: []Dataset{{Name: "Amount", Values: []float64{loan, schedule.TotalInterest, down}}},
			},
			balance,
		},
	}
}
