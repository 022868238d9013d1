package calculator

import (
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// SimpleInterest computes simple interest, or compound interest when the
// compound toggle is on.
type SimpleInterest struct{}

func (SimpleInterest) Slug() string  { return "simple-interest" }
func (SimpleInterest) Title() string { return "Interest Calculator" }
func (SimpleInterest) Description() string {
	return "Compare simple and compound interest earnings"
}

func (SimpleInterest) Fields() []input.Field {
	return []input.Field{
		currencyField("principal", "Principal Amount", 1000, 1000000, 1000, 10000),
		percentField("rate", "Interest Rate", 1, 25, 0.1, 5),
		yearsField("time", "Time Period", 1, 30, 5),
		toggleField("compound", "Compound Interest", false),
		compoundingField(),
	}
}

func (c SimpleInterest) Compute(v Values) Result {
	if v.Bool("compound") {
		return compoundResult(c.Slug(), v)
	}

	principal := v.Get("principal")
	rate := v.Get("rate")
	years := v.Int("time")
	interest := formula.SimpleInterest(principal, rate, float64(years))
	return interestResult(c.Slug(), principal, interest, formula.SimpleInterestBreakdown(principal, rate, years))
}

// CompoundInterest computes periodically compounded growth.
type CompoundInterest struct{}

func (CompoundInterest) Slug() string  { return "compound-interest" }
func (CompoundInterest) Title() string { return "Compound Interest Calculator" }
func (CompoundInterest) Description() string {
	return "See how your money grows with compound interest"
}

func (CompoundInterest) Fields() []input.Field {
	return []input.Field{
		currencyField("principal", "Principal Amount", 1000, 1000000, 1000, 10000),
		percentField("rate", "Interest Rate", 1, 25, 0.1, 8),
		yearsField("time", "Time Period", 1, 30, 5),
		compoundingField(),
	}
}

func (c CompoundInterest) Compute(v Values) Result {
	return compoundResult(c.Slug(), v)
}

func compoundingField() input.Field {
	return input.Field{
		Key:     "frequency",
		Label:   "Compounding Frequency",
		Kind:    input.KindChoice,
		Min:     constants.CompoundYearly,
		Max:     constants.CompoundMonthly,
		Default: constants.CompoundYearly,
		Choices: []input.Choice{
			{Value: constants.CompoundYearly, Label: "Yearly"},
			{Value: constants.CompoundQuarterly, Label: "Quarterly"},
			{Value: constants.CompoundMonthly, Label: "Monthly"},
		},
	}
}

func compoundResult(slug string, v Values) Result {
	principal := v.Get("principal")
	rate := v.Get("rate")
	years := v.Int("time")
	frequency := v.Int("frequency")
	amount := formula.CompoundAmount(principal, rate, frequency, float64(years))
	return interestResult(slug, principal, amount-principal, formula.CompoundInterestBreakdown(principal, rate, frequency, years))
}

func interestResult(slug string, principal, interest float64, rows []formula.InterestRow) Result {
	table := Table{
		Key:         "growth",
		Title:       "Yearly Growth",
		LabelHeader: "Year",
		Columns: []Column{
			currencyColumn("principal", "Principal"),
			currencyColumn("interest", "Interest"),
			currencyColumn("amount", "Total Amount"),
		},
	}
	growth := Series{
		Key:      "growth",
		Title:    "Yearly Growth",
		Chart:    ChartBar,
		Datasets: []Dataset{{Name: "Principal"}, {Name: "Interest"}},
	}
	for _, row := range rows {
		label := yearLabel(row.Year)
		table.Rows = append(table.Rows, Row{Label: label, Values: []float64{row.Principal, row.Interest, row.Amount}})
		growth.Labels = append(growth.Labels, label)
		growth.Datasets[0].Values = append(growth.Datasets[0].Values, row.Principal)
		growth.Datasets[1].Values = append(growth.Datasets[1].Values, row.Interest)
	}

	return Result{
		Calculator: slug,
		Cards: []Card{
			currencyCard("principal", "Principal Amount", principal),
			currencyCard("interest", "Interest Earned", interest),
			currencyCard("amount", "Total Amount", principal+interest),
		},
		Tables: []Table{table},
		Series: []Series{
			{
				Key:      "breakdown",
				Title:    "Principal vs Interest",
				Chart:    ChartPie,
				Labels:   []string{"Principal", "Interest"},
				Datasets: []Dataset{{Name: "Amount", Values: []float64{principal, interest}}},
			},
			growth,
		},
	}
}
