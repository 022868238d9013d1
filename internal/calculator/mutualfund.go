package calculator

import (
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// MutualFund projects a lumpsum or SIP investment net of the fund's expense
// ratio.
type MutualFund struct{}

const (
	fundModeLumpsum = 0
	fundModeSIP     = 1
)

func (MutualFund) Slug() string  { return "mutual-fund" }
func (MutualFund) Title() string { return "Mutual Fund Calculator" }
func (MutualFund) Description() string {
	return "Track potential returns on your mutual fund investments"
}

func (MutualFund) Fields() []input.Field {
	return []input.Field{
		{
			Key:     "mode",
			Label:   "Investment Type",
			Kind:    input.KindChoice,
			Min:     fundModeLumpsum,
			Max:     fundModeSIP,
			Default: fundModeLumpsum,
			Choices: []input.Choice{
				{Value: fundModeLumpsum, Label: "Lumpsum"},
				{Value: fundModeSIP, Label: "SIP"},
			},
		},
		currencyField("lumpsum", "Investment Amount", 10000, 10000000, 10000, 100000),
		currencyField("monthly", "Monthly SIP Amount", 500, 100000, 500, 10000),
		yearsField("years", "Investment Period", 1, 30, 5),
		percentField("rate", "Expected Annual Return", 5, 25, 0.5, 12),
		percentField("expenseRatio", "Expense Ratio", 0.1, 5, 0.1, 1.5),
	}
}

func (c MutualFund) Compute(v Values) Result {
	mode := formula.FundLumpsum
	if v.Int("mode") == fundModeSIP {
		mode = formula.FundSIP
	}
	fund := formula.CalculateMutualFund(formula.MutualFundInput{
		Mode:          mode,
		Lumpsum:       v.Get("lumpsum"),
		Monthly:       v.Get("monthly"),
		Years:         v.Int("years"),
		ReturnPercent: v.Get("rate"),
		ExpenseRatio:  v.Get("expenseRatio"),
	})

	table := Table{
		Key:         "breakdown",
		Title:       "Yearly Breakdown",
		LabelHeader: "Year",
		Columns: []Column{
			currencyColumn("yearlyInvestment", "Invested This Year"),
			currencyColumn("invested", "Total Invested"),
			currencyColumn("returns", "Returns"),
			currencyColumn("expenses", "Expenses Paid"),
			currencyColumn("value", "Value"),
		},
	}
	growth := Series{
		Key:      "growth",
		Title:    "Yearly Growth",
		Chart:    ChartArea,
		Datasets: []Dataset{{Name: "Invested"}, {Name: "Value"}},
	}
	impact := Series{
		Key:      "expenseImpact",
		Title:    "Impact of Expense Ratio",
		Chart:    ChartLine,
		Datasets: []Dataset{{Name: "No Expense"}, {Name: "With Expense"}, {Name: "Expenses Paid"}},
	}
	for _, row := range fund.Years {
		label := yearLabel(row.Year)
		table.Rows = append(table.Rows, Row{
			Label:  label,
			Values: []float64{row.YearlyInvestment, row.Invested, row.Returns, row.Expenses, row.Value},
		})
		growth.Labels = append(growth.Labels, label)
		growth.Datasets[0].Values = append(growth.Datasets[0].Values, row.Invested)
		growth.Datasets[1].Values = append(growth.Datasets[1].Values, row.Value)
		impact.Labels = append(impact.Labels, label)
		impact.Datasets[0].Values = append(impact.Datasets[0].Values, row.GrossValue)
		impact.Datasets[1].Values = append(impact.Datasets[1].Values, row.Value)
		impact.Datasets[2].Values = append(impact.Datasets[2].Values, row.Expenses)
	}

	return Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("invested", "Total Investment", fund.Invested),
			currencyCard("returns", "Total Return", fund.Returns),
			currencyCard("expenses", "Total Expense Paid", fund.Expenses),
			currencyCard("value", "Final Value", fund.Value),
			percentCard("netReturn", "Net Annual Return", fund.NetReturnPercent),
		},
		Tables: []Table{table},
		Series: []Series{
			{
				Key:      "split",
				Title:    "Investment Split",
				Chart:    ChartPie,
				Labels:   []string{"Investment", "Returns", "Expenses"},
				Datasets: []Dataset{{Name: "Amount", Values: []float64{fund.Invested, fund.Returns, fund.Expenses}}},
			},
			growth,
			impact,
		},
	}
}
