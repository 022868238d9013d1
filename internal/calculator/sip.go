package calculator

import (
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
)

// SIP projects a systematic investment plan.
type SIP struct{}

func (SIP) Slug() string  { return "sip" }
func (SIP) Title() string { return "SIP Calculator" }
func (SIP) Description() string {
	return "Calculate returns on Systematic Investment Plans"
}

func (SIP) Fields() []input.Field {
	return []input.Field{
		currencyField("monthly", "Monthly Investment", 500, 100000, 500, 10000),
		yearsField("years", "Time Period", 1, 30, 10),
		percentField("rate", "Expected Return Rate", 1, 30, 0.5, 12),
	}
}

func (c SIP) Compute(v Values) Result {
	sip := formula.CalculateSIP(v.Get("monthly"), v.Get("rate"), v.Int("years"))

	table := Table{
		Key:         "breakdown",
		Title:       "Year-by-Year Breakdown",
		LabelHeader: "Year",
		Columns: []Column{
			currencyColumn("invested", "Invested Amount"),
			currencyColumn("returns", "Estimated Returns"),
			currencyColumn("value", "Total Value"),
		},
	}
	growth := Series{
		Key:      "growth",
		Title:    "Wealth Growth Over Time",
		Chart:    ChartArea,
		Datasets: []Dataset{{Name: "Invested"}, {Name: "Total Value"}},
	}
	for _, row := range sip.Years {
		label := yearLabel(row.Year)
		table.Rows = append(table.Rows, Row{Label: label, Values: []float64{row.Invested, row.Returns, row.Value}})
		growth.Labels = append(growth.Labels, label)
		growth.Datasets[0].Values = append(growth.Datasets[0].Values, row.Invested)
		growth.Datasets[1].Values = append(growth.Datasets[1].Values, row.Value)
	}

	return Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("invested", "Invested Amount", sip.Invested),
			currencyCard("returns", "Estimated Returns", sip.Returns),
			currencyCard("value", "Total Value", sip.Value),
		},
		Tables: []Table{table},
		Series: []Series{
			{
				Key:      "split",
				Title:    "Investment vs Returns",
				Chart:    ChartPie,
				Labels:   []string{"Your Investment", "Estimated Returns"},
				Datasets: []Dataset{{Name: "Amount", Values: []float64{sip.Invested, sip.Returns}}},
			},
			growth,
		},
	}
}
