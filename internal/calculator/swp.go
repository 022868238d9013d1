package calculator

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// SWP simulates a systematic withdrawal plan.
type SWP struct{}

func (SWP) Slug() string  { return "swp" }
func (SWP) Title() string { return "SWP Calculator" }
func (SWP) Description() string {
	return "Plan your Systematic Withdrawal Plan"
}

func (SWP) Fields() []input.Field {
	return []input.Field{
		currencyField("initial", "Initial Investment", 500000, 10000000, 100000, 2000000),
		currencyField("withdrawal", "Monthly Withdrawal", 5000, 100000, 1000, 15000),
		percentField("rate", "Expected Annual Return", 5, 15, 0.5, 10),
		yearsField("years", "Withdrawal Period", 5, 30, 15),
	}
}

func (c SWP) Compute(v Values) Result {
	initial := v.Get("initial")
	withdrawal := v.Get("withdrawal")
	annual := v.Get("rate")
	months := v.Int("years") * constants.MonthsPerYear

	swp := formula.SimulateSWP(initial, withdrawal, formula.MonthlyRate(annual), months)
	rate, status := formula.SWPSustainability(initial, withdrawal, annual, swp.FinalCorpus)

	corpus := Series{
		Key:      "corpus",
		Title:    "Corpus Over Time",
		Chart:    ChartLine,
		Datasets: []Dataset{{Name: "Corpus"}, {Name: "Total Withdrawn"}},
	}
	for _, m := range swp.Months {
		if m.Month == 1 || m.Month%3 == 0 || m.Month == months {
			corpus.Labels = append(corpus.Labels, monthLabel(m.Month))
			corpus.Datasets[0].Values = append(corpus.Datasets[0].Values, m.Corpus)
			corpus.Datasets[1].Values = append(corpus.Datasets[1].Values, m.Withdrawn)
		}
	}

	yearly := Table{
		Key:         "yearly",
		Title:       "Yearly Breakdown",
		LabelHeader: "Year",
		Columns: []Column{
			currencyColumn("withdrawn", "Withdrawn"),
			currencyColumn("return", "Returns Earned"),
			currencyColumn("corpus", "Remaining Corpus"),
			currencyColumn("cumulative", "Total Withdrawn"),
		},
	}
	projection := Series{
		Key:      "yearly",
		Title:    "Yearly Projection",
		Chart:    ChartBar,
		Datasets: []Dataset{{Name: "Withdrawn"}, {Name: "Returns"}},
	}
	for _, y := range swp.Years {
		label := yearLabel(y.Year)
		yearly.Rows = append(yearly.Rows, Row{Label: label, Values: []float64{y.Withdrawn, y.Return, y.Corpus, y.CumulativeWithdrawn}})
		projection.Labels = append(projection.Labels, label)
		projection.Datasets[0].Values = append(projection.Datasets[0].Values, y.Withdrawn)
		projection.Datasets[1].Values = append(projection.Datasets[1].Values, y.Return)
	}

	result := Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("totalWithdrawn", "Total Withdrawals", swp.TotalWithdrawn),
			currencyCard("finalCorpus", "Final Corpus", swp.FinalCorpus),
			{
				Key:         "withdrawalRate",
				Title:       "Annual Withdrawal Rate",
				Kind:        input.KindPercent,
				Value:       rate,
				Description: fmt.Sprintf("Status: %s", status),
			},
			currencyCard("monthlyIncome", "Monthly Income", withdrawal),
			textCard("sustainability", "Sustainability Status", string(status)),
			percentCard("finalCorpusPercent", "Final Corpus Percentage", mathutil.CalculatePercentage(swp.FinalCorpus, initial)),
		},
		Tables: []Table{yearly},
		Series: []Series{corpus, projection},
	}
	if status == formula.NotSustainable {
		result.Notes = append(result.Notes, "The corpus runs out before the end of the withdrawal period.")
	}
	return result
}
