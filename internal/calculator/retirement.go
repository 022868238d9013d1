package calculator

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Retirement projects savings to retirement and spending through it.
type Retirement struct{}

func (Retirement) Slug() string  { return "retirement" }
func (Retirement) Title() string { return "Retirement Calculator" }
func (Retirement) Description() string {
	return "Plan your retirement savings and income"
}

func (Retirement) Fields() []input.Field {
	return []input.Field{
		ageField("currentAge", "Current Age", 20, 70, 30),
		ageField("retirementAge", "Retirement Age", 45, 75, 60),
		ageField("lifeExpectancy", "Life Expectancy", 70, 100, 85),
		currencyField("currentSavings", "Current Savings", 0, 10000000, 100000, 500000),
		currencyField("monthlySavings", "Monthly Savings", 5000, 200000, 1000, 20000),
		currencyField("monthlyExpenses", "Monthly Expenses (Current)", 10000, 500000, 5000, 50000),
		percentField("preReturn", "Pre-Retirement Return", 6, 15, 0.5, 12),
		percentField("postReturn", "Post-Retirement Return", 4, 12, 0.5, 8),
		percentField("inflation", "Inflation Rate", 2, 10, 0.5, 6),
	}
}

// Link keeps retirement at least a year after the current age.
func (Retirement) Link(_ string, v Values) {
	if minimum := v.Get("currentAge") + 1; v.Get("retirementAge") < minimum {
		v["retirementAge"] = minimum
	}
}

func (c Retirement) Compute(v Values) Result {
	return c.ComputeIn(format.Default(), v)
}

// ComputeIn writes the shortfall status, the compact corpus figures and the
// notes with f.
func (c Retirement) ComputeIn(f *format.Formatter, v Values) Result {
	in := formula.RetirementInput{
		CurrentAge:           v.Int("currentAge"),
		RetirementAge:        v.Int("retirementAge"),
		LifeExpectancy:       v.Int("lifeExpectancy"),
		CurrentSavings:       v.Get("currentSavings"),
		MonthlySavings:       v.Get("monthlySavings"),
		MonthlyExpenses:      v.Get("monthlyExpenses"),
		PreRetirementReturn:  v.Get("preReturn"),
		PostRetirementReturn: v.Get("postReturn"),
		Inflation:            v.Get("inflation"),
	}
	plan := formula.ProjectRetirement(in)

	status := textCard("status", "Retirement Corpus Status", "Adequate")
	status.Description = "Your savings plan is on track"
	if !plan.Adequate {
		status.Text = f.Currency(plan.Shortfall) + " Shortfall"
		status.Description = "Additional savings needed"
	}

	savingsGrowth := in.CurrentSavings * math.Pow(1+mathutil.PercentToDecimal(in.PreRetirementReturn), float64(plan.YearsToRetirement))
	contributions := plan.Corpus - savingsGrowth

	lasts := "Beyond Life Expectancy"
	if plan.DepletionAge > 0 {
		lasts = fmt.Sprintf("Until age %d", plan.DepletionAge)
	}

	projection := Table{
		Key:         "projection",
		Title:       "Detailed Year-by-Year Projection",
		LabelHeader: "Age",
		Columns: []Column{
			currencyColumn("savings", "Savings"),
			currencyColumn("contribution", "Annual Contribution"),
			currencyColumn("return", "Annual Return"),
			currencyColumn("expenses", "Annual Expenses"),
		},
	}
	growth := Series{
		Key:      "corpus",
		Title:    "Corpus Growth",
		Chart:    ChartArea,
		Datasets: []Dataset{{Name: "Savings"}, {Name: "Expenses"}},
	}
	flows := Series{
		Key:      "flows",
		Title:    "Annual Contributions & Returns",
		Chart:    ChartBar,
		Datasets: []Dataset{{Name: "Contribution"}, {Name: "Return"}},
	}
	for _, year := range plan.Projection {
		label := fmt.Sprintf("%d", year.Age)
		projection.Rows = append(projection.Rows, Row{
			Label:  fmt.Sprintf("%d (%s)", year.Age, year.Phase),
			Values: []float64{year.Savings, year.Contribution, year.Return, year.Expenses},
		})
		growth.Labels = append(growth.Labels, label)
		growth.Datasets[0].Values = append(growth.Datasets[0].Values, year.Savings)
		growth.Datasets[1].Values = append(growth.Datasets[1].Values, year.Expenses)
		if year.Phase == formula.PhaseAccumulation {
			flows.Labels = append(flows.Labels, label)
			flows.Datasets[0].Values = append(flows.Datasets[0].Values, year.Contribution)
			flows.Datasets[1].Values = append(flows.Datasets[1].Values, year.Return)
		}
	}

	result := Result{
		Calculator: c.Slug(),
		Cards: []Card{
			{Key: "corpus", Title: "Expected Retirement Corpus", Kind: input.KindCurrency, Value: plan.Corpus,
				Description: f.Compact(plan.Corpus)},
			{Key: "requiredCorpus", Title: "Required Retirement Corpus", Kind: input.KindCurrency, Value: plan.RequiredCorpus,
				Description: f.Compact(plan.RequiredCorpus)},
			status,
			{Key: "yearsToRetirement", Title: "Years to Retirement", Kind: input.KindYears, Value: float64(plan.YearsToRetirement)},
			{Key: "yearsInRetirement", Title: "Years in Retirement", Kind: input.KindYears, Value: float64(plan.YearsInRetirement)},
			{Key: "inflatedExpense", Title: "Monthly Expenses at Retirement", Kind: input.KindCurrency, Value: plan.InflatedExpense},
			currencyCard("savingsGrowth", "Current Savings Future Value", savingsGrowth),
			currencyCard("contributionsValue", "Value of Future Contributions", contributions),
			textCard("corpusLasts", "Years Corpus Will Last", lasts),
		},
		Tables: []Table{projection},
		Series: []Series{
			growth,
			flows,
			{
				Key:    "composition",
				Title:  "Retirement Corpus Breakdown",
				Chart:  ChartPie,
				Labels: []string{"Current Savings", "Future Contributions", "Shortfall (if any)"},
				Datasets: []Dataset{{
					Name:   "Amount",
					Values: []float64{savingsGrowth, contributions, plan.Shortfall},
				}},
			},
		},
	}

	if plan.Adequate {
		result.Notes = []string{
			"On Track for Retirement: your current savings plan is adequate for your retirement needs.",
		}
	} else {
		result.Notes = []string{
			fmt.Sprintf("Action Needed: you may face a shortfall of %s in your retirement corpus.", f.Currency(plan.Shortfall)),
			fmt.Sprintf("Consider increasing your monthly savings by %s or extending your retirement age.",
				f.Currency(plan.AdditionalMonthly)),
		}
	}
	return result
}
