package calculator

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/formula"
	"github.com/iwvelando/fincalc/pkg/input"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// TaxSaving compares the old and new income tax regimes for a salary and a
// set of tax saving investments.
type TaxSaving struct{}

func (TaxSaving) Slug() string  { return "tax-saving" }
func (TaxSaving) Title() string { return "Tax Saving Calculator" }
func (TaxSaving) Description() string {
	return "Optimize your tax savings through investments"
}

func (TaxSaving) Fields() []input.Field {
	return []input.Field{
		currencyField("income", "Annual Income", 300000, 5000000, 50000, 1200000),
		currencyField("epf", "EPF", 0, 200000, 1000, 21600),
		currencyField("ppf", "PPF", 0, 150000, 1000, 150000),
		currencyField("elss", "ELSS", 0, 150000, 1000, 50000),
		currencyField("nps", "NPS", 0, 150000, 1000, 50000),
		currencyField("lifeInsurance", "Life Insurance", 0, 100000, 1000, 25000),
		currencyField("homeLoan", "Home Loan", 0, 500000, 10000, 200000),
		currencyField("medicalInsurance", "Medical Insurance", 0, 50000, 1000, 25000),
		currencyField("educationLoan", "Education Loan", 0, 100000, 1000, 0),
	}
}

func (c TaxSaving) Compute(v Values) Result {
	income := v.Get("income")
	inv := formula.Investments{
		EPF:              v.Get("epf"),
		PPF:              v.Get("ppf"),
		ELSS:             v.Get("elss"),
		NPS:              v.Get("nps"),
		LifeInsurance:    v.Get("lifeInsurance"),
		HomeLoan:         v.Get("homeLoan"),
		MedicalInsurance: v.Get("medicalInsurance"),
		EducationLoan:    v.Get("educationLoan"),
	}
	deductions := formula.IndianDeductions(inv)
	cmp := formula.CompareRegimes(income, deductions)
	withoutInvestments := formula.TaxWithCess(income, formula.OldRegimeSlabs())

	better := "Old"
	if cmp.Better == formula.RegimeNew {
		better = "New"
	}

	sections := Table{
		Key:         "deductions",
		Title:       "Deductions by Section",
		LabelHeader: "Section",
		Columns:     []Column{currencyColumn("amount", "Deduction")},
		Rows: []Row{
			{Label: "80C (EPF, PPF, ELSS, Life Insurance)", Values: []float64{deductions.Section80C}},
			{Label: "80CCD(1B) (NPS)", Values: []float64{deductions.Section80CCD}},
			{Label: "24 (Home Loan)", Values: []float64{deductions.Section24}},
			{Label: "80D (Medical Insurance)", Values: []float64{deductions.Section80D}},
			{Label: "80E (Education Loan)", Values: []float64{deductions.Section80E}},
		},
	}

	result := Result{
		Calculator: c.Slug(),
		Cards: []Card{
			currencyCard("savings", "Tax Savings", cmp.Savings),
			{
				Key:         "betterRegime",
				Title:       fmt.Sprintf("Better Tax Regime: %s", better),
				Kind:        input.KindCurrency,
				Value:       math.Abs(cmp.OldTax - cmp.NewTax),
				Description: "Difference in tax between the two regimes",
			},
			currencyCard("deductions", "Total Deductions", cmp.Deductions),
			currencyCard("taxableIncome", "Taxable Income", cmp.TaxableIncome),
			currencyCard("oldTax", "Old Regime Tax", cmp.OldTax),
			currencyCard("newTax", "New Regime Tax", cmp.NewTax),
		},
		Tables: []Table{
			sections,
			slabTable("oldSlabs", "Old Regime Slab Rates", formula.OldRegimeSlabs()),
			slabTable("newSlabs", "New Regime Slab Rates", formula.NewRegimeSlabs()),
		},
		Series: []Series{
			{
				Key:      "regimes",
				Title:    "Tax Regime Comparison",
				Chart:    ChartBar,
				Labels:   []string{"Old Regime", "New Regime"},
				Datasets: []Dataset{{Name: "Tax", Values: []float64{cmp.OldTax, cmp.NewTax}}},
			},
			{
				Key:    "breakdown",
				Title:  "Tax Breakdown",
				Chart:  ChartBar,
				Labels: []string{"Without Investments", "With Investments (Old)", "New Regime"},
				Datasets: []Dataset{{
					Name:   "Tax",
					Values: []float64{withoutInvestments, cmp.OldTax, cmp.NewTax},
				}},
			},
			investmentPie(inv),
		},
	}
	return result
}

func slabTable(key, title string, slabs []formula.Slab) Table {
	table := Table{
		Key:         key,
		Title:       title,
		LabelHeader: "Income Up To",
		Columns:     []Column{{Key: "rate", Title: "Rate", Kind: input.KindPercent}},
	}
	for _, slab := range slabs {
		label := "Above"
		if !math.IsInf(slab.Limit, 1) {
			label = fmt.Sprintf("%.0f", slab.Limit)
		}
		table.Rows = append(table.Rows, Row{Label: label, Values: []float64{slab.RatePercent}})
	}
	return table
}

// investmentPie lists the non-zero investments.
func investmentPie(inv formula.Investments) Series {
	pie := Series{Key: "investments", Title: "Investment Summary", Chart: ChartPie, Datasets: []Dataset{{Name: "Amount"}}}
	for _, item := range []struct {
		name  string
		value float64
	}{
		{"EPF", inv.EPF},
		{"PPF", inv.PPF},
		{"ELSS", inv.ELSS},
		{"NPS", inv.NPS},
		{"Life Insurance", inv.LifeInsurance},
		{"Home Loan", inv.HomeLoan},
		{"Medical Insurance", inv.MedicalInsurance},
		{"Education Loan", inv.EducationLoan},
	} {
		if mathutil.IsZero(item.value) {
			continue
		}
		pie.Labels = append(pie.Labels, item.name)
		pie.Datasets[0].Values = append(pie.Datasets[0].Values, item.value)
	}
	return pie
}
