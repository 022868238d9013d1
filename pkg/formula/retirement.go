package formula

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Phase distinguishes saving years from spending years.
type Phase string

const (
	PhaseAccumulation Phase = "pre-retirement"
	PhaseRetirement   Phase = "post-retirement"
)

// RetirementInput holds the parameters of a retirement projection. Rates are
// annual percentages.
type RetirementInput struct {
	CurrentAge           int
	RetirementAge        int
	LifeExpectancy       int
	CurrentSavings       float64
	MonthlySavings       float64
	MonthlyExpenses      float64 // in today's money
	PreRetirementReturn  float64
	PostRetirementReturn float64
	Inflation            float64
}

// RetirementYear is one row of the year by year projection.
type RetirementYear struct {
	Age          int
	Phase        Phase
	Savings      float64
	Expenses     float64
	Contribution float64
	Return       float64
}

// RetirementPlan is the outcome of a retirement projection.
type RetirementPlan struct {
	YearsToRetirement int
	YearsInRetirement int
	Corpus            float64 // projected at retirement
	RequiredCorpus    float64
	Shortfall         float64
	Adequate          bool
	InflatedExpense   float64 // monthly, at retirement
	AdditionalMonthly float64 // extra saving that closes the shortfall
	DepletionAge      int     // 0 when the corpus lasts the whole retirement
	Projection        []RetirementYear
}

// ProjectRetirement grows the current savings with yearly contributions until
// retirement, then draws down inflating expenses while the remainder earns
// the post retirement return.
//
// The accumulation rows report corpus*r - contribution*r/2 as the return of
// the year, an approximation that treats contributions as arriving mid year.
func ProjectRetirement(in RetirementInput) RetirementPlan {
	plan := RetirementPlan{
		YearsToRetirement: max(in.RetirementAge-in.CurrentAge, 0),
		YearsInRetirement: max(in.LifeExpectancy-in.RetirementAge, 0),
	}

	preRate := mathutil.PercentToDecimal(in.PreRetirementReturn)
	postRate := mathutil.PercentToDecimal(in.PostRetirementReturn)
	inflation := mathutil.PercentToDecimal(in.Inflation)
	annualSavings := in.MonthlySavings * constants.MonthsPerYear

	corpus := in.CurrentSavings
	for year := 1; year <= plan.YearsToRetirement; year++ {
		corpus = corpus*(1+preRate) + annualSavings
		plan.Projection = append(plan.Projection, RetirementYear{
			Age:          in.CurrentAge + year,
			Phase:        PhaseAccumulation,
			Savings:      corpus,
			Contribution: annualSavings,
			Return:       corpus*preRate - annualSavings*preRate/2,
		})
	}
	plan.Corpus = corpus

	plan.InflatedExpense = in.MonthlyExpenses * math.Pow(1+inflation, float64(plan.YearsToRetirement))
	plan.RequiredCorpus = RequiredCorpus(plan.InflatedExpense*constants.MonthsPerYear,
		in.PostRetirementReturn, in.Inflation, plan.YearsInRetirement)

	plan.Adequate = plan.Corpus >= plan.RequiredCorpus
	if !plan.Adequate {
		plan.Shortfall = plan.RequiredCorpus - plan.Corpus
		plan.AdditionalMonthly = RequiredAdditionalSavings(plan.Shortfall, in.PreRetirementReturn, plan.YearsToRetirement)
	}

	remaining := corpus
	expense := plan.InflatedExpense * constants.MonthsPerYear
	for year := 1; year <= plan.YearsInRetirement; year++ {
		remaining = remaining*(1+postRate) - expense
		if remaining < 0 && plan.DepletionAge == 0 {
			plan.DepletionAge = in.RetirementAge + year
		}
		plan.Projection = append(plan.Projection, RetirementYear{
			Age:      in.RetirementAge + year,
			Phase:    PhaseRetirement,
			Savings:  math.Max(0, remaining),
			Expenses: expense,
			Return:   remaining * postRate,
		})
		expense *= 1 + inflation
	}
	return plan
}

// RequiredCorpus is the corpus needed at retirement to fund annualExpense,
// growing with inflation, for the given years. When the post retirement
// return beats inflation it is the present value of the annuity at the real
// rate; otherwise it is the flat sum of the first year's expense.
func RequiredCorpus(annualExpense, postReturnPercent, inflationPercent float64, years int) float64 {
	if years <= 0 {
		return 0
	}
	realRate := mathutil.PercentToDecimal(postReturnPercent - inflationPercent)
	if realRate <= 0 {
		return annualExpense * float64(years)
	}
	return annualExpense / realRate * (1 - math.Pow(1+realRate, -float64(years)))
}

// RequiredAdditionalSavings returns the extra monthly saving that, invested
// yearly at annualPercent for years, grows to shortfall.
func RequiredAdditionalSavings(shortfall, annualPercent float64, years int) float64 {
	if years <= 0 || shortfall <= 0 {
		return 0
	}
	rate := mathutil.PercentToDecimal(annualPercent)
	factor := float64(years)
	if rate != 0 {
		factor = (math.Pow(1+rate, float64(years)) - 1) / rate
	}
	return shortfall / factor / constants.MonthsPerYear
}
