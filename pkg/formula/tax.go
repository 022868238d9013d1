package formula

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Slab is an income bracket: income up to Limit (and above the previous
// slab's limit) is taxed at RatePercent.
type Slab struct {
	Limit       float64
	RatePercent float64
}

var (
	oldRegimeSlabs = []Slab{
		{Limit: 250000, RatePercent: 0},
		{Limit: 500000, RatePercent: 5},
		{Limit: 1000000, RatePercent: 20},
		{Limit: math.Inf(1), RatePercent: 30},
	}
	newRegimeSlabs = []Slab{
		{Limit: 300000, RatePercent: 0},
		{Limit: 600000, RatePercent: 5},
		{Limit: 900000, RatePercent: 10},
		{Limit: 1200000, RatePercent: 15},
		{Limit: 1500000, RatePercent: 20},
		{Limit: math.Inf(1), RatePercent: 30},
	}
)

// OldRegimeSlabs returns the slabs of the deduction eligible regime.
func OldRegimeSlabs() []Slab {
	return append([]Slab(nil), oldRegimeSlabs...)
}

// NewRegimeSlabs returns the slabs of the regime without deductions.
func NewRegimeSlabs() []Slab {
	return append([]Slab(nil), newRegimeSlabs...)
}

// SlabTax computes progressive tax on income. Slabs must have strictly
// increasing limits and the last limit should be +Inf; income beyond the last
// finite limit is untaxed otherwise.
func SlabTax(income float64, slabs []Slab) float64 {
	remaining := math.Max(0, income)
	var tax, previous float64
	for _, slab := range slabs {
		if remaining <= 0 {
			break
		}
		inSlab := math.Min(remaining, slab.Limit-previous)
		tax += mathutil.ApplyPercentage(inSlab, slab.RatePercent)
		remaining -= inSlab
		previous = slab.Limit
	}
	return tax
}

// TaxWithCess is SlabTax plus the cess levied on the computed tax.
func TaxWithCess(income float64, slabs []Slab) float64 {
	tax := SlabTax(income, slabs)
	return tax + mathutil.ApplyPercentage(tax, constants.CessPercent)
}

// Investments are the yearly amounts claimed under each deduction section.
type Investments struct {
	EPF              float64
	PPF              float64
	ELSS             float64
	NPS              float64
	LifeInsurance    float64
	HomeLoan         float64
	MedicalInsurance float64
	EducationLoan    float64
}

// Deductions are the capped amounts per section.
type Deductions struct {
	Section80C   float64
	Section80CCD float64
	Section24    float64
	Section80D   float64
	Section80E   float64
}

// Total sums every section.
func (d Deductions) Total() float64 {
	return d.Section80C + d.Section80CCD + d.Section24 + d.Section80D + d.Section80E
}

// IndianDeductions applies the per-section caps. Home loan interest and
// education loan interest are taken in full.
func IndianDeductions(inv Investments) Deductions {
	return Deductions{
		Section80C:   math.Min(inv.EPF+inv.PPF+inv.ELSS+inv.LifeInsurance, constants.Section80CCap),
		Section80CCD: math.Min(inv.NPS, constants.Section80CCD1BCap),
		Section24:    inv.HomeLoan,
		Section80D:   math.Min(inv.MedicalInsurance, constants.Section80DCap),
		Section80E:   inv.EducationLoan,
	}
}

// Regime names a tax regime.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// RegimeComparison is the result of pricing income under both regimes.
type RegimeComparison struct {
	Deductions    float64
	TaxableIncome float64 // under the old regime
	OldTax        float64
	NewTax        float64
	Better        Regime
	Savings       float64 // old regime tax without deductions minus the chosen tax
}

// CompareRegimes taxes income under the old regime after deductions and under
// the new regime without them. Ties go to the old regime.
func CompareRegimes(income float64, deductions Deductions) RegimeComparison {
	cmp := RegimeComparison{Deductions: deductions.Total()}
	cmp.TaxableIncome = math.Max(0, income-cmp.Deductions)
	cmp.OldTax = TaxWithCess(cmp.TaxableIncome, oldRegimeSlabs)
	cmp.NewTax = TaxWithCess(income, newRegimeSlabs)

	chosen := cmp.OldTax
	cmp.Better = RegimeOld
	if cmp.NewTax < cmp.OldTax {
		chosen = cmp.NewTax
		cmp.Better = RegimeNew
	}
	cmp.Savings = TaxWithCess(income, oldRegimeSlabs) - chosen
	return cmp
}
