package formula

import (
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// SWPMonth is the state of a withdrawal plan after one month.
type SWPMonth struct {
	Month     int
	Corpus    float64
	Withdrawn float64 // cumulative
	Return    float64 // earned this month
}

// SWPYear is the state of a withdrawal plan at the end of a year.
type SWPYear struct {
	Year                int
	Corpus              float64
	Withdrawn           float64
	CumulativeWithdrawn float64
	Return              float64
}

// SWP is the outcome of a systematic withdrawal plan simulation.
type SWP struct {
	TotalWithdrawn float64
	FinalCorpus    float64
	Months         []SWPMonth
	Years          []SWPYear
}

// SimulateSWP runs a withdrawal plan month by month: the corpus first earns
// periodRate, then pays out the withdrawal. The corpus is allowed to go
// negative when the withdrawal exceeds what the corpus can sustain.
func SimulateSWP(initial, withdrawal, periodRate float64, months int) SWP {
	result := SWP{FinalCorpus: initial}
	if months <= 0 {
		return result
	}

	result.Months = make([]SWPMonth, 0, months)
	corpus := initial
	var withdrawn, yearReturn, yearWithdrawn float64
	for month := 1; month <= months; month++ {
		monthlyReturn := corpus * periodRate
		corpus += monthlyReturn
		corpus -= withdrawal
		withdrawn += withdrawal

		yearReturn += monthlyReturn
		yearWithdrawn += withdrawal

		result.Months = append(result.Months, SWPMonth{
			Month:     month,
			Corpus:    corpus,
			Withdrawn: withdrawn,
			Return:    monthlyReturn,
		})

		if month%constants.MonthsPerYear == 0 {
			result.Years = append(result.Years, SWPYear{
				Year:                month / constants.MonthsPerYear,
				Corpus:              corpus,
				Withdrawn:           yearWithdrawn,
				CumulativeWithdrawn: withdrawn,
				Return:              yearReturn,
			})
			yearReturn, yearWithdrawn = 0, 0
		}
	}

	result.TotalWithdrawn = withdrawn
	result.FinalCorpus = corpus
	return result
}

// Sustainability grades a withdrawal plan.
type Sustainability string

const (
	NotSustainable        Sustainability = "Not Sustainable"
	HighlySustainable     Sustainability = "Highly Sustainable"
	ModeratelySustainable Sustainability = "Moderately Sustainable"
	MarginallySustainable Sustainability = "Marginally Sustainable"
)

// SWPSustainability returns the annual withdrawal rate as a percentage of the
// initial corpus and grades it against the expected annual return.
func SWPSustainability(initial, monthlyWithdrawal, annualReturnPercent, finalCorpus float64) (float64, Sustainability) {
	rate := mathutil.CalculatePercentage(monthlyWithdrawal*constants.MonthsPerYear, initial)
	// Thresholds compare at two decimals, as the rate is displayed.
	shown := mathutil.Round(rate)

	switch {
	case finalCorpus <= 0:
		return rate, NotSustainable
	case shown <= mathutil.Round(annualReturnPercent*0.7):
		return rate, HighlySustainable
	case shown <= mathutil.Round(annualReturnPercent*0.9):
		return rate, ModeratelySustainable
	default:
		return rate, MarginallySustainable
	}
}
