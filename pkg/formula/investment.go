package formula

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// SIPFutureValue returns the value of n monthly contributions of M at monthly
// rate r, each contribution compounding for the month it is made in
// (annuity-due): M*((1+r)^n - 1)/r*(1+r). A zero rate returns M*n.
func SIPFutureValue(contribution, periodRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodRate == 0 {
		return contribution * float64(periods)
	}
	power := math.Pow(1+periodRate, float64(periods))
	return contribution * (power - 1) / periodRate * (1 + periodRate)
}

// SIPRow is the position of a SIP at the end of a year.
type SIPRow struct {
	Year     int
	Invested float64
	Returns  float64
	Value    float64
}

// SIP summarizes a systematic investment plan.
type SIP struct {
	Invested float64
	Returns  float64
	Value    float64
	Years    []SIPRow
}

// CalculateSIP evaluates monthly contributions at an annual percentage for a
// number of years. The last breakdown row always equals the headline value.
func CalculateSIP(monthly, annualPercent float64, years int) SIP {
	rate := MonthlyRate(annualPercent)
	months := years * constants.MonthsPerYear

	sip := SIP{
		Invested: monthly * float64(max(months, 0)),
		Value:    SIPFutureValue(monthly, rate, months),
	}
	sip.Returns = sip.Value - sip.Invested

	for year := 1; year <= years; year++ {
		elapsed := year * constants.MonthsPerYear
		invested := monthly * float64(elapsed)
		value := SIPFutureValue(monthly, rate, elapsed)
		sip.Years = append(sip.Years, SIPRow{
			Year:     year,
			Invested: invested,
			Returns:  value - invested,
			Value:    value,
		})
	}
	return sip
}

// FundMode selects how money goes into a mutual fund.
type FundMode string

const (
	// FundLumpsum invests once at the start.
	FundLumpsum FundMode = "lumpsum"
	// FundSIP invests a fixed amount every month.
	FundSIP FundMode = "sip"
)

// MutualFundInput holds the parameters of a mutual fund projection.
type MutualFundInput struct {
	Mode          FundMode
	Lumpsum       float64
	Monthly       float64
	Years         int
	ReturnPercent float64
	ExpenseRatio  float64
}

// MutualFundRow is the position of a fund at the end of a year.
type MutualFundRow struct {
	Year             int
	Invested         float64
	YearlyInvestment float64
	Value            float64
	Returns          float64
	Expenses         float64
	GrossValue       float64
}

// MutualFund summarizes a mutual fund projection net of the expense ratio.
type MutualFund struct {
	NetReturnPercent float64
	Invested         float64
	Value            float64
	Returns          float64
	Expenses         float64
	Years            []MutualFundRow
}

// CalculateMutualFund projects a fund whose return is reduced by its expense
// ratio. Lumpsum investments compound yearly; SIP investments use the monthly
// annuity-due formula. Expenses are the gap between the gross and net values.
func CalculateMutualFund(in MutualFundInput) MutualFund {
	netPercent := in.ReturnPercent - in.ExpenseRatio
	fund := MutualFund{NetReturnPercent: netPercent}

	value := func(years int, percent float64) float64 {
		if in.Mode == FundSIP {
			return SIPFutureValue(in.Monthly, MonthlyRate(percent), years*constants.MonthsPerYear)
		}
		return in.Lumpsum * math.Pow(1+mathutil.PercentToDecimal(percent), float64(years))
	}
	invested := func(years int) float64 {
		if in.Mode == FundSIP {
			return in.Monthly * float64(years*constants.MonthsPerYear)
		}
		return in.Lumpsum
	}

	fund.Invested = invested(in.Years)
	fund.Value = value(in.Years, netPercent)
	fund.Returns = fund.Value - fund.Invested
	fund.Expenses = value(in.Years, in.ReturnPercent) - fund.Value

	for year := 1; year <= in.Years; year++ {
		net := value(year, netPercent)
		gross := value(year, in.ReturnPercent)
		row := MutualFundRow{
			Year:       year,
			Invested:   invested(year),
			Value:      net,
			Expenses:   gross - net,
			GrossValue: gross,
		}
		row.Returns = net - row.Invested
		switch {
		case in.Mode == FundSIP:
			row.YearlyInvestment = in.Monthly * constants.MonthsPerYear
		case year == 1:
			row.YearlyInvestment = in.Lumpsum
		}
		fund.Years = append(fund.Years, row)
	}
	return fund
}
