package calculations

import (
	"math"

	"github.com/cloud-ru/finboard-go/pkg/utils"
)

const monthsPerYear = 12

// Project simulates the account month by month and compounds once a year.
//
// Contributions are added at the start of every month; the annual rate is
// applied to the whole balance after the twelfth contribution of each year.
// Running totals keep full precision, only the reported checkpoints are
// rounded. The result has Years+1 points, the first one being year 0.
// Inputs are not validated: callers clamp Years to at least 1.
func Project(in ProjectionInput) []YearPoint {
	balance := in.InitialDeposit
	principal := in.InitialDeposit
	r := in.AnnualRatePercent / 100.0
	contrib := in.MonthlyContribution

	capacity := 1
	if in.Years > 0 {
		capacity += in.Years
	}
	breakdown := make([]YearPoint, 0, capacity)

	start := utils.RoundWhole(principal)
	breakdown = append(breakdown, YearPoint{
		YearOffset: 0,
		Principal:  start,
		Balance:    utils.RoundWhole(balance),
	})

	totalMonths := in.Years * monthsPerYear
	for m := 1; m <= totalMonths; m++ {
		if contrib > 0 {
			balance += contrib
			principal += contrib
		}

		if m%monthsPerYear != 0 {
			continue
		}

		balance += balance * r
		breakdown = append(breakdown, checkpoint(m/monthsPerYear, balance, principal))
	}

	return breakdown
}

// checkpoint rounds the running totals and derives interest and profit ratio.
// Interest is floored at zero, which can hide a rounding-induced dip of the
// balance under the principal.
func checkpoint(year int, balance, principal float64) YearPoint {
	b := utils.RoundWhole(balance)
	p := utils.RoundWhole(principal)
	interest := math.Max(0, b-p)

	var ratio float64
	if p > 0 {
		ratio = interest / p
	}

	return YearPoint{
		YearOffset:     year,
		Principal:      p,
		Balance:        b,
		InterestAmount: interest,
		ProfitRatio:    ratio,
	}
}

// Summarize returns the totals of the last point of a breakdown.
// startYear is the calendar year of offset 0.
func Summarize(points []YearPoint, startYear int) ProjectionSummary {
	if len(points) == 0 {
		return ProjectionSummary{StartYear: startYear, EndYear: startYear}
	}
	last := points[len(points)-1]
	return ProjectionSummary{
		Years:          last.YearOffset,
		TotalPrincipal: last.Principal,
		TotalInterest:  last.InterestAmount,
		EndBalance:     last.Balance,
		ProfitRatio:    utils.Round2(last.ProfitRatio),
		StartYear:      startYear,
		EndYear:        CalendarYear(last, startYear),
	}
}

// CalendarYear maps a point's offset onto the calendar
func CalendarYear(p YearPoint, startYear int) int {
	return startYear + p.YearOffset
}
