// Package display converts between engine numbers and the text shown in or
// typed into the calculator.
package display

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"

	"github.com/cloud-ru/finboard-go/pkg/utils"
)

// ThousandSeparator groups digits in displayed amounts (5'000).
const ThousandSeparator = "'"

var (
	grouped  = money.NewFormatter(0, ".", ThousandSeparator, "", "1")
	currency = money.NewFormatter(0, ".", ThousandSeparator, "$", "$1")
)

// GroupThousands formats n with its digits grouped by ThousandSeparator.
func GroupThousands(n int64) string {
	return grouped.Format(n)
}

// Currency formats an amount as whole dollars, e.g. $7'918.
func Currency(v float64) string {
	return currency.Format(wholeUnits(v))
}

// Ratio formats a profit ratio with two decimals. The starting row has no
// meaningful ratio and shows N/A.
func Ratio(r float64, start bool) string {
	if start {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r)
}

// ThousandsTick labels a chart axis value in thousands, e.g. $12.5k.
func ThousandsTick(v float64) string {
	return fmt.Sprintf("$%sk", trimFloat(v/1000))
}

func wholeUnits(v float64) int64 {
	v = utils.RoundWhole(v)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
