package display

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/finboard-go/internal/calculations"
)

// Calculator defaults shown on first visit.
const (
	DefaultDeposit      = 5000
	DefaultContribution = 200
	DefaultYears        = 10
	DefaultRate         = 7
)

// Form keys shared by the calculator page, the JSON API and the CLI.
const (
	KeyDeposit      = "deposit"
	KeyContribution = "contribution"
	KeyYears        = "years"
	KeyRate         = "rate"
)

var maxYears = decimal.NewFromInt(math.MaxInt32)

// ParseDigits keeps only the digits of s. An empty result is 0; values too
// large for int64 saturate.
func ParseDigits(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}

// ParseRate reads a signed decimal percentage. Both "7.5" and "7,5" are
// accepted; anything unparsable is 0.
func ParseRate(s string) float64 {
	d, ok := parseDecimal(s)
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

// ParseYears reads a horizon in whole years, truncating fractions and
// clamping to at least 1.
func ParseYears(s string) int {
	d, ok := parseDecimal(s)
	if !ok {
		return 1
	}
	if d.GreaterThan(maxYears) {
		return math.MaxInt32
	}
	years := int(d.IntPart())
	if years < 1 {
		return 1
	}
	return years
}

// InputFromValues builds a ProjectionInput from form or query values.
// Absent keys use the calculator defaults, present but blank keys read as 0.
func InputFromValues(values url.Values) calculations.ProjectionInput {
	in := calculations.ProjectionInput{
		InitialDeposit:      DefaultDeposit,
		MonthlyContribution: DefaultContribution,
		Years:               DefaultYears,
		AnnualRatePercent:   DefaultRate,
	}
	if values.Has(KeyDeposit) {
		in.InitialDeposit = float64(ParseDigits(values.Get(KeyDeposit)))
	}
	if values.Has(KeyContribution) {
		in.MonthlyContribution = float64(ParseDigits(values.Get(KeyContribution)))
	}
	if values.Has(KeyYears) {
		in.Years = ParseYears(values.Get(KeyYears))
	}
	if values.Has(KeyRate) {
		in.AnnualRatePercent = ParseRate(values.Get(KeyRate))
	}
	return in
}

// Values is the inverse of InputFromValues, with amounts grouped for display.
func Values(in calculations.ProjectionInput) url.Values {
	v := url.Values{}
	v.Set(KeyDeposit, GroupThousands(wholeUnits(in.InitialDeposit)))
	v.Set(KeyContribution, GroupThousands(wholeUnits(in.MonthlyContribution)))
	v.Set(KeyYears, strconv.Itoa(in.Years))
	v.Set(KeyRate, strconv.FormatFloat(in.AnnualRatePercent, 'f', -1, 64))
	return v
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
