package display

import (
	"math"
	"net/url"
	"testing"
	"testing/quick"
)

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1'000"},
		{5000, "5'000"},
		{123456, "123'456"},
		{1234567, "1'234'567"},
		{-7918, "-7'918"},
	}

	for _, tt := range tests {
		if got := GroupThousands(tt.in); got != tt.want {
			t.Errorf("GroupThousands(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupThousandsRoundTrip(t *testing.T) {
	roundTrip := func(n int64) bool {
		if n < 0 {
			n = -(n + 1)
		}
		return ParseDigits(GroupThousands(n)) == n
	}
	if err := quick.Check(roundTrip, nil); err != nil {
		t.Error(err)
	}

	for _, n := range []int64{0, 1, 999, 1000, 1001, 999999, 1000000, math.MaxInt64} {
		if !roundTrip(n) {
			t.Errorf("round trip failed for %d", n)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{7918, "$7'918"},
		{7917.5, "$7'918"},
		{1234567.2, "$1'234'567"},
	}

	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(0.07, true); got != "N/A" {
		t.Errorf("start row: got %q", got)
	}
	if got := Ratio(0.0700001, false); got != "0.07" {
		t.Errorf("got %q, want 0.07", got)
	}
	if got := Ratio(1.5, false); got != "1.50" {
		t.Errorf("got %q, want 1.50", got)
	}
}

func TestThousandsTick(t *testing.T) {
	tests := map[float64]string{
		0:     "$0k",
		10000: "$10k",
		12500: "$12.5k",
	}
	for in, want := range tests {
		if got := ThousandsTick(in); got != want {
			t.Errorf("ThousandsTick(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDigits(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"abc", 0},
		{"5'000", 5000},
		{"$ 1,234", 1234},
		{"-200", 200},
		{"12.5", 125},
		{"99999999999999999999999", math.MaxInt64},
	}

	for _, tt := range tests {
		if got := ParseDigits(tt.in); got != tt.want {
			t.Errorf("ParseDigits(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"7", 7},
		{" 7.5 ", 7.5},
		{"7,5", 7.5},
		{"-2", -2},
		{"", 0},
		{"seven", 0},
	}

	for _, tt := range tests {
		if got := ParseRate(tt.in); got != tt.want {
			t.Errorf("ParseRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"2.9", 2},
		{"0", 1},
		{"-4", 1},
		{"", 1},
		{"many", 1},
		{"1e12", math.MaxInt32},
	}

	for _, tt := range tests {
		if got := ParseYears(tt.in); got != tt.want {
			t.Errorf("ParseYears(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInputFromValues(t *testing.T) {
	defaults := InputFromValues(url.Values{})
	if defaults.InitialDeposit != DefaultDeposit || defaults.MonthlyContribution != DefaultContribution ||
		defaults.Years != DefaultYears || defaults.AnnualRatePercent != DefaultRate {
		t.Errorf("unexpected defaults %+v", defaults)
	}

	in := InputFromValues(url.Values{
		KeyDeposit:      {"12'500"},
		KeyContribution: {""},
		KeyYears:        {"0"},
		KeyRate:         {"4,25"},
	})
	if in.InitialDeposit != 12500 {
		t.Errorf("expected deposit 12500, got %v", in.InitialDeposit)
	}
	if in.MonthlyContribution != 0 {
		t.Errorf("blank contribution should read as 0, got %v", in.MonthlyContribution)
	}
	if in.Years != 1 {
		t.Errorf("years should clamp to 1, got %d", in.Years)
	}
	if in.AnnualRatePercent != 4.25 {
		t.Errorf("expected rate 4.25, got %v", in.AnnualRatePercent)
	}

	back := InputFromValues(Values(in))
	if back != in {
		t.Errorf("Values round trip: got %+v, want %+v", back, in)
	}
}
