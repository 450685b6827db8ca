package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cloud-ru/finboard-go/internal/display"
	"github.com/cloud-ru/finboard-go/internal/service"
)

// Chart geometry in SVG user units.
const (
	chartWidth  = 640
	chartHeight = 320
	chartLeft   = 64
	chartRight  = 628
	chartTop    = 12
	chartBottom = 288
	yTickCount  = 4
	maxXTicks   = 10
)

type chartTick struct {
	Pos   float64
	Label string
}

type chartHover struct {
	X     float64
	Y     float64
	Title string
}

type chartView struct {
	Width, Height float64
	Left, Right   float64
	TickX, TickY  float64

	YTicks []chartTick
	XTicks []chartTick

	PrincipalArea string
	InterestArea  string
	PrincipalLine string
	BalanceLine   string

	Points []chartHover
}

// buildChart lays out a stacked area chart: principal at the bottom and
// interest on top of it, so the upper edge traces the balance.
func buildChart(points []service.ChartPoint) *chartView {
	if len(points) == 0 {
		return nil
	}

	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, math.Max(p.SeriesA+p.SeriesB, p.Balance))
	}
	step := niceStep(peak / yTickCount)
	top := step * yTickCount

	x := func(i int) float64 {
		if len(points) == 1 {
			return round1((chartLeft + chartRight) / 2)
		}
		return round1(chartLeft + (chartRight-chartLeft)*float64(i)/float64(len(points)-1))
	}
	y := func(v float64) float64 {
		return round1(chartBottom - v/top*(chartBottom-chartTop))
	}

	c := &chartView{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartLeft,
		Right:  chartRight,
		TickX:  chartLeft - 8,
		TickY:  chartBottom + 18,
	}

	for i := 0; i <= yTickCount; i++ {
		v := step * float64(i)
		c.YTicks = append(c.YTicks, chartTick{Pos: y(v), Label: display.ThousandsTick(v)})
	}

	stride := int(math.Ceil(float64(len(points)) / maxXTicks))
	principal := make([]string, len(points))
	balance := make([]string, len(points))
	for i, p := range points {
		principal[i] = coord(x(i), y(p.SeriesA))
		balance[i] = coord(x(i), y(p.SeriesA+p.SeriesB))

		if i%stride == 0 {
			c.XTicks = append(c.XTicks, chartTick{Pos: x(i), Label: strconv.Itoa(p.Year)})
		}
		c.Points = append(c.Points, chartHover{
			X:     x(i),
			Y:     y(p.Balance),
			Title: hoverTitle(p),
		})
	}

	baseline := coord(x(len(points)-1), chartBottom) + " L " + coord(x(0), chartBottom)
	c.PrincipalLine = "M " + strings.Join(principal, " L ")
	c.BalanceLine = "M " + strings.Join(balance, " L ")
	c.PrincipalArea = c.PrincipalLine + " L " + baseline + " Z"
	c.InterestArea = c.BalanceLine + " L " + strings.Join(reversed(principal), " L ") + " Z"

	return c
}

func hoverTitle(p service.ChartPoint) string {
	return fmt.Sprintf("Year: %d | Balance: %s\nPrincipal: %s\nInterest: %s\nProfit Ratio: %s",
		p.Year,
		display.Currency(p.Balance),
		display.Currency(p.SeriesA),
		display.Currency(p.SeriesB),
		display.Ratio(ratio(p), p.X == 0),
	)
}

func ratio(p service.ChartPoint) float64 {
	if p.SeriesA <= 0 {
		return 0
	}
	return p.SeriesB / p.SeriesA
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1000
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

func coord(x, y float64) string {
	return strconv.FormatFloat(x, 'f', 1, 64) + " " + strconv.FormatFloat(y, 'f', 1, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
