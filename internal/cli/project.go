package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"go.opentelemetry.io/otel"

	"github.com/cloud-ru/finboard-go/internal/calculations"
	"github.com/cloud-ru/finboard-go/internal/config"
	"github.com/cloud-ru/finboard-go/internal/display"
	"github.com/cloud-ru/finboard-go/internal/logging"
	"github.com/cloud-ru/finboard-go/internal/service"
)

type projectCmd struct {
	out io.Writer

	deposit      string
	contribution string
	years        string
	rate         string
	json         bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project compound growth of a deposit" }
func (*projectCmd) Usage() string {
	return `finboard project [-deposit 5'000] [-contribution 200] [-years 10] [-rate 7] [-json]

  Prints the yearly breakdown of a deposit compounded annually with monthly
  contributions. Omitted flags use the calculator defaults.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.deposit, display.KeyDeposit, strconv.Itoa(display.DefaultDeposit), "Initial deposit; non-digits are ignored")
	f.StringVar(&c.contribution, display.KeyContribution, strconv.Itoa(display.DefaultContribution), "Monthly contribution; non-digits are ignored")
	f.StringVar(&c.years, display.KeyYears, strconv.Itoa(display.DefaultYears), "Years of growth")
	f.StringVar(&c.rate, display.KeyRate, strconv.Itoa(display.DefaultRate), "Yearly rate of return in percent")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of a table")
}

func (c *projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	log := logging.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	values := url.Values{}
	values.Set(display.KeyDeposit, c.deposit)
	values.Set(display.KeyContribution, c.contribution)
	values.Set(display.KeyYears, c.years)
	values.Set(display.KeyRate, c.rate)
	in := display.InputFromValues(values)

	svc := service.NewProjectionService(cfg, otel.Tracer(cfg.OTELServiceName), log)
	result, err := svc.Project(ctx, service.SourceCLI, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.json {
		if err := printJSON(c.out, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(c.out, projectionMarkdown(result))
	return subcommands.ExitSuccess
}

func projectionMarkdown(r *calculations.ProjectionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Projected Growth\n\n")
	fmt.Fprintf(&b, "Estimated value after %d years (compounded annually), %d to %d.\n\n",
		r.Summary.Years, r.Summary.StartYear, r.Summary.EndYear)

	b.WriteString(mdRow("Total Principal", "Total Interest", "End Balance"))
	b.WriteString(mdSeparator(3))
	b.WriteString(mdRow(
		display.Currency(r.Summary.TotalPrincipal),
		display.Currency(r.Summary.TotalInterest),
		display.Currency(r.Summary.EndBalance),
	))

	b.WriteString("\n## Yearly Breakdown\n\n")
	b.WriteString(mdRow("Year", "Principal", "Interest (Cum.)", "Profit Ratio", "Year-End Balance"))
	b.WriteString(mdSeparator(5))
	for _, p := range r.Breakdown {
		start := p.YearOffset == 0
		label := "Start"
		if !start {
			label = strconv.Itoa(calculations.CalendarYear(p, r.Summary.StartYear))
		}
		b.WriteString(mdRow(
			label,
			display.Currency(p.Principal),
			display.Currency(p.InterestAmount),
			display.Ratio(p.ProfitRatio, start),
			display.Currency(p.Balance),
		))
	}
	return b.String()
}
