package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"github.com/cloud-ru/finboard-go/internal/calculations"
	"github.com/cloud-ru/finboard-go/internal/listing"
)

func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd.Execute(context.Background(), fs)
}

func TestProjectJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "panic")

	var out bytes.Buffer
	status := run(t, &projectCmd{out: &out}, "-deposit", "1'000", "-contribution", "", "-years", "1", "-rate", "10", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}

	var result calculations.ProjectionResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("expected 2 points, got %d", len(result.Breakdown))
	}
	if got := result.Breakdown[1]; got.Balance != 1100 || got.InterestAmount != 100 {
		t.Errorf("unexpected year 1 point %+v", got)
	}
}

func TestProjectRejectsInput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "panic")

	var out bytes.Buffer
	if status := run(t, &projectCmd{out: &out}, "-rate", "1000"); status != subcommands.ExitUsageError {
		t.Errorf("expected usage error, got %v", status)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestProjectionMarkdown(t *testing.T) {
	result := &calculations.ProjectionResult{
		Summary: calculations.ProjectionSummary{Years: 1, TotalPrincipal: 7400, TotalInterest: 518, EndBalance: 7918, StartYear: 2026, EndYear: 2027},
		Breakdown: []calculations.YearPoint{
			{YearOffset: 0, Principal: 5000, Balance: 5000},
			{YearOffset: 1, Principal: 7400, Balance: 7918, InterestAmount: 518, ProfitRatio: 0.07},
		},
	}

	md := projectionMarkdown(result)
	for _, want := range []string{
		"| $7'400 | $518 | $7'918 |",
		"| Start | $5'000 | $0 | N/A | $5'000 |",
		"| 2027 | $7'400 | $518 | 0.07 | $7'918 |",
		"2026 to 2027",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	stocks := `[{"currency":"USD","name":"Apple | Inc.","symbol":"AAPL","isin":"US0378331005","tags":["Tech"],"links":[{"name":"Website","url":"https://www.apple.com"}]},{"name":"Nestle","symbol":"NESN"}]`
	if err := os.WriteFile(filepath.Join(dir, "stocks.json"), []byte(stocks), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name       string
		args       []string
		wantStatus subcommands.ExitStatus
		check      func(*testing.T, string)
	}{
		{
			name:       "json filtered",
			args:       []string{"-data", dir, "-json", "-q", "nesn", "stock"},
			wantStatus: subcommands.ExitSuccess,
			check: func(t *testing.T, out string) {
				var records []listing.Record
				if err := json.Unmarshal([]byte(out), &records); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if len(records) != 1 || records[0]["symbol"] != "NESN" {
					t.Errorf("unexpected records %v", records)
				}
			},
		},
		{
			name:       "missing file gives empty json",
			args:       []string{"-data", dir, "-json", "etf"},
			wantStatus: subcommands.ExitSuccess,
			check: func(t *testing.T, out string) {
				if strings.TrimSpace(out) != "[]" {
					t.Errorf("expected empty array, got %q", out)
				}
			},
		},
		{
			name:       "unknown kind",
			args:       []string{"-data", dir, "bond"},
			wantStatus: subcommands.ExitUsageError,
		},
		{
			name:       "missing kind",
			args:       []string{"-data", dir},
			wantStatus: subcommands.ExitUsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if status := run(t, &listCmd{out: &out}, tt.args...); status != tt.wantStatus {
				t.Fatalf("expected %v, got %v", tt.wantStatus, status)
			}
			if tt.check != nil {
				tt.check(t, out.String())
			}
		})
	}
}

func TestListingMarkdown(t *testing.T) {
	kind, _ := listing.LookupKind("stock")
	records := []listing.Record{
		{"currency": "USD", "name": "Apple | Inc.", "symbol": "AAPL", "isin": "US0378331005",
			"tags":  []any{"Tech", "Hardware"},
			"links": []any{map[string]any{"name": "Website", "url": "https://www.apple.com"}}},
	}
	snap := listing.Snapshot{Kind: kind, Records: records}

	md := listingMarkdown(snap, records, "")
	for _, want := range []string{
		"# Stocks",
		"| Currency | Name | Symbol | ISIN | Tags | Links |",
		"| USD | Apple \\| Inc. | `AAPL` | `US0378331005` | Tech, Hardware | [Website](https://www.apple.com) |",
		"Showing 1 of 1 entries.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if md := listingMarkdown(snap, nil, "zzz"); !strings.Contains(md, "No items found matching your search.") {
		t.Errorf("expected no-match message, got:\n%s", md)
	}
	if md := listingMarkdown(listing.Snapshot{Kind: kind}, nil, ""); !strings.Contains(md, "No data available to display.") {
		t.Errorf("expected no-data message, got:\n%s", md)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"serve", "project", "list"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("completion missing %s", name)
		}
	}
	if got := c.Sub["list"].Args.Predict(""); len(got) != len(listing.Kinds) {
		t.Errorf("expected %d kind suggestions, got %v", len(listing.Kinds), got)
	}
}
