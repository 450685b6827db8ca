package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/cloud-ru/finboard-go/internal/config"
	"github.com/cloud-ru/finboard-go/internal/listing"
	"github.com/cloud-ru/finboard-go/internal/logging"
)

type listCmd struct {
	out io.Writer

	query   string
	dataDir string
	json    bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "search the stock or ETF listing" }
func (*listCmd) Usage() string {
	return `finboard list [-q <term>] [-data <dir>] [-json] <stock|etf>

  Prints the entries of a listing whose searchable columns contain the term.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Search term, case insensitive")
	f.StringVar(&c.dataDir, "data", "", "Data directory. Defaults to DATA_DIR.")
	f.BoolVar(&c.json, "json", false, "Print JSON instead of a table")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one listing kind")
		return subcommands.ExitUsageError
	}
	kind := f.Arg(0)

	dir := c.dataDir
	if dir == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			return subcommands.ExitFailure
		}
		dir = cfg.DataDir
	}

	log := logging.NewWithWriter(os.Stderr, "warning", "text")
	catalog := listing.NewCatalog(dir, log)
	if err := catalog.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading listings: %v\n", err)
		return subcommands.ExitFailure
	}

	snap, matched, err := catalog.Search(kind, c.query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if snap.Err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load %s data: %v\n", snap.Kind.Title, snap.Err)
	}

	if c.json {
		if matched == nil {
			matched = []listing.Record{}
		}
		if err := printJSON(c.out, matched); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(c.out, listingMarkdown(snap, matched, c.query))
	return subcommands.ExitSuccess
}

func listingMarkdown(snap listing.Snapshot, matched []listing.Record, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", snap.Kind.Title, snap.Kind.Subtitle)

	switch {
	case len(snap.Records) == 0:
		b.WriteString("No data available to display.\n")
		return b.String()
	case len(matched) == 0 && query != "":
		b.WriteString("No items found matching your search.\n")
		return b.String()
	}

	columns := listing.DefaultColumns()
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	b.WriteString(mdRow(headers...))
	b.WriteString(mdSeparator(len(columns)))

	for _, rec := range matched {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cellMarkdown(listing.RenderCell(col, col.Lookup(rec)))
		}
		b.WriteString(mdRow(cells...))
	}

	fmt.Fprintf(&b, "\nShowing %d of %d entries.\n", len(matched), len(snap.Records))
	return b.String()
}

func cellMarkdown(cell listing.Cell) string {
	switch {
	case len(cell.Tags) > 0:
		return strings.Join(cell.Tags, ", ")
	case len(cell.Links) > 0:
		links := make([]string, len(cell.Links))
		for i, l := range cell.Links {
			links[i] = fmt.Sprintf("[%s](%s)", l.Name, l.URL)
		}
		return strings.Join(links, " ")
	case cell.CopyText != "":
		return "`" + cell.CopyText + "`"
	}
	return cell.Text
}
