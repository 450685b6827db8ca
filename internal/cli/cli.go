package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/cloud-ru/finboard-go/internal/display"
	"github.com/cloud-ru/finboard-go/internal/listing"
)

// Register adds the finboard subcommands to c. Command output goes to out.
func Register(c *subcommands.Commander, out io.Writer) {
	c.Register(&serveCmd{}, "server")
	c.Register(&projectCmd{out: out}, "tools")
	c.Register(&listCmd{out: out}, "tools")
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	kinds := make(predict.Set, 0, len(listing.Kinds))
	for _, k := range listing.Kinds {
		kinds = append(kinds, k.Name)
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"serve": {},
			"project": {
				Flags: map[string]complete.Predictor{
					display.KeyDeposit:      predict.Something,
					display.KeyContribution: predict.Something,
					display.KeyYears:        predict.Something,
					display.KeyRate:         predict.Something,
					"json":                  predict.Nothing,
				},
			},
			"list": {
				Args: kinds,
				Flags: map[string]complete.Predictor{
					"q":    predict.Something,
					"data": predict.Dirs("*"),
					"json": predict.Nothing,
				},
			},
			"help":     {Args: predict.Set{"serve", "project", "list"}},
			"commands": {},
			"flags":    {},
		},
	}
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(w io.Writer, md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func mdCell(s string) string {
	return cellEscaper.Replace(s)
}

func mdRow(cells ...string) string {
	for i, c := range cells {
		cells[i] = mdCell(c)
	}
	return "| " + strings.Join(cells, " | ") + " |\n"
}

func mdSeparator(n int) string {
	return "|" + strings.Repeat(" --- |", n) + "\n"
}
