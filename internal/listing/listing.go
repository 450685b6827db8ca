package listing

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Record is one decoded listing entry
type Record = map[string]any

// Renderer selects how a column value is displayed
type Renderer string

const (
	RendererText  Renderer = "text"
	RendererTags  Renderer = "tags"
	RendererLinks Renderer = "links"
)

// Column describes one table column
type Column struct {
	Key        string
	Header     string
	Path       string
	Searchable bool
	Copyable   bool
	Renderer   Renderer
}

// Lookup returns the column value of r, or nil when it is absent
func (c Column) Lookup(r Record) any {
	path := c.Path
	if path == "" {
		path = "$." + c.Key
	}
	v, err := jsonpath.Get(path, r)
	if err != nil {
		return nil
	}
	return v
}

// DefaultColumns is the column set shared by the stock and ETF pages
func DefaultColumns() []Column {
	return []Column{
		{Key: "currency", Header: "Currency", Searchable: true},
		{Key: "name", Header: "Name", Searchable: true},
		{Key: "symbol", Header: "Symbol", Searchable: true, Copyable: true},
		{Key: "isin", Header: "ISIN", Searchable: true, Copyable: true},
		{Key: "tags", Header: "Tags", Searchable: true, Renderer: RendererTags},
		{Key: "links", Header: "Links", Searchable: true, Renderer: RendererLinks},
	}
}

// Table is a set of records displayed through columns
type Table struct {
	Columns []Column
	Records []Record
}

// Filter returns the records matching term. A blank term matches every
// record; otherwise the lower-cased term must occur in a searchable column.
func (t Table) Filter(term string) []Record {
	if strings.TrimSpace(term) == "" {
		return t.Records
	}
	needle := strings.ToLower(term)

	out := make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if t.matches(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func (t Table) matches(r Record, needle string) bool {
	for _, c := range t.Columns {
		if !c.Searchable {
			continue
		}
		if valueMatches(c.Lookup(r), needle) {
			return true
		}
	}
	return false
}

func valueMatches(v any, needle string) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.Contains(strings.ToLower(val), needle)
	case []any:
		for _, el := range val {
			if el == nil {
				continue
			}
			if strings.Contains(strings.ToLower(scalarText(el)), needle) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(strings.ToLower(scalarText(val)), needle)
	}
}

// scalarText is the searchable text of a value: strings as-is, numbers in
// their shortest form, objects and arrays as JSON.
func scalarText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
