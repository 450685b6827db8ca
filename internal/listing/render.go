package listing

import (
	"strings"
)

// Placeholder is shown for empty or unrenderable values
const Placeholder = "-"

// Link is one entry of a links column
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Cell is a rendered table cell
type Cell struct {
	Text     string
	Tags     []string
	Links    []Link
	CopyText string
	Muted    bool
}

// RenderCell renders v through the column renderer
func RenderCell(c Column, v any) Cell {
	switch c.Renderer {
	case RendererTags:
		return renderTags(v)
	case RendererLinks:
		return renderLinks(v)
	}

	cell := renderDefault(v)
	if c.Copyable && !cell.Muted {
		cell.CopyText = cell.Text
	}
	return cell
}

func muted(text string) Cell {
	return Cell{Text: text, Muted: true}
}

func renderDefault(v any) Cell {
	switch val := v.(type) {
	case nil:
		return muted(Placeholder)
	case string:
		if val == "" {
			return muted(Placeholder)
		}
		return Cell{Text: val}
	case []any:
		parts := make([]string, 0, len(val))
		for _, el := range val {
			switch el.(type) {
			case string, float64:
				parts = append(parts, scalarText(el))
			default:
				return muted("[Array]")
			}
		}
		return Cell{Text: strings.Join(parts, ", ")}
	case map[string]any:
		return muted("[Object]")
	default:
		return Cell{Text: scalarText(val)}
	}
}

func renderTags(v any) Cell {
	items, ok := v.([]any)
	if !ok {
		return muted(Placeholder)
	}
	var tags []string
	for _, el := range items {
		s, ok := el.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		tags = append(tags, s)
	}
	if len(tags) == 0 {
		return muted(Placeholder)
	}
	return Cell{Tags: tags}
}

func renderLinks(v any) Cell {
	items, ok := v.([]any)
	if !ok {
		return muted(Placeholder)
	}
	var links []Link
	for _, el := range items {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		url, _ := obj["url"].(string)
		if strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
			continue
		}
		links = append(links, Link{Name: name, URL: url})
	}
	if len(links) == 0 {
		return muted(Placeholder)
	}
	return Cell{Links: links}
}
