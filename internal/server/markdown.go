package server

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

type homeCard struct {
	Title       string
	Description string
	Body        template.HTML
	Href        string
	Action      string
}

type cardSource struct {
	Title       string
	Description string
	Markdown    string
	Href        string
	Action      string
}

var homeCards = []cardSource{
	{
		Title:       "Stocks",
		Description: "Monitor individual company stocks.",
		Markdown:    "Browse through our curated list of popular stocks across different sectors. Access key identifiers like **symbols** and **ISINs**.",
		Href:        "/stock",
		Action:      "View Stocks",
	},
	{
		Title:       "ETFs",
		Description: "Explore Exchange-Traded Funds.",
		Markdown:    "Discover ETFs that offer exposure to various sectors and markets. ETFs provide *diversification* while trading like stocks.",
		Href:        "/etf",
		Action:      "View ETFs",
	},
	{
		Title:       "Calculator",
		Description: "Plan your financial future.",
		Markdown:    "Estimate the future value of your investments with different scenarios. See how your money grows with **regular contributions**.",
		Href:        "/calculator",
		Action:      "Use Calculator",
	},
}

// renderCards converts card bodies to HTML. goldmark drops raw HTML by
// default, so the output is safe to embed.
func renderCards(sources []cardSource) ([]homeCard, error) {
	md := goldmark.New()
	cards := make([]homeCard, 0, len(sources))
	for _, src := range sources {
		var buf bytes.Buffer
		if err := md.Convert([]byte(src.Markdown), &buf); err != nil {
			return nil, fmt.Errorf("failed to render card %s: %w", src.Title, err)
		}
		cards = append(cards, homeCard{
			Title:       src.Title,
			Description: src.Description,
			Body:        template.HTML(buf.String()),
			Href:        src.Href,
			Action:      src.Action,
		})
	}
	return cards, nil
}
