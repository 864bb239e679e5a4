// Package renderer turns the views of a balances book into markdown, HTML, terminal output and
// charts.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/balances"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Placeholder is displayed in cells without a value.
const Placeholder = "-"

// amount formats a value with two decimals.
func amount(v decimal.Decimal) string { return v.StringFixed(2) }

// symbol returns the grapheme of a currency, or its code when unknown.
func symbol(c balances.Currency) string {
	if cur := money.GetCurrency(string(c)); cur != nil && cur.Grapheme != "" {
		return cur.Grapheme
	}
	return string(c)
}

// HTML converts markdown to an HTML fragment. Tables are supported.
func HTML(markdown string) ([]byte, error) {
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := gm.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("cannot convert markdown to html: %w", err)
	}
	return buf.Bytes(), nil
}

// Terminal renders markdown for display in a terminal 'width' columns wide.
func Terminal(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}
