package renderer

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/balances"
	"github.com/etnz/balances/date"
	md "github.com/nao1215/markdown"
)

// OverviewMarkdown renders the consolidated table: one row per day, most recent first, one column
// per current account and the total. Dates are formatted with 'layout' (see [date.Date.Format]),
// [date.DisplayFormat] when empty.
//
// Balances of removed accounts are not shown as columns. They are listed after the table.
func OverviewMarkdown(t *balances.Table, layout string) string {
	if layout == "" {
		layout = date.DisplayFormat
	}
	accounts := t.Accounts()
	currency := balances.EUR
	if len(accounts) > 0 {
		currency = accounts[0].Currency
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Overview")

	if t.Len() == 0 {
		doc.PlainText("No balances yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Date"},
		Rows:      [][]string{},
	}
	for _, a := range accounts {
		table.Alignment = append(table.Alignment, md.AlignRight)
		table.Header = append(table.Header, a.Name)
	}
	table.Alignment = append(table.Alignment, md.AlignRight)
	table.Header = append(table.Header, fmt.Sprintf("Total (%s)", symbol(currency)))

	rows := t.Descending()
	for _, row := range rows {
		cells := []string{row.On.Format(layout)}
		for _, a := range accounts {
			cell := Placeholder
			if v, ok := row.Value(a.ID); ok {
				cell = amount(v)
			}
			cells = append(cells, cell)
		}
		cells = append(cells, amount(row.Total))
		table.Rows = append(table.Rows, cells)
	}
	doc.Table(table)

	var out strings.Builder
	out.WriteString(doc.String())
	ConditionalBlock(&out, func(w io.Writer) bool { return writeOrphans(w, accounts, rows) })
	return out.String()
}

// writeOrphans lists account ids that have balances but are no longer accounts. It returns false
// if there are none.
func writeOrphans(w io.Writer, accounts []balances.Account, rows []balances.Row) bool {
	current := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		current[a.ID] = true
	}
	count := make(map[string]int)
	for _, row := range rows {
		for id := range row.Values {
			if !current[id] {
				count[id]++
			}
		}
	}
	if len(count) == 0 {
		return false
	}
	fmt.Fprintf(w, "\nBalances of removed accounts, not counted in totals:\n\n")
	for _, id := range slices.Sorted(maps.Keys(count)) {
		fmt.Fprintf(w, "- `%s`: %d balance(s)\n", id, count[id])
	}
	return true
}

// TrendMarkdown renders the portfolio total and its moving average, most recent first. Dates are
// formatted as in [OverviewMarkdown].
func TrendMarkdown(trend []balances.TrendPoint, layout string) string {
	if layout == "" {
		layout = date.DisplayFormat
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio Value Over Time")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Total", fmt.Sprintf("Moving Average (%d)", balances.MovingAverageWindow)},
		Rows:      [][]string{},
	}
	for i := len(trend) - 1; i >= 0; i-- {
		p := trend[i]
		ma := Placeholder
		if p.MovingAverage.Valid {
			ma = amount(p.MovingAverage.Decimal)
		}
		table.Rows = append(table.Rows, []string{p.On.Format(layout), amount(p.Total), ma})
	}
	doc.Table(table)
	return doc.String()
}
