package renderer

import (
	"bytes"
	"slices"

	"github.com/etnz/balances"
	"github.com/etnz/balances/date"
	md "github.com/nao1215/markdown"
)

// AccountsMarkdown renders the list of accounts in insertion order.
func AccountsMarkdown(accounts []balances.Account) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Accounts")
	if len(accounts) == 0 {
		doc.PlainText("No accounts yet.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Name", "Currency", "ID"},
		Rows:      [][]string{},
	}
	for _, a := range accounts {
		table.Rows = append(table.Rows, []string{a.Name, string(a.Currency), a.ID})
	}
	doc.Table(table)
	return doc.String()
}

// BalancesMarkdown renders individual balances, most recent first. Balances of removed accounts
// are shown with their account id.
func BalancesMarkdown(accounts []balances.Account, list []balances.Balance, layout string) string {
	if layout == "" {
		layout = date.DisplayFormat
	}
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Balances")
	if len(list) == 0 {
		doc.PlainText("No balances yet.")
		return doc.String()
	}

	list = slices.Clone(list)
	slices.SortStableFunc(list, func(a, b balances.Balance) int { return b.On.Compare(a.On) })

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Account", "Value", "ID"},
		Rows:      [][]string{},
	}
	for _, b := range list {
		name, ok := names[b.AccountID]
		if !ok {
			name = b.AccountID + " (removed)"
		}
		table.Rows = append(table.Rows, []string{b.On.Format(layout), name, amount(b.Value), b.ID})
	}
	doc.Table(table)
	return doc.String()
}

// DaysMarkdown renders the days having balances, most recent first.
func DaysMarkdown(days []date.Date, layout string) string {
	if layout == "" {
		layout = date.DisplayFormat
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Days")
	if len(days) == 0 {
		doc.PlainText("No balances yet.")
		return doc.String()
	}
	items := make([]string, 0, len(days))
	for _, d := range slices.Backward(days) {
		items = append(items, d.Format(layout))
	}
	doc.BulletList(items...)
	return doc.String()
}
