package balances

import (
	"iter"
	"maps"

	"github.com/etnz/balances/date"
	"github.com/shopspring/decimal"
)

// Row is the consolidated view of all balances recorded on a single day.
type Row struct {
	On     date.Date
	Values map[string]decimal.Decimal // by account id, including orphaned accounts
	Total  decimal.Decimal            // sum over current accounts only
}

// Value returns the value of account 'id' on that day, and false if there is none.
//
// A missing value is not the same as a zero value.
func (r Row) Value(id string) (decimal.Decimal, bool) {
	v, ok := r.Values[id]
	return v, ok
}

// Point is a portfolio total on a given day.
type Point struct {
	On    date.Date
	Total decimal.Decimal
}

// Table is the result of the aggregation of a ledger.
type Table struct {
	accounts []Account
	rows     date.History[Row] // canonical chronological order
}

// Aggregate groups 'balances' by day and computes, for each day, the total over 'accounts'.
//
// Accounts with no value on a day contribute zero to its total. Balances of accounts absent from
// 'accounts' (orphaned) are kept in the row values but never counted in the total.
func Aggregate(accounts []Account, balances []Balance) *Table {
	t := &Table{accounts: append([]Account(nil), accounts...)}

	for _, b := range balances {
		row, ok := t.rows.Get(b.On)
		if !ok {
			row = Row{On: b.On, Values: make(map[string]decimal.Decimal)}
		}
		row.Values[b.AccountID] = b.Value
		t.rows.Append(b.On, row)
	}

	for on, row := range t.rows.Values() {
		total := decimal.Zero
		for _, a := range accounts {
			if v, ok := row.Values[a.ID]; ok {
				total = total.Add(v)
			}
		}
		row.Total = total
		t.rows.Append(on, row)
	}
	return t
}

// Accounts returns the accounts used as columns and to compute totals.
func (t *Table) Accounts() []Account { return append([]Account(nil), t.accounts...) }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows.Len() }

// Ascending returns the rows in chronological order, as expected by charts.
func (t *Table) Ascending() []Row { return collect(t.rows.Values()) }

// Descending returns the rows most recent first, as expected by tabular display.
func (t *Table) Descending() []Row { return collect(t.rows.Backward()) }

// Totals returns the daily totals in chronological order.
func (t *Table) Totals() []Point {
	points := make([]Point, 0, t.rows.Len())
	for on, row := range t.rows.Values() {
		points = append(points, Point{On: on, Total: row.Total})
	}
	return points
}

// collect copies rows so that callers cannot alter the table.
func collect(rows iter.Seq2[date.Date, Row]) []Row {
	var list []Row
	for _, row := range rows {
		row.Values = maps.Clone(row.Values)
		list = append(list, row)
	}
	return list
}
