package balances

import (
	"testing"

	"github.com/etnz/balances/date"
)

func TestAggregate_Totals(t *testing.T) {
	accounts := []Account{{ID: "A", Name: "A", Currency: EUR}, {ID: "B", Name: "B", Currency: EUR}}
	balances := []Balance{
		{ID: "1", AccountID: "A", On: day("2025-01-01"), Value: D("10")},
		{ID: "2", AccountID: "B", On: day("2025-01-01"), Value: D("5")},
		{ID: "3", AccountID: "A", On: day("2025-01-02"), Value: D("10")},
	}

	table := Aggregate(accounts, balances)
	rows := table.Ascending()
	if len(rows) != 2 {
		t.Fatalf("Aggregate() has %d rows, want 2", len(rows))
	}
	if !rows[0].Total.Equal(D("15")) {
		t.Errorf("total on %v = %v, want 15", rows[0].On, rows[0].Total)
	}
	if !rows[1].Total.Equal(D("10")) {
		t.Errorf("total on %v = %v, want 10", rows[1].On, rows[1].Total)
	}
	if _, ok := rows[1].Value("B"); ok {
		t.Errorf("Value(B) on %v is present, want missing", rows[1].On)
	}
}

func TestAggregate_MissingIsNotZero(t *testing.T) {
	accounts := []Account{{ID: "A"}, {ID: "B"}}
	balances := []Balance{
		{ID: "1", AccountID: "A", On: day("2025-01-01"), Value: D("0")},
	}
	row := Aggregate(accounts, balances).Ascending()[0]

	if v, ok := row.Value("A"); !ok || !v.IsZero() {
		t.Errorf("Value(A) = %v, %v want 0, true", v, ok)
	}
	if _, ok := row.Value("B"); ok {
		t.Errorf("Value(B) is present, want missing")
	}
}

func TestAggregate_Order(t *testing.T) {
	accounts := []Account{{ID: "A"}}
	var balances []Balance
	for i, d := range []string{"2025-03-01", "2025-01-01", "2025-02-01"} {
		balances = append(balances, Balance{ID: string(rune('a' + i)), AccountID: "A", On: day(d), Value: D("1")})
	}
	table := Aggregate(accounts, balances)

	asc := []date.Date{day("2025-01-01"), day("2025-02-01"), day("2025-03-01")}
	for i, row := range table.Ascending() {
		if row.On != asc[i] {
			t.Errorf("Ascending()[%d] = %v, want %v", i, row.On, asc[i])
		}
	}
	for i, row := range table.Descending() {
		if want := asc[len(asc)-1-i]; row.On != want {
			t.Errorf("Descending()[%d] = %v, want %v", i, row.On, want)
		}
	}
	for i, p := range table.Totals() {
		if p.On != asc[i] || !p.Total.Equal(D("1")) {
			t.Errorf("Totals()[%d] = %v, want {%v 1}", i, p, asc[i])
		}
	}
}

// TestAggregate_OrphanedBalances checks that balances of a removed account stay visible but no
// longer count in the total.
func TestAggregate_OrphanedBalances(t *testing.T) {
	balances := []Balance{
		{ID: "1", AccountID: "A", On: day("2025-01-01"), Value: D("10")},
		{ID: "2", AccountID: "B", On: day("2025-01-01"), Value: D("5")},
	}

	before := Aggregate([]Account{{ID: "A"}, {ID: "B"}}, balances).Ascending()[0]
	after := Aggregate([]Account{{ID: "A"}}, balances).Ascending()[0]

	if !before.Total.Equal(D("15")) {
		t.Errorf("total before removal = %v, want 15", before.Total)
	}
	if !after.Total.Equal(D("10")) {
		t.Errorf("total after removal = %v, want 10", after.Total)
	}
	if v, ok := after.Value("B"); !ok || !v.Equal(D("5")) {
		t.Errorf("orphaned Value(B) = %v, %v want 5, true", v, ok)
	}
}

func TestAggregate_IsPure(t *testing.T) {
	accounts := []Account{{ID: "A"}}
	balances := []Balance{{ID: "1", AccountID: "A", On: day("2025-01-01"), Value: D("10")}}
	table := Aggregate(accounts, balances)

	rows := table.Descending()
	rows[0].Values["A"] = D("99")
	accounts[0].ID = "Z"

	again := table.Ascending()[0]
	if v, _ := again.Value("A"); !v.Equal(D("10")) {
		t.Errorf("table changed through a returned row: Value(A) = %v, want 10", v)
	}
	if got := table.Accounts()[0].ID; got != "A" {
		t.Errorf("table changed through the accounts argument: %q, want A", got)
	}
	if Aggregate(nil, nil).Len() != 0 {
		t.Errorf("Aggregate(nil, nil) is not empty")
	}
}
