package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/balances"
	"github.com/etnz/balances/date"
)

func TestAccountsMarkdown(t *testing.T) {
	got := AccountsMarkdown([]balances.Account{{ID: "id-1", Name: "Main", Currency: balances.EUR}})
	for _, want := range []string{"# Accounts", "Main", "EUR", "id-1"} {
		if !strings.Contains(got, want) {
			t.Errorf("AccountsMarkdown() does not contain %q:\n%s", want, got)
		}
	}
	if got := AccountsMarkdown(nil); !strings.Contains(got, "No accounts yet.") {
		t.Errorf("AccountsMarkdown(nil) = %q, want a no accounts message", got)
	}
}

func TestBalancesMarkdown(t *testing.T) {
	accounts := []balances.Account{{ID: "a", Name: "Main", Currency: balances.EUR}}
	list := []balances.Balance{
		{ID: "b1", AccountID: "a", On: date.MustParse("2025-01-10"), Value: D("3")},
		{ID: "b2", AccountID: "x", On: date.MustParse("2025-03-10"), Value: D("4.5")},
	}
	got := BalancesMarkdown(accounts, list, date.DateFormat)

	if i, j := strings.Index(got, "2025-03-10"), strings.Index(got, "2025-01-10"); i < 0 || j < 0 || i > j {
		t.Errorf("BalancesMarkdown() rows are not most recent first:\n%s", got)
	}
	if line := lineOf(got, "b2"); !strings.Contains(line, "x (removed)") || !strings.Contains(line, "4.50") {
		t.Errorf("BalancesMarkdown() row %q, want the removed account and value 4.50", line)
	}
	if line := lineOf(got, "b1"); !strings.Contains(line, "Main") {
		t.Errorf("BalancesMarkdown() row %q, want the account name", line)
	}
}

func TestDaysMarkdown(t *testing.T) {
	days := []date.Date{date.MustParse("2025-01-10"), date.MustParse("2025-03-10")}
	got := DaysMarkdown(days, date.DateFormat)

	if i, j := strings.Index(got, "- 2025-03-10"), strings.Index(got, "- 2025-01-10"); i < 0 || j < 0 || i > j {
		t.Errorf("DaysMarkdown() is not a list most recent first:\n%s", got)
	}
	if got := DaysMarkdown(nil, ""); !strings.Contains(got, "No balances yet.") {
		t.Errorf("DaysMarkdown(nil) = %q, want a no balances message", got)
	}
}
