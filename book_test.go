package balances

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/balances/storage/memory"
	"github.com/google/go-cmp/cmp"
)

func openBook(t *testing.T, store Store) *Book {
	t.Helper()
	b, err := Open(store, WithIDGenerator(sequence("id")))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	return b
}

func export(t *testing.T, b *Book) string {
	t.Helper()
	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	return buf.String()
}

func TestBook_Session(t *testing.T) {
	b := openBook(t, memory.New())

	main, err := b.AddAccount("Main", EUR)
	if err != nil {
		t.Fatalf("AddAccount() unexpected error: %v", err)
	}
	savings, _ := b.AddAccount("Savings", EUR)

	on := day("2025-01-10")
	if _, err := b.SubmitBalances(on, map[string]string{main.ID: "10", savings.ID: "5"}); err != nil {
		t.Fatalf("SubmitBalances() unexpected error: %v", err)
	}
	view := b.View()
	rows := view.Table.Descending()
	if len(rows) != 1 || !rows[0].Total.Equal(D("15")) {
		t.Fatalf("View() rows = %v, want a single row with total 15", rows)
	}

	if err := b.RemoveAccount(savings.ID); err != nil {
		t.Fatalf("RemoveAccount() unexpected error: %v", err)
	}
	row := b.View().Table.Descending()[0]
	if !row.Total.Equal(D("10")) {
		t.Errorf("total after RemoveAccount() = %v, want 10", row.Total)
	}
	if len(b.Balances()) != 2 {
		t.Errorf("Balances() after RemoveAccount() = %v, want both balances kept", b.Balances())
	}

	if _, err := b.EditAccount(main.ID, "Checking"); err != nil {
		t.Fatalf("EditAccount() unexpected error: %v", err)
	}
	if a, _ := b.Account(main.ID); a.Name != "Checking" {
		t.Errorf("Account(%q).Name = %q, want Checking", main.ID, a.Name)
	}
}

func TestBook_SubmitUnknownAccount(t *testing.T) {
	b := openBook(t, nil)
	a, _ := b.AddAccount("Main", EUR)
	before := export(t, b)

	_, err := b.SubmitBalances(day("2025-01-10"), map[string]string{a.ID: "1", "ghost": "2"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SubmitBalances(unknown account) error = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff(before, export(t, b)); diff != "" {
		t.Errorf("book changed after a rejected submission (-want +got):\n%s", diff)
	}
}

func TestBook_Values(t *testing.T) {
	b := openBook(t, nil)
	a, _ := b.AddAccount("Main", EUR)
	on := day("2025-01-10")
	b.SubmitBalances(on, map[string]string{a.ID: "12,5"})

	values := b.Values(on)
	if v, ok := values[a.ID]; !ok || !v.Equal(D("12.5")) {
		t.Errorf("Values(%v) = %v, want %s: 12.5", on, values, a.ID)
	}
	if got := b.Values(day("2025-01-11")); len(got) != 0 {
		t.Errorf("Values(empty day) = %v, want empty", got)
	}
}

func TestBook_Reopen(t *testing.T) {
	store := memory.New()
	b := openBook(t, store)
	a, _ := b.AddAccount("Main", EUR)
	b.SubmitBalances(day("2025-01-10"), map[string]string{a.ID: "10.10"})
	b.SubmitBalances(day("2025-02-10"), map[string]string{a.ID: "20"})
	want := export(t, b)

	if got := store.Keys(); !cmp.Equal(got, []string{"accounts", "balances"}) {
		t.Errorf("store keys = %v, want [accounts balances]", got)
	}

	reopened := openBook(t, store)
	if diff := cmp.Diff(want, export(t, reopened)); diff != "" {
		t.Errorf("reopened book mismatch (-want +got):\n%s", diff)
	}
	if got := reopened.View().Table.Len(); got != 2 {
		t.Errorf("reopened View() has %d rows, want 2", got)
	}
}

func TestBook_PersistenceFailure(t *testing.T) {
	store := memory.New()
	b := openBook(t, store)
	store.FailPut = errors.New("disk full")

	a, err := b.AddAccount("Main", EUR)
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("AddAccount() error = %v, want ErrPersistence", err)
	}
	if a.ID == "" {
		t.Errorf("AddAccount() = %v, want the created account despite the failure", a)
	}
	if got := b.Accounts(); len(got) != 1 {
		t.Errorf("Accounts() = %v, want the mutation kept in memory", got)
	}

	store.FailPut = nil
	if err := b.RemoveBalance("none"); err != nil {
		t.Errorf("RemoveBalance() unexpected error: %v", err)
	}
}

func TestBook_Import(t *testing.T) {
	b := openBook(t, memory.New())
	b.AddAccount("Old", EUR)

	doc := `{
		"accounts": [{"id": "a", "name": "Main", "currency": "EUR"}],
		"balances": [
			{"id": "b1", "accountId": "a", "date": "2025-01-10", "value": 10},
			{"id": "b2", "accountId": "x", "date": "2025-01-10", "value": 99}
		]
	}`
	if _, err := b.Import(strings.NewReader(doc)); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	want := []Account{{ID: "a", Name: "Main", Currency: EUR}}
	if diff := cmp.Diff(want, b.Accounts()); diff != "" {
		t.Errorf("Accounts() after Import() mismatch (-want +got):\n%s", diff)
	}
	row := b.View().Table.Descending()[0]
	if !row.Total.Equal(D("10")) {
		t.Errorf("total after Import() = %v, want 10 (orphan excluded)", row.Total)
	}

	// a document without balances keeps the current ones
	if _, err := b.Import(strings.NewReader(`{"accounts": []}`)); err != nil {
		t.Fatalf("Import(accounts only) unexpected error: %v", err)
	}
	if got := len(b.Balances()); got != 2 {
		t.Errorf("Balances() after Import(accounts only) has %d balances, want 2", got)
	}
	if got := len(b.Accounts()); got != 0 {
		t.Errorf("Accounts() after Import(accounts only) has %d accounts, want 0", got)
	}
}

func TestBook_ImportRejectedLeavesBookUnchanged(t *testing.T) {
	store := memory.New()
	b := openBook(t, store)
	a, _ := b.AddAccount("Main", EUR)
	b.SubmitBalances(day("2025-01-10"), map[string]string{a.ID: "10"})
	before := export(t, b)

	for _, doc := range []string{
		`not json`,
		`{"accounts": [{"id": "a", "name": "A", "currency": "EUR"}], "balances": [{"id": 1}]}`,
	} {
		if _, err := b.Import(strings.NewReader(doc)); !errors.Is(err, ErrImport) {
			t.Errorf("Import(%q) error = %v, want ErrImport", doc, err)
		}
		if diff := cmp.Diff(before, export(t, b)); diff != "" {
			t.Errorf("Import(%q) changed the book (-want +got):\n%s", doc, diff)
		}
	}

	reopened := openBook(t, store)
	if diff := cmp.Diff(before, export(t, reopened)); diff != "" {
		t.Errorf("Import() rejection changed the store (-want +got):\n%s", diff)
	}
}

func TestBook_ExportImportRoundTrip(t *testing.T) {
	b := openBook(t, nil)
	a, _ := b.AddAccount("Main", EUR)
	c, _ := b.AddAccount("Savings", EUR)
	b.SubmitBalances(day("2025-01-10"), map[string]string{a.ID: "1.5", c.ID: "-2"})
	b.SubmitBalances(day("2025-03-01"), map[string]string{c.ID: "7"})
	want := export(t, b)

	other := openBook(t, nil)
	if _, err := other.Import(strings.NewReader(want)); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, export(t, other)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBook_SubmitBlankUnknownAccount(t *testing.T) {
	b := openBook(t, nil)
	a, _ := b.AddAccount("Main", EUR)

	inserted, err := b.SubmitBalances(day("2025-01-10"), map[string]string{a.ID: "1", "ghost": "  "})
	if err != nil {
		t.Fatalf("SubmitBalances(blank unknown account) unexpected error: %v", err)
	}
	if len(inserted) != 1 || inserted[0].AccountID != a.ID {
		t.Errorf("SubmitBalances() = %v, want a single balance for %s", inserted, a.ID)
	}
}

func TestOpen_InvalidSnapshot(t *testing.T) {
	testCases := []struct {
		name, key, value string
	}{
		{name: "duplicate account", key: "accounts", value: `[
			{"id": "a", "name": "A", "currency": "EUR"},
			{"id": "a", "name": "B", "currency": "EUR"}]`},
		{name: "two balances on a day", key: "balances", value: `[
			{"id": "b1", "accountId": "a", "date": "2025-01-10", "value": 1},
			{"id": "b2", "accountId": "a", "date": "2025-01-10", "value": 2}]`},
		{name: "duplicate balance id", key: "balances", value: `[
			{"id": "b1", "accountId": "a", "date": "2025-01-10", "value": 1},
			{"id": "b1", "accountId": "a", "date": "2025-01-11", "value": 2}]`},
		{name: "not json", key: "balances", value: `{`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.New()
			if err := store.Put(tc.key, []byte(tc.value)); err != nil {
				t.Fatalf("Put() unexpected error: %v", err)
			}
			if _, err := Open(store); err == nil {
				t.Errorf("Open() with a %s snapshot succeeded, want an error", tc.name)
			}
		})
	}
}
