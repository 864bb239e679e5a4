package balances

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExport(t *testing.T) {
	accounts := []Account{{ID: "acc-1", Name: "Main", Currency: EUR}}
	balances := []Balance{{ID: "bal-1", AccountID: "acc-1", On: day("2025-01-10"), Value: D("1234.50")}}

	var buf bytes.Buffer
	if err := Export(&buf, accounts, balances); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	want := `{
  "accounts": [
    {
      "id": "acc-1",
      "name": "Main",
      "currency": "EUR"
    }
  ],
  "balances": [
    {
      "id": "bal-1",
      "accountId": "acc-1",
      "date": "2025-01-10",
      "value": 1234.5
    }
  ]
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, nil); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	want := "{\n  \"accounts\": [],\n  \"balances\": []\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("Export(nil, nil) = %q, want %q", got, want)
	}
}

func TestImport_RoundTrip(t *testing.T) {
	accounts := []Account{
		{ID: "acc-1", Name: "Main", Currency: EUR},
		{ID: "acc-2", Name: "Savings", Currency: EUR},
	}
	balances := []Balance{
		{ID: "bal-1", AccountID: "acc-1", On: day("2025-01-10"), Value: D("10.25")},
		{ID: "bal-2", AccountID: "acc-2", On: day("2025-01-10"), Value: D("-3")},
		{ID: "bal-3", AccountID: "acc-1", On: day("2025-02-10"), Value: D("0")},
	}
	var buf bytes.Buffer
	if err := Export(&buf, accounts, balances); err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}

	doc, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	if !doc.HasAccounts || !doc.HasBalances {
		t.Errorf("Import() HasAccounts = %v, HasBalances = %v, want both", doc.HasAccounts, doc.HasBalances)
	}
	if diff := cmp.Diff(accounts, doc.Accounts, cmpOpts); diff != "" {
		t.Errorf("Import() accounts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(balances, doc.Balances, cmpOpts); diff != "" {
		t.Errorf("Import() balances mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_PartialDocument(t *testing.T) {
	testCases := []struct {
		name            string
		input           string
		wantHasAccounts bool
		wantHasBalances bool
	}{
		{name: "empty object", input: `{}`},
		{name: "accounts only", input: `{"accounts": []}`, wantHasAccounts: true},
		{name: "balances only", input: `{"balances": []}`, wantHasBalances: true},
		{name: "non array fields", input: `{"accounts": {"id": "x"}, "balances": "none"}`},
		{name: "null fields", input: `{"accounts": null, "balances": null}`},
		{name: "extra fields", input: `{"version": 2, "accounts": []}`, wantHasAccounts: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Import(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Import() unexpected error: %v", err)
			}
			if doc.HasAccounts != tc.wantHasAccounts || doc.HasBalances != tc.wantHasBalances {
				t.Errorf("Import() HasAccounts = %v, HasBalances = %v, want %v, %v",
					doc.HasAccounts, doc.HasBalances, tc.wantHasAccounts, tc.wantHasBalances)
			}
		})
	}
}

func TestImport_TruncatesTimestamps(t *testing.T) {
	input := `{"balances": [
		{"id": "b1", "accountId": "a", "date": "2025-01-10T23:59:59.000+0100", "value": 1},
		{"id": "b2", "accountId": "b", "date": "2025-01-10T08:00:00Z", "value": 2}
	]}`
	doc, err := Import(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}
	for _, b := range doc.Balances {
		if b.On != day("2025-01-10") {
			t.Errorf("Import() balance %s date = %v, want 2025-01-10", b.ID, b.On)
		}
	}
}

func TestImport_Rejected(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `accounts: []`},
		{name: "truncated", input: `{"accounts": [`},
		{name: "array document", input: `[]`},
		{name: "string document", input: `"accounts"`},
		{name: "trailing content", input: `{} {}`},
		{name: "account not an object", input: `{"accounts": [1]}`},
		{name: "account without id", input: `{"accounts": [{"name": "A", "currency": "EUR"}]}`},
		{name: "account with numeric name", input: `{"accounts": [{"id": "a", "name": 3, "currency": "EUR"}]}`},
		{name: "unsupported currency", input: `{"accounts": [{"id": "a", "name": "A", "currency": "USD"}]}`},
		{name: "duplicate account", input: `{"accounts": [
			{"id": "a", "name": "A", "currency": "EUR"},
			{"id": "a", "name": "B", "currency": "EUR"}]}`},
		{name: "balance with string value", input: `{"balances": [{"id": "b", "accountId": "a", "date": "2025-01-01", "value": "10"}]}`},
		{name: "balance with bad date", input: `{"balances": [{"id": "b", "accountId": "a", "date": "yesterday", "value": 10}]}`},
		{name: "balance without account", input: `{"balances": [{"id": "b", "date": "2025-01-01", "value": 10}]}`},
		{name: "duplicate balance day", input: `{"balances": [
			{"id": "b1", "accountId": "a", "date": "2025-01-01", "value": 10},
			{"id": "b2", "accountId": "a", "date": "2025-01-01T10:00:00Z", "value": 11}]}`},
		{name: "duplicate balance id", input: `{"balances": [
			{"id": "b1", "accountId": "a", "date": "2025-01-01", "value": 10},
			{"id": "b1", "accountId": "b", "date": "2025-01-01", "value": 11}]}`},
		{name: "valid accounts invalid balances", input: `{
			"accounts": [{"id": "a", "name": "A", "currency": "EUR"}],
			"balances": [{"id": "b"}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Import(strings.NewReader(tc.input))
			if !errors.Is(err, ErrImport) {
				t.Fatalf("Import() error = %v, want ErrImport", err)
			}
			var ierr *ImportError
			if !errors.As(err, &ierr) || ierr.Reason == "" {
				t.Errorf("Import() error = %#v, want an *ImportError with a reason", err)
			}
			if doc != nil {
				t.Errorf("Import() = %v, want nil document", doc)
			}
		})
	}
}
