package balances

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/balances/date"
	"github.com/shopspring/decimal"
)

// this file contains functions to handle the import/export format.
// It should remain human readable, single file and stable across versions:
//
//	{
//	  "accounts": [ { "id": string, "name": string, "currency": string } ],
//	  "balances": [ { "id": string, "accountId": string, "date": "YYYY-MM-DD", "value": number } ]
//	}

const (
	keyAccounts = "accounts"
	keyBalances = "balances"
)

// Document is the portable form of the accounts and balances of a [Book].
//
// A decoded document may lack any of the two fields: HasAccounts and HasBalances report which ones
// were present, and absent ones are left untouched when the document is applied.
type Document struct {
	Accounts    []Account
	Balances    []Balance
	HasAccounts bool
	HasBalances bool
}

// jbalance is the json object of a balance, with a number value rather than decimal's default
// quoted string.
type jbalance struct {
	ID        string      `json:"id"`
	AccountID string      `json:"accountId"`
	On        date.Date   `json:"date"`
	Value     json.Number `json:"value"`
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(jbalance{ID: b.ID, AccountID: b.AccountID, On: b.On, Value: json.Number(b.Value.String())})
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	var jb jbalance
	if err := json.Unmarshal(data, &jb); err != nil {
		return err
	}
	v, err := decimal.NewFromString(jb.Value.String())
	if err != nil {
		return fmt.Errorf("invalid balance value %q: %w", jb.Value, err)
	}
	*b = Balance{ID: jb.ID, AccountID: jb.AccountID, On: jb.On, Value: v}
	return nil
}

// Export writes 'accounts' and 'balances' to 'w' in the import/export format.
//
// Values are written exactly as stored and in the given order.
func Export(w io.Writer, accounts []Account, balances []Balance) error {
	doc := struct {
		Accounts []Account `json:"accounts"`
		Balances []Balance `json:"balances"`
	}{
		Accounts: nonNil(accounts),
		Balances: nonNil(balances),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot write export document: %w", err)
	}
	return nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// Import reads a document in the import/export format from 'r'.
//
// If 'r' is not a json object, an *ImportError is returned. A missing field, or a field that is not
// an array, is not an error: the document just does not carry it. A present array with an invalid
// element is an *ImportError, so that a document is either fully valid or rejected.
func Import(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, importErrorf(err, "cannot read document")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jdoc any
	if err := dec.Decode(&jdoc); err != nil {
		return nil, importErrorf(err, "not a json document")
	}
	if dec.More() {
		return nil, importErrorf(nil, "unexpected content after the json document")
	}
	if _, ok := jdoc.(map[string]any); !ok {
		return nil, importErrorf(nil, "document must be a json object, got %s", jsonKind(jdoc))
	}

	doc := new(Document)
	if list, ok := probeArray(jdoc, keyAccounts); ok {
		if doc.Accounts, err = decodeAccounts(list); err != nil {
			return nil, err
		}
		doc.HasAccounts = true
	}
	if list, ok := probeArray(jdoc, keyBalances); ok {
		if doc.Balances, err = decodeBalances(list); err != nil {
			return nil, err
		}
		doc.HasBalances = true
	}
	return doc, nil
}

// probeArray returns the array at the top-level property 'key' of 'jdoc', if any.
func probeArray(jdoc any, key string) ([]any, bool) {
	jval, err := jsonpath.Get("$."+key, jdoc)
	if err != nil {
		return nil, false
	}
	list, ok := jval.([]any)
	return list, ok
}

func decodeAccounts(list []any) ([]Account, error) {
	accounts := make([]Account, 0, len(list))
	for i, elem := range list {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, importErrorf(nil, "accounts[%d] must be an object, got %s", i, jsonKind(elem))
		}
		var a Account
		var err error
		if a.ID, err = requiredString(obj, "id"); err != nil {
			return nil, importErrorf(err, "accounts[%d]", i)
		}
		if a.Name, err = requiredString(obj, "name"); err != nil {
			return nil, importErrorf(err, "accounts[%d]", i)
		}
		code, err := requiredString(obj, "currency")
		if err != nil {
			return nil, importErrorf(err, "accounts[%d]", i)
		}
		if a.Currency, err = ParseCurrency(code); err != nil {
			return nil, importErrorf(err, "accounts[%d]", i)
		}
		accounts = append(accounts, a)
	}
	if err := checkAccounts(accounts); err != nil {
		return nil, importErrorf(err, "invalid accounts")
	}
	return accounts, nil
}

func decodeBalances(list []any) ([]Balance, error) {
	balances := make([]Balance, 0, len(list))
	for i, elem := range list {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, importErrorf(nil, "balances[%d] must be an object, got %s", i, jsonKind(elem))
		}
		var b Balance
		var err error
		if b.ID, err = requiredString(obj, "id"); err != nil {
			return nil, importErrorf(err, "balances[%d]", i)
		}
		if b.AccountID, err = requiredString(obj, "accountId"); err != nil {
			return nil, importErrorf(err, "balances[%d]", i)
		}
		day, err := requiredString(obj, "date")
		if err != nil {
			return nil, importErrorf(err, "balances[%d]", i)
		}
		if b.On, err = date.Parse(day); err != nil {
			return nil, importErrorf(err, "balances[%d]", i)
		}
		num, ok := obj["value"].(json.Number)
		if !ok {
			return nil, importErrorf(nil, "balances[%d]: property %q must be of type 'number'", i, "value")
		}
		if b.Value, err = decimal.NewFromString(num.String()); err != nil {
			return nil, importErrorf(err, "balances[%d]: invalid value", i)
		}
		balances = append(balances, b)
	}
	if err := checkBalances(balances); err != nil {
		return nil, importErrorf(err, "invalid balances")
	}
	return balances, nil
}

// checkAccounts reports the first account reusing the id of a previous one.
func checkAccounts(accounts []Account) error {
	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if seen[a.ID] {
			return fmt.Errorf("accounts[%d]: duplicate account id %q", i, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// checkBalances reports the first balance reusing the id of a previous one, or recorded for the
// same account and day.
func checkBalances(balances []Balance) error {
	type dayKey struct {
		account string
		on      date.Date
	}
	ids := make(map[string]bool, len(balances))
	days := make(map[dayKey]bool, len(balances))
	for i, b := range balances {
		if ids[b.ID] {
			return fmt.Errorf("balances[%d]: duplicate balance id %q", i, b.ID)
		}
		ids[b.ID] = true
		key := dayKey{b.AccountID, b.On}
		if days[key] {
			return fmt.Errorf("balances[%d]: account %q has two balances on %v", i, b.AccountID, b.On)
		}
		days[key] = true
	}
	return nil
}

func requiredString(obj map[string]any, name string) (string, error) {
	jval, ok := obj[name]
	if !ok {
		return "", fmt.Errorf("missing property %q", name)
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("property %q must be of type 'string', got %s", name, jsonKind(jval))
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("property %q is empty", name)
	}
	return s, nil
}

// jsonKind names the json type of a decoded value for error messages.
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
