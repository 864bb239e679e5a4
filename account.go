package balances

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

// Currency is the ISO 4217 code of an account currency.
type Currency string

// EUR is the only currency supported for now.
const EUR Currency = "EUR"

// SupportedCurrencies lists the currencies an account can be created with.
var SupportedCurrencies = []Currency{EUR}

// ParseCurrency returns the supported currency for 'code' (case insensitive).
func ParseCurrency(code string) (Currency, error) {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil {
		return "", fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, code)
	}
	c := Currency(cur.Code)
	if !slices.Contains(SupportedCurrencies, c) {
		return "", fmt.Errorf("%w: unsupported currency %q, want one of %v", ErrInvalidInput, code, SupportedCurrencies)
	}
	return c, nil
}

// Account is a named financial account whose balances are tracked.
type Account struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Currency Currency `json:"currency"`
}

// Accounts holds the ordered collection of accounts.
//
// Accounts are listed in insertion order, which edits never change.
type Accounts struct {
	list  []Account
	newID func() string
}

// NewAccounts creates a store initialized with a copy of 'accounts'.
func NewAccounts(accounts ...Account) *Accounts {
	return &Accounts{list: slices.Clone(accounts), newID: uuid.NewString}
}

// Add creates a new account with a fresh id and appends it.
func (s *Accounts) Add(name string, currency Currency) (Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Account{}, fmt.Errorf("%w: account name is empty", ErrInvalidInput)
	}
	cur, err := ParseCurrency(string(currency))
	if err != nil {
		return Account{}, err
	}
	a := Account{ID: s.newID(), Name: name, Currency: cur}
	s.list = append(s.list, a)
	return a, nil
}

// Edit renames the account 'id'. The currency cannot be changed.
func (s *Accounts) Edit(id, name string) (Account, error) {
	i := s.index(id)
	if i < 0 {
		return Account{}, fmt.Errorf("%w: account %q", ErrNotFound, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Account{}, fmt.Errorf("%w: account name is empty", ErrInvalidInput)
	}
	s.list[i].Name = name
	return s.list[i], nil
}

// Remove deletes the account 'id' if it exists.
//
// Balances recorded for this account are kept in the ledger.
func (s *Accounts) Remove(id string) {
	s.list = slices.DeleteFunc(s.list, func(a Account) bool { return a.ID == id })
}

// Get returns the account 'id'.
func (s *Accounts) Get(id string) (Account, bool) {
	i := s.index(id)
	if i < 0 {
		return Account{}, false
	}
	return s.list[i], true
}

// List returns a copy of all accounts in insertion order.
func (s *Accounts) List() []Account { return slices.Clone(s.list) }

// Len returns the number of accounts.
func (s *Accounts) Len() int { return len(s.list) }

func (s *Accounts) index(id string) int {
	return slices.IndexFunc(s.list, func(a Account) bool { return a.ID == id })
}
