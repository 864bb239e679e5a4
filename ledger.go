package balances

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/balances/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is the value of an account observed on a given day.
//
// Its JSON form is the balance element of the import/export document.
type Balance struct {
	ID        string
	AccountID string
	On        date.Date
	Value     decimal.Decimal
}

// Ledger holds balance observations.
//
// In a Ledger there is at most one balance per account and day.
type Ledger struct {
	balances []Balance
	newID    func() string
}

// NewLedger creates a ledger initialized with a copy of 'balances'.
func NewLedger(balances ...Balance) *Ledger {
	return &Ledger{balances: slices.Clone(balances), newID: uuid.NewString}
}

// ParseValue parses a value typed in an entry form. Both dot and comma are accepted as decimal
// separator. A blank input returns false with no error.
func ParseValue(s string) (decimal.Decimal, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: invalid value %q: %v", ErrInvalidInput, s, err)
	}
	return v, true, nil
}

// Submit replaces every balance recorded on 'on' by the 'values' entered for that day.
//
// 'values' maps account ids to the raw form input. Blank inputs are skipped: the account has no
// balance that day, even if it had one before. If any input is not a number, the ledger is left
// unchanged. The inserted balances are returned ordered by account id.
func (l *Ledger) Submit(on date.Date, values map[string]string) ([]Balance, error) {
	if on.IsZero() {
		return nil, fmt.Errorf("%w: balance date is missing", ErrInvalidInput)
	}
	inserted := make([]Balance, 0, len(values))
	for _, accountID := range slices.Sorted(maps.Keys(values)) {
		v, ok, err := ParseValue(values[accountID])
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", accountID, err)
		}
		if !ok {
			continue
		}
		inserted = append(inserted, Balance{ID: l.newID(), AccountID: accountID, On: on, Value: v})
	}

	l.balances = slices.DeleteFunc(l.balances, func(b Balance) bool { return b.On == on })
	l.balances = append(l.balances, inserted...)
	return slices.Clone(inserted), nil
}

// Remove deletes the balance 'id' if it exists.
func (l *Ledger) Remove(id string) {
	l.balances = slices.DeleteFunc(l.balances, func(b Balance) bool { return b.ID == id })
}

// All returns a copy of all balances in ledger order.
func (l *Ledger) All() []Balance { return slices.Clone(l.balances) }

// Len returns the number of balances.
func (l *Ledger) Len() int { return len(l.balances) }

// On returns the balances recorded on 'day'.
func (l *Ledger) On(day date.Date) []Balance {
	var list []Balance
	for _, b := range l.balances {
		if b.On == day {
			list = append(list, b)
		}
	}
	return list
}

// Values returns the values recorded on 'day' by account id. It is meant to prefill an entry
// form when balances for an existing day are edited.
func (l *Ledger) Values(day date.Date) map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal)
	for _, b := range l.On(day) {
		values[b.AccountID] = b.Value
	}
	return values
}

// Dates returns the distinct days having at least one balance, in chronological order.
func (l *Ledger) Dates() []date.Date {
	days := make([]date.Date, 0, len(l.balances))
	for _, b := range l.balances {
		days = append(days, b.On)
	}
	slices.SortFunc(days, date.Date.Compare)
	return slices.Compact(days)
}
