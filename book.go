package balances

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/etnz/balances/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// View is the data displayed after each change: the consolidated table and the portfolio trend.
type View struct {
	Table *Table
	Trend []TrendPoint
}

// Book is a user session over accounts and their balances.
//
// All mutations go through a Book, one at a time. After each successful mutation the [View] is
// recomputed and the changed snapshots are written to the [Store]. A failed write is reported as
// an error matching [ErrPersistence], but the mutation stays applied.
type Book struct {
	mu       sync.Mutex
	accounts *Accounts
	ledger   *Ledger
	store    Store // nil for a session without persistence
	logger   zerolog.Logger
	view     View
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger used to report mutations and persistence failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Book) { b.logger = logger }
}

// WithIDGenerator replaces the uuid generator of new accounts and balances.
func WithIDGenerator(newID func() string) Option {
	return func(b *Book) {
		b.accounts.newID = newID
		b.ledger.newID = newID
	}
}

// Open loads a Book from 'store'. Keys that were never written are empty. A nil store opens an
// empty session that is never persisted.
func Open(store Store, opts ...Option) (*Book, error) {
	b := &Book{
		accounts: NewAccounts(),
		ledger:   NewLedger(),
		store:    store,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if store != nil {
		if err := loadSnapshot(store, keyAccounts, &b.accounts.list); err != nil {
			return nil, err
		}
		if err := loadSnapshot(store, keyBalances, &b.ledger.balances); err != nil {
			return nil, err
		}
		if err := checkAccounts(b.accounts.list); err != nil {
			return nil, fmt.Errorf("invalid %q snapshot: %w", keyAccounts, err)
		}
		if err := checkBalances(b.ledger.balances); err != nil {
			return nil, fmt.Errorf("invalid %q snapshot: %w", keyBalances, err)
		}
	}
	b.refresh()
	b.logger.Debug().Int("accounts", b.accounts.Len()).Int("balances", b.ledger.Len()).Msg("book opened")
	return b, nil
}

// refresh recomputes the view.
func (b *Book) refresh() {
	table := Aggregate(b.accounts.list, b.ledger.balances)
	b.view = View{Table: table, Trend: Trend(table.Totals())}
}

// commit is the single point where mutations are published: it refreshes the view and writes the
// changed snapshots. It must be called with the lock held.
func (b *Book) commit(accountsChanged, balancesChanged bool) error {
	b.refresh()
	if b.store == nil {
		return nil
	}

	var g errgroup.Group
	if accountsChanged {
		accounts := b.accounts.List()
		g.Go(func() error { return saveSnapshot(b.store, keyAccounts, nonNil(accounts)) })
	}
	if balancesChanged {
		balances := b.ledger.All()
		g.Go(func() error { return saveSnapshot(b.store, keyBalances, nonNil(balances)) })
	}
	if err := g.Wait(); err != nil {
		b.logger.Error().Err(err).Msg("cannot persist book")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// AddAccount creates a new account.
func (b *Book) AddAccount(name string, currency Currency) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, err := b.accounts.Add(name, currency)
	if err != nil {
		return Account{}, err
	}
	b.logger.Debug().Str("account", a.ID).Str("name", a.Name).Msg("account added")
	return a, b.commit(true, false)
}

// EditAccount renames an account.
func (b *Book) EditAccount(id, name string) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, err := b.accounts.Edit(id, name)
	if err != nil {
		return Account{}, err
	}
	b.logger.Debug().Str("account", a.ID).Str("name", a.Name).Msg("account renamed")
	return a, b.commit(true, false)
}

// RemoveAccount deletes an account. Its balances are kept in the ledger but no longer count in
// totals.
func (b *Book) RemoveAccount(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.accounts.Remove(id)
	b.logger.Debug().Str("account", id).Msg("account removed")
	return b.commit(true, false)
}

// SubmitBalances replaces all balances of day 'on' with 'values', the raw form inputs by account
// id. See [Ledger.Submit].
//
// Every account id with a non blank value must reference an existing account, otherwise an error
// matching [ErrNotFound] is returned and nothing changes.
func (b *Book) SubmitBalances(on date.Date, values map[string]string) ([]Balance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, raw := range values {
		if _, ok, _ := ParseValue(raw); !ok {
			continue
		}
		if _, ok := b.accounts.Get(id); !ok {
			return nil, fmt.Errorf("%w: account %q", ErrNotFound, id)
		}
	}
	inserted, err := b.ledger.Submit(on, values)
	if err != nil {
		return nil, err
	}
	b.logger.Debug().Stringer("date", on).Int("balances", len(inserted)).Msg("balances submitted")
	return inserted, b.commit(false, true)
}

// RemoveBalance deletes a single balance.
func (b *Book) RemoveBalance(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ledger.Remove(id)
	b.logger.Debug().Str("balance", id).Msg("balance removed")
	return b.commit(false, true)
}

// Import reads a document from 'r' and replaces the accounts and/or balances it carries.
//
// If the document is rejected, an error matching [ErrImport] is returned and the book is left
// exactly as before.
func (b *Book) Import(r io.Reader) (*Document, error) {
	doc, err := Import(r)
	if err != nil {
		b.logger.Warn().Err(err).Msg("import rejected")
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if doc.HasAccounts {
		b.accounts.list = append([]Account(nil), doc.Accounts...)
	}
	if doc.HasBalances {
		b.ledger.balances = append([]Balance(nil), doc.Balances...)
	}
	b.logger.Info().
		Bool("accounts", doc.HasAccounts).
		Bool("balances", doc.HasBalances).
		Int("account_count", len(doc.Accounts)).
		Int("balance_count", len(doc.Balances)).
		Msg("document imported")
	return doc, b.commit(doc.HasAccounts, doc.HasBalances)
}

// Export writes all accounts and balances to 'w'. See [Export].
func (b *Book) Export(w io.Writer) error {
	b.mu.Lock()
	accounts, balances := b.accounts.List(), b.ledger.All()
	b.mu.Unlock()
	return Export(w, accounts, balances)
}

// Accounts returns a copy of all accounts in insertion order.
func (b *Book) Accounts() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts.List()
}

// Account returns the account 'id'.
func (b *Book) Account(id string) (Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accounts.Get(id)
}

// Balances returns a copy of all balances.
func (b *Book) Balances() []Balance {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.All()
}

// Dates returns the days having balances, in chronological order.
func (b *Book) Dates() []date.Date {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Dates()
}

// Values returns the values recorded on 'day', to prefill an entry form.
func (b *Book) Values(day date.Date) map[string]decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Values(day)
}

// View returns the view computed after the last change.
func (b *Book) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return View{Table: b.view.Table, Trend: slices.Clone(b.view.Trend)}
}
