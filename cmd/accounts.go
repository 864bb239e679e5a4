package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/balances"
	"github.com/etnz/balances/renderer"
	"github.com/google/subcommands"
)

// resolveAccount finds an account by id, or else by its name when no other account has it.
func resolveAccount(accounts []balances.Account, ref string) (balances.Account, error) {
	ref = strings.TrimSpace(ref)
	var byName []balances.Account
	for _, a := range accounts {
		if a.ID == ref {
			return a, nil
		}
		if strings.EqualFold(a.Name, ref) {
			byName = append(byName, a)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
		return balances.Account{}, fmt.Errorf("%w: no account %q", balances.ErrNotFound, ref)
	default:
		return balances.Account{}, fmt.Errorf("%w: %d accounts are named %q, use the account id", balances.ErrInvalidInput, len(byName), ref)
	}
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts" }
func (*accountsCmd) Usage() string {
	return `bal accounts

  Lists accounts in the order they were created, with their ids.
`
}
func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) subcommands.ExitStatus {
		printMarkdown(s, renderer.AccountsMarkdown(s.Accounts()))
		return subcommands.ExitSuccess
	})
}

type addAccountCmd struct {
	name     string
	currency string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create a new account" }
func (*addAccountCmd) Usage() string {
	return `bal add-account -name <name> [-currency EUR]

  Creates an account. Only EUR accounts are supported.

Usage Examples:
$ bal add-account -name "Main Account"
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the account (required).")
	f.StringVar(&c.currency, "currency", string(balances.EUR), "Currency of the account.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "-name is required")
		return subcommands.ExitUsageError
	}
	currency, err := balances.ParseCurrency(c.currency)
	if err != nil {
		return failure(err)
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		a, err := s.AddAccount(c.name, currency)
		if a.ID != "" {
			fmt.Fprintf(stdout, "Created account %q (%s) with id %s\n", a.Name, a.Currency, a.ID)
		}
		if err != nil {
			return failure(err)
		}
		return subcommands.ExitSuccess
	})
}

type editAccountCmd struct {
	account string
	name    string
}

func (*editAccountCmd) Name() string     { return "edit-account" }
func (*editAccountCmd) Synopsis() string { return "rename an account" }
func (*editAccountCmd) Usage() string {
	return `bal edit-account -a <account> -name <new name>

  Renames an account. The account is designated by its id or its current name.
  Its id, currency and balances are unchanged.
`
}

func (c *editAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Id or name of the account (required).")
	f.StringVar(&c.name, "name", "", "New name of the account (required).")
}

func (c *editAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "-a and -name are required")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		a, err := resolveAccount(s.Accounts(), c.account)
		if err != nil {
			return failure(err)
		}
		a, err = s.EditAccount(a.ID, c.name)
		if a.ID != "" {
			fmt.Fprintf(stdout, "Renamed account %s to %q\n", a.ID, a.Name)
		}
		if err != nil {
			return failure(err)
		}
		return subcommands.ExitSuccess
	})
}

type removeAccountCmd struct {
	account string
}

func (*removeAccountCmd) Name() string     { return "remove-account" }
func (*removeAccountCmd) Synopsis() string { return "delete an account" }
func (*removeAccountCmd) Usage() string {
	return `bal remove-account -a <account>

  Deletes an account, designated by its id or its name. Its balances are kept
  but no longer count in totals.
`
}

func (c *removeAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Id or name of the account (required).")
}

func (c *removeAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "-a is required")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		a, err := resolveAccount(s.Accounts(), c.account)
		if err != nil {
			return failure(err)
		}
		if err := s.RemoveAccount(a.ID); err != nil {
			return failure(err)
		}
		fmt.Fprintf(stdout, "Removed account %q (%s)\n", a.Name, a.ID)
		return subcommands.ExitSuccess
	})
}
