package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/balances"
	"github.com/etnz/balances/date"
	"github.com/etnz/balances/renderer"
	"github.com/google/subcommands"
)

// valuesFlag collects repeated "account=value" flags.
type valuesFlag struct {
	refs   []string
	values map[string]string
}

func (v *valuesFlag) String() string {
	if v == nil {
		return ""
	}
	list := make([]string, 0, len(v.refs))
	for _, ref := range v.refs {
		list = append(list, ref+"="+v.values[ref])
	}
	return strings.Join(list, ",")
}

func (v *valuesFlag) Set(s string) error {
	ref, value, ok := strings.Cut(s, "=")
	ref = strings.TrimSpace(ref)
	if !ok || ref == "" {
		return fmt.Errorf("invalid value %q want <account>=<value>", s)
	}
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, exists := v.values[ref]; !exists {
		v.refs = append(v.refs, ref)
	}
	v.values[ref] = value
	return nil
}

// form builds the entry form of 'on': account ids to raw values. When 'prefill' is set, the form
// starts with the values already recorded that day for current accounts.
func form(accounts []balances.Account, existing map[string]string, entries *valuesFlag, prefill bool) (map[string]string, error) {
	values := make(map[string]string)
	if prefill {
		for _, a := range accounts {
			if v, ok := existing[a.ID]; ok {
				values[a.ID] = v
			}
		}
	}
	for _, ref := range entries.refs {
		a, err := resolveAccount(accounts, ref)
		if err != nil {
			return nil, err
		}
		values[a.ID] = entries.values[ref]
	}
	return values, nil
}

type submitCmd struct {
	date    string
	values  valuesFlag
	prefill bool
}

func (*submitCmd) Name() string     { return "submit" }
func (*submitCmd) Synopsis() string { return "enter the balances of a day" }
func (*submitCmd) Usage() string {
	return `bal submit [-d <date>] [-prefill] -v <account>=<value> ...

  Enters the balances of accounts on a given day. The balances of that day are
  replaced by the submitted ones: an account not listed, or listed with an empty
  value, has no balance that day.
  With -prefill, the values already recorded that day are kept unless overridden,
  so that a single account can be corrected. Balances of removed accounts are
  not kept.

  Accounts are designated by id or name. Values accept a dot or a comma as decimal
  separator.

Usage Examples:
$ bal submit -d 2025-01-31 -v Main=1234.56 -v Savings=5000
$ bal submit -d 2025-01-31 -prefill -v Savings=5100,50
`
}

func (c *submitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Day of the balances, as YYYY-MM-DD, DD/MM/YYYY or relative (-1d, -2w).")
	f.Var(&c.values, "v", "Balance of an account as <account>=<value>. Can be repeated.")
	f.BoolVar(&c.prefill, "prefill", false, "Keep the values already recorded that day unless overridden.")
}

func (c *submitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.ParseUser(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if len(c.values.refs) == 0 {
		fmt.Fprintln(os.Stderr, "at least one -v is required")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		existing := make(map[string]string)
		for id, v := range s.Values(on) {
			existing[id] = v.String()
		}
		values, err := form(s.Accounts(), existing, &c.values, c.prefill)
		if err != nil {
			return failure(err)
		}
		inserted, err := s.SubmitBalances(on, values)
		if err != nil && !errors.Is(err, balances.ErrPersistence) {
			return failure(err)
		}
		fmt.Fprintf(stdout, "Recorded %d balance(s) on %s\n", len(inserted), on.Format(s.cfg.Display.DateFormat))
		if err != nil {
			return failure(err)
		}
		return subcommands.ExitSuccess
	})
}

type balancesCmd struct {
	date string
	days bool
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "list individual balances" }
func (*balancesCmd) Usage() string {
	return `bal balances [-d <date>] [-days]

  Lists individual balances, most recent first, with their ids.
  With -days, lists only the days having balances.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Only list the balances of that day.")
	f.BoolVar(&c.days, "days", false, "List the days having balances instead.")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on date.Date
	if c.date != "" {
		var err error
		if on, err = date.ParseUser(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		if c.days {
			printMarkdown(s, renderer.DaysMarkdown(s.Dates(), s.cfg.Display.DateFormat))
			return subcommands.ExitSuccess
		}
		list := s.Balances()
		if !on.IsZero() {
			list = slices.DeleteFunc(list, func(b balances.Balance) bool { return b.On != on })
		}
		printMarkdown(s, renderer.BalancesMarkdown(s.Accounts(), list, s.cfg.Display.DateFormat))
		return subcommands.ExitSuccess
	})
}

type removeBalanceCmd struct {
	id string
}

func (*removeBalanceCmd) Name() string     { return "remove-balance" }
func (*removeBalanceCmd) Synopsis() string { return "delete a single balance" }
func (*removeBalanceCmd) Usage() string {
	return `bal remove-balance -id <balance id>

  Deletes a single balance. Use 'bal balances' to find its id.
`
}

func (c *removeBalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Id of the balance (required).")
}

func (c *removeBalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		if err := s.RemoveBalance(c.id); err != nil {
			return failure(err)
		}
		fmt.Fprintf(stdout, "Removed balance %s\n", c.id)
		return subcommands.ExitSuccess
	})
}
