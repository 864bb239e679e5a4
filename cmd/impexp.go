package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/balances"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write all accounts and balances to a json document" }
func (*exportCmd) Usage() string {
	return `bal export [-o <file>]

  Writes all accounts and balances as a single json document, to stdout by default.
  The document can be imported back with 'bal import'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) subcommands.ExitStatus {
		if c.output == "" {
			if err := s.Export(stdout); err != nil {
				return failure(err)
			}
			return subcommands.ExitSuccess
		}
		out, err := createFile(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		if err := s.Export(out); err != nil {
			out.Close()
			return failure(err)
		}
		if err := out.Close(); err != nil {
			return failure(fmt.Errorf("cannot write %q: %w", c.output, err))
		}
		return subcommands.ExitSuccess
	})
}

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace accounts and balances from a json document" }
func (*importCmd) Usage() string {
	return `bal import -i <file>

  Replaces the accounts and the balances with those of an exported document.
  A document lacking "accounts" or "balances" leaves them unchanged.
  An invalid document is rejected as a whole and nothing changes.
  Use -i - to read from stdin.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Input file, or - for stdin (required).")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "-i is required")
		return subcommands.ExitUsageError
	}
	var r io.Reader = os.Stdin
	if c.input != "-" {
		in, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer in.Close()
		r = in
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		doc, err := s.Import(r)
		if err != nil && !errors.Is(err, balances.ErrPersistence) {
			return failure(err)
		}
		if doc.HasAccounts {
			fmt.Fprintf(stdout, "Imported %d account(s)\n", len(doc.Accounts))
		}
		if doc.HasBalances {
			fmt.Fprintf(stdout, "Imported %d balance(s)\n", len(doc.Balances))
		}
		if !doc.HasAccounts && !doc.HasBalances {
			fmt.Fprintln(stdout, "Nothing to import")
		}
		if err != nil {
			return failure(err)
		}
		return subcommands.ExitSuccess
	})
}
