package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/balances/renderer"
	"github.com/google/subcommands"
)

type overviewCmd struct {
	html string
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "display balances by day with portfolio totals" }
func (*overviewCmd) Usage() string {
	return `bal overview [-html <file>]

  Displays one row per day, most recent first, with the balance of each account
  and the portfolio total. Missing balances are displayed as '-' and count as zero.
  Balances of removed accounts are listed apart and never counted.

  With -html, the overview is written as an HTML fragment to <file> instead.
`
}

func (c *overviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.html, "html", "", "Write the overview as HTML to this file.")
}

func (c *overviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) subcommands.ExitStatus {
		markdown := renderer.OverviewMarkdown(s.View().Table, s.cfg.Display.DateFormat)
		if c.html == "" {
			printMarkdown(s, markdown)
			return subcommands.ExitSuccess
		}
		html, err := renderer.HTML(markdown)
		if err != nil {
			return failure(err)
		}
		if err := os.WriteFile(c.html, html, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.html, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Overview written to %s\n", c.html)
		return subcommands.ExitSuccess
	})
}

type trendCmd struct{}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "display the portfolio total and its moving average" }
func (*trendCmd) Usage() string {
	return `bal trend

  Displays the portfolio total of each day with its moving average over the
  last 6 days having balances. The average is undefined until 6 days are known.
`
}
func (*trendCmd) SetFlags(f *flag.FlagSet) {}

func (*trendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) subcommands.ExitStatus {
		printMarkdown(s, renderer.TrendMarkdown(s.View().Trend, s.cfg.Display.DateFormat))
		return subcommands.ExitSuccess
	})
}

type chartCmd struct {
	output string
	width  int
	height int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the portfolio value over time as a PNG image" }
func (*chartCmd) Usage() string {
	return `bal chart -o <file.png> [-width 900] [-height 400]

  Draws the portfolio total over time, and its moving average, as a PNG image.
  At least two days with balances are required.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output PNG file (required).")
	f.IntVar(&c.width, "width", 900, "Image width in pixels.")
	f.IntVar(&c.height, "height", 400, "Image height in pixels.")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "-o is required")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) subcommands.ExitStatus {
		png, err := renderer.Chart(s.View().Trend, renderer.ChartOptions{
			Width:      c.width,
			Height:     c.height,
			DateLayout: s.cfg.Display.DateFormat,
		})
		if err != nil {
			return failure(err)
		}
		if err := os.WriteFile(c.output, png, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.output)
		return subcommands.ExitSuccess
	})
}
