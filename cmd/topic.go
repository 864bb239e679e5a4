package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/balances/docs"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `bal topic [<topic>...]

  Shows documentation for the given topics, or the list of topics.
  Use '*' for all topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	// Documentation does not need a book, only display settings.
	cfg, err := loadConfig()
	if err != nil {
		cfg = NewDefaultConfig()
	}
	printMarkdown(&session{cfg: cfg, logger: zerolog.Nop()}, doc)
	return subcommands.ExitSuccess
}
