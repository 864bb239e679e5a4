package cmd

import (
	"flag"

	"github.com/etnz/balances"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the global flags and of 'commands'.
func Completion(global *flag.FlagSet, commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(commands)),
		Flags: make(map[string]complete.Predictor),
	}
	global.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictor(f.Name) })

	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictor(f.Name) })
		root.Sub[c.Name()] = sub
	}
	return root
}

// predictor returns the completion of the flag 'name' value.
func predictor(name string) complete.Predictor {
	switch name {
	case "config":
		return predict.Files("*.toml")
	case "i":
		return predict.Files("*.json")
	case "o", "html", "data":
		return predict.Files("*")
	case "storage":
		return predict.Set(storageKinds)
	case "log-level":
		return predict.Set(logLevels)
	case "currency":
		var codes []string
		for _, c := range balances.SupportedCurrencies {
			codes = append(codes, string(c))
		}
		return predict.Set(codes)
	case "d":
		return predict.Set{"today", "-1d", "-1w", "-1m"}
	default:
		return predict.Nothing
	}
}
