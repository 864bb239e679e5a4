package balances

import (
	"fmt"

	"github.com/etnz/balances/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimal values from const.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

// sequence returns a deterministic id generator: prefix-1, prefix-2, ...
func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// cmpOpts compares decimals by value and dates by day.
var cmpOpts = cmp.Options{
	cmp.Comparer(decimal.Decimal.Equal),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}
