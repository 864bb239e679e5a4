// Package balances tracks named financial accounts and the balances periodically observed on
// them, and consolidates them into a portfolio history and trend.
//
// The core functionalities include:
//   - Account Management: an ordered list of accounts ([Accounts]) that can be added, renamed and
//     removed. Removing an account never removes its past balances.
//   - Balance Ledger: balance observations keyed by account and calendar day ([Ledger]). Entering
//     balances for a day replaces everything previously recorded that day, so that there is at
//     most one balance per account and day.
//   - Aggregation: a stateless engine ([Aggregate]) that groups balances by day and totals them
//     over the current accounts, and a moving average ([Trend]) of these totals.
//   - Import/Export: a single, human-readable json document ([Export], [Import]) to back up and
//     transfer the whole dataset.
//   - Persistence: a [Book] owns a session and snapshots it to a key/value [Store] after every
//     change.
//
// This package serves as the foundational logic for the `bal` command-line tool.
package balances
