// Package dealer holds the canonical dealer model and the pure operations
// answered against a loaded dealer set.
//
// # Pipeline
//
// Raw tabular rows are turned into [Dealer] values by [Normalize], which
// either admits a row or rejects it with a [RejectReason]. Admitted dealers
// are held by a [Repository], built once per load and never mutated.
//
// # Queries
//
// Everything else in this package is a pure function over a slice of
// dealers:
//
//   - [Query] applies free-text search, the category filter and sorting.
//   - [Aggregate] counts dealers per canonical region (see [Regions]).
//
// None of these functions perform I/O, so they are safe to call on every
// keystroke and from concurrent goroutines.
package dealer
