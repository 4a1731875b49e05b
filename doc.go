// Package folio tracks how a total investment budget is allocated across
// stock tickers, and keeps named snapshots of those allocations. It is
// designed to be local-first: all state lives in a key-value Store owned by
// the user.
//
// The core functionalities include:
//   - Editing state: the Editor holds the budget and the allocations being
//     worked on, and persists them after every change.
//   - Snapshots: the Manager saves, updates and deletes named copies of the
//     editing state, and can push one back into the Editor for editing.
//   - Import/Export: snapshots are exchanged as a pretty printed JSON array
//     or as a spreadsheet with one row per snapshot.
//   - Views: Table and Chart compute the shares displayed to the user.
//
// This package serves as the foundational logic for the `spt` command-line
// tool.
package folio
