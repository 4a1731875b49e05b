// Package store provides durable backends for folio.Store.
//
// Dir keeps one JSON file per key in a folder, SQLite keeps every key in a
// single table of an SQLite database.
package store
