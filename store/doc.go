// Package store is the read-only client for the static schedule database.
//
// The database is populated by an external daily import; this package only
// queries it. Both Postgres (pgx) and SQLite DSNs are supported, the driver
// is chosen from the DSN scheme.
package store
