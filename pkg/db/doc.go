// Package db provides the database connection helper for the PAM
// intelligence core. The core only reads from this connection; the
// schema is owned and migrated by the PAM core-management subsystem.
package db
