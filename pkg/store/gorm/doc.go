// Package gorm provides GORM-backed implementations of the store
// interfaces, targeting the PostgreSQL schema owned by the PAM
// core-management subsystem.
package gorm
