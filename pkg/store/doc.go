// Package store defines the storage abstractions consumed by the PAM
// intelligence core.
//
// Interfaces here are read-only views over the privileged-access data
// owned by the PAM core-management subsystem. Implementations live in
// subpackages (currently GORM/PostgreSQL); tests use testify/mock
// doubles of these interfaces.
//
// Every query method takes a context.Context so that caller deadlines
// and cancellation bound each store round trip. Nothing in this package
// writes.
package store
