// Package model defines the database models for the PAM intelligence core.
//
// This package contains GORM models that map to the privileged-access
// schema owned by the PAM core-management subsystem. The intelligence
// core only ever reads these tables; creation, mutation, and deletion
// happen elsewhere.
//
// # Core Models
//
//   - Safe: access-controlled grouping of privileged accounts
//   - PrivilegedAccount: a managed credential inside a safe
//   - AccountCheckout: a time-bounded exclusive lease of a credential
//   - PrivilegedSession: one recorded interactive session
//   - SessionCommand: one ordered unit of interaction within a session
//   - SafePermission: a user's access grant on a safe
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - safes: safe containers
//   - privileged_accounts: managed credentials
//   - account_checkouts: checkout leases
//   - privileged_sessions: recorded sessions
//   - session_commands: ordered session recordings
//   - safe_permissions: safe access grants
package model
