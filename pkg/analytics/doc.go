// Package analytics implements the access-analytics engine of the PAM
// intelligence core.
//
// The engine turns raw checkout/session history into risk signal:
// dormant and over-privileged account detection, usage-pattern
// analysis, access anomaly detection, per-account risk scoring,
// checkout-policy violation detection, and a compliance dashboard, all
// rolled up into a tenant-wide summary.
//
// The engine is stateless; every operation is a pure query over the
// store interfaces, gated by safe access. Listing operations fail open:
// on an internal fault they emit an audit event and return an empty
// collection so one bad account cannot blank a dashboard. Single-entity
// lookups fail closed with store.ErrAccountNotFound or ErrAccessDenied.
package analytics
