// Package identity carries the caller identity through the PAM
// intelligence core.
//
// Authentication itself happens upstream; by the time a request reaches
// the analytics engine or the playback service the caller has already
// been authenticated and capability-checked. An Identity is the residue
// of that process: who is asking, plus the request context useful for
// auditing.
//
// # Basic Usage
//
//	id := identity.New("u-1001").WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
package identity
