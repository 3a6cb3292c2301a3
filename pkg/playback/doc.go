/*
Package playback reconstructs recorded privileged sessions into
navigable timelines, point-in-time frames, searchable text, and
multi-format exports.

The Service is stateless; every operation first verifies the caller
either owns the session or holds read access to the safe containing the
session's account, and fails with ErrUnauthorized otherwise. All
operations are read-only projections over immutable recorded data.
*/
package playback
