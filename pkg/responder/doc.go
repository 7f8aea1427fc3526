// Package responder produces simulated bot replies after a randomized
// delay. Each request gets its own scheduled delivery keyed by a
// request id, so overlapping requests have independent lifecycles and a
// pending delivery can be cancelled before it fires.
package responder
