// Package controller orchestrates the session store, the persistence
// gateway and the response simulator in reaction to user actions, and
// notifies a Renderer of every observable change.
//
// Invariants:
// - Every successful mutation is followed by a write-through save.
// - Simulated replies land in whichever chat is active when they
//   complete; a completion with no surviving target is a logged no-op.
// - No single failure leaves the controller unusable.
package controller
