// Package mapping computes the remux plan for an add-audio-track
// operation: which streams to copy from each input, in what order, and
// which output tracks carry the default flags.
//
// Planning is pure and synchronous. Anomalies that an operator may
// legitimately wave through (unusual video stream counts, multiple
// candidate audio streams) are surfaced as confirmations on the
// returned Outcome; the caller supplies the answer through
// Outcome.Resolve, so the decision logic stays testable without a
// terminal.
package mapping
