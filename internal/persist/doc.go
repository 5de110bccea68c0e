// Package persist stores scheduler snapshots.
//
// A Backend reads and writes the raw dated document; the Adapter on top of it
// implements the scheduler's Persister contract: only today's snapshot is
// trusted, anything else is replaced by an empty snapshot that is saved right
// away, and faults are reported as values instead of errors.
//
// Two backends exist: a JSON file on an afero filesystem, overwritten in
// place, and a SQLite database keeping one row per calendar day.
package persist
