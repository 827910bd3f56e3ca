// Package repositories implements persistence for the enrollment roster.
//
// Every backend satisfies [Store] and works on full snapshots: Load returns the
// whole saved sequence and Save replaces it. Neither retains the slice it is given.
//
// Implementations:
//   - [FileRepository] : JSON array of flat records, Enrollments.json by default
//   - [SQLiteRepository] : the same snapshot kept in an enrollments table
//
// The SQLite backend orders rows with per-table sequence counters, see [NextSequence].
package repositories
