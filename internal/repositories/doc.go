// package repositories provides the persistence layer for the session store.
//
// The only persisted entity is the schedule response cache: raw JSON bodies
// keyed by "songSchedules.{id}", with read-before-fetch and
// write-after-success semantics enforced by the enricher. The store is
// session-scoped; the default ":memory:" database ends with the process.
package repositories
