// Package service implements the application's use cases on top of the
// in-memory board collections and the persistence stores. Services own
// orchestration only; entity rules live in the domain package and SQL in the
// postgres package.
//
// Content reads are served from the board collections; every content mutation
// re-persists the affected collection as a full snapshot through its store.
// Load failures degrade to empty collections so the board always starts in a
// usable state, while write failures always propagate to the caller.
package service
