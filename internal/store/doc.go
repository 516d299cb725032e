// Package store defines the persistence interfaces for the board's entities
// and the sentinel errors shared by their implementations. Concrete
// implementations live in internal/platform/postgres.
package store
