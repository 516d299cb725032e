// Package board holds the in-memory aggregate collections for questions and
// answers. The collections own their entities for the lifetime of the process;
// the persistence layer only sees transient snapshots during load and save.
//
// Each collection guards its state with a mutex. The board itself is designed
// for a single logical thread of control driving it from an event loop, but
// the lock makes the mutation path safe if callers ever come from more than
// one goroutine.
package board
