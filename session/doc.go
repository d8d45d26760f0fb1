// Package session owns the durable session record for the Control Tower
// client: the bearer credential and the identity it was issued for, stored
// and cleared together as a single serialized unit.
//
// # Design
//
// The credential and the identity are never persisted as two independent
// slots. [Record] is encoded through a versioned envelope ([Encode] /
// [Decode]) and written in one atomic operation, so a crash can never leave
// a credential behind without its identity or vice versa. Stores still know
// how to read the historical two-slot layout and either migrate it into a
// record or discard it when the identity half is unreadable.
//
// # Architecture boundaries
//
// This package owns persistence only. It does not talk to the backend, does
// not judge whether a credential is still valid, and never triggers
// navigation. Those decisions belong to the guard in the root package.
//
// # What this package must NOT do
//
//   - Perform network calls other than the Redis round-trips of [RedisStore].
//   - Import the root controltower package (the root aliases types from here).
//   - Keep partial state: a load either yields a complete record or nothing.
package session
