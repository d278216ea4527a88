// Package vault holds the pure operations on the in-memory vault model:
// cloning, applying a patch, normalizing host keys, scanning the hash maps
// of a scope and encoding to and from JSON.
//
// Nothing in this package mutates its arguments. Every update follows
// "old + patch → new" through [Merge], so a snapshot handed to a reader is
// never observed half-updated.
package vault
