// Package cache stores ranked recommendations in Redis.
//
// Keys are BLAKE2b digests of everything that shapes a ranking: the user, the
// limit, the quiz answers and two generation counters. Bumping a generation
// orphans every key derived from the old value, so invalidation never scans
// the keyspace:
//
//   - the user generation moves when the user reviews or (un)favorites a coffee
//   - the catalogue generation moves when any coffee or review is added
//
// Orphaned entries expire with the configured TTL.
package cache
