// Package cache memoizes report results on disk.
//
// Each entry is a JSON file named after the sha256 of the report name and its
// arguments. Entries older than the store's TTL are treated as missing.
// Reporter wraps a roster.Reporter so that repeated calls with identical
// arguments skip fetching entirely. Failed calls are never cached.
package cache
