// Package cache is the explicit memoization layer for the dashboard
// helpers. The dashboard framework's implicit per-function caching is
// replaced by an injectable TTL store so invalidation is a visible,
// testable operation rather than a framework side effect.
package cache
