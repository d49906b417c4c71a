// Package cache provides the TTL-bounded response cache that wraps the
// read-only task query endpoints.
package cache
