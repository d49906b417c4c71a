// Package store defines the persistence interfaces and shared storage
// errors. Implementations live under internal/platform.
package store
