// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are reused across test packages. Each mock
// exposes function fields for customizable behavior and a small in-memory
// default implementation for the common cases.
package mocks
