// Package store provides the local persistence layer for employee records.
// It owns the lazily opened SQLite handle, the schema of the funcionarios table,
// the validated record writer and the filtered query builder. Every operation
// takes the handle explicitly and returns errors wrapping one of the kinds
// declared in errors.go.
package store
