// Package util holds small helpers shared by the configuration and CLI layers.
package util

// Ptr returns a pointer to a copy of v. Optional WIP limits are *int.
func Ptr[T any](v T) *T {
	return &v
}
