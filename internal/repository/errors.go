// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when an insert collides with the unique email
// constraint on the users table. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadySaved is returned when a restaurant is saved twice for the same
// user; uniqueness is enforced by the (user_id, restaurant_id) constraint.
// Handlers translate this into HTTP 409.
var ErrAlreadySaved = errors.New("restaurant already saved")

// ErrNotFound is returned when a targeted row does not exist. Handlers
// translate this into HTTP 404.
var ErrNotFound = errors.New("not found")
