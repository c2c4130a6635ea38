package model

import "time"

// Profile is the application-owned per-user record holding the admin flag.
// Identity and credentials live in the `users` table; the profile row is
// sparse by design. Invariant: every authenticated user should have exactly
// one profile row, and absence is read as IsAdmin=false, never as an error.
type Profile struct {
	UserID    uint64    // profiles.user_id (primary key, references users.id)
	IsAdmin   bool      // profiles.is_admin
	CreatedAt time.Time // profiles.created_at
	UpdatedAt time.Time // profiles.updated_at
}

// AdminUser is the merged account+profile view returned by the admin
// user-management endpoints.
type AdminUser struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
