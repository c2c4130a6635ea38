package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

// ProfileRepo owns the sparse `profiles` table carrying the per-user admin
// flag. A missing row is a normal state and reads as is_admin=false.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// IsAdmin looks up the admin flag for a user. Absence of a profile row is
// not an error; it simply means false.
func (r *ProfileRepo) IsAdmin(ctx context.Context, userID uint64) (bool, error) {
	var isAdmin bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT is_admin FROM profiles WHERE user_id=? LIMIT 1", userID).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

// List returns every profile row, used by the admin merge.
func (r *ProfileRepo) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT user_id, is_admin FROM profiles")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.UserID, &p.IsAdmin); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert inserts or updates the admin flag for a user.
func (r *ProfileRepo) Upsert(ctx context.Context, userID uint64, isAdmin bool) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (user_id, is_admin) VALUES (?,?) ON DUPLICATE KEY UPDATE is_admin=VALUES(is_admin)",
		userID, isAdmin)
	return err
}

// Delete removes a profile row. Deleting a row that does not exist is not
// an error; the table is sparse.
func (r *ProfileRepo) Delete(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM profiles WHERE user_id=?", userID)
	return err
}
