package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

// SavedRepo owns the `saved_restaurants` table: a per-user collection of
// restaurant snapshots keyed (user_id, restaurant_id). Rows are created on
// save, deleted on unsave, and listed newest first.
type SavedRepo struct{ DB *sql.DB }

func NewSavedRepo(db *sql.DB) *SavedRepo { return &SavedRepo{DB: db} }

// Add derives the restaurant identifier and inserts a snapshot row. It
// returns the derived id so callers can broadcast it. A missing identifier
// fails with model.ErrNoIdentifier before any write; a duplicate save maps
// the unique-constraint violation to ErrAlreadySaved.
func (r *SavedRepo) Add(ctx context.Context, userID uint64, rest model.Restaurant) (string, error) {
	restaurantID, err := rest.DeriveID()
	if err != nil {
		return "", err
	}

	addrJSON, err := marshalOrNull(rest.Address)
	if err != nil {
		return "", err
	}
	tagsJSON, err := marshalOrNull(rest.Tags)
	if err != nil {
		return "", err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO saved_restaurants
			(user_id, restaurant_id, name, cuisine, address, lat, lon,
			 rating, price_level, website, phone, opening_hours, tags)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		userID, restaurantID, rest.Name, rest.Cuisine, addrJSON, rest.Lat, rest.Lon,
		rest.Rating, rest.PriceLevel, rest.Website, rest.Phone, rest.OpeningHours, tagsJSON)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return restaurantID, ErrAlreadySaved
		}
		return "", err
	}
	return restaurantID, nil
}

// Remove deletes one saved row by its composite key.
func (r *SavedRepo) Remove(ctx context.Context, userID uint64, restaurantID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM saved_restaurants WHERE user_id=? AND restaurant_id=?",
		userID, restaurantID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsSaved reports membership of a restaurant in a user's collection.
func (r *SavedRepo) IsSaved(ctx context.Context, userID uint64, restaurantID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM saved_restaurants WHERE user_id=? AND restaurant_id=? LIMIT 1",
		userID, restaurantID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns every saved row for a user, newest first.
func (r *SavedRepo) ListByUser(ctx context.Context, userID uint64) ([]model.SavedRestaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, name, cuisine, address, lat, lon,
		       rating, price_level, website, phone, opening_hours, tags, created_at
		FROM saved_restaurants
		WHERE user_id=?
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SavedRestaurant
	for rows.Next() {
		var (
			s        model.SavedRestaurant
			cuisine  sql.NullString
			addrJSON sql.NullString
			website  sql.NullString
			phone    sql.NullString
			hours    sql.NullString
			tagsJSON sql.NullString
			rating   sql.NullFloat64
			price    sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.RestaurantID, &s.Name, &cuisine, &addrJSON,
			&s.Lat, &s.Lon, &rating, &price, &website, &phone, &hours, &tagsJSON, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Cuisine = cuisine.String
		s.Website = website.String
		s.Phone = phone.String
		s.OpeningHours = hours.String
		s.Rating = rating.Float64
		s.PriceLevel = int(price.Int64)
		if addrJSON.Valid && addrJSON.String != "" {
			_ = json.Unmarshal([]byte(addrJSON.String), &s.Address)
		}
		if tagsJSON.Valid && tagsJSON.String != "" {
			_ = json.Unmarshal([]byte(tagsJSON.String), &s.Tags)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// marshalOrNull encodes a map as JSON, returning nil (SQL NULL) for empty
// maps so sparse columns stay sparse.
func marshalOrNull(m map[string]string) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
