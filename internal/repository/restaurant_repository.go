package repository

import (
	"context"
	"database/sql"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

// RestaurantRepo owns the `restaurants` table the places proxy writes
// through. Rows are normalized upstream results keyed (name, address).
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

// UpsertBatch writes normalized proxy rows, updating rating and coordinates
// when a (name, address) pair already exists. The proxy treats persistence
// as best effort for the response path, but errors still propagate so the
// handler can log the cause.
func (r *RestaurantRepo) UpsertBatch(ctx context.Context, rows []model.ProxyRestaurant) error {
	if len(rows) == 0 {
		return nil
	}
	const q = `
		INSERT INTO restaurants (name, address, rating, lat, lng)
		VALUES (?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			rating=VALUES(rating), lat=VALUES(lat), lng=VALUES(lng)`
	for _, row := range rows {
		if _, err := r.DB.ExecContext(ctx, q, row.Name, row.Address, row.Rating, row.Lat, row.Lng); err != nil {
			return err
		}
	}
	return nil
}
