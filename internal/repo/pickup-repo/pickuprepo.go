package pickuprepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) List(ctx context.Context) ([]domain.PickupPoint, error) {
	query := `
        SELECT id, name, address, latitude, longitude, rating
        FROM pickup_points
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get pickup points", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var points []domain.PickupPoint
	for rows.Next() {
		var p domain.PickupPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude, &p.Rating); err != nil {
			zap.L().Error("can't scan pickup point row", zap.Error(err))
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.PickupPoint, error) {
	query := `
        SELECT id, name, address, latitude, longitude, rating
        FROM pickup_points
        WHERE id = $1
    `
	var p domain.PickupPoint
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude, &p.Rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find pickup point", zap.Error(err))
		return nil, err
	}
	return &p, nil
}
