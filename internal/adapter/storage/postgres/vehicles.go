package postgres

import (
	"context"
	"fmt"

	"github.com/Blank129/BookingCar/internal/core/domain"
)

func (s *Store) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, category, capacity, price_per_km, estimated_time, description
		FROM vehicles
		ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.Capacity, &v.PricePerKm, &v.EstimatedTime, &v.Description); err != nil {
			return nil, fmt.Errorf("list vehicles: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
