package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) GetDriverByEmail(ctx context.Context, email string) (domain.Driver, error) {
	var d domain.Driver
	err := s.db.QueryRow(ctx, `
		SELECT id, name, email, phone, plate_license, password_hash, id_vehicle, status, created_at, updated_at
		FROM drivers
		WHERE email = $1`,
		email,
	).Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.PlateLicense, &d.PasswordHash, &d.VehicleID, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Driver{}, domain.ErrDriverNotFound
	}
	if err != nil {
		return domain.Driver{}, fmt.Errorf("get driver by email: %w", err)
	}
	return d, nil
}

func (s *Store) SetDriverStatus(ctx context.Context, driverID uuid.UUID, status domain.DriverStatus) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE drivers SET status = $1, updated_at = now() WHERE id = $2`,
		status, driverID,
	)
	if err != nil {
		return fmt.Errorf("set driver status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

// DriverEarnings sums completed trips over calendar windows for the
// dashboard's today/week/month tabs.
func (s *Store) DriverEarnings(ctx context.Context, driverID uuid.UUID) (domain.EarningsSummary, error) {
	var e domain.EarningsSummary
	err := s.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_price) FILTER (WHERE updated_at >= date_trunc('day', now())), 0),
			COALESCE(SUM(total_price) FILTER (WHERE updated_at >= date_trunc('week', now())), 0),
			COALESCE(SUM(total_price) FILTER (WHERE updated_at >= date_trunc('month', now())), 0),
			COUNT(*) FILTER (WHERE updated_at >= date_trunc('day', now()))
		FROM bookings
		WHERE id_driver = $1 AND status = $2`,
		driverID, domain.BookingCompleted,
	).Scan(&e.Today, &e.Week, &e.Month, &e.TripsToday)
	if err != nil {
		return domain.EarningsSummary{}, fmt.Errorf("driver earnings: %w", err)
	}
	return e, nil
}
