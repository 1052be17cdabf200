package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/Blank129/BookingCar/internal/core/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `
	b.id, b.id_user, b.id_driver, b.id_vehicle,
	b.pickup_name, b.pickup_address, b.pickup_lat, b.pickup_lng,
	b.dropoff_name, b.dropoff_address, b.dropoff_lat, b.dropoff_lng,
	b.distance_km, b.total_price, b.status, b.created_at, b.updated_at,
	d.name, d.phone, d.plate_license`

type bookingRow interface {
	Scan(dest ...any) error
}

func scanBooking(row bookingRow) (domain.Booking, error) {
	var b domain.Booking
	var driverID pgtype.UUID
	var driverName, driverPhone, driverPlate pgtype.Text

	err := row.Scan(
		&b.ID, &b.UserID, &driverID, &b.VehicleID,
		&b.Pickup.Name, &b.Pickup.Address, &b.Pickup.Coord.Lat, &b.Pickup.Coord.Lng,
		&b.Destination.Name, &b.Destination.Address, &b.Destination.Coord.Lat, &b.Destination.Coord.Lng,
		&b.DistanceKm, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&driverName, &driverPhone, &driverPlate,
	)
	if err != nil {
		return domain.Booking{}, err
	}

	if driverID.Valid {
		b.Driver = &domain.DriverInfo{
			ID:           uuid.UUID(driverID.Bytes),
			Name:         driverName.String,
			Phone:        driverPhone.String,
			PlateLicense: driverPlate.String,
			Rating:       4.8,
		}
	}
	return b, nil
}

func (s *Store) CreateBooking(ctx context.Context, arg port.CreateBookingParams) (domain.Booking, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO bookings (
			id, id_user, id_vehicle,
			pickup_name, pickup_address, pickup_lat, pickup_lng,
			dropoff_name, dropoff_address, dropoff_lat, dropoff_lng,
			distance_km, total_price, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,now(),now())
		RETURNING id, created_at, updated_at`,
		uuid.New(), arg.UserID, arg.VehicleID,
		arg.Pickup.Name, arg.Pickup.Address, arg.Pickup.Coord.Lat, arg.Pickup.Coord.Lng,
		arg.Destination.Name, arg.Destination.Address, arg.Destination.Coord.Lat, arg.Destination.Coord.Lng,
		arg.DistanceKm, arg.TotalPrice, domain.BookingPending,
	)

	b := domain.Booking{
		UserID:      arg.UserID,
		VehicleID:   arg.VehicleID,
		Pickup:      arg.Pickup,
		Destination: arg.Destination,
		DistanceKm:  arg.DistanceKm,
		TotalPrice:  arg.TotalPrice,
		Status:      domain.BookingPending,
	}
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *Store) ActiveBookingByUser(ctx context.Context, userID uuid.UUID) (domain.Booking, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		LEFT JOIN drivers d ON d.id = b.id_driver
		WHERE b.id_user = $1 AND b.status IN ($2, $3)
		ORDER BY b.created_at DESC
		LIMIT 1`,
		userID, domain.BookingPending, domain.BookingDriverAssigned,
	)

	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("active booking: %w", err)
	}
	return b, nil
}

func (s *Store) OpenBookingsForDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		LEFT JOIN drivers d ON d.id = b.id_driver
		JOIN drivers me ON me.id = $1
		WHERE b.status = $2
		  AND b.id_vehicle = me.id_vehicle
		  AND NOT EXISTS (
			SELECT 1 FROM booking_rejections r
			WHERE r.id_booking = b.id AND r.id_driver = $1
		  )
		ORDER BY b.created_at ASC`,
		driverID, domain.BookingPending,
	)
	if err != nil {
		return nil, fmt.Errorf("open bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("open bookings: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CompletedBookingsForDriver lists the driver's finished trips, newest
// first, for the dashboard history tab.
func (s *Store) CompletedBookingsForDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		LEFT JOIN drivers d ON d.id = b.id_driver
		WHERE b.id_driver = $1 AND b.status = $2
		ORDER BY b.updated_at DESC
		LIMIT 50`,
		pgtype.UUID{Bytes: driverID, Valid: true}, domain.BookingCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("completed bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("completed bookings: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// AssignDriver claims a pending booking for the driver. First accept
// wins; a second claim fails with ErrInvalidTransition.
func (s *Store) AssignDriver(ctx context.Context, bookingID, driverID uuid.UUID) (domain.Booking, error) {
	var assigned domain.Booking
	err := s.ExecTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE bookings
			SET id_driver = $1, status = $2, updated_at = now()
			WHERE id = $3 AND status = $4 AND id_driver IS NULL`,
			pgtype.UUID{Bytes: driverID, Valid: true}, domain.BookingDriverAssigned,
			bookingID, domain.BookingPending,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrInvalidTransition
		}

		row := tx.QueryRow(ctx, `
			SELECT `+bookingColumns+`
			FROM bookings b
			LEFT JOIN drivers d ON d.id = b.id_driver
			WHERE b.id = $1`,
			bookingID,
		)
		assigned, err = scanBooking(row)
		return err
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return assigned, nil
}

func (s *Store) RecordRejection(ctx context.Context, bookingID, driverID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO booking_rejections (id_booking, id_driver, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT DO NOTHING`,
		bookingID, driverID,
	)
	if err != nil {
		return fmt.Errorf("record rejection: %w", err)
	}
	return nil
}

func (s *Store) SetBookingStatus(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`,
		status, bookingID,
	)
	if err != nil {
		return fmt.Errorf("set booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (s *Store) CompleteBooking(ctx context.Context, bookingID, driverID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND id_driver = $3 AND status = $4`,
		domain.BookingCompleted, bookingID,
		pgtype.UUID{Bytes: driverID, Valid: true}, domain.BookingDriverAssigned,
	)
	if err != nil {
		return fmt.Errorf("complete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (s *Store) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND id_user = $3 AND status IN ($4, $5)`,
		domain.BookingCancelled, bookingID, userID,
		domain.BookingPending, domain.BookingDriverAssigned,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
