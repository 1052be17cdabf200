package redis

import (
	"context"

	"github.com/Blank129/BookingCar/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const onlineDriversKey = "online_drivers"

// PresenceStore tracks online drivers in a redis geo set so trip requests
// can be fanned out to the closest ones.
type PresenceStore struct {
	client *redis.Client
}

func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

func (r *PresenceStore) SetOnline(ctx context.Context, driverID string, c domain.Coordinate) error {
	return r.client.GeoAdd(ctx, onlineDriversKey, &redis.GeoLocation{
		Name:      driverID,
		Longitude: c.Lng,
		Latitude:  c.Lat,
	}).Err()
}

func (r *PresenceStore) SetOffline(ctx context.Context, driverID string) error {
	return r.client.ZRem(ctx, onlineDriversKey, driverID).Err()
}

func (r *PresenceStore) NearbyDrivers(ctx context.Context, c domain.Coordinate, radiusKm float64) ([]string, error) {
	// GeoSearch yields member names only; positions are not needed here.
	drivers, err := r.client.GeoSearch(ctx, onlineDriversKey, &redis.GeoSearchQuery{
		Longitude:  c.Lng,
		Latitude:   c.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
		Count:      10,
	}).Result()
	if err != nil {
		return nil, err
	}

	return drivers, nil
}
