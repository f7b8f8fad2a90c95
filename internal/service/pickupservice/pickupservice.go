package pickupservice

import (
	"context"
	"math"
	"sort"

	"github.com/GlebRadaev/photoexpress/internal/domain"
)

const (
	earthRadiusKm = 6371.0
	DefaultLimit  = 5
)

type Repo interface {
	List(ctx context.Context) ([]domain.PickupPoint, error)
	FindByID(ctx context.Context, id int) (*domain.PickupPoint, error)
}

type NearbyPoint struct {
	domain.PickupPoint
	DistanceKm float64
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.PickupPoint, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.PickupPoint, error) {
	point, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, domain.NewNotFoundError("pickup point", id)
	}
	return point, nil
}

// Nearest returns up to limit points ordered by distance from (lat, lon).
func (s *Service) Nearest(ctx context.Context, lat, lon float64, limit int) ([]NearbyPoint, error) {
	if lat < -90 || lat > 90 {
		return nil, domain.NewValidationError("lat", "must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, domain.NewValidationError("lon", "must be between -180 and 180")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	points, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyPoint, 0, len(points))
	for _, p := range points {
		nearby = append(nearby, NearbyPoint{
			PickupPoint: p,
			DistanceKm:  Haversine(lat, lon, p.Latitude, p.Longitude),
		})
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// Haversine is the great-circle distance in kilometres.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1, lat2, lon2 = radians(lat1), radians(lon1), radians(lat2), radians(lon2)
	dLat, dLon := lat2-lat1, lon2-lon1
	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
