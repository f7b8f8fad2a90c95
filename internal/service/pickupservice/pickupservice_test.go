package pickupservice

import (
	"context"
	"testing"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var points = []domain.PickupPoint{
	{ID: 1, Name: "ПВЗ Тверская", Latitude: 55.765, Longitude: 37.610},
	{ID: 2, Name: "ПВЗ Арбат", Latitude: 55.752, Longitude: 37.592},
	{ID: 3, Name: "ПВЗ Пресненская наб.", Latitude: 55.752, Longitude: 37.590},
	{ID: 4, Name: "ПВЗ Кутузовская", Latitude: 55.743, Longitude: 37.553},
	{ID: 5, Name: "ПВЗ Измайлово", Latitude: 55.796, Longitude: 37.762},
}

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo), repo
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(55.75, 37.61, 55.75, 37.61), 1e-9)
	// Moscow to Saint Petersburg
	assert.InDelta(t, 634, Haversine(55.7558, 37.6173, 59.9343, 30.3351), 5)
}

func TestNearest(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name        string
		lat, lon    float64
		limit       int
		prepareMock func()
		wantIDs     []int
		expectErr   bool
	}{
		{
			name: "Closest first",
			lat:  55.744, lon: 37.555,
			limit: 2,
			prepareMock: func() {
				repo.EXPECT().List(gomock.Any()).Return(points, nil)
			},
			wantIDs: []int{4, 3},
		},
		{
			name: "Default limit",
			lat:  55.796, lon: 37.760,
			prepareMock: func() {
				repo.EXPECT().List(gomock.Any()).Return(points, nil)
			},
			wantIDs: []int{5, 1, 2, 3, 4},
		},
		{
			name: "Invalid latitude",
			lat:  91, lon: 0,
			prepareMock: func() {},
			expectErr:   true,
		},
		{
			name: "Repo error",
			lat:  55, lon: 37,
			prepareMock: func() {
				repo.EXPECT().List(gomock.Any()).Return(nil, assert.AnError)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			got, err := service.Nearest(context.Background(), tt.lat, tt.lon, tt.limit)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGet(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().FindByID(gomock.Any(), 9).Return(nil, nil)
	_, err := service.Get(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.EXPECT().FindByID(gomock.Any(), 1).Return(&points[0], nil)
	point, err := service.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ПВЗ Тверская", point.Name)
}
