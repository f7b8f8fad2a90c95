package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/dto"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"github.com/GlebRadaev/photoexpress/internal/service/pickupservice"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	promo  *MockPromoService
	pickup *MockPickupService
	pricer *MockPricer
}

func NewMock(t *testing.T) (*CatalogHandler, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		promo:  NewMockPromoService(ctrl),
		pickup: NewMockPickupService(ctrl),
		pricer: NewMockPricer(ctrl),
	}
	return New(m.promo, m.pickup, m.pricer), m
}

func serve(h http.HandlerFunc, method, pattern, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

var point = domain.PickupPoint{ID: 1, Name: "Тверская", Address: "ул. Тверская, 1", Latitude: 55.7575, Longitude: 37.6130, Rating: 4.8}

func TestCheckPromoHandler(t *testing.T) {
	handler, m := NewMock(t)
	uses := 5
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		code         string
		prepareMock  func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "Valid code",
			code: "test10",
			prepareMock: func() {
				m.promo.EXPECT().CheckPromo(gomock.Any(), "test10").
					Return(&domain.PromoCode{Code: "TEST10", DiscountPercent: 10, ExpiresAt: expires, UsesLeft: &uses}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"expires_at":"2030-01-01T00:00:00Z"`,
		},
		{
			name: "Exhausted code",
			code: "USED",
			prepareMock: func() {
				m.promo.EXPECT().CheckPromo(gomock.Any(), "USED").
					Return(nil, domain.NewPromoInvalidError("USED", domain.PromoExhausted))
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "promo code exhausted",
		},
		{
			name: "Store failure",
			code: "TEST10",
			prepareMock: func() {
				m.promo.EXPECT().CheckPromo(gomock.Any(), "TEST10").Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := serve(handler.CheckPromo, http.MethodGet, "/api/promo/{code}", "/api/promo/"+tt.code, "")
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestPickupPointHandlers(t *testing.T) {
	handler, m := NewMock(t)

	m.pickup.EXPECT().List(gomock.Any()).Return([]domain.PickupPoint{point}, nil)
	w := serve(handler.ListPickupPoints, http.MethodGet, "/api/pickup-points", "/api/pickup-points", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.PickupPointDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Nil(t, list[0].DistanceKm)

	m.pickup.EXPECT().Get(gomock.Any(), 1).Return(&point, nil)
	w = serve(handler.GetPickupPoint, http.MethodGet, "/api/pickup-points/{id}", "/api/pickup-points/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(handler.GetPickupPoint, http.MethodGet, "/api/pickup-points/{id}", "/api/pickup-points/x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.pickup.EXPECT().Get(gomock.Any(), 9).Return(nil, domain.NewNotFoundError("pickup point", 9))
	w = serve(handler.GetPickupPoint, http.MethodGet, "/api/pickup-points/{id}", "/api/pickup-points/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNearestPickupPointsHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:  "Default limit",
			query: "?lat=55.75&lon=37.61",
			prepareMock: func() {
				m.pickup.EXPECT().Nearest(gomock.Any(), 55.75, 37.61, 0).
					Return([]pickupservice.NearbyPoint{{PickupPoint: point, DistanceKm: 0.86}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing lat",
			query:        "?lon=37.61",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Broken limit",
			query:        "?lat=55.75&lon=37.61&limit=many",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Out of range",
			query: "?lat=95&lon=37.61&limit=3",
			prepareMock: func() {
				m.pickup.EXPECT().Nearest(gomock.Any(), 95.0, 37.61, 3).
					Return(nil, domain.NewValidationError("lat", "must be between -90 and 90"))
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			w := serve(handler.NearestPickupPoints, http.MethodGet, "/api/pickup-points/nearest", "/api/pickup-points/nearest"+tt.query, "")
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.PickupPointDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				require.Len(t, body, 1)
				require.NotNil(t, body[0].DistanceKm)
				assert.InDelta(t, 0.86, *body[0].DistanceKm, 1e-9)
			}
		})
	}
}

func TestListFormatsHandler(t *testing.T) {
	handler, m := NewMock(t)

	m.pricer.EXPECT().Formats().Return([]pricing.Format{
		{Name: "10x15", Price: decimal.NewFromInt(20)},
		{Name: "13x18", Price: decimal.NewFromInt(30)},
	})
	w := serve(handler.ListFormats, http.MethodGet, "/api/formats", "/api/formats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body []dto.FormatDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []dto.FormatDTO{{Name: "10x15", Price: "20.00"}, {Name: "13x18", Price: "30.00"}}, body)
}

func TestQuoteHandler(t *testing.T) {
	handler, m := NewMock(t)

	m.pricer.EXPECT().Price([]domain.LineItem{{Format: "10x15", Copies: 60}}).Return(pricing.Breakdown{
		Copies:            60,
		RawTotal:          decimal.NewFromInt(1200),
		AfterThreshold:    decimal.NewFromInt(1140),
		ThresholdDiscount: decimal.NewFromInt(60),
	}, nil)
	w := serve(handler.Quote, http.MethodPost, "/api/quote", "/api/quote", `{"items":[{"format":"10x15","copies":60}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.QuoteResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, dto.QuoteResponseDTO{Copies: 60, RawTotal: "1200.00", Total: "1140.00", ThresholdDiscount: "60.00"}, body)

	m.pricer.EXPECT().Price(gomock.Any()).Return(pricing.Breakdown{}, domain.NewValidationError("items", "is required"))
	w = serve(handler.Quote, http.MethodPost, "/api/quote", "/api/quote", `{"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(handler.Quote, http.MethodPost, "/api/quote", "/api/quote", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
