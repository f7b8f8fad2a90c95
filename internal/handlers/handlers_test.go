package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/photoexpress/internal/handlers/catalog"
	"github.com/GlebRadaev/photoexpress/internal/handlers/orders"
	"github.com/GlebRadaev/photoexpress/internal/handlers/users"
	"github.com/GlebRadaev/photoexpress/internal/service"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	services := &service.Services{
		UserService:   users.NewMockService(ctrl),
		OrderService:  orders.NewMockService(ctrl),
		PromoService:  catalog.NewMockPromoService(ctrl),
		PickupService: catalog.NewMockPickupService(ctrl),
		Pricing:       catalog.NewMockPricer(ctrl),
	}

	h := New(services, auth.NewMockJWTServiceInterface(ctrl), Secrets{Bot: "bot", Service: "svc"})
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.CatalogHandler)
	assert.Equal(t, "svc", h.secrets.Service)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockUserHandler := NewMockUserHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockCatalogHandler := NewMockCatalogHandler(ctrl)
	mockJWT := auth.NewMockJWTServiceInterface(ctrl)

	mockUserHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockUserHandler.EXPECT().AcceptPolicy(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().ListOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().UpdateItems(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().CancelOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().CompleteOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().CheckPromo(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().ListPickupPoints(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().NearestPickupPoints(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().GetPickupPoint(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().ListFormats(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().Quote(gomock.Any(), gomock.Any()).AnyTimes()
	mockJWT.EXPECT().ValidateToken("valid").Return(&auth.Claims{UserID: 1}, nil).AnyTimes()

	h := &Handlers{
		UserHandler:    mockUserHandler,
		OrderHandler:   mockOrderHandler,
		CatalogHandler: mockCatalogHandler,
		jwtService:     mockJWT,
		secrets:        Secrets{Bot: "bot-secret", Service: "service-token"},
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method  string
		url     string
		token   string
		service string
		status  int
	}{
		{"POST", "/api/users/register", "", "", http.StatusUnauthorized},
		{"POST", "/api/users/register", "", "guess", http.StatusForbidden},
		{"POST", "/api/users/register", "", "service-token", http.StatusForbidden},
		{"POST", "/api/users/register", "", "bot-secret", http.StatusOK},
		{"GET", "/api/users/me", "", "", http.StatusUnauthorized},
		{"GET", "/api/users/me", "valid", "", http.StatusOK},
		{"POST", "/api/users/policy", "", "", http.StatusUnauthorized},
		{"POST", "/api/users/policy", "valid", "", http.StatusOK},
		{"POST", "/api/orders", "", "", http.StatusUnauthorized},
		{"POST", "/api/orders", "valid", "", http.StatusOK},
		{"GET", "/api/orders", "valid", "", http.StatusOK},
		{"GET", "/api/orders/abc", "valid", "", http.StatusOK},
		{"PATCH", "/api/orders/abc/items", "", "", http.StatusUnauthorized},
		{"PATCH", "/api/orders/abc/items", "valid", "", http.StatusOK},
		{"POST", "/api/orders/abc/cancel", "valid", "", http.StatusOK},
		{"POST", "/api/orders/abc/complete", "valid", "", http.StatusNotFound},
		{"POST", "/api/payments/abc/confirm", "", "", http.StatusUnauthorized},
		{"POST", "/api/payments/abc/confirm", "valid", "", http.StatusUnauthorized},
		{"POST", "/api/payments/abc/confirm", "", "bot-secret", http.StatusForbidden},
		{"POST", "/api/payments/abc/confirm", "", "service-token", http.StatusOK},
		{"POST", "/api/print-jobs/abc/complete", "valid", "", http.StatusUnauthorized},
		{"POST", "/api/print-jobs/abc/complete", "", "service-token", http.StatusOK},
		{"GET", "/api/promo/TEST10", "", "", http.StatusOK},
		{"GET", "/api/pickup-points", "", "", http.StatusOK},
		{"GET", "/api/pickup-points/nearest?lat=55&lon=37", "", "", http.StatusOK},
		{"GET", "/api/pickup-points/1", "", "", http.StatusOK},
		{"GET", "/api/formats", "", "", http.StatusOK},
		{"POST", "/api/quote", "", "", http.StatusOK},
		{"GET", "/metrics", "", "", http.StatusOK},
		{"GET", "/swagger/doc.json", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.service != "" {
				req.Header.Set(auth.ServiceTokenHeader, tt.service)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
