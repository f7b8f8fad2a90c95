package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceMiddleware(t *testing.T) {
	customer, err := NewJWTService(testSecret).GenerateJWT(42, time.Now().Add(time.Hour))
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		token        string
		header       string
		bearer       string
		expectedCode int
	}{
		{name: "No header", token: "s3cret", expectedCode: http.StatusUnauthorized},
		{name: "Customer bearer token", token: "s3cret", bearer: customer, expectedCode: http.StatusUnauthorized},
		{name: "Wrong secret", token: "s3cret", header: "guess", expectedCode: http.StatusForbidden},
		{name: "Secret not configured", token: "", header: "anything", expectedCode: http.StatusForbidden},
		{name: "Valid secret", token: "s3cret", header: "s3cret", expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/payments/abc/confirm", nil)
			if tt.header != "" {
				req.Header.Set(ServiceTokenHeader, tt.header)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rr := httptest.NewRecorder()

			ServiceMiddleware(tt.token)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
