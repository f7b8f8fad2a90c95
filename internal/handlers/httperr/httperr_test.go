package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", domain.NewValidationError("copies", "must be positive"), http.StatusBadRequest},
		{"Wrapped validation", fmt.Errorf("create: %w", domain.NewValidationError("items", "is required")), http.StatusBadRequest},
		{"Not found", domain.NewNotFoundError("order", "abc"), http.StatusNotFound},
		{"Promo expired", domain.NewPromoInvalidError("OLD", domain.PromoExpired), http.StatusUnprocessableEntity},
		{"Invalid transition", fmt.Errorf("%w: cancel", domain.ErrInvalidTransition), http.StatusConflict},
		{"Concurrency conflict", domain.ErrConcurrencyConflict, http.StatusConflict},
		{"Duplicate id", domain.ErrDuplicateID, http.StatusConflict},
		{"Other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestRespond(t *testing.T) {
	w := httptest.NewRecorder()
	Respond(w, domain.NewNotFoundError("order", "abc"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")

	w = httptest.NewRecorder()
	Respond(w, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}
