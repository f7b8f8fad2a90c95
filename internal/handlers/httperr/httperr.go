package httperr

import (
	"errors"
	"net/http"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/pkg/utils"
	"go.uber.org/zap"
)

// Status maps a service error to the HTTP status returned for it.
func Status(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsPromoInvalid(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConcurrencyConflict),
		errors.Is(err, domain.ErrDuplicateID):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Respond writes err with its mapped status. Internal errors are logged and
// answered with a generic message.
func Respond(w http.ResponseWriter, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("can't handle request", zap.Error(err))
		utils.RespondWithError(w, code, "Internal server error")
		return
	}
	utils.RespondWithError(w, code, err.Error())
}
