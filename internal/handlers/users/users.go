package users

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/dto"
	"github.com/GlebRadaev/photoexpress/internal/handlers/httperr"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/GlebRadaev/photoexpress/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, telegramID int64, fullName, phone string) (*domain.User, error)
	AcceptPolicy(ctx context.Context, userID int) error
	GetByID(ctx context.Context, userID int) (*domain.User, error)
	GenerateToken(userID int) (string, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register godoc
//
//	@Summary		Register a Telegram user
//	@Description	Create or refresh the profile of a Telegram user and issue a JWT token. Only the bot front-end may call it.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Security		ServiceToken
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Service token missing"
//	@Failure		403		{object}	utils.Response	"Service token rejected"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.userService.Register(r.Context(), req.TelegramID, req.FullName, req.PhoneNumber)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	token, err := h.userService.GenerateToken(user.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, toUserDTO(user))
}

// Me godoc
//
//	@Summary		Get current user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.UserResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toUserDTO(user))
}

// AcceptPolicy godoc
//
//	@Summary		Accept the privacy policy
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	utils.Response	"Policy accepted"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users/policy [post]
func (h *UserHandler) AcceptPolicy(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.userService.AcceptPolicy(r.Context(), userID); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Policy accepted"})
}

func toUserDTO(user *domain.User) dto.UserResponseDTO {
	return dto.UserResponseDTO{
		ID:             user.ID,
		TelegramID:     user.TelegramID,
		FullName:       user.FullName,
		PhoneNumber:    user.PhoneNumber,
		AcceptedPolicy: user.AcceptedPolicy,
		FirstOrderPaid: user.FirstOrderPaid,
	}
}
