package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/dto"
	"github.com/GlebRadaev/photoexpress/internal/handlers/httperr"
	"github.com/GlebRadaev/photoexpress/internal/service/orderservice"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/GlebRadaev/photoexpress/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	CreateOrder(ctx context.Context, req orderservice.CreateRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, userID int, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int, status domain.Status, limit, offset int) ([]domain.Order, error)
	UpdateItems(ctx context.Context, userID int, orderID string, patch orderservice.ItemsPatch) (*domain.Order, error)
	UpdateReceiver(ctx context.Context, userID int, orderID, name, phone string) (*domain.Order, error)
	UpdateComment(ctx context.Context, userID int, orderID, comment string) (*domain.Order, error)
	SetDeliveryPoint(ctx context.Context, userID int, orderID string, pointID int) (*domain.Order, error)
	CancelOrder(ctx context.Context, userID int, orderID string) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, orderID string) (*domain.Order, error)
	CompleteOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder godoc
//
//	@Summary		Create an order
//	@Description	Price the uploaded photos, apply the first-order discount or a promo code and store a new order.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateOrderRequestDTO	true	"Order request body"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CreateOrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User or pickup point not found"
//	@Failure		422	{object}	utils.Response	"Promo code rejected"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), orderservice.CreateRequest{
		UserID:          userID,
		Items:           toItems(req.Items),
		Comment:         req.Comment,
		PromoCode:       req.PromoCode,
		DeliveryPointID: req.DeliveryPointID,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateOrderResponseDTO{
		OrderID:  order.ID,
		Price:    order.Price.StringFixed(2),
		Discount: order.Discount.StringFixed(2),
	})
}

// ListOrders godoc
//
//	@Summary		List orders
//	@Description	Page through the user's orders in one status, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			status	query	string	false	"Order status"	default(new)
//	@Param			limit	query	int		false	"Page size"		default(1)
//	@Param			offset	query	int		false	"Page offset"	default(0)
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		400	{object}	utils.Response	"Invalid query"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	status := domain.StatusNew
	if s := query.Get("status"); s != "" {
		status = domain.Status(s)
	}
	limit, err := intParam(query.Get("limit"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
		return
	}
	offset, err := intParam(query.Get("offset"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid offset")
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID, status, limit, offset)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(orders) == 0 {
		utils.RespondWithJSON(w, http.StatusNoContent, nil)
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderDTO(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary	Get an order
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	string	true	"Order id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(r.Context(), userID, chi.URLParam(r, "id"))
	respondOrder(w, order, err)
}

// UpdateItems godoc
//
//	@Summary		Change format or copies
//	@Description	Apply a format and/or a copy count to every photo of a new unpaid order and re-price it.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Order id"
//	@Param			request	body	dto.UpdateItemsRequestDTO	true	"Items patch"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order can't be edited"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/items [patch]
func (h *OrderHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var req dto.UpdateItemsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := h.orderService.UpdateItems(r.Context(), userID, chi.URLParam(r, "id"), orderservice.ItemsPatch{
		Format: req.Format,
		Copies: req.Copies,
	})
	respondOrder(w, order, err)
}

// UpdateReceiver godoc
//
//	@Summary	Change receiver name and phone
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Order id"
//	@Param		request	body	dto.UpdateReceiverRequestDTO	true	"Receiver"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid request body"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	409	{object}	utils.Response	"Order can't be edited"
//	@Router		/api/orders/{id}/receiver [patch]
func (h *OrderHandler) UpdateReceiver(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var req dto.UpdateReceiverRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := h.orderService.UpdateReceiver(r.Context(), userID, chi.URLParam(r, "id"), req.Name, req.Phone)
	respondOrder(w, order, err)
}

// UpdateComment godoc
//
//	@Summary	Change the order comment
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string						true	"Order id"
//	@Param		request	body	dto.UpdateCommentRequestDTO	true	"Comment"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid request body"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Failure	409	{object}	utils.Response	"Order can't be edited"
//	@Router		/api/orders/{id}/comment [patch]
func (h *OrderHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var req dto.UpdateCommentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := h.orderService.UpdateComment(r.Context(), userID, chi.URLParam(r, "id"), req.Comment)
	respondOrder(w, order, err)
}

// SetDeliveryPoint godoc
//
//	@Summary	Choose the pickup point
//	@Tags		Orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path	string							true	"Order id"
//	@Param		request	body	dto.SetDeliveryPointRequestDTO	true	"Pickup point"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid request body"
//	@Failure	404	{object}	utils.Response	"Order or pickup point not found"
//	@Failure	409	{object}	utils.Response	"Order can't be edited"
//	@Router		/api/orders/{id}/delivery-point [put]
func (h *OrderHandler) SetDeliveryPoint(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	var req dto.SetDeliveryPointRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := h.orderService.SetDeliveryPoint(r.Context(), userID, chi.URLParam(r, "id"), req.DeliveryPointID)
	respondOrder(w, order, err)
}

// CancelOrder godoc
//
//	@Summary		Cancel an order
//	@Description	Cancel a new order and delete its uploaded photos.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	string	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order can't be cancelled"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}
	order, err := h.orderService.CancelOrder(r.Context(), userID, chi.URLParam(r, "id"))
	respondOrder(w, order, err)
}

// ConfirmPayment godoc
//
//	@Summary		Confirm payment
//	@Description	Called by the payment collaborator once the order is paid. Repeated calls return the paid order.
//	@Tags			Payments
//	@Produce		json
//	@Param			id	path	string	true	"Order id"
//	@Security		ServiceToken
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"Service token missing"
//	@Failure		403	{object}	utils.Response	"Service token rejected"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order can't be paid"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/{id}/confirm [post]
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.ConfirmPayment(r.Context(), chi.URLParam(r, "id"))
	respondOrder(w, order, err)
}

// CompleteOrder godoc
//
//	@Summary		Mark an order ready
//	@Description	Called by the print shop when printing is done. The user is notified.
//	@Tags			Print
//	@Produce		json
//	@Param			id	path	string	true	"Order id"
//	@Security		ServiceToken
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		401	{object}	utils.Response	"Service token missing"
//	@Failure		403	{object}	utils.Response	"Service token rejected"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order is not in progress"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/print-jobs/{id}/complete [post]
func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.CompleteOrder(r.Context(), chi.URLParam(r, "id"))
	respondOrder(w, order, err)
}

func userIDFrom(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func respondOrder(w http.ResponseWriter, order *domain.Order, err error) {
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toOrderDTO(order))
}

func toItems(items []dto.LineItemDTO) []domain.LineItem {
	result := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.LineItem{
			Filename:    item.Filename,
			StoragePath: item.StoragePath,
			Format:      item.Format,
			Copies:      item.Copies,
		})
	}
	return result
}

// toOrderDTO also reports which user actions the order's status still
// allows, so clients can hide the ones that would be refused.
func toOrderDTO(order *domain.Order) dto.OrderResponseDTO {
	items := make([]dto.LineItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.LineItemDTO{
			Filename:    item.Filename,
			StoragePath: item.StoragePath,
			Format:      item.Format,
			Copies:      item.Copies,
		})
	}
	return dto.OrderResponseDTO{
		OrderID:         order.ID,
		ShortID:         order.ShortID(),
		Status:          string(order.Status),
		StatusLabel:     order.Status.Label(),
		Items:           items,
		Copies:          order.Copies(),
		DeliveryPointID: order.DeliveryPointID,
		ReceiverName:    order.ReceiverName,
		ReceiverPhone:   order.ReceiverPhone,
		Comment:         order.Comment,
		Price:           order.Price.StringFixed(2),
		Discount:        order.Discount.StringFixed(2),
		PromoCode:       order.PromoCode,
		Paid:            order.Paid,
		Editable:        orderservice.Allowed(order.Status, orderservice.EventEdit),
		Cancellable:     orderservice.Allowed(order.Status, orderservice.EventCancel),
		Closed:          order.Status.Terminal(),
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}
}
