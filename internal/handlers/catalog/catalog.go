package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/photoexpress/internal/domain"
	"github.com/GlebRadaev/photoexpress/internal/dto"
	"github.com/GlebRadaev/photoexpress/internal/handlers/httperr"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"github.com/GlebRadaev/photoexpress/internal/service/pickupservice"
	"github.com/GlebRadaev/photoexpress/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type PromoService interface {
	CheckPromo(ctx context.Context, code string) (*domain.PromoCode, error)
}

type PickupService interface {
	List(ctx context.Context) ([]domain.PickupPoint, error)
	Get(ctx context.Context, id int) (*domain.PickupPoint, error)
	Nearest(ctx context.Context, lat, lon float64, limit int) ([]pickupservice.NearbyPoint, error)
}

type Pricer interface {
	Formats() []pricing.Format
	Price(items []domain.LineItem) (pricing.Breakdown, error)
}

type CatalogHandler struct {
	promoService  PromoService
	pickupService PickupService
	pricer        Pricer
}

func New(promoService PromoService, pickupService PickupService, pricer Pricer) *CatalogHandler {
	return &CatalogHandler{
		promoService:  promoService,
		pickupService: pickupService,
		pricer:        pricer,
	}
}

// CheckPromo godoc
//
//	@Summary		Check a promo code
//	@Description	Validate a promo code without using it.
//	@Tags			Catalog
//	@Produce		json
//	@Param			code	path		string	true	"Promo code"
//	@Success		200		{object}	dto.PromoResponseDTO
//	@Failure		422		{object}	utils.Response	"Promo code not found, expired or exhausted"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/promo/{code} [get]
func (h *CatalogHandler) CheckPromo(w http.ResponseWriter, r *http.Request) {
	promo, err := h.promoService.CheckPromo(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PromoResponseDTO{
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
		ExpiresAt:       promo.ExpiresAt.Format(time.RFC3339),
		UsesLeft:        promo.UsesLeft,
	})
}

// ListPickupPoints godoc
//
//	@Summary	List pickup points
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		dto.PickupPointDTO
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/pickup-points [get]
func (h *CatalogHandler) ListPickupPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.pickupService.List(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.PickupPointDTO, 0, len(points))
	for _, point := range points {
		response = append(response, toPointDTO(point))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetPickupPoint godoc
//
//	@Summary	Get a pickup point
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		int	true	"Pickup point id"
//	@Success	200	{object}	dto.PickupPointDTO
//	@Failure	400	{object}	utils.Response	"Invalid id"
//	@Failure	404	{object}	utils.Response	"Pickup point not found"
//	@Router		/api/pickup-points/{id} [get]
func (h *CatalogHandler) GetPickupPoint(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	point, err := h.pickupService.Get(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPointDTO(*point))
}

// NearestPickupPoints godoc
//
//	@Summary		Nearest pickup points
//	@Description	List pickup points ordered by distance from the given location.
//	@Tags			Catalog
//	@Produce		json
//	@Param			lat		query		number	true	"Latitude"
//	@Param			lon		query		number	true	"Longitude"
//	@Param			limit	query		int		false	"Number of points"	default(5)
//	@Success		200		{array}		dto.PickupPointDTO
//	@Failure		400		{object}	utils.Response	"Invalid coordinates"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/pickup-points/nearest [get]
func (h *CatalogHandler) NearestPickupPoints(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid lat")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid lon")
		return
	}
	limit := 0
	if s := query.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	points, err := h.pickupService.Nearest(r.Context(), lat, lon, limit)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.PickupPointDTO, 0, len(points))
	for _, point := range points {
		item := toPointDTO(point.PickupPoint)
		distance := point.DistanceKm
		item.DistanceKm = &distance
		response = append(response, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListFormats godoc
//
//	@Summary	List print formats
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	dto.FormatDTO
//	@Router		/api/formats [get]
func (h *CatalogHandler) ListFormats(w http.ResponseWriter, _ *http.Request) {
	formats := h.pricer.Formats()
	response := make([]dto.FormatDTO, 0, len(formats))
	for _, format := range formats {
		response = append(response, dto.FormatDTO{
			Name:  format.Name,
			Price: format.Price.StringFixed(2),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Quote godoc
//
//	@Summary		Price photos
//	@Description	Price line items with the volume discount, without creating an order.
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.QuoteRequestDTO	true	"Items to price"
//	@Success		200		{object}	dto.QuoteResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Router			/api/quote [post]
func (h *CatalogHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.LineItem{Format: item.Format, Copies: item.Copies})
	}

	breakdown, err := h.pricer.Price(items)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.QuoteResponseDTO{
		Copies:            breakdown.Copies,
		RawTotal:          breakdown.RawTotal.StringFixed(2),
		Total:             breakdown.AfterThreshold.StringFixed(2),
		ThresholdDiscount: breakdown.ThresholdDiscount.StringFixed(2),
	})
}

func toPointDTO(point domain.PickupPoint) dto.PickupPointDTO {
	return dto.PickupPointDTO{
		ID:        point.ID,
		Name:      point.Name,
		Address:   point.Address,
		Latitude:  point.Latitude,
		Longitude: point.Longitude,
		Rating:    point.Rating,
	}
}
