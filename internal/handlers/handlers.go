package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/photoexpress/docs"
	cataloghandlers "github.com/GlebRadaev/photoexpress/internal/handlers/catalog"
	ordershandlers "github.com/GlebRadaev/photoexpress/internal/handlers/orders"
	usershandlers "github.com/GlebRadaev/photoexpress/internal/handlers/users"
	"github.com/GlebRadaev/photoexpress/internal/service"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	AcceptPolicy(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
	ListOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	UpdateItems(w http.ResponseWriter, r *http.Request)
	UpdateReceiver(w http.ResponseWriter, r *http.Request)
	UpdateComment(w http.ResponseWriter, r *http.Request)
	SetDeliveryPoint(w http.ResponseWriter, r *http.Request)
	CancelOrder(w http.ResponseWriter, r *http.Request)
	ConfirmPayment(w http.ResponseWriter, r *http.Request)
	CompleteOrder(w http.ResponseWriter, r *http.Request)
}

type CatalogHandler interface {
	CheckPromo(w http.ResponseWriter, r *http.Request)
	ListPickupPoints(w http.ResponseWriter, r *http.Request)
	GetPickupPoint(w http.ResponseWriter, r *http.Request)
	NearestPickupPoints(w http.ResponseWriter, r *http.Request)
	ListFormats(w http.ResponseWriter, r *http.Request)
	Quote(w http.ResponseWriter, r *http.Request)
}

// Secrets are the shared tokens of trusted callers. Bot gates user
// registration, Service gates payment and print callbacks.
type Secrets struct {
	Bot     string
	Service string
}

type Handlers struct {
	UserHandler    UserHandler
	OrderHandler   OrderHandler
	CatalogHandler CatalogHandler
	jwtService     auth.JWTServiceInterface
	secrets        Secrets
}

func New(s *service.Services, jwtService auth.JWTServiceInterface, secrets Secrets) *Handlers {
	return &Handlers{
		UserHandler:    usershandlers.New(s.UserService),
		OrderHandler:   ordershandlers.New(s.OrderService),
		CatalogHandler: cataloghandlers.New(s.PromoService, s.PickupService, s.Pricing),
		jwtService:     jwtService,
		secrets:        secrets,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.With(auth.ServiceMiddleware(h.secrets.Bot)).Post("/users/register", h.UserHandler.Register)

		r.Get("/promo/{code}", h.CatalogHandler.CheckPromo)
		r.Get("/formats", h.CatalogHandler.ListFormats)
		r.Post("/quote", h.CatalogHandler.Quote)
		r.Route("/pickup-points", func(r chi.Router) {
			r.Get("/", h.CatalogHandler.ListPickupPoints)
			r.Get("/nearest", h.CatalogHandler.NearestPickupPoints)
			r.Get("/{id}", h.CatalogHandler.GetPickupPoint)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwtService))
			r.Get("/users/me", h.UserHandler.Me)
			r.Post("/users/policy", h.UserHandler.AcceptPolicy)

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.CreateOrder)
				r.Get("/", h.OrderHandler.ListOrders)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.OrderHandler.GetOrder)
					r.Patch("/items", h.OrderHandler.UpdateItems)
					r.Patch("/receiver", h.OrderHandler.UpdateReceiver)
					r.Patch("/comment", h.OrderHandler.UpdateComment)
					r.Put("/delivery-point", h.OrderHandler.SetDeliveryPoint)
					r.Post("/cancel", h.OrderHandler.CancelOrder)
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.ServiceMiddleware(h.secrets.Service))
			r.Post("/payments/{id}/confirm", h.OrderHandler.ConfirmPayment)
			r.Post("/print-jobs/{id}/complete", h.OrderHandler.CompleteOrder)
		})
	})

	return r
}
