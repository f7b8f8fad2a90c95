package service

import (
	"github.com/GlebRadaev/photoexpress/internal/handlers/catalog"
	"github.com/GlebRadaev/photoexpress/internal/handlers/orders"
	"github.com/GlebRadaev/photoexpress/internal/handlers/users"
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/GlebRadaev/photoexpress/internal/pricing"
	"github.com/GlebRadaev/photoexpress/internal/reconciler"
	"github.com/GlebRadaev/photoexpress/internal/repo"
	"github.com/GlebRadaev/photoexpress/internal/service/orderservice"
	"github.com/GlebRadaev/photoexpress/internal/service/pickupservice"
	"github.com/GlebRadaev/photoexpress/internal/service/promoservice"
	"github.com/GlebRadaev/photoexpress/internal/service/userservice"
	"github.com/GlebRadaev/photoexpress/pkg/auth"
	"github.com/GlebRadaev/photoexpress/pkg/clock"
)

// Deps are the collaborators shared by the services.
type Deps struct {
	TxManager         pg.TXManager
	JWT               auth.JWTServiceInterface
	Pricing           *pricing.Engine
	Notifier          orderservice.Notifier
	Storage           orderservice.Storage
	Clock             clock.Clock
	FirstOrderPercent int
}

type Services struct {
	UserService   users.Service
	OrderService  orders.Service
	PromoService  catalog.PromoService
	PickupService catalog.PickupService
	Pricing       catalog.Pricer
	Lifecycle     reconciler.Lifecycle
}

func New(repo *repo.Repositories, d Deps) *Services {
	userService := userservice.New(repo.UserRepo, d.JWT, d.Clock)
	promoService := promoservice.New(repo.PromoRepo, repo.UserRepo, d.Clock, d.FirstOrderPercent)
	pickupService := pickupservice.New(repo.PickupRepo)
	orderService := orderservice.New(orderservice.Deps{
		Repo:      repo.OrderRepo,
		Users:     repo.UserRepo,
		Pickups:   repo.PickupRepo,
		Promo:     promoService,
		Pricer:    d.Pricing,
		TxManager: d.TxManager,
		Notifier:  d.Notifier,
		Storage:   d.Storage,
		Clock:     d.Clock,
	})

	return &Services{
		UserService:   userService,
		OrderService:  orderService,
		PromoService:  promoService,
		PickupService: pickupService,
		Pricing:       d.Pricing,
		Lifecycle:     orderService,
	}
}
