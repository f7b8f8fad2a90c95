package repo

import (
	"github.com/GlebRadaev/photoexpress/internal/pg"
	"github.com/GlebRadaev/photoexpress/internal/reconciler"
	orderrepo "github.com/GlebRadaev/photoexpress/internal/repo/order-repo"
	pickuprepo "github.com/GlebRadaev/photoexpress/internal/repo/pickup-repo"
	promorepo "github.com/GlebRadaev/photoexpress/internal/repo/promo-repo"
	userrepo "github.com/GlebRadaev/photoexpress/internal/repo/user-repo"
	"github.com/GlebRadaev/photoexpress/internal/service/orderservice"
	"github.com/GlebRadaev/photoexpress/internal/service/pickupservice"
	"github.com/GlebRadaev/photoexpress/internal/service/promoservice"
	"github.com/GlebRadaev/photoexpress/internal/service/userservice"
)

type UserRepo interface {
	userservice.Repo
	orderservice.UserRepo
}

type OrderRepo interface {
	orderservice.Repo
	reconciler.OrderRepo
}

type Repositories struct {
	UserRepo   UserRepo
	OrderRepo  OrderRepo
	PromoRepo  promoservice.Repo
	PickupRepo pickupservice.Repo
}

// New builds the repositories over one connection. Every repository reads
// the transaction txManager keeps in the context, if any.
func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	db := pg.New(conn)

	return &Repositories{
		UserRepo:   userrepo.New(db),
		OrderRepo:  orderrepo.New(db, txManager),
		PromoRepo:  promorepo.New(db),
		PickupRepo: pickuprepo.New(db),
	}
}
