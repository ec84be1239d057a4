// Package bootstrap assembles repositories and services for the shop processes.
package bootstrap

import (
	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	membermemory "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/memory"
	memberobs "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/observability"
	memberpostgres "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/persistence/postgres"
	memberapp "github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	ordermemory "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/shared/unitofwork"
)

// Repositories groups the storage adapters of every bounded context together
// with the unit of work that spans them.
type Repositories struct {
	Members memberports.Repository
	Items   catalogports.Repository
	Orders  orderports.Repository
	Queries orderports.QueryRepository
	UoW     unitofwork.Manager

	Idempotency orderports.IdempotencyStore
}

// Memory returns process-local repositories. Writes are not transactional.
func Memory() Repositories {
	members := membermemory.NewRepository()
	items := catalogmemory.NewRepository()
	orders := ordermemory.NewRepository()
	return Repositories{
		Members: members,
		Items:   items,
		Orders:  orders,
		Queries: ordermemory.NewQueryRepository(orders, members, items),
		UoW:     unitofwork.Noop{},

		Idempotency: ordermemory.NewIdempotencyStore(),
	}
}

// Postgres returns GORM-backed repositories sharing one transactor.
func Postgres(db *gorm.DB, batchFetchSize int) Repositories {
	return Repositories{
		Members: memberpostgres.NewRepository(db),
		Items:   catalogpostgres.NewRepository(db),
		Orders:  orderpostgres.NewRepository(db),
		Queries: orderpostgres.NewQueryRepository(db, orderpostgres.WithBatchFetchSize(batchFetchSize)),
		UoW:     platformpostgres.NewTransactor(db),

		Idempotency: orderpostgres.NewIdempotencyStore(db),
	}
}

// Settings tunes the application services.
type Settings struct {
	DefaultPageLimit int
}

// Services exposes the decorated application services.
type Services struct {
	Members memberports.Service
	Items   catalogports.Service
	Orders  orderports.Service
	Queries orderports.QueryService
}

// NewServices builds the application services on top of repos and wraps the
// member and order services with logging, tracing and metrics.
func NewServices(repos Repositories, instruments *platformobservability.Instruments, settings Settings) Services {
	if instruments == nil {
		instruments = platformobservability.Discard()
	}
	uow := repos.UoW
	if uow == nil {
		uow = unitofwork.Noop{}
	}

	members := memberobs.New(
		memberapp.NewService(repos.Members, memberapp.WithUnitOfWork(uow)),
		memberobs.WithLogger(instruments.Logger),
		memberobs.WithTracer(instruments.Tracer("internal.members.application")),
		memberobs.WithMeter(instruments.Meter("internal.members.application")),
	)

	orderOpts := []orderobs.Option{
		orderobs.WithLogger(instruments.Logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	}
	queryOpts := []orderapp.QueryOption{orderapp.WithQueryUnitOfWork(uow)}
	if settings.DefaultPageLimit > 0 {
		queryOpts = append(queryOpts, orderapp.WithDefaultPageLimit(settings.DefaultPageLimit))
	}

	return Services{
		Members: members,
		Items:   catalogapp.NewService(repos.Items, uow),
		Orders: orderobs.New(
			orderapp.NewService(repos.Orders, repos.Members, repos.Items,
				orderapp.WithUnitOfWork(uow),
				orderapp.WithIdempotencyStore(repos.Idempotency),
			),
			orderOpts...,
		),
		Queries: orderobs.NewQuery(orderapp.NewQueryService(repos.Queries, queryOpts...), orderOpts...),
	}
}
