package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogpg "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	memberpg "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/persistence/postgres"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres/dbtest"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

type seeded struct {
	db       *gorm.DB
	orders   *Repository
	service  *application.Service
	orderIDs []int64
}

func seedShop(t *testing.T) seeded {
	t.Helper()
	return seedShopOn(t, dbtest.Open(t))
}

// seedShopOn places one two-line order for userA and one for userB.
func seedShopOn(t *testing.T, db *gorm.DB) seeded {
	t.Helper()
	ctx := context.Background()
	members := memberpg.NewRepository(db)
	items := catalogpg.NewRepository(db)
	orders := NewRepository(db)
	svc := application.NewService(orders, members, items,
		application.WithUnitOfWork(platformpostgres.NewTransactor(db)),
		application.WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)

	type book struct {
		name  string
		price int
		count int
	}
	plan := []struct {
		member string
		addr   address.Address
		books  []book
	}{
		{"userA", address.New("Seoul", "1", "1111"), []book{{"JPA1 BOOK", 10000, 1}, {"JPA2 BOOK", 20000, 2}}},
		{"userB", address.New("Busan", "2", "2222"), []book{{"SPRING1 BOOK", 20000, 3}, {"SPRING2 BOOK", 40000, 4}}},
	}
	out := seeded{db: db, orders: orders, service: svc}
	for _, p := range plan {
		member, err := memberdomain.NewMember(p.member, p.addr)
		require.NoError(t, err)
		member, err = members.Save(ctx, member)
		require.NoError(t, err)

		input := types.PlaceOrderInput{MemberID: member.ID}
		for _, b := range p.books {
			item, err := catalogdomain.NewItem(catalogdomain.KindBook, b.name, b.price, 100, catalogdomain.Attributes{Author: "kim"})
			require.NoError(t, err)
			item, err = items.Save(ctx, item)
			require.NoError(t, err)
			input.Lines = append(input.Lines, types.PlaceOrderLine{ItemID: item.ID, Count: b.count})
		}
		id, err := svc.PlaceOrder(ctx, input)
		require.NoError(t, err)
		out.orderIDs = append(out.orderIDs, id)
	}
	return out
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()

	order, err := shop.orders.GetByID(ctx, shop.orderIDs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOrdered, order.Status)
	assert.Equal(t, domain.DeliveryReady, order.Delivery.Status)
	assert.Equal(t, address.New("Seoul", "1", "1111"), order.Delivery.Address)
	require.Len(t, order.Items, 2)
	assert.Less(t, order.Items[0].ID, order.Items[1].ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.Equal(t, 10000*1+20000*2, order.TotalPrice())

	order.Delivery.Status = domain.DeliveryComplete
	updated, err := shop.orders.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryComplete, updated.Delivery.Status)
	assert.Len(t, updated.Items, 2)
}

func TestRepository_NotFound(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()

	_, err := shop.orders.GetByID(ctx, 999)
	require.ErrorIs(t, err, ports.ErrNotFound)

	order, err := shop.orders.GetByID(ctx, shop.orderIDs[0])
	require.NoError(t, err)
	order.ID = 999
	_, err = shop.orders.Save(ctx, order)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CancelThroughServicePersistsStatus(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()

	cancelled, err := shop.service.CancelOrder(ctx, shop.orderIDs[1])
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	var stock []int
	require.NoError(t, shop.db.Table("items").Order("id").Pluck("stock_quantity", &stock).Error)
	assert.Equal(t, []int{99, 98, 100, 100}, stock)
}

// summary reduces a listing to comparable "order -> name [item:price:count ...]" lines.
func summarizeGraphs(graphs []types.OrderGraph) []string {
	var out []string
	for _, g := range graphs {
		line := fmt.Sprintf("%d %s %s", g.Order.ID, g.Member.Name, g.Order.Delivery.Address.City)
		for _, l := range g.Lines {
			line += fmt.Sprintf(" %s:%d:%d", l.Item.Name, l.OrderItem.OrderPrice, l.OrderItem.Count)
		}
		out = append(out, line)
	}
	return out
}

func summarizeDtos(dtos []types.OrderQueryDto) []string {
	var out []string
	for _, d := range dtos {
		line := fmt.Sprintf("%d %s %s", d.OrderID, d.Name, d.Address.City)
		for _, item := range d.OrderItems {
			line += fmt.Sprintf(" %s:%d:%d", item.ItemName, item.OrderPrice, item.Count)
		}
		out = append(out, line)
	}
	return out
}

func TestQueryRepository_StrategiesAgree(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()
	repo := NewQueryRepository(shop.db, WithBatchFetchSize(1))
	search := types.OrderSearch{}

	want := []string{
		fmt.Sprintf("%d userA Seoul JPA1 BOOK:10000:1 JPA2 BOOK:20000:2", shop.orderIDs[0]),
		fmt.Sprintf("%d userB Busan SPRING1 BOOK:20000:3 SPRING2 BOOK:40000:4", shop.orderIDs[1]),
	}

	naive, err := repo.FindGraphsNaive(ctx, search, types.Fetch{Items: true})
	require.NoError(t, err)
	assert.Equal(t, want, summarizeGraphs(naive))

	fetchJoin, err := repo.FindGraphsWithItems(ctx, search)
	require.NoError(t, err)
	assert.Equal(t, want, summarizeGraphs(fetchJoin))

	paged, err := repo.FindGraphsWithMemberDelivery(ctx, search, types.Page{Limit: 100}, types.Fetch{Items: true})
	require.NoError(t, err)
	assert.Equal(t, want, summarizeGraphs(paged))

	dtos, err := repo.FindOrderQueryDtos(ctx, search)
	require.NoError(t, err)
	assert.Equal(t, want, summarizeDtos(dtos))

	batched, err := repo.FindOrderQueryDtosBatched(ctx, search)
	require.NoError(t, err)
	assert.Equal(t, want, summarizeDtos(batched))

	flats, err := repo.FindOrderFlats(ctx, search)
	require.NoError(t, err)
	require.Len(t, flats, 4)
	assert.Equal(t, want, summarizeDtos(application.GroupFlats(flats)))

	assert.Equal(t, naive[0].Order.OrderDate.Unix(), flats[0].OrderDate.Unix())
	assert.Equal(t, 99, naive[0].Lines[0].Item.StockQuantity)
	assert.Equal(t, "Seoul", naive[0].Member.Address.City)
}

func TestQueryRepository_SimpleStrategiesSkipItems(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()
	repo := NewQueryRepository(shop.db)

	naive, err := repo.FindGraphsNaive(ctx, types.OrderSearch{}, types.Fetch{})
	require.NoError(t, err)
	require.Len(t, naive, 2)
	assert.Empty(t, naive[0].Lines)
	assert.Equal(t, domain.DeliveryReady, naive[0].Order.Delivery.Status)

	joined, err := repo.FindGraphsWithMemberDelivery(ctx, types.OrderSearch{}, types.Page{}, types.Fetch{})
	require.NoError(t, err)
	assert.Equal(t, summarizeGraphs(naive), summarizeGraphs(joined))

	simple, err := repo.FindSimpleOrderDtos(ctx, types.OrderSearch{})
	require.NoError(t, err)
	require.Len(t, simple, 2)
	assert.Equal(t, "userB", simple[1].Name)
	assert.Equal(t, address.New("Busan", "2", "2222"), simple[1].Address)
	assert.Equal(t, domain.StatusOrdered, simple[1].OrderStatus)
}

func TestQueryRepository_Paging(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()
	repo := NewQueryRepository(shop.db)

	first, err := repo.FindGraphsWithMemberDelivery(ctx, types.OrderSearch{}, types.Page{Offset: 0, Limit: 1}, types.Fetch{Items: true})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, shop.orderIDs[0], first[0].Order.ID)
	assert.Len(t, first[0].Lines, 2)

	second, err := repo.FindGraphsWithMemberDelivery(ctx, types.OrderSearch{}, types.Page{Offset: 1, Limit: 1}, types.Fetch{Items: true})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, shop.orderIDs[1], second[0].Order.ID)
	assert.Equal(t, "SPRING1 BOOK", second[0].Lines[0].Item.Name)

	none, err := repo.FindGraphsWithMemberDelivery(ctx, types.OrderSearch{}, types.Page{Offset: 5, Limit: 1}, types.Fetch{Items: true})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQueryRepository_Search(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()
	repo := NewQueryRepository(shop.db)

	byName, err := repo.FindOrderQueryDtos(ctx, types.OrderSearch{MemberName: "usera"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "userA", byName[0].Name)

	wildcard, err := repo.FindSimpleOrderDtos(ctx, types.OrderSearch{MemberName: "user%"})
	require.NoError(t, err)
	assert.Empty(t, wildcard)

	cancelled, err := repo.FindOrderFlats(ctx, types.OrderSearch{Status: domain.StatusCancelled})
	require.NoError(t, err)
	assert.Empty(t, cancelled)

	_, err = shop.service.CancelOrder(ctx, shop.orderIDs[0])
	require.NoError(t, err)

	cancelledGraphs, err := repo.FindGraphsWithItems(ctx, types.OrderSearch{Status: domain.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelledGraphs, 1)
	assert.Equal(t, shop.orderIDs[0], cancelledGraphs[0].Order.ID)
	assert.Equal(t, domain.StatusCancelled, cancelledGraphs[0].Order.Status)
}

func TestQueryRepository_JoinedRowsCarryHeaders(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()
	repo := NewQueryRepository(shop.db)

	naive, err := repo.FindGraphsNaive(ctx, types.OrderSearch{}, types.Fetch{Items: true})
	require.NoError(t, err)
	require.Len(t, naive, 2)

	fetchJoin, err := repo.FindGraphsWithItems(ctx, types.OrderSearch{})
	require.NoError(t, err)
	require.Len(t, fetchJoin, 2)
	for i, graph := range fetchJoin {
		assert.Equal(t, shop.orderIDs[i], graph.Order.ID)
		assert.NotZero(t, graph.Order.MemberID)
		assert.Equal(t, naive[i].Order.Delivery.ID, graph.Order.Delivery.ID)
		assert.Equal(t, naive[i].Member.Address, graph.Member.Address)
		assert.Equal(t, naive[i].Order.OrderDate.Unix(), graph.Order.OrderDate.Unix())
		require.Len(t, graph.Lines, 2)
		assert.Equal(t, graph.Order.ID, graph.Lines[0].OrderItem.OrderID)
	}

	flats, err := repo.FindOrderFlats(ctx, types.OrderSearch{})
	require.NoError(t, err)
	require.Len(t, flats, 4)
	assert.Equal(t, []int64{shop.orderIDs[0], shop.orderIDs[0], shop.orderIDs[1], shop.orderIDs[1]},
		[]int64{flats[0].OrderID, flats[1].OrderID, flats[2].OrderID, flats[3].OrderID})
	assert.Equal(t, "userB", flats[3].Name)
	assert.Equal(t, address.New("Busan", "2", "2222"), flats[3].Address)
	assert.False(t, flats[0].OrderDate.IsZero())
}

func TestQueryRepository_SearchIgnoresCase(t *testing.T) {
	shop := seedShop(t)
	ctx := context.Background()
	repo := NewQueryRepository(shop.db)

	for _, name := range []string{"usera", "USERA", "UsErA"} {
		found, err := repo.FindSimpleOrderDtos(ctx, types.OrderSearch{MemberName: name})
		require.NoError(t, err, name)
		require.Len(t, found, 1, name)
		assert.Equal(t, shop.orderIDs[0], found[0].OrderID, name)
	}
}
