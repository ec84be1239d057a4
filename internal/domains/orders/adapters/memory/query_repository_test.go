package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	membermemory "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/memory"
	memberdomain "github.com/Apurer/go-gin-shop-api/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

func newShop(t *testing.T) (*Repository, *QueryRepository) {
	t.Helper()
	ctx := context.Background()
	orders := NewRepository()
	members := membermemory.NewRepository()
	items := catalogmemory.NewRepository()

	for _, name := range []string{"userA", "userB"} {
		member, err := memberdomain.NewMember(name, address.New("Seoul", "1", "1111"))
		require.NoError(t, err)
		member, err = members.Save(ctx, member)
		require.NoError(t, err)

		var lines []*domain.OrderItem
		for _, title := range []string{name + " BOOK1", name + " BOOK2"} {
			item, err := catalogdomain.NewItem(catalogdomain.KindBook, title, 10000, 10, catalogdomain.Attributes{})
			require.NoError(t, err)
			item, err = items.Save(ctx, item)
			require.NoError(t, err)
			line, err := domain.NewOrderItem(item, item.Price, 1)
			require.NoError(t, err)
			lines = append(lines, line)
		}
		order, err := domain.NewOrder(member.ID, domain.NewDelivery(member.Address), time.Now(), lines...)
		require.NoError(t, err)
		_, err = orders.Save(ctx, order)
		require.NoError(t, err)
	}
	return orders, NewQueryRepository(orders, members, items)
}

func TestRepository_SaveAssignsIDsAndClones(t *testing.T) {
	orders, _ := newShop(t)
	ctx := context.Background()

	order, err := orders.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), order.Delivery.ID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(3), order.Items[0].ID)
	assert.Equal(t, int64(2), order.Items[0].OrderID)

	order.Status = domain.StatusCancelled
	fresh, err := orders.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOrdered, fresh.Status)

	_, err = orders.GetByID(ctx, 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestQueryRepository_Strategies(t *testing.T) {
	orders, repo := newShop(t)
	ctx := context.Background()

	graphs, err := repo.FindGraphsWithItems(ctx, types.OrderSearch{})
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, "userB", graphs[1].Member.Name)
	require.Len(t, graphs[1].Lines, 2)
	assert.Equal(t, "userB BOOK1", graphs[1].Lines[0].Item.Name)
	assert.Empty(t, graphs[1].Order.Items)

	simple, err := repo.FindGraphsNaive(ctx, types.OrderSearch{}, types.Fetch{})
	require.NoError(t, err)
	assert.Empty(t, simple[0].Lines)

	page, err := repo.FindGraphsWithMemberDelivery(ctx, types.OrderSearch{}, types.Page{Offset: 1, Limit: 1}, types.Fetch{Items: true})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].Order.ID)

	flats, err := repo.FindOrderFlats(ctx, types.OrderSearch{MemberName: "USERA"})
	require.NoError(t, err)
	assert.Len(t, flats, 2)

	order, err := orders.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, order.Cancel())
	_, err = orders.Save(ctx, order)
	require.NoError(t, err)

	cancelled, err := repo.FindSimpleOrderDtos(ctx, types.OrderSearch{Status: domain.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "userA", cancelled[0].Name)

	dtos, err := repo.FindOrderQueryDtosBatched(ctx, types.OrderSearch{})
	require.NoError(t, err)
	assert.Len(t, dtos[0].OrderItems, 2)
}
