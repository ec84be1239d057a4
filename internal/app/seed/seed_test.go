package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-api/internal/app/bootstrap"
	"github.com/Apurer/go-gin-shop-api/internal/app/seed"
	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/platform/postgres/dbtest"
)

func TestLoader_LoadsSampleOrders(t *testing.T) {
	ctx := context.Background()
	services := bootstrap.NewServices(bootstrap.Memory(), nil, bootstrap.Settings{})
	loader := seed.NewLoader(services.Members, services.Items, services.Orders, nil)

	require.NoError(t, loader.Load(ctx))

	dtos, err := services.Queries.OrderDtosFlat(ctx, ordertypes.OrderSearch{})
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "userA", dtos[0].Name)
	assert.Equal(t, "Seoul", dtos[0].Address.City)
	require.Len(t, dtos[0].OrderItems, 2)
	assert.Equal(t, "JPA2 BOOK", dtos[0].OrderItems[1].ItemName)
	assert.Equal(t, 2, dtos[0].OrderItems[1].Count)
	assert.Equal(t, "userB", dtos[1].Name)

	items, err := services.Items.FindItems(ctx)
	require.NoError(t, err)
	stock := make([]int, 0, len(items))
	for _, item := range items {
		stock = append(stock, item.StockQuantity)
	}
	assert.Equal(t, []int{99, 98, 197, 296}, stock)
}

func TestLoader_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	services := bootstrap.NewServices(bootstrap.Postgres(dbtest.Open(t), 10), nil, bootstrap.Settings{})
	loader := seed.NewLoader(services.Members, services.Items, services.Orders, nil)

	require.NoError(t, loader.Load(ctx))
	require.NoError(t, loader.Load(ctx))

	members, err := services.Members.FindMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	graphs, err := services.Queries.OrdersPaged(ctx, ordertypes.OrderSearch{}, ordertypes.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, graphs, 2)

	items, err := services.Items.FindItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}
