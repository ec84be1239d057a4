package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

func sampleGraph() ordertypes.OrderGraph {
	return ordertypes.OrderGraph{
		Order: &domain.Order{
			ID:        4,
			MemberID:  1,
			Delivery:  &domain.Delivery{ID: 5, Address: address.New("Seoul", "1", "1111"), Status: domain.DeliveryReady},
			OrderDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Status:    domain.StatusOrdered,
		},
		Member: ordertypes.MemberView{ID: 1, Name: "userA"},
		Lines: []ordertypes.OrderLine{{
			OrderItem: &domain.OrderItem{ID: 6, OrderID: 4, ItemID: 2, OrderPrice: 10000, Count: 1},
			Item:      ordertypes.ItemView{ID: 2, Name: "JPA1 BOOK", Price: 10000, StockQuantity: 99},
		}},
	}
}

func TestFromOrderGraphs_JSONShape(t *testing.T) {
	body, err := json.Marshal(FromOrderGraphs([]ordertypes.OrderGraph{sampleGraph()}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"orderId": 4,
		"name": "userA",
		"orderDate": "2024-03-01T12:00:00Z",
		"orderStatus": "ORDERED",
		"address": {"city": "Seoul", "street": "1", "zipcode": "1111"},
		"orderItems": [{"itemName": "JPA1 BOOK", "orderPrice": 10000, "count": 1}]
	}]`, string(body))
}

func TestToOrderEntities_ExposesGraph(t *testing.T) {
	entities := ToOrderEntities([]ordertypes.OrderGraph{sampleGraph()})
	require.Len(t, entities, 1)
	assert.Nil(t, entities[0].Member.Address)
	assert.Equal(t, "READY", entities[0].Delivery.Status)
	require.Len(t, entities[0].OrderItems, 1)
	assert.Equal(t, 99, entities[0].OrderItems[0].Item.StockQuantity)

	simple := ToSimpleOrderEntities([]ordertypes.OrderGraph{sampleGraph()})
	assert.Equal(t, int64(5), simple[0].Delivery.ID)
}

func TestToPlaceOrderInput_MergesLines(t *testing.T) {
	input := ToPlaceOrderInput(PlaceOrderRequest{
		MemberID: 1,
		ItemID:   2,
		Count:    3,
		Items:    []PlaceOrderLine{{ItemID: 4, Count: 5}},
	}, "key-1")

	assert.Equal(t, int64(1), input.MemberID)
	assert.Equal(t, "key-1", input.IdempotencyKey)
	assert.Equal(t, []ordertypes.PlaceOrderLine{{ItemID: 2, Count: 3}, {ItemID: 4, Count: 5}}, input.Lines)
}

func TestToOrderAggregate_Totals(t *testing.T) {
	order := &domain.Order{
		ID:       4,
		MemberID: 1,
		Delivery: &domain.Delivery{ID: 5, Status: domain.DeliveryReady},
		Items: []*domain.OrderItem{
			{ID: 1, ItemID: 2, OrderPrice: 10000, Count: 1},
			{ID: 2, ItemID: 3, OrderPrice: 20000, Count: 2},
		},
		Status: domain.StatusOrdered,
	}
	aggregate := ToOrderAggregate(order)
	assert.Equal(t, 50000, aggregate.TotalPrice)
	assert.Equal(t, 40000, aggregate.OrderItems[1].TotalPrice)
	assert.Nil(t, aggregate.Delivery.Address)
}
