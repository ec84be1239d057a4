package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

func book(id int64, price, stock int) *catalogdomain.Item {
	return &catalogdomain.Item{ID: id, Kind: catalogdomain.KindBook, Name: "JPA1 BOOK", Price: price, StockQuantity: stock}
}

func TestNewOrderItem_RemovesStock(t *testing.T) {
	item := book(1, 10000, 100)

	line, err := NewOrderItem(item, item.Price, 3)
	require.NoError(t, err)
	assert.Equal(t, 97, item.StockQuantity)
	assert.Equal(t, int64(1), line.ItemID)
	assert.Equal(t, 30000, line.TotalPrice())
}

func TestNewOrderItem_NotEnoughStock(t *testing.T) {
	item := book(1, 10000, 1)

	_, err := NewOrderItem(item, item.Price, 2)
	require.ErrorIs(t, err, catalogdomain.ErrNotEnoughStock)
	assert.Equal(t, 1, item.StockQuantity)

	_, err = NewOrderItem(item, item.Price, 0)
	require.ErrorIs(t, err, ErrInvalidCount)
	_, err = NewOrderItem(&catalogdomain.Item{}, 1, 1)
	require.ErrorIs(t, err, ErrInvalidItem)
}

func TestNewOrder(t *testing.T) {
	jpa1, jpa2 := book(1, 10000, 100), book(2, 20000, 100)
	l1, err := NewOrderItem(jpa1, 10000, 1)
	require.NoError(t, err)
	l2, err := NewOrderItem(jpa2, 20000, 2)
	require.NoError(t, err)

	order, err := NewOrder(7, NewDelivery(address.New("Seoul", "1", "1111")), time.Now(), l1, l2)
	require.NoError(t, err)
	assert.Equal(t, StatusOrdered, order.Status)
	assert.Equal(t, DeliveryReady, order.Delivery.Status)
	assert.Equal(t, 50000, order.TotalPrice())
}

func TestNewOrder_Invariants(t *testing.T) {
	line := &OrderItem{ItemID: 1, OrderPrice: 1, Count: 1}

	_, err := NewOrder(0, NewDelivery(address.Address{}), time.Now(), line)
	require.ErrorIs(t, err, ErrInvalidMember)
	_, err = NewOrder(1, nil, time.Now(), line)
	require.ErrorIs(t, err, ErrMissingDelivery)
	_, err = NewOrder(1, NewDelivery(address.Address{}), time.Now())
	require.ErrorIs(t, err, ErrNoItems)
}

func TestCancel(t *testing.T) {
	order := &Order{ID: 1, MemberID: 1, Delivery: NewDelivery(address.Address{}), Status: StatusOrdered}

	require.NoError(t, order.Cancel())
	assert.Equal(t, StatusCancelled, order.Status)
	require.ErrorIs(t, order.Cancel(), ErrAlreadyCancelled)
}

func TestCancel_RejectsCompletedDelivery(t *testing.T) {
	order := &Order{ID: 1, MemberID: 1, Delivery: &Delivery{Status: DeliveryComplete}, Status: StatusOrdered}

	require.ErrorIs(t, order.Cancel(), ErrAlreadyDelivered)
	assert.Equal(t, StatusOrdered, order.Status)
}

func TestRestock(t *testing.T) {
	item := book(1, 10000, 0)
	line := &OrderItem{ID: 5, ItemID: 1, Count: 2}

	require.NoError(t, line.Restock(item))
	assert.Equal(t, 2, item.StockQuantity)
	require.ErrorIs(t, line.Restock(book(2, 1, 1)), ErrInvalidItem)
}

func TestClone_IsDeep(t *testing.T) {
	order := &Order{ID: 1, Delivery: &Delivery{ID: 2}, Items: []*OrderItem{{ID: 3, Count: 1}}}

	clone := order.Clone()
	clone.Delivery.Status = DeliveryComplete
	clone.Items[0].Count = 9

	assert.Empty(t, order.Delivery.Status)
	assert.Equal(t, 1, order.Items[0].Count)
}
