package mapper

import (
	"time"

	ordertypes "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
)

// OrderItemDto is the item summary nested in every order DTO.
type OrderItemDto struct {
	ItemName   string `json:"itemName"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
}

// OrderDto is the order listing element of /api/v2 through /api/v6.
type OrderDto struct {
	OrderID     int64          `json:"orderId"`
	Name        string         `json:"name"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus string         `json:"orderStatus"`
	Address     *address.View  `json:"address"`
	OrderItems  []OrderItemDto `json:"orderItems"`
}

// SimpleOrderDto is an order header without items.
type SimpleOrderDto struct {
	OrderID     int64         `json:"orderId"`
	Name        string        `json:"name"`
	OrderDate   time.Time     `json:"orderDate"`
	OrderStatus string        `json:"orderStatus"`
	Address     *address.View `json:"address"`
}

// MemberRef, ItemRef and DeliveryRef are the nested shapes of the entity-style v1 listings.
type MemberRef struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name"`
	Address *address.View `json:"address"`
}

type ItemRef struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
}

type DeliveryRef struct {
	ID      int64         `json:"id"`
	Address *address.View `json:"address"`
	Status  string        `json:"status"`
}

type OrderItemEntity struct {
	ID         int64   `json:"id"`
	Item       ItemRef `json:"item"`
	OrderPrice int     `json:"orderPrice"`
	Count      int     `json:"count"`
}

// OrderEntity exposes the whole loaded graph, as /api/v1/orders does.
type OrderEntity struct {
	ID         int64             `json:"id"`
	Member     MemberRef         `json:"member"`
	OrderItems []OrderItemEntity `json:"orderItems"`
	Delivery   DeliveryRef       `json:"delivery"`
	OrderDate  time.Time         `json:"orderDate"`
	Status     string            `json:"status"`
}

// SimpleOrderEntity is OrderEntity without the item collection.
type SimpleOrderEntity struct {
	ID        int64       `json:"id"`
	Member    MemberRef   `json:"member"`
	Delivery  DeliveryRef `json:"delivery"`
	OrderDate time.Time   `json:"orderDate"`
	Status    string      `json:"status"`
}

// OrderLineDto is one line of the single-order aggregate view.
type OrderLineDto struct {
	ID         int64 `json:"id"`
	ItemID     int64 `json:"itemId"`
	OrderPrice int   `json:"orderPrice"`
	Count      int   `json:"count"`
	TotalPrice int   `json:"totalPrice"`
}

// OrderAggregate is the body of GET /api/v1/orders/{orderId}.
type OrderAggregate struct {
	OrderID     int64          `json:"orderId"`
	MemberID    int64          `json:"memberId"`
	OrderDate   time.Time      `json:"orderDate"`
	OrderStatus string         `json:"orderStatus"`
	Delivery    DeliveryRef    `json:"delivery"`
	OrderItems  []OrderLineDto `json:"orderItems"`
	TotalPrice  int            `json:"totalPrice"`
}

// PlaceOrderLine is one requested item in a multi-line placement.
type PlaceOrderLine struct {
	ItemID int64 `json:"itemId" binding:"required,gt=0"`
	Count  int   `json:"count" binding:"required,gt=0"`
}

// PlaceOrderRequest accepts either a single itemId/count pair or an items list.
type PlaceOrderRequest struct {
	MemberID int64            `json:"memberId" binding:"required,gt=0"`
	ItemID   int64            `json:"itemId" binding:"omitempty,gt=0"`
	Count    int              `json:"count" binding:"omitempty,gt=0"`
	Items    []PlaceOrderLine `json:"items" binding:"omitempty,dive"`
}

type PlaceOrderResponse struct {
	OrderID int64 `json:"orderId"`
}

type CancelOrderResponse struct {
	OrderID     int64  `json:"orderId"`
	OrderStatus string `json:"orderStatus"`
}

// ToPlaceOrderInput merges the single-item fields and the items list into one command.
func ToPlaceOrderInput(req PlaceOrderRequest, idempotencyKey string) ordertypes.PlaceOrderInput {
	input := ordertypes.PlaceOrderInput{MemberID: req.MemberID, IdempotencyKey: idempotencyKey}
	if req.ItemID != 0 {
		input.Lines = append(input.Lines, ordertypes.PlaceOrderLine{ItemID: req.ItemID, Count: req.Count})
	}
	for _, line := range req.Items {
		input.Lines = append(input.Lines, ordertypes.PlaceOrderLine{ItemID: line.ItemID, Count: line.Count})
	}
	return input
}

func FromOrderGraphs(graphs []ordertypes.OrderGraph) []OrderDto {
	result := make([]OrderDto, 0, len(graphs))
	for _, graph := range graphs {
		dto := OrderDto{
			OrderID:     graph.Order.ID,
			Name:        graph.Member.Name,
			OrderDate:   graph.Order.OrderDate,
			OrderStatus: string(graph.Order.Status),
			Address:     deliveryAddress(graph.Order),
			OrderItems:  make([]OrderItemDto, 0, len(graph.Lines)),
		}
		for _, line := range graph.Lines {
			dto.OrderItems = append(dto.OrderItems, OrderItemDto{
				ItemName:   line.Item.Name,
				OrderPrice: line.OrderItem.OrderPrice,
				Count:      line.OrderItem.Count,
			})
		}
		result = append(result, dto)
	}
	return result
}

func FromOrderQueryDtos(dtos []ordertypes.OrderQueryDto) []OrderDto {
	result := make([]OrderDto, 0, len(dtos))
	for _, d := range dtos {
		dto := OrderDto{
			OrderID:     d.OrderID,
			Name:        d.Name,
			OrderDate:   d.OrderDate,
			OrderStatus: string(d.OrderStatus),
			Address:     address.ToView(d.Address),
			OrderItems:  make([]OrderItemDto, 0, len(d.OrderItems)),
		}
		for _, item := range d.OrderItems {
			dto.OrderItems = append(dto.OrderItems, OrderItemDto{
				ItemName:   item.ItemName,
				OrderPrice: item.OrderPrice,
				Count:      item.Count,
			})
		}
		result = append(result, dto)
	}
	return result
}

func FromSimpleGraphs(graphs []ordertypes.OrderGraph) []SimpleOrderDto {
	result := make([]SimpleOrderDto, 0, len(graphs))
	for _, graph := range graphs {
		result = append(result, SimpleOrderDto{
			OrderID:     graph.Order.ID,
			Name:        graph.Member.Name,
			OrderDate:   graph.Order.OrderDate,
			OrderStatus: string(graph.Order.Status),
			Address:     deliveryAddress(graph.Order),
		})
	}
	return result
}

func FromSimpleQueryDtos(dtos []ordertypes.SimpleOrderQueryDto) []SimpleOrderDto {
	result := make([]SimpleOrderDto, 0, len(dtos))
	for _, d := range dtos {
		result = append(result, SimpleOrderDto{
			OrderID:     d.OrderID,
			Name:        d.Name,
			OrderDate:   d.OrderDate,
			OrderStatus: string(d.OrderStatus),
			Address:     address.ToView(d.Address),
		})
	}
	return result
}

func ToOrderEntities(graphs []ordertypes.OrderGraph) []OrderEntity {
	result := make([]OrderEntity, 0, len(graphs))
	for _, graph := range graphs {
		entity := OrderEntity{
			ID:         graph.Order.ID,
			Member:     memberRef(graph.Member),
			OrderItems: make([]OrderItemEntity, 0, len(graph.Lines)),
			Delivery:   deliveryRef(graph.Order.Delivery),
			OrderDate:  graph.Order.OrderDate,
			Status:     string(graph.Order.Status),
		}
		for _, line := range graph.Lines {
			entity.OrderItems = append(entity.OrderItems, OrderItemEntity{
				ID: line.OrderItem.ID,
				Item: ItemRef{
					ID:            line.Item.ID,
					Name:          line.Item.Name,
					Price:         line.Item.Price,
					StockQuantity: line.Item.StockQuantity,
				},
				OrderPrice: line.OrderItem.OrderPrice,
				Count:      line.OrderItem.Count,
			})
		}
		result = append(result, entity)
	}
	return result
}

func ToSimpleOrderEntities(graphs []ordertypes.OrderGraph) []SimpleOrderEntity {
	result := make([]SimpleOrderEntity, 0, len(graphs))
	for _, graph := range graphs {
		result = append(result, SimpleOrderEntity{
			ID:        graph.Order.ID,
			Member:    memberRef(graph.Member),
			Delivery:  deliveryRef(graph.Order.Delivery),
			OrderDate: graph.Order.OrderDate,
			Status:    string(graph.Order.Status),
		})
	}
	return result
}

// ToOrderAggregate renders a loaded order with its line and order totals.
func ToOrderAggregate(order *domain.Order) OrderAggregate {
	aggregate := OrderAggregate{
		OrderID:     order.ID,
		MemberID:    order.MemberID,
		OrderDate:   order.OrderDate,
		OrderStatus: string(order.Status),
		Delivery:    deliveryRef(order.Delivery),
		OrderItems:  make([]OrderLineDto, 0, len(order.Items)),
		TotalPrice:  order.TotalPrice(),
	}
	for _, item := range order.Items {
		aggregate.OrderItems = append(aggregate.OrderItems, OrderLineDto{
			ID:         item.ID,
			ItemID:     item.ItemID,
			OrderPrice: item.OrderPrice,
			Count:      item.Count,
			TotalPrice: item.TotalPrice(),
		})
	}
	return aggregate
}

func memberRef(member ordertypes.MemberView) MemberRef {
	return MemberRef{ID: member.ID, Name: member.Name, Address: address.ToView(member.Address)}
}

func deliveryRef(delivery *domain.Delivery) DeliveryRef {
	if delivery == nil {
		return DeliveryRef{}
	}
	return DeliveryRef{
		ID:      delivery.ID,
		Address: address.ToView(delivery.Address),
		Status:  string(delivery.Status),
	}
}

func deliveryAddress(order *domain.Order) *address.View {
	if order.Delivery == nil {
		return nil
	}
	return address.ToView(order.Delivery.Address)
}

// OrderSearchQuery binds the listing query string. Offset and limit are only
// read by the paged endpoint.
type OrderSearchQuery struct {
	MemberName string `form:"memberName"`
	Status     string `form:"status" binding:"omitempty,oneof=ORDERED CANCELLED ordered cancelled"`
	Offset     int    `form:"offset" binding:"gte=0"`
	Limit      int    `form:"limit" binding:"gte=0"`
}

func (q OrderSearchQuery) ToSearch() ordertypes.OrderSearch {
	return ordertypes.OrderSearch{MemberName: q.MemberName, Status: domain.Status(q.Status)}
}

func (q OrderSearchQuery) ToPage() ordertypes.Page {
	return ordertypes.Page{Offset: q.Offset, Limit: q.Limit}
}
