package domain

import (
	"errors"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusOrdered   Status = "ORDERED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrInvalidMember    = errors.New("order member id must be greater than zero")
	ErrMissingDelivery  = errors.New("order requires a delivery")
	ErrNoItems          = errors.New("order requires at least one item")
	ErrInvalidItem      = errors.New("order item must reference a persisted catalog item")
	ErrInvalidCount     = errors.New("order item count must be greater than zero")
	ErrInvalidPrice     = errors.New("order item price must not be negative")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrAlreadyDelivered = errors.New("order has already been delivered and cannot be cancelled")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
)

// Order is the purchase aggregate: one member, one delivery, one or more items.
type Order struct {
	ID        int64
	MemberID  int64
	Delivery  *Delivery
	Items     []*OrderItem
	OrderDate time.Time
	Status    Status
}

// NewOrder validates and constructs an order in the ORDERED state.
func NewOrder(memberID int64, delivery *Delivery, orderDate time.Time, items ...*OrderItem) (*Order, error) {
	order := &Order{
		MemberID:  memberID,
		Delivery:  delivery,
		Items:     items,
		OrderDate: orderDate,
		Status:    StatusOrdered,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.MemberID <= 0 {
		return ErrInvalidMember
	}
	if o.Delivery == nil {
		return ErrMissingDelivery
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item == nil || item.Count <= 0 {
			return ErrInvalidCount
		}
	}
	switch o.Status {
	case StatusOrdered, StatusCancelled:
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Cancel moves the order to CANCELLED. The caller restocks each item.
func (o *Order) Cancel() error {
	if o.Delivery != nil && o.Delivery.Status == DeliveryComplete {
		return ErrAlreadyDelivered
	}
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.Status = StatusCancelled
	return nil
}

// TotalPrice sums every line.
func (o *Order) TotalPrice() int {
	total := 0
	for _, item := range o.Items {
		total += item.TotalPrice()
	}
	return total
}

// Clone returns a deep copy so adapters never share mutable state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Delivery != nil {
		delivery := *o.Delivery
		clone.Delivery = &delivery
	}
	clone.Items = make([]*OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		line := *item
		clone.Items = append(clone.Items, &line)
	}
	return &clone
}
