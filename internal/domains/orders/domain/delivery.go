package domain

import "github.com/Apurer/go-gin-shop-api/internal/shared/address"

// DeliveryStatus tracks shipment progress.
type DeliveryStatus string

const (
	DeliveryReady    DeliveryStatus = "READY"
	DeliveryComplete DeliveryStatus = "COMP"
)

// Delivery is the shipment attached one-to-one to an order.
type Delivery struct {
	ID      int64
	Address address.Address
	Status  DeliveryStatus
}

// NewDelivery creates a delivery ready to ship to addr.
func NewDelivery(addr address.Address) *Delivery {
	return &Delivery{Address: addr, Status: DeliveryReady}
}
