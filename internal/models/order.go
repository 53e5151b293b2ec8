package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// orderTransitions lists the permitted status edges. DELIVERED and
// CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

// CanTransition reports whether the edge from -> to is permitted.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Order links a customer to a product delivered by a courier. Amount is
// computed once at creation and never changes afterwards.
type Order struct {
	BaseModel
	CustomerID        uuid.UUID   `gorm:"type:uuid;index" json:"customer_id"`
	Customer          *User       `json:"customer,omitempty"`
	ProductID         uuid.UUID   `gorm:"type:uuid;index" json:"product_id"`
	Product           *Product    `json:"product,omitempty"`
	CourierID         uuid.UUID   `gorm:"type:uuid;index" json:"courier_id"`
	Courier           *Courier    `json:"courier,omitempty"`
	Quantity          int         `json:"quantity"`
	Amount            float64     `json:"amount"`
	Status            OrderStatus `json:"status"`
	CustomCourierName string      `json:"custom_courier_name"`
	ProductImagePath  string      `json:"product_image_path"`
	OrderDate         time.Time   `json:"order_date"`
	DeliveryDate      *time.Time  `json:"delivery_date"`
}

// BeforeCreate defaults OrderDate to the creation time; it is never null
// after creation.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if err := o.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	return nil
}
