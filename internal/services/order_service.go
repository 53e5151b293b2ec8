package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
)

// OrderService owns order state transitions and the pricing rule applied
// at creation time.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService constructs an OrderService.
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrderInput carries the fields required to place an order.
type CreateOrderInput struct {
	ProductID         uuid.UUID
	CourierID         uuid.UUID
	Quantity          int
	CustomCourierName string
	// DistanceKm scales the courier cost. The caller supplies it; a unit
	// distance is assumed when left at zero.
	DistanceKm float64
}

// Create validates references, computes the amount and persists a PENDING
// order. Amount = product price x quantity + courier price/km x distance.
func (s *OrderService) Create(customerID uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	db, cancel := withTimeout(s.db)
	defer cancel()

	var customer models.User
	if err := db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCustomer
		}
		return nil, storeError("look up customer", err)
	}

	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, storeError("look up product", err)
	}

	var courier models.Courier
	if err := db.First(&courier, "id = ?", input.CourierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCourier
		}
		return nil, storeError("look up courier", err)
	}

	if courier.IsCustom && strings.TrimSpace(input.CustomCourierName) == "" {
		return nil, ErrCustomNameRequired
	}

	distance := input.DistanceKm
	if distance <= 0 {
		distance = 1
	}

	order := models.Order{
		CustomerID:        customerID,
		ProductID:         product.ID,
		CourierID:         courier.ID,
		Quantity:          input.Quantity,
		Amount:            product.Price*float64(input.Quantity) + courier.PricePerKm*distance,
		Status:            models.OrderPending,
		CustomCourierName: strings.TrimSpace(input.CustomCourierName),
		ProductImagePath:  product.ImageURL,
	}

	if err := db.Create(&order).Error; err != nil {
		return nil, storeError("create order", err)
	}

	order.Customer = &customer
	order.Product = &product
	order.Courier = &courier
	return &order, nil
}

// Transition moves an order along the status machine. Admins may follow
// any permitted edge; customers may only cancel their own PENDING or
// CONFIRMED orders. The write is conditioned on the previously read
// status so concurrent transitions lose cleanly.
func (s *OrderService) Transition(orderID uuid.UUID, newStatus models.OrderStatus, actor *Principal) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrIllegalTransition
	}

	db, cancel := withTimeout(s.db)
	defer cancel()

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storeError("look up order", err)
	}

	if !actor.IsAdmin() {
		if order.CustomerID != actor.ID || newStatus != models.OrderCancelled {
			return nil, ErrForbidden
		}
	}

	if !order.Status.CanTransition(newStatus) {
		return nil, ErrIllegalTransition
	}

	updates := map[string]any{"status": newStatus}
	if newStatus == models.OrderDelivered && order.DeliveryDate == nil {
		now := time.Now()
		updates["delivery_date"] = &now
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, storeError("update order status", res.Error)
	}
	if res.RowsAffected == 0 {
		// Someone moved the order first; the edge we validated no longer
		// starts from the current status.
		return nil, ErrIllegalTransition
	}

	if err := db.Preload("Product").Preload("Courier").First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, storeError("reload order", err)
	}
	return &order, nil
}

// Get returns a single order. Customers can only read their own orders.
func (s *OrderService) Get(orderID uuid.UUID, actor *Principal) (*models.Order, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var order models.Order
	err := db.Preload("Product").Preload("Courier").Preload("Customer").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storeError("look up order", err)
	}

	if !actor.IsAdmin() && order.CustomerID != actor.ID {
		return nil, ErrForbidden
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders, most recent first.
func (s *OrderService) ListByCustomer(customerID uuid.UUID) ([]models.Order, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var orders []models.Order
	err := db.Preload("Product").Preload("Courier").
		Where("customer_id = ?", customerID).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, storeError("list orders", err)
	}
	return orders, nil
}

// List returns all orders, most recent first. Admin use only; the caller
// enforces the role.
func (s *OrderService) List() ([]models.Order, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var orders []models.Order
	err := db.Preload("Product").Preload("Courier").Preload("Customer").
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, storeError("list orders", err)
	}
	return orders, nil
}
