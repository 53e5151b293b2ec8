package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/middleware"
	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/services"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{orders: services.NewOrderService(db)}
}

type createOrderRequest struct {
	ProductID         string  `json:"product_id"`
	CourierID         string  `json:"courier_id"`
	Quantity          int     `json:"quantity"`
	CustomCourierName string  `json:"custom_courier_name"`
	DistanceKm        float64 `json:"distance_km"`
}

// CreateOrder allows authenticated customers to place an order.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}
	courierID, err := uuid.Parse(req.CourierID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid courier id")
	}

	order, err := h.orders.Create(principal.ID, services.CreateOrderInput{
		ProductID:         productID,
		CourierID:         courierID,
		Quantity:          req.Quantity,
		CustomCourierName: req.CustomCourierName,
		DistanceKm:        req.DistanceKm,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

type transitionRequest struct {
	Status string `json:"status"`
}

// TransitionOrder moves an order along the status machine. Admins may
// follow any permitted edge; customers may only cancel their own orders.
func (h *OrderHandler) TransitionOrder(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	order, err := h.orders.Transition(id, status, principal)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ListMyOrders returns the authenticated customer's orders.
func (h *OrderHandler) ListMyOrders(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.orders.ListByCustomer(principal.ID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// ListOrders returns all orders for administrators.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.List()
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// GetOrder returns a single order; customers can only read their own.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	order, err := h.orders.Get(id, principal)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
