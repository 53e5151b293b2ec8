package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/middleware"
	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/services"
)

// PaymentHandler manages payment endpoints.
type PaymentHandler struct {
	payments *services.PaymentService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{payments: services.NewPaymentService(db)}
}

type createPaymentRequest struct {
	OrderID     string `json:"order_id"`
	PaymentMode string `json:"payment_mode"`
}

// CreatePayment records a pending payment for an order.
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	payment, err := h.payments.Create(orderID, models.PaymentMode(req.PaymentMode), principal)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

// ConfirmPayment marks a pending payment as completed.
func (h *PaymentHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	payment, err := h.payments.Confirm(id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// FailPayment marks a pending payment as failed.
func (h *PaymentHandler) FailPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	payment, err := h.payments.Fail(id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// RefundPayment reverses a completed payment.
func (h *PaymentHandler) RefundPayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	payment, err := h.payments.Refund(id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// ListMyPayments returns payments for the authenticated customer's orders.
func (h *PaymentHandler) ListMyPayments(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	payments, err := h.payments.ListByCustomer(principal.ID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payments})
}

// ListPaymentsByOrderStatus returns payments whose order is in the given
// status.
func (h *PaymentHandler) ListPaymentsByOrderStatus(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Params("status"))
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	payments, err := h.payments.ListByOrderStatus(status)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payments})
}
