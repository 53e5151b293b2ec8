package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/utils"
)

// CourierHandler manages delivery tier endpoints.
type CourierHandler struct {
	db *gorm.DB
}

// NewCourierHandler constructs CourierHandler.
func NewCourierHandler(db *gorm.DB) *CourierHandler {
	return &CourierHandler{db: db}
}

// ListCouriers returns paginated couriers, optionally filtered by the
// is_custom flag.
func (h *CourierHandler) ListCouriers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Courier{})

	if custom := c.Query("is_custom"); custom != "" {
		query = query.Where("is_custom = ?", custom == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var couriers []models.Courier
	if err := query.Order("price_per_km asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&couriers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    couriers,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetCourier returns a single courier by ID.
func (h *CourierHandler) GetCourier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var courier models.Courier
	if err := h.db.First(&courier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "courier not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": courier})
}

type courierRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PricePerKm  float64 `json:"price_per_km"`
	IsCustom    bool    `json:"is_custom"`
}

func (r *courierRequest) validate() error {
	if r.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if r.PricePerKm < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price per km must not be negative")
	}
	return nil
}

// CreateCourier persists a new courier tier.
func (h *CourierHandler) CreateCourier(c *fiber.Ctx) error {
	var req courierRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	courier := models.Courier{
		Name:        req.Name,
		Description: req.Description,
		PricePerKm:  req.PricePerKm,
		IsCustom:    req.IsCustom,
	}
	if err := h.db.Create(&courier).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": courier})
}

// UpdateCourier updates an existing courier tier.
func (h *CourierHandler) UpdateCourier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var courier models.Courier
	if err := h.db.First(&courier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "courier not found")
		}
		return err
	}

	var req courierRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	courier.Name = req.Name
	courier.Description = req.Description
	courier.PricePerKm = req.PricePerKm
	courier.IsCustom = req.IsCustom
	if err := h.db.Save(&courier).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": courier})
}

// DeleteCourier removes a courier by ID.
func (h *CourierHandler) DeleteCourier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Courier{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
