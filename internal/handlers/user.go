package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/utils"
)

// UserHandler exposes administrative user listings.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// ListUsers returns paginated users with their roles.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := h.db.Preload("Roles").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
