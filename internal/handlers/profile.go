package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/middleware"
	"github.com/example/pickupkart/internal/models"
)

// ProfileHandler manages the authenticated user's own profile.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated principal's profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": principal})
}

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Address  string `json:"address"`
}

// UpdateProfile updates contact fields on the authenticated user. Login
// name, email and role are not editable here.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Mobile != "" {
		updates["mobile"] = req.Mobile
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", principal.ID).Updates(updates).Error; err != nil {
		return err
	}

	var user models.User
	if err := h.db.Preload("Roles").First(&user, "id = ?", principal.ID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": user})
}
