package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/config"
	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/services"
	"github.com/example/pickupkart/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: services.NewAuthService(db), cfg: cfg}
}

type registerRequest struct {
	FullName  string `json:"full_name"`
	LoginName string `json:"login_name"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// Register creates a new account and logs it in immediately.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.LoginName == "" || req.Password == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	principal, err := h.auth.Register(services.RegisterInput{
		FullName:  req.FullName,
		LoginName: req.LoginName,
		Password:  req.Password,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Address:   req.Address,
		Role:      models.RoleName(req.Role),
	})
	if err != nil {
		return mapServiceError(err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, principal.ID, principal.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    principal,
		"token":   token,
	})
}

type loginRequest struct {
	LoginName string `json:"login_name"`
	Password  string `json:"password"`
}

// Login authenticates an existing account.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	principal, err := h.auth.Login(req.LoginName, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, principal.ID, principal.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    principal,
		"token":   token,
	})
}
