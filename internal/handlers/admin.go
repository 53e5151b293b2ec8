package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
)

// AdminHandler manages admin-only dashboard endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	// Revenue counts completed payments; refunded and failed ones are out.
	var totalRevenue float64
	if err := h.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var pendingPayments int64
	if err := h.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPending).
		Count(&pendingPayments).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":      totalUsers,
			"total_orders":     totalOrders,
			"orders_by_status": ordersByStatus,
			"total_revenue":    totalRevenue,
			"pending_payments": pendingPayments,
		},
	})
}
