package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/config"
	"github.com/example/pickupkart/internal/handlers"
	"github.com/example/pickupkart/internal/middleware"
	"github.com/example/pickupkart/internal/models"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	courierHandler := handlers.NewCourierHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db)
	userHandler := handlers.NewUserHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	authenticated := middleware.AuthMiddleware(db, cfg)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	customerOnly := middleware.RequireRole(models.RoleCustomer)

	// Catalog: reads are public, mutations are admin only.
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", authenticated, adminOnly, productHandler.CreateProduct)
	products.Put("/:id", authenticated, adminOnly, productHandler.UpdateProduct)
	products.Delete("/:id", authenticated, adminOnly, productHandler.DeleteProduct)

	couriers := api.Group("/couriers")
	couriers.Get("/", courierHandler.ListCouriers)
	couriers.Get("/:id", courierHandler.GetCourier)
	couriers.Post("/", authenticated, adminOnly, courierHandler.CreateCourier)
	couriers.Put("/:id", authenticated, adminOnly, courierHandler.UpdateCourier)
	couriers.Delete("/:id", authenticated, adminOnly, courierHandler.DeleteCourier)

	api.Get("/users", authenticated, adminOnly, userHandler.ListUsers)
	api.Get("/admin/stats", authenticated, adminOnly, adminHandler.DashboardStats)

	api.Get("/profile", authenticated, profileHandler.GetProfile)
	api.Put("/profile", authenticated, profileHandler.UpdateProfile)

	// Orders
	orders := api.Group("/orders", authenticated)
	orders.Post("/", customerOnly, orderHandler.CreateOrder)
	orders.Get("/mine", customerOnly, orderHandler.ListMyOrders)
	orders.Get("/", adminOnly, orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	// Role rules for status changes live in the order service: admins may
	// follow any permitted edge, owning customers may only cancel.
	orders.Patch("/:id/status", orderHandler.TransitionOrder)

	// Payments
	payments := api.Group("/payments", authenticated)
	// Ownership of the order is checked by the payment service.
	payments.Post("/", paymentHandler.CreatePayment)
	payments.Get("/mine", customerOnly, paymentHandler.ListMyPayments)
	payments.Get("/by-order-status/:status", adminOnly, paymentHandler.ListPaymentsByOrderStatus)
	payments.Post("/:id/confirm", adminOnly, paymentHandler.ConfirmPayment)
	payments.Post("/:id/fail", adminOnly, paymentHandler.FailPayment)
	payments.Post("/:id/refund", adminOnly, paymentHandler.RefundPayment)
}
