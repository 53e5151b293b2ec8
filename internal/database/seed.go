package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/utils"
)

// EnsureRoles creates any missing role records. Registration depends on
// both roles existing, so this always runs at startup.
func EnsureRoles(conn *gorm.DB) error {
	for _, name := range []models.RoleName{models.RoleAdmin, models.RoleCustomer} {
		var count int64
		if err := conn.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := conn.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SeedDemoData populates demo users, catalog and delivery data when the
// store is empty. It is a no-op once any user exists.
func SeedDemoData(conn *gorm.DB) error {
	var users int64
	if err := conn.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	var adminRole, customerRole models.Role
	if err := conn.First(&adminRole, "name = ?", models.RoleAdmin).Error; err != nil {
		return err
	}
	if err := conn.First(&customerRole, "name = ?", models.RoleCustomer).Error; err != nil {
		return err
	}

	adminHash, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}
	customerHash, err := utils.HashPassword("customer")
	if err != nil {
		return err
	}

	admin := models.User{
		FullName:     "Admin User",
		LoginName:    "admin",
		PasswordHash: adminHash,
		Mobile:       "9876543210",
		Email:        "admin@pickupkart.in",
		Address:      "PickupKart HQ, Delhi",
		Roles:        []models.Role{adminRole},
	}
	customer := models.User{
		FullName:     "Sample Customer",
		LoginName:    "customer",
		PasswordHash: customerHash,
		Mobile:       "9876543211",
		Email:        "user2025@gmail.com",
		Address:      "123 Customer Street, Mumbai",
		Roles:        []models.Role{customerRole},
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	if err := conn.Create(&customer).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance gaming laptop", Price: 75000.00, Quantity: 10, ImageURL: "laptop.jpg"},
		{Name: "Smartphone", Description: "Latest Android smartphone", Price: 45000.00, Quantity: 20, ImageURL: "smartphone.jpg"},
		{Name: "Headphones", Description: "Noise cancelling wireless headphones", Price: 8500.00, Quantity: 30, ImageURL: "headphones.jpg"},
	}
	for i := range products {
		if err := conn.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	couriers := []models.Courier{
		{Name: "Express Delivery", Description: "Same day delivery", PricePerKm: 25.00},
		{Name: "Standard Delivery", Description: "2-3 days delivery", PricePerKm: 15.00},
		{Name: "Economy Delivery", Description: "5-7 days delivery", PricePerKm: 10.00},
		{Name: "Other", Description: "Custom courier service", PricePerKm: 20.00, IsCustom: true},
	}
	for i := range couriers {
		if err := conn.Create(&couriers[i]).Error; err != nil {
			return err
		}
	}

	// One delivered order with its completed payment, so the payment
	// history pages have something to show on a fresh install.
	smartphone := products[1]
	express := couriers[0]
	delivered := time.Now().AddDate(0, 0, -30)

	order := models.Order{
		CustomerID:       customer.ID,
		ProductID:        smartphone.ID,
		CourierID:        express.ID,
		Quantity:         1,
		Amount:           smartphone.Price + express.PricePerKm*10,
		Status:           models.OrderDelivered,
		ProductImagePath: smartphone.ImageURL,
		OrderDate:        delivered,
		DeliveryDate:     &delivered,
	}
	if err := conn.Create(&order).Error; err != nil {
		return err
	}

	payment := models.Payment{
		OrderID:       order.ID,
		PaymentMode:   models.PaymentModeCard,
		PaymentAmount: order.Amount,
		Status:        models.PaymentCompleted,
		PaymentDate:   delivered,
		TransactionID: "TXN000000001",
	}
	if err := conn.Create(&payment).Error; err != nil {
		return err
	}

	log.Println("demo data seeded")
	return nil
}
