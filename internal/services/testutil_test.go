package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/pickupkart/internal/database"
	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/utils"
)

// newTestDB opens an isolated in-memory store with the full schema and
// both roles seeded.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.EnsureRoles(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, loginName string, role models.RoleName) *models.User {
	t.Helper()

	var stored models.Role
	require.NoError(t, db.First(&stored, "name = ?", role).Error)

	hash, err := utils.HashPassword("pw1")
	require.NoError(t, err)

	user := &models.User{
		FullName:     "Test " + loginName,
		LoginName:    loginName,
		PasswordHash: hash,
		Email:        loginName + "@example.com",
		Roles:        []models.Role{stored},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{Name: name, Price: price, Quantity: 20}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestOrder(t *testing.T, db *gorm.DB, customer *models.User, product *models.Product, courier *models.Courier, status models.OrderStatus) *models.Order {
	t.Helper()

	order := &models.Order{
		CustomerID: customer.ID,
		ProductID:  product.ID,
		CourierID:  courier.ID,
		Quantity:   1,
		Amount:     product.Price + courier.PricePerKm,
		Status:     status,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func principalFor(user *models.User, role models.RoleName) *Principal {
	return &Principal{ID: user.ID, LoginName: user.LoginName, Role: role}
}

func createTestCourier(t *testing.T, db *gorm.DB, name string, pricePerKm float64, isCustom bool) *models.Courier {
	t.Helper()

	courier := &models.Courier{Name: name, PricePerKm: pricePerKm, IsCustom: isCustom}
	require.NoError(t, db.Create(courier).Error)
	return courier
}
