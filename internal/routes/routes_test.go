package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/pickupkart/internal/config"
	"github.com/example/pickupkart/internal/database"
	"github.com/example/pickupkart/internal/models"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.EnsureRoles(db))

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	app := fiber.New()
	Register(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var payload map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return res.StatusCode, payload
}

func registerAccount(t *testing.T, app *fiber.App, loginName, password, role string) string {
	t.Helper()

	status, payload := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"full_name":  "Test " + loginName,
		"login_name": loginName,
		"password":   password,
		"email":      loginName + "@example.com",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestCheckoutScenario(t *testing.T) {
	app, db := newTestApp(t)

	product := models.Product{Name: "Smartphone", Price: 45000.00, Quantity: 20}
	require.NoError(t, db.Create(&product).Error)
	courier := models.Courier{Name: "Express Delivery", PricePerKm: 25.00}
	require.NoError(t, db.Create(&courier).Error)

	aliceToken := registerAccount(t, app, "alice", "pw1", "CUSTOMER")
	adminToken := registerAccount(t, app, "root", "pw2", "ADMIN")

	// Login with the same credentials succeeds after registration.
	status, payload := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"login_name": "alice",
		"password":   "pw1",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, payload["token"])

	// Place an order; the amount is price + price-per-km at unit distance.
	status, payload = doJSON(t, app, fiber.MethodPost, "/api/orders", aliceToken, fiber.Map{
		"product_id": product.ID.String(),
		"courier_id": courier.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusCreated, status)
	order := payload["data"].(map[string]any)
	assert.Equal(t, 45025.00, order["amount"])
	assert.Equal(t, "PENDING", order["status"])
	orderID := order["id"].(string)

	// Pay by card; the payment snapshots the order amount.
	status, payload = doJSON(t, app, fiber.MethodPost, "/api/payments", aliceToken, fiber.Map{
		"order_id":     orderID,
		"payment_mode": "CARD",
	})
	require.Equal(t, http.StatusCreated, status)
	payment := payload["data"].(map[string]any)
	assert.Equal(t, 45025.00, payment["payment_amount"])
	assert.Equal(t, "PENDING", payment["status"])
	paymentID := payment["id"].(string)

	// Only admins confirm payments.
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/payments/"+paymentID+"/confirm", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, payload = doJSON(t, app, fiber.MethodPost, "/api/payments/"+paymentID+"/confirm", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "COMPLETED", payload["data"].(map[string]any)["status"])

	// A second payment against the same order is rejected.
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/payments", aliceToken, fiber.Map{
		"order_id":     orderID,
		"payment_mode": "UPI",
	})
	assert.Equal(t, http.StatusConflict, status)

	// The order shows up in the customer's history.
	status, payload = doJSON(t, app, fiber.MethodGet, "/api/orders/mine", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, payload["data"].([]any), 1)

	status, payload = doJSON(t, app, fiber.MethodGet, "/api/payments/mine", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, payload["data"].([]any), 1)
}

func TestAuthGating(t *testing.T) {
	app, _ := newTestApp(t)

	customerToken := registerAccount(t, app, "alice", "pw1", "CUSTOMER")
	adminToken := registerAccount(t, app, "root", "pw2", "ADMIN")

	// No token at all.
	status, _ := doJSON(t, app, fiber.MethodGet, "/api/orders/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Garbage token.
	status, _ = doJSON(t, app, fiber.MethodGet, "/api/orders/mine", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Customer on an admin-only surface.
	status, _ = doJSON(t, app, fiber.MethodGet, "/api/users", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Admin on a customer-only surface.
	status, _ = doJSON(t, app, fiber.MethodGet, "/api/orders/mine", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestDuplicateRegistrationOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	registerAccount(t, app, "alice", "pw1", "CUSTOMER")

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"full_name":  "Another Alice",
		"login_name": "alice",
		"password":   "different",
		"email":      "elsewhere@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOrderStatusTransitionOverHTTP(t *testing.T) {
	app, db := newTestApp(t)

	product := models.Product{Name: "Laptop", Price: 75000.00, Quantity: 5}
	require.NoError(t, db.Create(&product).Error)
	courier := models.Courier{Name: "Standard Delivery", PricePerKm: 15.00}
	require.NoError(t, db.Create(&courier).Error)

	aliceToken := registerAccount(t, app, "alice", "pw1", "CUSTOMER")
	adminToken := registerAccount(t, app, "root", "pw2", "ADMIN")

	status, payload := doJSON(t, app, fiber.MethodPost, "/api/orders", aliceToken, fiber.Map{
		"product_id": product.ID.String(),
		"courier_id": courier.ID.String(),
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := payload["data"].(map[string]any)["id"].(string)

	// PENDING -> DELIVERED is not an edge of the state machine.
	status, _ = doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", adminToken, fiber.Map{
		"status": "DELIVERED",
	})
	assert.Equal(t, http.StatusConflict, status)

	for _, next := range []string{"CONFIRMED", "SHIPPED", "DELIVERED"} {
		status, payload = doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", adminToken, fiber.Map{
			"status": next,
		})
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, next, payload["data"].(map[string]any)["status"])
	}

	// DELIVERED is terminal.
	status, _ = doJSON(t, app, fiber.MethodPatch, "/api/orders/"+orderID+"/status", adminToken, fiber.Map{
		"status": "CANCELLED",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestStoreOutageOverHTTP(t *testing.T) {
	app, db := newTestApp(t)

	aliceToken := registerAccount(t, app, "alice", "pw1", "CUSTOMER")

	// Tear down the store; authenticated requests must answer 503, not
	// 401 or 500, and must not echo the driver failure.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	status, payload := doJSON(t, app, fiber.MethodGet, "/api/orders/mine", aliceToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	if message, ok := payload["message"].(string); ok {
		assert.NotContains(t, message, "sql")
	}
}
