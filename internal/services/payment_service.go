package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/models"
)

// txnIDAttempts bounds regeneration when a generated transaction ID
// collides with an existing one.
const txnIDAttempts = 5

// PaymentService keeps payments consistent with their owning order.
type PaymentService struct {
	db               *gorm.DB
	newTransactionID func() (string, error)
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db, newTransactionID: generateTransactionID}
}

// Create records a PENDING payment for an order, snapshotting the order
// amount. At most one payment may exist per order; the unique index on
// order_id backs that check against concurrent creates.
func (s *PaymentService) Create(orderID uuid.UUID, mode models.PaymentMode, actor *Principal) (*models.Payment, error) {
	if !mode.Valid() {
		return nil, ErrInvalidPaymentMode
	}

	db, cancel := withTimeout(s.db)
	defer cancel()

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, storeError("look up order", err)
	}

	if !actor.IsAdmin() && order.CustomerID != actor.ID {
		return nil, ErrForbidden
	}

	if order.Status == models.OrderCancelled {
		return nil, ErrOrderNotPayable
	}

	var existing int64
	if err := db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&existing).Error; err != nil {
		return nil, storeError("check existing payment", err)
	}
	if existing > 0 {
		return nil, ErrPaymentExists
	}

	for attempt := 0; attempt < txnIDAttempts; attempt++ {
		txnID, err := s.newTransactionID()
		if err != nil {
			return nil, fmt.Errorf("generate transaction id: %w", err)
		}

		payment := models.Payment{
			OrderID:       order.ID,
			PaymentMode:   mode,
			PaymentAmount: order.Amount,
			Status:        models.PaymentPending,
			TransactionID: txnID,
		}

		err = db.Create(&payment).Error
		if err == nil {
			payment.Order = &order
			return &payment, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, storeError("create payment", err)
		}

		// A duplicate key is either a racing payment for the same order
		// or a transaction ID collision; only the latter is retryable.
		if err := db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&existing).Error; err != nil {
			return nil, storeError("check existing payment", err)
		}
		if existing > 0 {
			return nil, ErrPaymentExists
		}
	}

	return nil, fmt.Errorf("create payment: transaction id collisions exhausted %d attempts", txnIDAttempts)
}

// Confirm moves a payment from PENDING to COMPLETED. The order status is
// deliberately left untouched; order and payment lifecycles are decoupled.
func (s *PaymentService) Confirm(paymentID uuid.UUID) (*models.Payment, error) {
	return s.transition(paymentID, models.PaymentPending, models.PaymentCompleted)
}

// Fail moves a payment from PENDING to FAILED (declined instrument).
func (s *PaymentService) Fail(paymentID uuid.UUID) (*models.Payment, error) {
	return s.transition(paymentID, models.PaymentPending, models.PaymentFailed)
}

// Refund moves a payment from COMPLETED to REFUNDED. The payment amount
// is never altered; the status alone records the reversal.
func (s *PaymentService) Refund(paymentID uuid.UUID) (*models.Payment, error) {
	return s.transition(paymentID, models.PaymentCompleted, models.PaymentRefunded)
}

func (s *PaymentService) transition(paymentID uuid.UUID, from, to models.PaymentStatus) (*models.Payment, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var payment models.Payment
	if err := db.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, storeError("look up payment", err)
	}

	if payment.Status != from {
		return nil, ErrIllegalPaymentTransition
	}

	res := db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, from).
		Update("status", to)
	if res.Error != nil {
		return nil, storeError("update payment status", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrIllegalPaymentTransition
	}

	if err := db.Preload("Order").First(&payment, "id = ?", payment.ID).Error; err != nil {
		return nil, storeError("reload payment", err)
	}
	return &payment, nil
}

// ListByCustomer returns payments for a customer's orders, most recent
// payment first. The join replaces the document-reference traversal.
func (s *PaymentService) ListByCustomer(customerID uuid.UUID) ([]models.Payment, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var payments []models.Payment
	err := db.
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.customer_id = ?", customerID).
		Order("payments.payment_date desc").
		Preload("Order").
		Find(&payments).Error
	if err != nil {
		return nil, storeError("list payments", err)
	}
	return payments, nil
}

// ListByOrderStatus returns payments whose owning order is in the given
// status, most recent payment first.
func (s *PaymentService) ListByOrderStatus(status models.OrderStatus) ([]models.Payment, error) {
	db, cancel := withTimeout(s.db)
	defer cancel()

	var payments []models.Payment
	err := db.
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.status = ?", status).
		Order("payments.payment_date desc").
		Preload("Order").
		Find(&payments).Error
	if err != nil {
		return nil, storeError("list payments", err)
	}
	return payments, nil
}

func generateTransactionID() (string, error) {
	max := big.NewInt(1_000_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TXN%09d", n.Int64()), nil
}
