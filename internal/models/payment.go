package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMode enumerates accepted payment instruments.
type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCard PaymentMode = "CARD"
	PaymentModeCash PaymentMode = "CASH"
)

// Valid reports whether the mode is one of the accepted instruments.
func (m PaymentMode) Valid() bool {
	return m == PaymentModeUPI || m == PaymentModeCard || m == PaymentModeCash
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment records money against an order. The unique index on OrderID
// enforces at most one payment per order; PaymentAmount is a snapshot of
// the order amount taken at creation time.
type Payment struct {
	BaseModel
	OrderID       uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"order_id"`
	Order         *Order        `json:"order,omitempty"`
	PaymentMode   PaymentMode   `json:"payment_mode"`
	PaymentAmount float64       `json:"payment_amount"`
	Status        PaymentStatus `json:"status"`
	PaymentDate   time.Time     `json:"payment_date"`
	TransactionID string        `gorm:"uniqueIndex" json:"transaction_id"`
}

// BeforeCreate defaults PaymentDate to the creation time.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if err := p.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	return nil
}
