package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// storeTimeout bounds individual store operations so an unreachable
// database surfaces an error instead of a hanging request.
const storeTimeout = 5 * time.Second

// withTimeout returns a session whose operations are bounded by
// storeTimeout.
func withTimeout(db *gorm.DB) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	return db.WithContext(ctx), cancel
}

// storeError wraps a driver failure so callers see ErrStoreUnavailable
// instead of a raw driver message.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
