package billing

import (
	"time"

	"memorizu-app/internal/domain/users"
)

// Payment is one publication fee for one page. The unique index on
// PaymentIntentID makes webhook inserts idempotent.
type Payment struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint
	User   users.User
	PageID string `gorm:"type:uuid;index"`

	StripePaymentIntentID string  `gorm:"uniqueIndex"`
	StripeSessionID       *string `gorm:""`
	AmountEUR             float64
	Status                string
	ReceiptURL            *string

	CreatedAt time.Time
}
