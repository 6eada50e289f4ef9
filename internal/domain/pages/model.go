package pages

import (
	"encoding/json"
	"time"
)

// Page is the unit of user-generated content. Publication is driven by two
// fields only: Published and PaymentStatus. Everything else is bookkeeping.
type Page struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	UserID uint   `gorm:"not null;index" json:"-"`
	Title  string `gorm:"not null;default:''" json:"title"`

	// Globally unique across all owners. NULL when the owner never claimed one.
	CustomSlug *string `gorm:"uniqueIndex:idx_pages_custom_slug" json:"custom_slug,omitempty"`

	Published     bool          `gorm:"not null;default:false" json:"published"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`

	PaymentIntentID *string `gorm:"index" json:"payment_intent_id,omitempty"`
	DisputeID       *string `json:"dispute_id,omitempty"`

	PublishedURL *string    `json:"published_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	DisputedAt   *time.Time `json:"disputed_at,omitempty"`

	Components []PageComponent `gorm:"foreignKey:PageID;references:ID;constraint:OnDelete:CASCADE;" json:"components,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageComponent struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	PageID    string `gorm:"type:uuid;not null;index" json:"page_id"`
	SortIndex int    `gorm:"not null;default:0;index" json:"sort_index"`

	Type string          `gorm:"not null;index" json:"type"`
	Data json.RawMessage `gorm:"type:jsonb;not null;default:'{}'" json:"data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QRCode is derivable at any time from Page + the slug resolver; it is kept
// only so the dashboard can show when a code was last generated.
type QRCode struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	PageID    string `gorm:"type:uuid;not null;uniqueIndex" json:"page_id"`
	PageURL   string `gorm:"not null" json:"page_url"`
	QRCodeURL string `gorm:"not null" json:"qr_code_url"`

	CreatedAt time.Time `json:"created_at"`
}
