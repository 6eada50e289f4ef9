package publication

import (
	"errors"
	"time"

	"memorizu-app/internal/domain/pages"
)

/*
	Payment event application
	-------------------------
	Transitions a single page's publish/payment fields in response to
	processor events. Delivery is at-least-once and unordered; every
	transition here must therefore tolerate being re-applied and must not
	let a stale failure unpublish a page paid under a newer intent.
*/

// PaymentEvent is the correlation payload carried in processor metadata.
type PaymentEvent struct {
	UserID          uint
	PageID          string
	PaymentIntentID string
}

// DisputeEvent adds the dispute reference resolved from the charge.
type DisputeEvent struct {
	PaymentEvent
	DisputeID string
}

// ApplyPaymentSucceeded marks the page paid and published. Idempotent:
// re-applying with the same intent rewrites timestamps only.
func ApplyPaymentSucceeded(store pages.Store, now time.Time, ev PaymentEvent) error {
	if _, err := store.ByID(ev.PageID); err != nil {
		return err
	}

	return store.Update(ev.PageID, map[string]interface{}{
		"payment_status":    pages.PaymentPaid,
		"published":         true,
		"payment_intent_id": ev.PaymentIntentID,
		"published_url":     ev.PageID,
		"paid_at":           now,
		"published_at":      now,
	})
}

// ApplyPaymentFailed marks the page failed and unpublished. A failure for an
// intent that is not the one the page was paid under is stale (the processor
// gives no ordering guarantee) and is dropped rather than unpublishing a
// paid page.
func ApplyPaymentFailed(store pages.Store, ev PaymentEvent) error {
	p, err := store.ByID(ev.PageID)
	if err != nil {
		return err
	}

	if p.PaymentStatus == pages.PaymentPaid &&
		p.PaymentIntentID != nil && *p.PaymentIntentID != ev.PaymentIntentID {
		return nil
	}

	return store.Update(ev.PageID, map[string]interface{}{
		"payment_status":    pages.PaymentFailed,
		"published":         false,
		"payment_intent_id": ev.PaymentIntentID,
		"published_url":     nil,
	})
}

// ApplyDispute marks the page disputed and unpublished.
func ApplyDispute(store pages.Store, now time.Time, ev DisputeEvent) error {
	if _, err := store.ByID(ev.PageID); err != nil {
		return err
	}

	return store.Update(ev.PageID, map[string]interface{}{
		"payment_status": pages.PaymentDisputed,
		"published":      false,
		"published_url":  nil,
		"dispute_id":     ev.DisputeID,
		"disputed_at":    now,
	})
}

// Droppable reports whether an application error refers to a page that no
// longer exists. Such events are unfixable; the webhook endpoint acknowledges
// them instead of provoking pointless retries.
func Droppable(err error) bool {
	return errors.Is(err, pages.ErrNotFound)
}
