package stripewebhooks

import (
	"fmt"
	"time"

	"memorizu-app/internal/domain/pages"
	"memorizu-app/internal/domain/publication"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/charge"
)

// Disputes reference charges, not payment intents, so the correlation
// metadata has to come from the charge itself.
func handleChargeDisputeCreated(store pages.Store, dispute *stripe.Dispute) error {
	if dispute.Charge == nil || dispute.Charge.ID == "" {
		fmt.Println("⚠️ charge.dispute.created without charge reference, dropping:", dispute.ID)
		return nil
	}

	ch, err := charge.Get(dispute.Charge.ID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch disputed charge: %w", err)
	}

	intentID := ""
	if ch.PaymentIntent != nil {
		intentID = ch.PaymentIntent.ID
	}

	ev, ok := correlation(ch.Metadata, intentID)
	if !ok {
		fmt.Println("⚠️ disputed charge without user_id/page_id metadata, dropping:", ch.ID)
		return nil
	}

	return publication.ApplyDispute(store, time.Now(), publication.DisputeEvent{
		PaymentEvent: ev,
		DisputeID:    dispute.ID,
	})
}
