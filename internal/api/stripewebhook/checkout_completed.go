package stripewebhooks

import (
	"fmt"
	"time"

	"memorizu-app/database"
	"memorizu-app/internal/domain/billing"
	"memorizu-app/internal/domain/pages"
	"memorizu-app/internal/domain/publication"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm/clause"
)

func handleCheckoutSessionCompleted(store pages.Store, session *stripe.CheckoutSession) error {
	// Fetch full session with the payment intent expanded; the webhook
	// payload only carries its id.
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("payment_intent"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	intentID := ""
	if fullSession.PaymentIntent != nil {
		intentID = fullSession.PaymentIntent.ID
	}

	ev, ok := correlation(fullSession.Metadata, intentID)
	if !ok {
		fmt.Println("⚠️ checkout.session.completed without user_id/page_id metadata, dropping:", session.ID)
		return nil
	}

	if err := publication.ApplyPaymentSucceeded(store, time.Now(), ev); err != nil {
		return err
	}

	return recordPayment(ev, fullSession)
}

// recordPayment writes the payment-history row. ON CONFLICT DO NOTHING on
// the intent id keeps redelivered events from duplicating it.
func recordPayment(ev publication.PaymentEvent, session *stripe.CheckoutSession) error {
	sessionID := session.ID
	payment := billing.Payment{
		UserID:                ev.UserID,
		PageID:                ev.PageID,
		StripePaymentIntentID: ev.PaymentIntentID,
		StripeSessionID:       &sessionID,
		AmountEUR:             float64(session.AmountTotal) / 100.0,
		Status:                "paid",
	}

	return database.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&payment).Error
}
