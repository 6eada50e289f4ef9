package stripewebhooks

import (
	"fmt"
	"time"

	"memorizu-app/internal/domain/pages"
	"memorizu-app/internal/domain/publication"

	"github.com/stripe/stripe-go/v75"
)

func handlePaymentIntentSucceeded(store pages.Store, intent *stripe.PaymentIntent) error {
	ev, ok := correlation(intent.Metadata, intent.ID)
	if !ok {
		fmt.Println("⚠️ payment_intent.succeeded without user_id/page_id metadata, dropping:", intent.ID)
		return nil
	}

	return publication.ApplyPaymentSucceeded(store, time.Now(), ev)
}

func handlePaymentIntentFailed(store pages.Store, intent *stripe.PaymentIntent) error {
	ev, ok := correlation(intent.Metadata, intent.ID)
	if !ok {
		fmt.Println("⚠️ payment_intent.payment_failed without user_id/page_id metadata, dropping:", intent.ID)
		return nil
	}

	return publication.ApplyPaymentFailed(store, ev)
}
