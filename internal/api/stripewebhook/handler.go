package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"memorizu-app/database"
	"memorizu-app/internal/domain/pages"
	"memorizu-app/internal/domain/publication"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// StripeWebhook is the single publication webhook endpoint. Signature
// verification happens before any event-type dispatch; a 500 response is the
// only retry mechanism the design has, so store failures must surface as 500
// while unfixable events (bad metadata, deleted page) are acknowledged.
func StripeWebhook(c *gin.Context) {
	// Stripe key is required for follow-up API calls (charge.Get on disputes)
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_SECRET_KEY not configured"})
		return
	}

	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	store := pages.NewStore(database.DB)

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		respond(c, handleCheckoutSessionCompleted(store, &session))
		return

	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		respond(c, handlePaymentIntentSucceeded(store, &intent))
		return

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		respond(c, handlePaymentIntentFailed(store, &intent))
		return

	case "charge.dispute.created":
		var dispute stripe.Dispute
		if err := json.Unmarshal(event.Data.Raw, &dispute); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse dispute"})
			return
		}
		respond(c, handleChargeDisputeCreated(store, &dispute))
		return

	default:
		// Acknowledge unknown events (charge.refunded included) to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
}

func respond(c *gin.Context, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if publication.Droppable(err) {
		// Page is gone; retrying cannot fix this event.
		fmt.Println("⚠️ Dropping webhook event for missing page:", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// correlation pulls {user_id, page_id} out of event metadata. Events without
// both are logged and dropped: no mutation, still a 200 to the processor.
func correlation(md map[string]string, intentID string) (publication.PaymentEvent, bool) {
	if md == nil {
		return publication.PaymentEvent{}, false
	}

	pageID := md["page_id"]
	uid64, err := strconv.ParseUint(md["user_id"], 10, 64)
	if pageID == "" || err != nil || uid64 == 0 {
		return publication.PaymentEvent{}, false
	}

	return publication.PaymentEvent{
		UserID:          uint(uid64),
		PageID:          pageID,
		PaymentIntentID: intentID,
	}, true
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
