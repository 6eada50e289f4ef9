package publication

import (
	"testing"
	"time"

	"memorizu-app/internal/domain/pages"
)

func newStoreWithPage(t *testing.T, p *pages.Page) *pages.MemStore {
	t.Helper()
	store := pages.NewMemStore()
	if err := store.Create(p); err != nil {
		t.Fatalf("create page: %v", err)
	}
	return store
}

func TestApplyPaymentSucceeded(t *testing.T) {
	t.Parallel()

	page := &pages.Page{UserID: 1, Title: "Wedding", PaymentStatus: pages.PaymentUnpaid}
	store := newStoreWithPage(t, page)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := PaymentEvent{UserID: 1, PageID: page.ID, PaymentIntentID: "pi_1"}

	if err := ApplyPaymentSucceeded(store, now, ev); err != nil {
		t.Fatalf("apply succeeded: %v", err)
	}

	got, err := store.ByID(page.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.Published || got.PaymentStatus != pages.PaymentPaid {
		t.Fatalf("expected published+paid, got published=%v status=%q", got.Published, got.PaymentStatus)
	}
	if got.PaymentIntentID == nil || *got.PaymentIntentID != "pi_1" {
		t.Fatalf("payment intent not recorded")
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(now) {
		t.Fatalf("paid_at not set")
	}
	if got.PublishedURL == nil || *got.PublishedURL != page.ID {
		t.Fatalf("published_url not set to page id")
	}

	if state := pages.Classify(got.Published, got.PaymentStatus); state != pages.StatePublished {
		t.Fatalf("expected Published classification, got %q", state)
	}
}

func TestApplyPaymentSucceeded_Idempotent(t *testing.T) {
	t.Parallel()

	page := &pages.Page{UserID: 1, PaymentStatus: pages.PaymentPending}
	store := newStoreWithPage(t, page)

	ev := PaymentEvent{UserID: 1, PageID: page.ID, PaymentIntentID: "pi_1"}

	if err := ApplyPaymentSucceeded(store, time.Now(), ev); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	first, _ := store.ByID(page.ID)

	// Redelivery of the same event must converge on the same state.
	if err := ApplyPaymentSucceeded(store, time.Now(), ev); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	second, _ := store.ByID(page.ID)

	if first.Published != second.Published ||
		first.PaymentStatus != second.PaymentStatus ||
		*first.PaymentIntentID != *second.PaymentIntentID ||
		*first.PublishedURL != *second.PublishedURL {
		t.Fatalf("re-applying the same event changed state: %+v vs %+v", first, second)
	}
}

func TestApplyPaymentFailed(t *testing.T) {
	t.Parallel()

	page := &pages.Page{UserID: 1, PaymentStatus: pages.PaymentPending}
	store := newStoreWithPage(t, page)

	ev := PaymentEvent{UserID: 1, PageID: page.ID, PaymentIntentID: "pi_1"}
	if err := ApplyPaymentFailed(store, ev); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	got, _ := store.ByID(page.ID)
	if got.Published || got.PaymentStatus != pages.PaymentFailed {
		t.Fatalf("expected unpublished+failed, got published=%v status=%q", got.Published, got.PaymentStatus)
	}
	if got.PublishedURL != nil {
		t.Fatalf("published_url should be cleared")
	}

	if state := pages.Classify(got.Published, got.PaymentStatus); state != pages.StatePaymentFailed {
		t.Fatalf("expected PaymentFailed classification, got %q", state)
	}
}

// A late failure for an old intent must not unpublish a page that was since
// paid under a newer intent.
func TestApplyPaymentFailed_StaleIntentIgnored(t *testing.T) {
	t.Parallel()

	page := &pages.Page{UserID: 1, PaymentStatus: pages.PaymentUnpaid}
	store := newStoreWithPage(t, page)

	if err := ApplyPaymentSucceeded(store, time.Now(), PaymentEvent{
		UserID: 1, PageID: page.ID, PaymentIntentID: "pi_new",
	}); err != nil {
		t.Fatalf("apply succeeded: %v", err)
	}

	if err := ApplyPaymentFailed(store, PaymentEvent{
		UserID: 1, PageID: page.ID, PaymentIntentID: "pi_old",
	}); err != nil {
		t.Fatalf("apply stale failure: %v", err)
	}

	got, _ := store.ByID(page.ID)
	if !got.Published || got.PaymentStatus != pages.PaymentPaid {
		t.Fatalf("stale failure unpublished a paid page: published=%v status=%q", got.Published, got.PaymentStatus)
	}
}

func TestApplyDispute(t *testing.T) {
	t.Parallel()

	page := &pages.Page{UserID: 1, Published: true, PaymentStatus: pages.PaymentPaid}
	store := newStoreWithPage(t, page)

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ev := DisputeEvent{
		PaymentEvent: PaymentEvent{UserID: 1, PageID: page.ID, PaymentIntentID: "pi_1"},
		DisputeID:    "dp_1",
	}

	if err := ApplyDispute(store, now, ev); err != nil {
		t.Fatalf("apply dispute: %v", err)
	}

	got, _ := store.ByID(page.ID)
	if got.Published || got.PaymentStatus != pages.PaymentDisputed {
		t.Fatalf("expected unpublished+disputed, got published=%v status=%q", got.Published, got.PaymentStatus)
	}
	if got.DisputeID == nil || *got.DisputeID != "dp_1" {
		t.Fatalf("dispute id not recorded")
	}
	if got.DisputedAt == nil || !got.DisputedAt.Equal(now) {
		t.Fatalf("disputed_at not set")
	}
}

func TestApply_MissingPageIsDroppable(t *testing.T) {
	t.Parallel()

	store := pages.NewMemStore()
	ev := PaymentEvent{UserID: 1, PageID: "00000000-0000-4000-8000-000000000099", PaymentIntentID: "pi_1"}

	err := ApplyPaymentSucceeded(store, time.Now(), ev)
	if err == nil {
		t.Fatalf("expected error for missing page")
	}
	if !Droppable(err) {
		t.Fatalf("missing page should be droppable, got %v", err)
	}

	if err := ApplyPaymentFailed(store, ev); !Droppable(err) {
		t.Fatalf("missing page should be droppable for failures, got %v", err)
	}
}
