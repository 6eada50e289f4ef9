package pages

import "testing"

var allStatuses = []PaymentStatus{
	PaymentUnpaid,
	PaymentPending,
	PaymentPaid,
	PaymentFailed,
	PaymentDisputed,
	PaymentRefunded,
}

func TestClassify_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		published bool
		status    PaymentStatus
		want      PublicationState
	}{
		{true, PaymentPaid, StatePublished},
		{true, PaymentUnpaid, StatePublishedWithIssue},
		{true, PaymentPending, StatePublishedWithIssue},
		{true, PaymentFailed, StatePublishedWithIssue},
		{true, PaymentDisputed, StatePublishedWithIssue},
		{true, PaymentRefunded, StatePublishedWithIssue},
		{false, PaymentPending, StatePaymentPending},
		{false, PaymentFailed, StatePaymentFailed},
		{false, PaymentUnpaid, StateDraft},
		{false, PaymentPaid, StateDraft},
		{false, PaymentDisputed, StateDraft},
		{false, PaymentRefunded, StateDraft},
	}

	for _, tt := range tests {
		if got := Classify(tt.published, tt.status); got != tt.want {
			t.Fatalf("Classify(%v, %q) = %q, want %q", tt.published, tt.status, got, tt.want)
		}
	}
}

// Every (published, status) combination must land in exactly one of the five
// defined states.
func TestClassify_Total(t *testing.T) {
	t.Parallel()

	defined := map[PublicationState]bool{
		StatePublished:          true,
		StatePublishedWithIssue: true,
		StatePaymentPending:     true,
		StatePaymentFailed:      true,
		StateDraft:              true,
	}

	for _, published := range []bool{true, false} {
		for _, status := range allStatuses {
			got := Classify(published, status)
			if !defined[got] {
				t.Fatalf("Classify(%v, %q) = %q, not a defined state", published, status, got)
			}
		}
	}
}

func TestPublicAccess(t *testing.T) {
	t.Parallel()

	// Publication drives access; payment status is informational once published.
	for _, published := range []bool{true, false} {
		for _, status := range allStatuses {
			state := Classify(published, status)
			if state.PublicAccess() != published {
				t.Fatalf("PublicAccess for Classify(%v, %q) = %v, want %v",
					published, status, state.PublicAccess(), published)
			}
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	t.Parallel()

	slug := "john-mary"
	withSlug := &Page{ID: "abc", CustomSlug: &slug}
	if got := CanonicalURL(withSlug); got != "/s/john-mary" {
		t.Fatalf("CanonicalURL with slug = %q", got)
	}

	empty := ""
	withEmptySlug := &Page{ID: "abc", CustomSlug: &empty}
	if got := CanonicalURL(withEmptySlug); got != "/p/abc" {
		t.Fatalf("CanonicalURL with empty slug = %q", got)
	}

	withoutSlug := &Page{ID: "abc"}
	if got := CanonicalURL(withoutSlug); got != "/p/abc" {
		t.Fatalf("CanonicalURL without slug = %q", got)
	}
}
