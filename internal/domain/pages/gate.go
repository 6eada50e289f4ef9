package pages

// PublicationState classifies a page for the owner dashboard and decides
// public visibility. It is a total function of (Published, PaymentStatus)
// and of nothing else.
type PublicationState string

const (
	StatePublished          PublicationState = "published"
	StatePublishedWithIssue PublicationState = "published_with_issue"
	StatePaymentPending     PublicationState = "payment_pending"
	StatePaymentFailed      PublicationState = "payment_failed"
	StateDraft              PublicationState = "draft"
)

// Classify implements the publication gate.
//
// Once Published was set true the page stays reachable even if the payment
// later degrades (dispute, refund): already-shared links must not break.
// PaymentStatus is informational in that case.
func Classify(published bool, status PaymentStatus) PublicationState {
	if published {
		if status == PaymentPaid {
			return StatePublished
		}
		return StatePublishedWithIssue
	}

	switch status {
	case PaymentPending:
		return StatePaymentPending
	case PaymentFailed:
		return StatePaymentFailed
	default:
		return StateDraft
	}
}

// PublicAccess reports whether visitors may see the page content.
func (s PublicationState) PublicAccess() bool {
	return s == StatePublished || s == StatePublishedWithIssue
}

// CanonicalURL returns the canonical public path of a page:
// "/s/{slug}" when a custom slug is claimed, "/p/{id}" otherwise.
func CanonicalURL(p *Page) string {
	if p.CustomSlug != nil && *p.CustomSlug != "" {
		return "/s/" + *p.CustomSlug
	}
	return "/p/" + p.ID
}
