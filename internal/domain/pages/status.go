package pages

import "strings"

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentDisputed PaymentStatus = "disputed"
	PaymentRefunded PaymentStatus = "refunded"
)

// NormalizePaymentStatus maps a stored (possibly legacy/free-form) status
// string onto the closed set above. Anything unknown counts as unpaid.
func NormalizePaymentStatus(s string) PaymentStatus {
	switch PaymentStatus(strings.TrimSpace(strings.ToLower(s))) {
	case PaymentPending:
		return PaymentPending
	case PaymentPaid:
		return PaymentPaid
	case PaymentFailed:
		return PaymentFailed
	case PaymentDisputed:
		return PaymentDisputed
	case PaymentRefunded:
		return PaymentRefunded
	default:
		return PaymentUnpaid
	}
}
