package pages

import "testing"

func TestNormalizePaymentStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want PaymentStatus
	}{
		{in: "paid", want: PaymentPaid},
		{in: "PAID", want: PaymentPaid},
		{in: " pending ", want: PaymentPending},
		{in: "failed", want: PaymentFailed},
		{in: "disputed", want: PaymentDisputed},
		{in: "refunded", want: PaymentRefunded},
		{in: "unpaid", want: PaymentUnpaid},
		{in: "", want: PaymentUnpaid},
		{in: "garbage", want: PaymentUnpaid},
	}

	for _, tt := range tests {
		if got := NormalizePaymentStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizePaymentStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
