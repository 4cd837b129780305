package enum

// PaymentMethod represents how a bill was settled
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentUPI   PaymentMethod = "upi"
	PaymentOther PaymentMethod = "other"
)

// Valid reports whether the payment method is known
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentOther:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
