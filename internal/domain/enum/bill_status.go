package enum

// BillStatus represents the lifecycle status of a bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusPaid      BillStatus = "paid"
	BillStatusCancelled BillStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusCancelled:
		return true
	}
	return false
}

func (s BillStatus) String() string {
	return string(s)
}
