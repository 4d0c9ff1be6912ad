package enums

import "fmt"

// ReceiptKind distinguishes which payment event a receipt records.
type ReceiptKind string

const (
	ReceiptKindDeposit ReceiptKind = "deposit"
	ReceiptKindBalance ReceiptKind = "balance"
)

var validReceiptKinds = []ReceiptKind{
	ReceiptKindDeposit,
	ReceiptKindBalance,
}

// String implements fmt.Stringer.
func (r ReceiptKind) String() string {
	return string(r)
}

// IsValid reports whether the value is a known ReceiptKind.
func (r ReceiptKind) IsValid() bool {
	for _, candidate := range validReceiptKinds {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReceiptKind converts raw input into a ReceiptKind.
func ParseReceiptKind(value string) (ReceiptKind, error) {
	for _, candidate := range validReceiptKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid receipt kind %q", value)
}
