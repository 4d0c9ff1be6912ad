package enums

import "fmt"

// WalletEntryType classifies immutable wallet ledger entries.
type WalletEntryType string

const (
	WalletEntryDepositReceived WalletEntryType = "deposit_received"
	WalletEntryBalanceReceived WalletEntryType = "balance_received"
	WalletEntryRefundDue       WalletEntryType = "refund_due"
	WalletEntryRefundIssued    WalletEntryType = "refund_issued"
)

var validWalletEntryTypes = []WalletEntryType{
	WalletEntryDepositReceived,
	WalletEntryBalanceReceived,
	WalletEntryRefundDue,
	WalletEntryRefundIssued,
}

// String implements fmt.Stringer.
func (w WalletEntryType) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WalletEntryType.
func (w WalletEntryType) IsValid() bool {
	for _, candidate := range validWalletEntryTypes {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWalletEntryType converts raw input into a WalletEntryType.
func ParseWalletEntryType(value string) (WalletEntryType, error) {
	for _, candidate := range validWalletEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wallet entry type %q", value)
}
