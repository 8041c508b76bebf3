package domain

import "time"

type EntryType string

const (
	EntryTypePickupCredit     EntryType = "PICKUP_CREDIT"
	EntryTypeRedemptionDebit  EntryType = "REDEMPTION_DEBIT"
	EntryTypeRedemptionRefund EntryType = "REDEMPTION_REFUND"
)

// LedgerEntry records a single balance-changing event. The account balance
// must always equal the sum of its entries' amounts.
type LedgerEntry struct {
	ID           int64     `json:"id"`
	AccountID    string    `json:"account_id"`
	Amount       int64     `json:"amount"` // positive for credit, negative for debit
	Type         EntryType `json:"type"`
	PickupID     *int64    `json:"pickup_id,omitempty"`
	RedemptionID *int64    `json:"redemption_id,omitempty"`
	Description  string    `json:"description"`
	CreatedOn    time.Time `json:"created_on"`
}
