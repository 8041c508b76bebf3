package domain

import "time"

type RedemptionStatus string

const (
	RedemptionStatusPending  RedemptionStatus = "PENDING"
	RedemptionStatusApproved RedemptionStatus = "APPROVED"
	RedemptionStatusRejected RedemptionStatus = "REJECTED"
)

// Redemption is a pending withdrawal of Zoints. The debit happens at request
// time in the same transaction that inserts the row; approval only flips the
// status, rejection re-credits the original amount.
type Redemption struct {
	ID        int64            `json:"id"`
	AccountID string           `json:"account_id"`
	Amount    int64            `json:"amount"`
	Method    string           `json:"method"`
	Status    RedemptionStatus `json:"status"`
	Note      string           `json:"note"`
	CreatedOn time.Time        `json:"created_on"`
	UpdatedOn time.Time        `json:"updated_on"`
}
