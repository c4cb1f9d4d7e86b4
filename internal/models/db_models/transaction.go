package db_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnTypeAddMoney     TransactionType = "addMoney"
	TxnTypeWithdraw     TransactionType = "withdraw"
	TxnTypeInvestment   TransactionType = "investment"
	TxnTypePlanPurchase TransactionType = "planPurchase"
	TxnTypePlanUpgrade  TransactionType = "planUpgrade"
	TxnTypePlanRenewal  TransactionType = "planRenewal"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxnTypeAddMoney, TxnTypeWithdraw, TxnTypeInvestment,
		TxnTypePlanPurchase, TxnTypePlanUpgrade, TxnTypePlanRenewal:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxnStatusSuccess TransactionStatus = "success"
	TxnStatusPending TransactionStatus = "pending"
	TxnStatusFailed  TransactionStatus = "failed"
)

// Transaction is an append-only ledger entry. Rows are never updated.
type Transaction struct {
	BaseModel
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"amount"`
	Type          TransactionType   `gorm:"size:32;not null;index" json:"type"`
	Status        TransactionStatus `gorm:"size:16;not null;default:success" json:"status"`
	TransactionID string            `gorm:"size:16;not null;uniqueIndex" json:"transaction_id"`
	Description   string            `json:"description"`
	ReferenceID   *uuid.UUID        `gorm:"type:uuid;index" json:"reference_id,omitempty"`
}
