package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type BankAccountRequest struct {
	BankNameID    uuid.UUID `json:"bank_name_id" binding:"required"`
	AccountNumber string    `json:"account_number" binding:"required,min=6,max=34"`
	IFSCCode      string    `json:"ifsc_code" binding:"required,len=11"`
}

type BankNameRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}
