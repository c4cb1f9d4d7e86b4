package response_models

import (
	"github.com/shopspring/decimal"

	"seraphina/internal/models/db_models"
)

type WalletDetails struct {
	Balance      decimal.Decimal         `json:"balance"`
	Transactions []db_models.Transaction `json:"transactions"`
}

// WalletOperation is returned by add-money and withdraw.
type WalletOperation struct {
	Balance     decimal.Decimal        `json:"balance"`
	Transaction *db_models.Transaction `json:"transaction"`
}
