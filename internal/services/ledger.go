package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"seraphina/internal/models/db_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

const maxTransactionIDAttempts = 5

var ledgerEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "seraphina_ledger_entries_total",
		Help: "Ledger entries written, by transaction type",
	},
	[]string{"type"},
)

type LedgerEntry struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Type        db_models.TransactionType
	Status      db_models.TransactionStatus
	Description string
	ReferenceID *uuid.UUID
}

// Ledger appends entries to the transaction log. It never changes a wallet
// balance; callers pair it with the balance update in one DB transaction.
type Ledger struct {
	newID func() (string, error)
}

func NewLedger() *Ledger {
	return &Ledger{newID: utils.GenerateTransactionID}
}

func (l *Ledger) Record(ctx context.Context, repo repositories.LedgerRepository, in LedgerEntry) (*db_models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, utils.ErrInvalidAmount
	}
	if !in.Type.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "type")
	}
	if in.Status == "" {
		in.Status = db_models.TxnStatusSuccess
	}

	entry := &db_models.Transaction{
		UserID:      in.UserID,
		Amount:      in.Amount,
		Type:        in.Type,
		Status:      in.Status,
		Description: in.Description,
		ReferenceID: in.ReferenceID,
	}

	for attempt := 0; attempt < maxTransactionIDAttempts; attempt++ {
		id, err := l.newID()
		if err != nil {
			return nil, fmt.Errorf("generate transaction id: %w", err)
		}
		entry.TransactionID = id

		err = repo.Insert(ctx, entry)
		if errors.Is(err, utils.ErrDuplicateTransactionID) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ledgerEntriesTotal.WithLabelValues(string(in.Type)).Inc()
		return entry, nil
	}
	return nil, utils.ErrTransactionIDExhausted
}

func formatRupees(amount decimal.Decimal) string {
	return "₹" + amount.Round(2).String()
}
