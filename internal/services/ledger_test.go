package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

func sequenceIDs(ids ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		id := ids[i]
		if i < len(ids)-1 {
			i++
		}
		return id, nil
	}
}

func TestLedger_RetriesOnTransactionIDCollision(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db, "+919811000500")
	repo := repositories.NewLedgerRepository(db)
	ctx := context.Background()

	ledger := &Ledger{newID: sequenceIDs("QVAAAAAAAAAA", "QVAAAAAAAAAA", "QVBBBBBBBBBB")}

	first, err := ledger.Record(ctx, repo, LedgerEntry{UserID: user.ID, Amount: decimal.NewFromInt(10), Type: db_models.TxnTypeAddMoney})
	require.NoError(t, err)
	assert.Equal(t, "QVAAAAAAAAAA", first.TransactionID)

	second, err := ledger.Record(ctx, repo, LedgerEntry{UserID: user.ID, Amount: decimal.NewFromInt(20), Type: db_models.TxnTypeAddMoney})
	require.NoError(t, err)
	assert.Equal(t, "QVBBBBBBBBBB", second.TransactionID)
	assert.Equal(t, db_models.TxnStatusSuccess, second.Status)

	assert.Len(t, ledgerEntries(t, db, user), 2)
}

func TestLedger_GivesUpAfterRepeatedCollisions(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db, "+919811000501")
	repo := repositories.NewLedgerRepository(db)
	ctx := context.Background()

	ledger := &Ledger{newID: sequenceIDs("QVCCCCCCCCCC")}

	_, err := ledger.Record(ctx, repo, LedgerEntry{UserID: user.ID, Amount: decimal.NewFromInt(10), Type: db_models.TxnTypeAddMoney})
	require.NoError(t, err)

	_, err = ledger.Record(ctx, repo, LedgerEntry{UserID: user.ID, Amount: decimal.NewFromInt(10), Type: db_models.TxnTypeAddMoney})
	assert.ErrorIs(t, err, utils.ErrTransactionIDExhausted)
	assert.Len(t, ledgerEntries(t, db, user), 1)
}

func TestLedger_RejectsBadEntries(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db, "+919811000502")
	repo := repositories.NewLedgerRepository(db)
	ledger := NewLedger()

	_, err := ledger.Record(context.Background(), repo, LedgerEntry{UserID: user.ID, Amount: decimal.Zero, Type: db_models.TxnTypeAddMoney})
	assert.ErrorIs(t, err, utils.ErrInvalidAmount)

	_, err = ledger.Record(context.Background(), repo, LedgerEntry{UserID: user.ID, Amount: decimal.NewFromInt(1), Type: "gift"})
	assert.ErrorIs(t, err, utils.ErrInvalidField)
	assert.Empty(t, ledgerEntries(t, db, user))
}
