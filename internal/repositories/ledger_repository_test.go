package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/pkg/utils"
)

func TestLedgerRepository_DuplicateTransactionIDInsideTransaction(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	user := createUser(t, db, "+919877777777")

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewLedgerRepository(tx)
		first := &db_models.Transaction{UserID: user.ID, Amount: decimal.NewFromInt(10), Type: db_models.TxnTypeAddMoney, Status: db_models.TxnStatusSuccess, TransactionID: "QV0000000001"}
		require.NoError(t, repo.Insert(ctx, first))

		dup := &db_models.Transaction{UserID: user.ID, Amount: decimal.NewFromInt(20), Type: db_models.TxnTypeAddMoney, Status: db_models.TxnStatusSuccess, TransactionID: "QV0000000001"}
		assert.ErrorIs(t, repo.Insert(ctx, dup), utils.ErrDuplicateTransactionID)

		// the outer transaction survives the failed savepoint
		dup.TransactionID = "QV0000000002"
		return repo.Insert(ctx, dup)
	})
	require.NoError(t, err)

	entries, err := NewLedgerRepository(db).FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLedgerRepository_PageByUserNewestFirst(t *testing.T) {
	db := testdb.New(t)
	repo := NewLedgerRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "+919888888888")

	for i, id := range []string{"QV00000000A1", "QV00000000A2", "QV00000000A3"} {
		require.NoError(t, repo.Insert(ctx, &db_models.Transaction{
			BaseModel:     db_models.BaseModel{CreatedAt: int64(i + 1)},
			UserID:        user.ID,
			Amount:        decimal.NewFromInt(int64(i + 1)),
			Type:          db_models.TxnTypeAddMoney,
			Status:        db_models.TxnStatusSuccess,
			TransactionID: id,
		}))
	}

	page, total, err := repo.PageByUser(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "QV00000000A3", page[0].TransactionID)
	assert.Equal(t, "QV00000000A2", page[1].TransactionID)

	found, err := repo.FindByTransactionID(ctx, "QV00000000A1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, decimal.NewFromInt(1).Equal(found.Amount))
}
