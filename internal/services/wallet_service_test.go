package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

func newWalletService(db *gorm.DB, n Notifier) WalletServiceInterface {
	return NewWalletService(db,
		repositories.NewUserRepository(db),
		repositories.NewLedgerRepository(db),
		NewLedger(),
		n)
}

func TestWalletService_Scenario(t *testing.T) {
	db := testdb.New(t)
	notifier := &recordingNotifier{}
	svc := newWalletService(db, notifier)
	ctx := context.Background()
	user := seedUser(t, db, "+919900000001")

	added, err := svc.AddMoney(ctx, user.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(added.Balance))
	assert.Equal(t, "Added ₹500 to wallet", added.Transaction.Description)
	assert.Equal(t, db_models.TxnTypeAddMoney, added.Transaction.Type)
	assert.Regexp(t, `^QV[0-9A-F]{10}$`, added.Transaction.TransactionID)

	withdrawn, err := svc.Withdraw(ctx, user.ID, decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(withdrawn.Balance))
	assert.Equal(t, "Withdrew ₹200 from wallet", withdrawn.Transaction.Description)

	_, err = svc.Withdraw(ctx, user.ID, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, utils.ErrInsufficientFunds)

	details, err := svc.GetWalletDetails(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(details.Balance))
	require.Len(t, details.Transactions, 2)
	assert.Equal(t, db_models.TxnTypeWithdraw, details.Transactions[0].Type)
	assert.Equal(t, db_models.TxnTypeAddMoney, details.Transactions[1].Type)

	assert.Equal(t, []string{"Wallet Amount Added", "Wallet Withdrawal"}, notifier.titles())
	assert.Contains(t, notifier.events[0].Body, "Your new balance is ₹500.")
}

func TestWalletService_RejectsNonPositiveAmounts(t *testing.T) {
	db := testdb.New(t)
	svc := newWalletService(db, &recordingNotifier{})
	user := seedUser(t, db, "+919900000002")

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := svc.AddMoney(context.Background(), user.ID, amount)
		assert.ErrorIs(t, err, utils.ErrInvalidAmount)
		_, err = svc.Withdraw(context.Background(), user.ID, amount)
		assert.ErrorIs(t, err, utils.ErrInvalidAmount)
	}
	assert.Empty(t, ledgerEntries(t, db, user))
}

func TestWalletService_UnknownUser(t *testing.T) {
	db := testdb.New(t)
	svc := newWalletService(db, &recordingNotifier{})

	_, err := svc.AddMoney(context.Background(), uuid.New(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
	_, err = svc.Withdraw(context.Background(), uuid.New(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestWalletService_ConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	db := testdb.New(t)
	svc := newWalletService(db, &recordingNotifier{})
	ctx := context.Background()
	user := seedUser(t, db, "+919900000003")

	_, err := svc.AddMoney(ctx, user.ID, decimal.NewFromInt(100))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Withdraw(ctx, user.ID, decimal.NewFromInt(40)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	details, err := svc.GetWalletDetails(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, succeeded)
	assert.True(t, decimal.NewFromInt(20).Equal(details.Balance))
	assert.Len(t, details.Transactions, 1+succeeded)
}

func TestWalletService_TransactionHistoryPaging(t *testing.T) {
	db := testdb.New(t)
	svc := newWalletService(db, &recordingNotifier{})
	ctx := context.Background()
	user := seedUser(t, db, "+919900000004")

	for i := 1; i <= 3; i++ {
		_, err := svc.AddMoney(ctx, user.ID, decimal.NewFromInt(int64(i*100)))
		require.NoError(t, err)
	}

	page, err := svc.GetTransactionHistory(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, decimal.NewFromInt(300).Equal(page.Items[0].Amount))

	_, err = svc.GetTransactionHistory(ctx, user.ID, 0, 2)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
}
