package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

func TestBankService_AccountLifecycle(t *testing.T) {
	db := testdb.New(t)
	svc := NewBankService(repositories.NewBankRepository(db))
	ctx := context.Background()
	user := seedUser(t, db, "+919844000000")

	hdfc, err := svc.CreateBankName(ctx, request_models.BankNameRequest{Name: "HDFC Bank"})
	require.NoError(t, err)
	sbi, err := svc.CreateBankName(ctx, request_models.BankNameRequest{Name: "State Bank of India"})
	require.NoError(t, err)
	_, err = svc.CreateBankName(ctx, request_models.BankNameRequest{Name: "HDFC Bank"})
	assert.ErrorIs(t, err, utils.ErrBankNameExists)

	_, err = svc.GetBankAccount(ctx, user.ID)
	assert.ErrorIs(t, err, utils.ErrBankAccountNotFound)

	_, err = svc.LinkBankAccount(ctx, user.ID, request_models.BankAccountRequest{
		BankNameID: uuid.New(), AccountNumber: "50100012345678", IFSCCode: "HDFC0000123",
	})
	assert.ErrorIs(t, err, utils.ErrBankNameNotFound)

	account, err := svc.LinkBankAccount(ctx, user.ID, request_models.BankAccountRequest{
		BankNameID: hdfc.ID, AccountNumber: "50100012345678", IFSCCode: "hdfc0000123",
	})
	require.NoError(t, err)
	assert.Equal(t, "HDFC0000123", account.IFSCCode)

	_, err = svc.LinkBankAccount(ctx, user.ID, request_models.BankAccountRequest{
		BankNameID: sbi.ID, AccountNumber: "1111", IFSCCode: "SBIN0000001",
	})
	assert.ErrorIs(t, err, utils.ErrBankAccountExists)

	updated, err := svc.UpdateBankAccount(ctx, user.ID, request_models.BankAccountRequest{
		BankNameID: sbi.ID, AccountNumber: "30000000001", IFSCCode: "SBIN0000001",
	})
	require.NoError(t, err)
	assert.Equal(t, account.ID, updated.ID)

	got, err := svc.GetBankAccount(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.BankName)
	assert.Equal(t, "State Bank of India", got.BankName.Name)

	banks, err := svc.ListBankNames(ctx)
	require.NoError(t, err)
	assert.Len(t, banks, 2)
}
