package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type WalletServiceInterface interface {
	AddMoney(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*resp.WalletOperation, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*resp.WalletOperation, error)
	GetWalletDetails(ctx context.Context, userID uuid.UUID) (*resp.WalletDetails, error)
	GetTransactionHistory(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.Page[db_models.Transaction], error)
}

type WalletService struct {
	db       *gorm.DB
	users    repositories.UserRepository
	ledger   repositories.LedgerRepository
	recorder *Ledger
	notifier Notifier
}

func NewWalletService(
	db *gorm.DB,
	users repositories.UserRepository,
	ledger repositories.LedgerRepository,
	recorder *Ledger,
	notifier Notifier,
) WalletServiceInterface {
	return &WalletService{
		db:       db,
		users:    users,
		ledger:   ledger,
		recorder: recorder,
		notifier: notifier,
	}
}

func (w *WalletService) AddMoney(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*resp.WalletOperation, error) {
	if !amount.IsPositive() {
		return nil, utils.ErrInvalidAmount
	}

	var result resp.WalletOperation
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := w.users.WithTx(tx)

		ok, err := users.CreditWallet(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			return utils.ErrUserNotFound
		}

		entry, err := w.recorder.Record(ctx, w.ledger.WithTx(tx), LedgerEntry{
			UserID:      userID,
			Amount:      amount,
			Type:        db_models.TxnTypeAddMoney,
			Description: fmt.Sprintf("Added %s to wallet", formatRupees(amount)),
		})
		if err != nil {
			return err
		}

		balance, err := users.Balance(ctx, userID)
		if err != nil {
			return err
		}
		result = resp.WalletOperation{Balance: balance, Transaction: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.notifier.Notify(NotificationEvent{
		UserID: userID,
		Kind:   db_models.NotifyWallet,
		Title:  "Wallet Amount Added",
		Body: fmt.Sprintf("%s has been added to your wallet. Your new balance is %s.",
			formatRupees(amount), formatRupees(result.Balance)),
		Data: map[string]any{"transaction_id": result.Transaction.TransactionID},
	})
	return &result, nil
}

func (w *WalletService) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*resp.WalletOperation, error) {
	if !amount.IsPositive() {
		return nil, utils.ErrInvalidAmount
	}

	var result resp.WalletOperation
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := w.users.WithTx(tx)

		ok, err := users.DebitWallet(ctx, userID, amount)
		if err != nil {
			return err
		}
		if !ok {
			user, err := users.FindById(ctx, userID)
			if err != nil {
				return err
			}
			if user == nil {
				return utils.ErrUserNotFound
			}
			return utils.ErrInsufficientFunds
		}

		entry, err := w.recorder.Record(ctx, w.ledger.WithTx(tx), LedgerEntry{
			UserID:      userID,
			Amount:      amount,
			Type:        db_models.TxnTypeWithdraw,
			Description: fmt.Sprintf("Withdrew %s from wallet", formatRupees(amount)),
		})
		if err != nil {
			return err
		}

		balance, err := users.Balance(ctx, userID)
		if err != nil {
			return err
		}
		result = resp.WalletOperation{Balance: balance, Transaction: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.notifier.Notify(NotificationEvent{
		UserID: userID,
		Kind:   db_models.NotifyWallet,
		Title:  "Wallet Withdrawal",
		Body: fmt.Sprintf("%s has been withdrawn from your wallet. Your new balance is %s.",
			formatRupees(amount), formatRupees(result.Balance)),
		Data: map[string]any{"transaction_id": result.Transaction.TransactionID},
	})
	return &result, nil
}

func (w *WalletService) GetWalletDetails(ctx context.Context, userID uuid.UUID) (*resp.WalletDetails, error) {
	user, err := w.users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	entries, err := w.ledger.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []db_models.Transaction{}
	}
	return &resp.WalletDetails{Balance: user.Wallet, Transactions: entries}, nil
}

func (w *WalletService) GetTransactionHistory(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.Page[db_models.Transaction], error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}
	items, total, err := w.ledger.PageByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &resp.Page[db_models.Transaction]{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}
