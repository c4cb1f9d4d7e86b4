package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type BankServiceInterface interface {
	ListBankNames(ctx context.Context) ([]db_models.BankName, error)
	CreateBankName(ctx context.Context, req request_models.BankNameRequest) (*db_models.BankName, error)
	UpdateBankName(ctx context.Context, id uuid.UUID, req request_models.BankNameRequest) (*db_models.BankName, error)
	DeleteBankName(ctx context.Context, id uuid.UUID) error

	LinkBankAccount(ctx context.Context, userID uuid.UUID, req request_models.BankAccountRequest) (*db_models.BankAccount, error)
	GetBankAccount(ctx context.Context, userID uuid.UUID) (*db_models.BankAccount, error)
	UpdateBankAccount(ctx context.Context, userID uuid.UUID, req request_models.BankAccountRequest) (*db_models.BankAccount, error)
}

type BankService struct {
	repo repositories.BankRepository
}

func NewBankService(repo repositories.BankRepository) BankServiceInterface {
	return &BankService{repo: repo}
}

func (s *BankService) ListBankNames(ctx context.Context) ([]db_models.BankName, error) {
	banks, err := s.repo.ListBankNames(ctx)
	if err != nil {
		return nil, err
	}
	if banks == nil {
		banks = []db_models.BankName{}
	}
	return banks, nil
}

func (s *BankService) CreateBankName(ctx context.Context, req request_models.BankNameRequest) (*db_models.BankName, error) {
	bank := &db_models.BankName{Name: strings.TrimSpace(req.Name), Icon: req.Icon}
	if err := s.repo.CreateBankName(ctx, bank); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrBankNameExists
		}
		return nil, err
	}
	return bank, nil
}

func (s *BankService) UpdateBankName(ctx context.Context, id uuid.UUID, req request_models.BankNameRequest) (*db_models.BankName, error) {
	bank, err := s.bankName(ctx, id)
	if err != nil {
		return nil, err
	}
	bank.Name = strings.TrimSpace(req.Name)
	bank.Icon = req.Icon
	if err := s.repo.SaveBankName(ctx, bank); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrBankNameExists
		}
		return nil, err
	}
	return bank, nil
}

func (s *BankService) DeleteBankName(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.DeleteBankName(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrBankNameNotFound
	}
	return nil
}

func (s *BankService) bankName(ctx context.Context, id uuid.UUID) (*db_models.BankName, error) {
	bank, err := s.repo.FindBankName(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, utils.ErrBankNameNotFound
	}
	return bank, nil
}

func (s *BankService) LinkBankAccount(ctx context.Context, userID uuid.UUID, req request_models.BankAccountRequest) (*db_models.BankAccount, error) {
	bank, err := s.bankName(ctx, req.BankNameID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindAccountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrBankAccountExists
	}

	account := &db_models.BankAccount{
		UserID:        userID,
		BankNameID:    bank.ID,
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IFSCCode:      strings.ToUpper(strings.TrimSpace(req.IFSCCode)),
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		// unique user_id index catches a concurrent link
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrBankAccountExists
		}
		return nil, err
	}
	account.BankName = bank
	return account, nil
}

func (s *BankService) GetBankAccount(ctx context.Context, userID uuid.UUID) (*db_models.BankAccount, error) {
	account, err := s.repo.FindAccountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, utils.ErrBankAccountNotFound
	}
	return account, nil
}

func (s *BankService) UpdateBankAccount(ctx context.Context, userID uuid.UUID, req request_models.BankAccountRequest) (*db_models.BankAccount, error) {
	account, err := s.GetBankAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	bank, err := s.bankName(ctx, req.BankNameID)
	if err != nil {
		return nil, err
	}
	account.BankNameID = bank.ID
	account.AccountNumber = strings.TrimSpace(req.AccountNumber)
	account.IFSCCode = strings.ToUpper(strings.TrimSpace(req.IFSCCode))
	if err := s.repo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	account.BankName = bank
	return account, nil
}
