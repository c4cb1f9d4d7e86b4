package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/storage"
	"seraphina/pkg/utils"
)

const dobLayout = "2006-01-02"

// KYCFiles holds the optional uploads of the registration and profile forms.
type KYCFiles struct {
	ProfileImage     *multipart.FileHeader
	AadharFrontImage *multipart.FileHeader
	AadharBackImage  *multipart.FileHeader
	PanFrontImage    *multipart.FileHeader
	PanBackImage     *multipart.FileHeader
}

// storeKYC saves each present upload and points the user at the stored name.
// Files already written stay on disk if a later one fails.
func storeKYC(store storage.FileStore, user *db_models.User, files KYCFiles) error {
	targets := []struct {
		file *multipart.FileHeader
		kind storage.Kind
		dst  *string
	}{
		{files.ProfileImage, storage.KindImage, &user.ProfileImage},
		{files.AadharFrontImage, storage.KindDocument, &user.AadharFrontImage},
		{files.AadharBackImage, storage.KindDocument, &user.AadharBackImage},
		{files.PanFrontImage, storage.KindDocument, &user.PanFrontImage},
		{files.PanBackImage, storage.KindDocument, &user.PanBackImage},
	}
	for _, t := range targets {
		if t.file == nil {
			continue
		}
		name, err := store.Save(t.file, t.kind)
		if err != nil {
			return err
		}
		*t.dst = name
	}
	return nil
}

func parseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	dob, err := time.Parse(dobLayout, raw)
	if err != nil {
		return nil, utils.WithDetails(utils.ErrInvalidField, "dob")
	}
	return &dob, nil
}

// claimEmail sets the user's email unless another account already owns it.
func claimEmail(ctx context.Context, users repositories.UserRepository, user *db_models.User, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		user.Email = nil
		return nil
	}
	owner, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if owner != nil && owner.ID != user.ID {
		return utils.ErrEmailAlreadyUsed
	}
	user.Email = &email
	return nil
}

type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest, files KYCFiles) (*db_models.User, error)
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*db_models.User, error)

	ListUsers(ctx context.Context, filter repositories.UserFilter) (*resp.Page[db_models.User], error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error)
	SetVerification(ctx context.Context, userID uuid.UUID, status db_models.VerificationStatus) (*db_models.User, error)
}

type UserService struct {
	users    repositories.UserRepository
	store    storage.FileStore
	notifier Notifier
	log      *zap.Logger
}

func NewUserService(users repositories.UserRepository, store storage.FileStore, notifier Notifier, log *zap.Logger) UserServiceInterface {
	return &UserService{users: users, store: store, notifier: notifier, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := s.users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest, files KYCFiles) (*db_models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	assign := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	assign(&user.FirstName, req.FirstName)
	assign(&user.MiddleName, req.MiddleName)
	assign(&user.LastName, req.LastName)
	assign(&user.Gender, req.Gender)
	assign(&user.Address, req.Address)
	assign(&user.AadharNumber, req.AadharNumber)
	assign(&user.PanNumber, req.PanNumber)

	if req.DOB != nil {
		dob, err := parseDOB(*req.DOB)
		if err != nil {
			return nil, err
		}
		user.DOB = dob
	}
	if req.Email != nil {
		if err := claimEmail(ctx, s.users, user, *req.Email); err != nil {
			return nil, err
		}
	}
	if err := storeKYC(s.store, user, files); err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfileImage(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*db_models.User, error) {
	if file == nil {
		return nil, utils.WithDetails(utils.ErrMissingFields, "profile_image")
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := storeKYC(s.store, user, KYCFiles{ProfileImage: file}); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter) (*resp.Page[db_models.User], error) {
	if err := validatePage(filter.Page, filter.PageSize); err != nil {
		return nil, err
	}
	if filter.Verification != "" && !filter.Verification.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "verification")
	}
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []db_models.User{}
	}
	return &resp.Page[db_models.User]{Items: users, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	return s.GetProfile(ctx, userID)
}

func (s *UserService) SetVerification(ctx context.Context, userID uuid.UUID, status db_models.VerificationStatus) (*db_models.User, error) {
	if !status.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "status")
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AdminVerified == status {
		return user, nil
	}
	user.AdminVerified = status
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user verification changed", zap.String("user_id", user.ID.String()), zap.String("status", string(status)))

	switch status {
	case db_models.VerificationApproved:
		s.notifier.Notify(NotificationEvent{
			UserID: user.ID,
			Kind:   db_models.NotifyAccount,
			Title:  "Account Approved",
			Body:   "Your account has been verified. You can now sign in.",
		})
	case db_models.VerificationRejected:
		s.notifier.Notify(NotificationEvent{
			UserID: user.ID,
			Kind:   db_models.NotifyAccount,
			Title:  "Account Rejected",
			Body:   "Your account verification was rejected. Please review your documents.",
		})
	}
	return user, nil
}
