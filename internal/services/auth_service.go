package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	mem "seraphina/pkg/memcache"
	"seraphina/pkg/storage"
	"seraphina/pkg/utils"
)

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
	// ExposeCode echoes the code in the response. Development only.
	ExposeCode bool
}

type AuthServiceInterface interface {
	GenerateOtp(ctx context.Context, phone string) (*resp.OtpResponse, error)
	ResendOtp(ctx context.Context, phone string) (*resp.OtpResponse, error)
	VerifyOtp(ctx context.Context, req request_models.VerifyOtpRequest) (*resp.VerifyOtpResponse, error)
	CompleteRegistration(ctx context.Context, req request_models.RegisterRequest, files KYCFiles) (*resp.RegistrationResponse, error)

	AdminLogin(ctx context.Context, req request_models.AdminLoginRequest) (*resp.AdminLoginResponse, error)
	CreateAdmin(ctx context.Context, name, email, password string) (*db_models.Admin, error)
}

type AuthService struct {
	users    repositories.UserRepository
	admins   repositories.AdminRepository
	otps     mem.OTPStore
	sms      SMSSender
	tokens   *utils.TokenManager
	store    storage.FileStore
	notifier Notifier
	cfg      OTPConfig
	log      *zap.Logger
}

func NewAuthService(
	users repositories.UserRepository,
	admins repositories.AdminRepository,
	otps mem.OTPStore,
	sms SMSSender,
	tokens *utils.TokenManager,
	store storage.FileStore,
	notifier Notifier,
	cfg OTPConfig,
	log *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		users:    users,
		admins:   admins,
		otps:     otps,
		sms:      sms,
		tokens:   tokens,
		store:    store,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

func normalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}

func (s *AuthService) GenerateOtp(ctx context.Context, phone string) (*resp.OtpResponse, error) {
	phone = normalizePhone(phone)
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &db_models.User{
			Phone:         phone,
			Role:          utils.RoleUser,
			AdminVerified: db_models.VerificationPending,
		}
		if err := s.users.Create(ctx, user); err != nil {
			// a concurrent request for the same phone won the insert
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
		} else {
			s.log.Info("user created from otp request", zap.String("user_id", user.ID.String()))
		}
	}
	return s.issueOtp(ctx, phone)
}

func (s *AuthService) ResendOtp(ctx context.Context, phone string) (*resp.OtpResponse, error) {
	phone = normalizePhone(phone)
	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return s.issueOtp(ctx, phone)
}

func (s *AuthService) issueOtp(ctx context.Context, phone string) (*resp.OtpResponse, error) {
	ok, wait, err := s.otps.CanResend(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !ok {
		seconds := int(math.Ceil(wait.Seconds()))
		return nil, utils.WithDetails(utils.ErrOTPResendTooSoon, fmt.Sprintf("retry in %ds", seconds))
	}

	code, err := utils.GenerateOtpCode(s.cfg.Length)
	if err != nil {
		return nil, err
	}
	if err := s.otps.Save(ctx, phone, code, s.cfg.TTL, s.cfg.ResendWindow); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your Seraphina verification code is %s. It expires in %d minutes.", code, int(s.cfg.TTL.Minutes()))
	if err := s.sms.SendSMS(phone, message); err != nil {
		s.log.Error("failed to send otp sms", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}

	out := &resp.OtpResponse{Phone: phone}
	if s.cfg.ExposeCode {
		out.Code = code
	}
	return out, nil
}

func (s *AuthService) VerifyOtp(ctx context.Context, req request_models.VerifyOtpRequest) (*resp.VerifyOtpResponse, error) {
	phone := normalizePhone(req.Phone)
	if err := s.otps.Verify(ctx, phone, req.Otp, s.cfg.MaxAttempts); err != nil {
		switch {
		case errors.Is(err, mem.ErrOTPMaxAttempts):
			return nil, utils.ErrOTPMaxAttempts
		case errors.Is(err, mem.ErrOTPNotFound), errors.Is(err, mem.ErrOTPMismatch):
			return nil, utils.ErrInvalidOTP
		}
		return nil, err
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	user.IsVerified = true
	if req.DeviceToken != "" {
		user.DeviceToken = req.DeviceToken
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	if !user.IsRegistered() {
		return &resp.VerifyOtpResponse{UserExist: false}, nil
	}
	if user.AdminVerified != db_models.VerificationApproved {
		return nil, utils.ErrAccountNotApproved
	}

	token, err := s.tokens.CreateToken(user.ID, user.Phone, utils.RoleUser)
	if err != nil {
		return nil, err
	}
	return &resp.VerifyOtpResponse{UserExist: true, Token: token, User: user}, nil
}

func (s *AuthService) CompleteRegistration(ctx context.Context, req request_models.RegisterRequest, files KYCFiles) (*resp.RegistrationResponse, error) {
	user, err := s.users.FindByPhone(ctx, normalizePhone(req.Phone))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, utils.ErrUserNotVerified
	}

	var missing []string
	if strings.TrimSpace(req.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(req.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if len(missing) > 0 {
		return nil, utils.WithDetails(utils.ErrMissingFields, missing...)
	}

	dob, err := parseDOB(req.DOB)
	if err != nil {
		return nil, err
	}
	if err := claimEmail(ctx, s.users, user, req.Email); err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.MiddleName = strings.TrimSpace(req.MiddleName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.DOB = dob
	user.Gender = req.Gender
	user.Address = req.Address
	user.AadharNumber = req.AadharNumber
	user.PanNumber = req.PanNumber

	if err := storeKYC(s.store, user, files); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	out := &resp.RegistrationResponse{User: user}
	if user.AdminVerified != db_models.VerificationApproved {
		out.AwaitingApproval = true
		s.notifier.Notify(NotificationEvent{
			UserID: user.ID,
			Kind:   db_models.NotifyAccount,
			Title:  "Registration Received",
			Body:   "Your details were submitted and are awaiting admin approval.",
		})
		return out, nil
	}

	out.Token, err = s.tokens.CreateToken(user.ID, user.Phone, utils.RoleUser)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, req request_models.AdminLoginRequest) (*resp.AdminLoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(admin.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(admin.ID, "", utils.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &resp.AdminLoginResponse{Token: token, Name: admin.Name, Email: admin.Email}, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*db_models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 6 {
		return nil, utils.WithDetails(utils.ErrInvalidField, "email", "password")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &db_models.Admin{Name: name, Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return admin, nil
}
