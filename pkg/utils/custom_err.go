package utils

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every domain error unwraps to exactly one of these and the
// HTTP layer picks the status code from the kind.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrDatabaseError = errors.New("database error")
)

type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func newAppError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

var (
	ErrInvalidPage     = newAppError(ErrValidation, "page must be greater than 0")
	ErrInvalidPageSize = newAppError(ErrValidation, "page size must be between 1 and 100")
	ErrInvalidAmount   = newAppError(ErrValidation, "amount must be a positive number")
	ErrMissingFields   = newAppError(ErrValidation, "missing required fields")
	ErrInvalidField    = newAppError(ErrValidation, "invalid field value")

	ErrUserNotFound         = newAppError(ErrNotFound, "user not found")
	ErrPlanNotFound         = newAppError(ErrNotFound, "plan not found")
	ErrInvestmentNotFound   = newAppError(ErrNotFound, "investment plan not found")
	ErrPurchaseNotFound     = newAppError(ErrNotFound, "investment purchase not found")
	ErrCategoryNotFound     = newAppError(ErrNotFound, "investment category not found")
	ErrOfferingNotFound     = newAppError(ErrNotFound, "service offering not found")
	ErrBankNameNotFound     = newAppError(ErrNotFound, "bank not found")
	ErrBankAccountNotFound  = newAppError(ErrNotFound, "bank account not found")
	ErrNotificationNotFound = newAppError(ErrNotFound, "notification not found")
	ErrPricingNotConfigured = newAppError(ErrNotFound, "plan pricing is not configured")

	ErrInsufficientFunds      = newAppError(ErrValidation, "insufficient wallet balance")
	ErrBelowMinimumInvestment = newAppError(ErrValidation, "amount is below the plan minimum")
	ErrInvestmentPlanInactive = newAppError(ErrValidation, "investment plan is not active")
	ErrFreePlanNotRenewable   = newAppError(ErrValidation, "free plans cannot be renewed")
	ErrUnknownService         = newAppError(ErrValidation, "unknown service ids for tier")
	ErrInvalidOTP             = newAppError(ErrValidation, "invalid or expired otp")
	ErrOTPMaxAttempts         = newAppError(ErrValidation, "too many otp attempts, request a new code")
	ErrOTPResendTooSoon       = newAppError(ErrValidation, "please wait before requesting a new otp")
	ErrUserNotVerified        = newAppError(ErrValidation, "phone number is not verified")
	ErrInvalidUpload          = newAppError(ErrValidation, "file type is not allowed")
	ErrUploadTooLarge         = newAppError(ErrValidation, "file exceeds the upload size limit")
	ErrIllegalTransition      = newAppError(ErrConflict, "illegal status transition")

	ErrFreePlanAlreadyUsed   = newAppError(ErrConflict, "free plan has already been used")
	ErrDuplicateService      = newAppError(ErrConflict, "services already present in an active plan of this tier")
	ErrPlanNotActive         = newAppError(ErrConflict, "plan is not active")
	ErrPlanAlreadyRenewed    = newAppError(ErrConflict, "plan has already been renewed")
	ErrBankAccountExists     = newAppError(ErrConflict, "bank account already linked")
	ErrBankNameExists        = newAppError(ErrConflict, "bank already exists")
	ErrOfferingExists        = newAppError(ErrConflict, "service offering already exists for this tier")
	ErrCategoryExists        = newAppError(ErrConflict, "investment category already exists")
	ErrEmailAlreadyUsed      = newAppError(ErrConflict, "email is already in use")
	ErrPurchaseNotCancelable = newAppError(ErrConflict, "investment purchase cannot be cancelled")

	ErrInvalidCredentials = newAppError(ErrUnauthorized, "invalid email or password")
	ErrAccountNotApproved = newAppError(ErrForbidden, "account is pending admin approval")

	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
	ErrTransactionIDExhausted = errors.New("could not allocate a unique transaction id")
)

type detailedError struct {
	base    *AppError
	details []string
}

func (e *detailedError) Error() string {
	if len(e.details) == 0 {
		return e.base.Message
	}
	return fmt.Sprintf("%s: %s", e.base.Message, strings.Join(e.details, ", "))
}

func (e *detailedError) Unwrap() error { return e.base }

func (e *detailedError) Details() []string { return e.details }

// WithDetails attaches field names or ids to a domain error without losing
// its identity for errors.Is.
func WithDetails(base *AppError, details ...string) error {
	return &detailedError{base: base, details: details}
}

// BatchError reports which element of a batch request failed.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Err.Error())
}

func (e *BatchError) Unwrap() error { return e.Err }

func ErrorDetails(err error) []string {
	var d interface{ Details() []string }
	if errors.As(err, &d) {
		return d.Details()
	}
	return nil
}
