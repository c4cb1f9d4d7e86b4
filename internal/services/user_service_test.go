package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/storage"
	"seraphina/pkg/utils"
)

func newUserService(t *testing.T) (UserServiceInterface, *recordingNotifier, *gormUsers) {
	t.Helper()
	db := testdb.New(t)
	store, err := storage.NewLocalFileStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	users := repositories.NewUserRepository(db)
	return NewUserService(users, store, notifier, zap.NewNop()), notifier, &gormUsers{t: t, repo: users}
}

type gormUsers struct {
	t    *testing.T
	repo repositories.UserRepository
}

func (g *gormUsers) seed(phone, first string) *db_models.User {
	g.t.Helper()
	user := &db_models.User{Phone: phone, FirstName: first, AdminVerified: db_models.VerificationPending}
	require.NoError(g.t, g.repo.Create(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _, users := newUserService(t)
	ctx := context.Background()
	first := users.seed("+919855000001", "Ravi")
	second := users.seed("+919855000002", "Sita")

	updated, err := svc.UpdateProfile(ctx, first.ID, request_models.UpdateProfileRequest{
		LastName: strPtr("Kumar"),
		Email:    strPtr("ravi@example.com"),
		DOB:      strPtr("1988-02-29"),
	}, KYCFiles{})
	require.NoError(t, err)
	assert.Equal(t, "Ravi", updated.FirstName)
	assert.Equal(t, "Kumar", updated.LastName)
	require.NotNil(t, updated.DOB)
	assert.Equal(t, 1988, updated.DOB.Year())

	_, err = svc.UpdateProfile(ctx, second.ID, request_models.UpdateProfileRequest{Email: strPtr("RAVI@example.com")}, KYCFiles{})
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyUsed)

	_, err = svc.UpdateProfile(ctx, second.ID, request_models.UpdateProfileRequest{DOB: strPtr("29/02/1988")}, KYCFiles{})
	assert.ErrorIs(t, err, utils.ErrInvalidField)

	_, err = svc.UpdateProfileImage(ctx, second.ID, nil)
	assert.ErrorIs(t, err, utils.ErrMissingFields)
}

func TestUserService_AdminVerification(t *testing.T) {
	svc, notifier, users := newUserService(t)
	ctx := context.Background()
	users.seed("+919855000011", "Asha")
	pending := users.seed("+919855000012", "Gopal")

	user, err := svc.SetVerification(ctx, pending.ID, db_models.VerificationApproved)
	require.NoError(t, err)
	assert.Equal(t, db_models.VerificationApproved, user.AdminVerified)

	// unchanged status does not notify again
	_, err = svc.SetVerification(ctx, pending.ID, db_models.VerificationApproved)
	require.NoError(t, err)
	assert.Equal(t, []string{"Account Approved"}, notifier.titles())

	_, err = svc.SetVerification(ctx, pending.ID, "maybe")
	assert.ErrorIs(t, err, utils.ErrInvalidField)

	page, err := svc.ListUsers(ctx, repositories.UserFilter{Verification: db_models.VerificationPending, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "Asha", page.Items[0].FirstName)

	page, err = svc.ListUsers(ctx, repositories.UserFilter{Search: "Gop", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = svc.ListUsers(ctx, repositories.UserFilter{Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
}
