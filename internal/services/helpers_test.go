package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/internal/repositories"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []NotificationEvent
}

func (r *recordingNotifier) Notify(ev NotificationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Title)
	}
	return out
}

func seedUser(t *testing.T, db *gorm.DB, phone string) *db_models.User {
	t.Helper()
	user := &db_models.User{
		Phone:         phone,
		FirstName:     "Meera",
		LastName:      "Iyer",
		IsVerified:    true,
		AdminVerified: db_models.VerificationApproved,
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func ledgerEntries(t *testing.T, db *gorm.DB, user *db_models.User) []db_models.Transaction {
	t.Helper()
	entries, err := repositories.NewLedgerRepository(db).FindByUser(context.Background(), user.ID)
	require.NoError(t, err)
	return entries
}
