package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type capturePusher struct {
	mu    sync.Mutex
	users []string
}

func (c *capturePusher) Send(userID string, _ any) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, userID)
	return 1
}

type capturePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (c *capturePublisher) Publish(_ context.Context, key string, _ interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
	return nil
}

type captureMailer struct {
	mu       sync.Mutex
	subjects map[string][]string
}

func (c *captureMailer) SendNotification(to, subject, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subjects == nil {
		c.subjects = map[string][]string{}
	}
	c.subjects[to] = append(c.subjects[to], subject)
	return nil
}

func TestNotificationDispatcher_DeliversOnAllChannels(t *testing.T) {
	db := testdb.New(t)
	users := repositories.NewUserRepository(db)
	withEmail := seedUser(t, db, "+919866000001")
	email := "meera@example.com"
	withEmail.Email = &email
	require.NoError(t, users.Save(context.Background(), withEmail))
	noEmail := seedUser(t, db, "+919866000002")

	pusher, publisher, mailer := &capturePusher{}, &capturePublisher{}, &captureMailer{}
	d := NewNotificationDispatcher(repositories.NewNotificationRepository(db), users, zap.NewNop(), 8).
		WithPusher(pusher).
		WithPublisher(publisher).
		WithMailer(mailer)
	d.Start()

	d.Notify(NotificationEvent{UserID: withEmail.ID, Kind: db_models.NotifyWallet, Title: "Wallet Amount Added", Body: "b",
		Data: map[string]any{"transaction_id": "QV0000000001"}})
	d.Notify(NotificationEvent{UserID: noEmail.ID, Kind: db_models.NotifyPlan, Title: "Plan Purchased", Body: "b"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	assert.ElementsMatch(t, []string{withEmail.ID.String(), noEmail.ID.String()}, pusher.users)
	assert.ElementsMatch(t, []string{withEmail.ID.String(), noEmail.ID.String()}, publisher.keys)
	assert.Equal(t, map[string][]string{email: {"Wallet Amount Added"}}, mailer.subjects)

	page, err := d.ListForUser(context.Background(), withEmail.ID, 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	n := page.Items[0]
	assert.JSONEq(t, `{"transaction_id":"QV0000000001"}`, string(n.Data))

	require.NoError(t, d.MarkRead(context.Background(), withEmail.ID, n.ID))
	assert.ErrorIs(t, d.MarkRead(context.Background(), noEmail.ID, n.ID), utils.ErrNotificationNotFound)
	assert.ErrorIs(t, d.MarkRead(context.Background(), withEmail.ID, uuid.New()), utils.ErrNotificationNotFound)

	// stopped dispatchers drop instead of panicking on a closed channel
	d.Notify(NotificationEvent{UserID: noEmail.ID, Title: "late"})
	_, err = d.ListForUser(context.Background(), noEmail.ID, 1, 101)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestNotificationDispatcher_NotifyNeverBlocks(t *testing.T) {
	db := testdb.New(t)
	d := NewNotificationDispatcher(repositories.NewNotificationRepository(db), repositories.NewUserRepository(db), zap.NewNop(), 1)

	// not started: the queue fills after one event and the rest are dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Notify(NotificationEvent{UserID: uuid.New(), Title: "x"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
	assert.Len(t, d.queue, 1)
}
