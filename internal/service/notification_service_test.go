package service

import (
	"context"
	"testing"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type notificationFixture struct {
	notifications *fakeNotificationRepo
	users         *fakeUserRepo
	svc           NotificationService

	trainerUser *domain.User
	trainer     *domain.Actor
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	f := &notificationFixture{
		notifications: newFakeNotificationRepo(),
		users:         newFakeUserRepo(),
	}
	f.svc = NewNotificationService(f.notifications, f.users)
	f.trainerUser = f.users.add(&domain.User{Name: "Coach", Email: "coach@example.com", Role: domain.RoleTrainer})
	f.trainer = domain.NewActor(f.trainerUser.ID, domain.RoleTrainer)
	return f
}

func TestNotifyTrainerTargetsTrainerAccount(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()

	f.svc.NotifyTrainer(ctx, domain.NotificationSessionCompleted, "Workout done")

	list, err := f.svc.List(ctx, f.trainer, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.trainerUser.ID, list[0].UserID)
	assert.Equal(t, domain.NotificationSessionCompleted, list[0].Type)
	assert.Equal(t, "Workout done", list[0].Message)
	assert.False(t, list[0].Read)
}

func TestNotifyTrainerWithoutTrainerIsSilent(t *testing.T) {
	notifications := newFakeNotificationRepo()
	users := newFakeUserRepo()
	svc := NewNotificationService(notifications, users)

	// Must not panic or error; the client operation already succeeded.
	svc.NotifyTrainer(context.Background(), domain.NotificationMeasurementAdded, "hello")
	assert.Empty(t, notifications.notifications)
}

func TestListNotificationsRecipientOnly(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()

	f.svc.NotifyTrainer(ctx, domain.NotificationSessionCompleted, "one")
	f.svc.NotifyTrainer(ctx, domain.NotificationMeasurementAdded, "two")

	// A client sees only their own (empty) inbox, not the trainer's.
	client := domain.NewActor(primitive.NewObjectID(), domain.RoleClient)
	list, err := f.svc.List(ctx, client, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.svc.List(ctx, nil, false)
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}

func TestMarkReadAndUnreadFilter(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()

	f.svc.NotifyTrainer(ctx, domain.NotificationSessionCompleted, "one")
	f.svc.NotifyTrainer(ctx, domain.NotificationMeasurementAdded, "two")

	all, err := f.svc.List(ctx, f.trainer, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, f.svc.MarkRead(ctx, f.trainer, all[0].ID))

	unread, err := f.svc.List(ctx, f.trainer, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.NotEqual(t, all[0].ID, unread[0].ID)

	// Another user cannot flip the trainer's notifications.
	client := domain.NewActor(primitive.NewObjectID(), domain.RoleClient)
	assert.ErrorIs(t, f.svc.MarkRead(ctx, client, all[1].ID), policy.ErrForbidden)

	assert.ErrorIs(t, f.svc.MarkRead(ctx, f.trainer, primitive.NewObjectID()), policy.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	f := newNotificationFixture(t)
	ctx := context.Background()

	f.svc.NotifyTrainer(ctx, domain.NotificationSessionCompleted, "one")
	f.svc.NotifyTrainer(ctx, domain.NotificationMeasurementAdded, "two")

	require.NoError(t, f.svc.MarkAllRead(ctx, f.trainer))

	unread, err := f.svc.List(ctx, f.trainer, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	assert.ErrorIs(t, f.svc.MarkAllRead(ctx, nil), policy.ErrUnauthenticated)
}
