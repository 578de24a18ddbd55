package service

import (
	"context"
	"errors"
	"log"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/policy"
	"alcyxob/pt-crm/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotificationNotFound = errors.New("notification not found")

// TrainerNotifier raises a notification addressed to the trainer account.
// Split out so the session and measurement services depend on just this.
type TrainerNotifier interface {
	NotifyTrainer(ctx context.Context, kind domain.NotificationType, message string)
}

// NotificationService lists and flips a user's own notifications, and
// creates the trainer-addressed ones raised by client activity.
type NotificationService interface {
	TrainerNotifier
	List(ctx context.Context, actor *domain.Actor, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, actor *domain.Actor) error
}

// notificationService implements the NotificationService interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewNotificationService creates a new instance of notificationService.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// NotifyTrainer addresses a notification to the trainer account. The product
// assumes a single trainer; with no trainer registered yet the notification
// is skipped, never failed, since it is a side effect of a client operation
// that already succeeded.
func (s *notificationService) NotifyTrainer(ctx context.Context, kind domain.NotificationType, message string) {
	trainer, err := s.userRepo.GetFirstByRole(ctx, domain.RoleTrainer)
	if err != nil {
		log.Printf("WARN: no trainer account to notify (%s): %v", kind, err)
		return
	}

	notification := &domain.Notification{
		UserID:  trainer.ID,
		Type:    kind,
		Message: message,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("ERROR: failed to create %s notification: %v", kind, err)
	}
}

// List returns the actor's own notifications.
func (s *notificationService) List(ctx context.Context, actor *domain.Actor, unreadOnly bool) ([]domain.Notification, error) {
	if actor == nil {
		return nil, policy.ErrUnauthenticated
	}
	if err := policy.Authorize(actor, policy.ActionReadNotifications, policy.OwnedBy(actor.ID)); err != nil {
		return nil, err
	}
	return s.notificationRepo.GetByUserID(ctx, actor.ID, unreadOnly)
}

// MarkRead flips one of the actor's notifications to read.
func (s *notificationService) MarkRead(ctx context.Context, actor *domain.Actor, id primitive.ObjectID) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return policy.Authorize(actor, policy.ActionMarkNotification, policy.Missing())
		}
		return err
	}
	if err := policy.Authorize(actor, policy.ActionMarkNotification, policy.OwnedBy(notification.UserID)); err != nil {
		return err
	}
	return s.notificationRepo.SetRead(ctx, id, true)
}

// MarkAllRead marks every notification of the actor as read.
func (s *notificationService) MarkAllRead(ctx context.Context, actor *domain.Actor) error {
	if actor == nil {
		return policy.ErrUnauthenticated
	}
	if err := policy.Authorize(actor, policy.ActionMarkNotification, policy.OwnedBy(actor.ID)); err != nil {
		return err
	}
	return s.notificationRepo.MarkAllRead(ctx, actor.ID)
}
