package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// NotificationRepo описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepo interface {
	ListByUpworkAccounts(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, upworkAccountIDs []uuid.UUID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, upworkAccountIDs []uuid.UUID) error
	CountUnread(ctx context.Context, upworkAccountIDs []uuid.UUID) (int, error)
}

// NotificationService обслуживает ленту уведомлений пользователя.
type NotificationService struct {
	notifications NotificationRepo
	users         AccountResolver
	accounts      UpworkAccountProvider
}

// NewNotificationService создаёт сервис уведомлений.
func NewNotificationService(notifications NotificationRepo, users AccountResolver, accounts UpworkAccountProvider) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		accounts:      accounts,
	}
}

// List возвращает уведомления пользователя и число непрочитанных.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, int, error) {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	notifications, err := s.notifications.ListByUpworkAccounts(ctx, accountIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("notification service: список %w", err)
	}

	unread, err := s.notifications.CountUnread(ctx, accountIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("notification service: подсчёт непрочитанных %w", err)
	}

	return notifications, unread, nil
}

// UnreadCount возвращает число непрочитанных уведомлений пользователя.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return 0, err
	}

	unread, err := s.notifications.CountUnread(ctx, accountIDs)
	if err != nil {
		return 0, fmt.Errorf("notification service: подсчёт непрочитанных %w", err)
	}

	return unread, nil
}

// MarkAsRead помечает уведомление прочитанным.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.notifications.MarkAsRead(ctx, accountIDs, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return apperror.New(apperror.ErrCodeNotFound, "уведомление не найдено")
		}
		return fmt.Errorf("notification service: пометка прочитанным %w", err)
	}

	return nil
}

// MarkAllAsRead помечает все уведомления пользователя прочитанными.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	accountIDs, err := s.userUpworkAccountIDs(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.notifications.MarkAllAsRead(ctx, accountIDs); err != nil {
		return fmt.Errorf("notification service: пометка всех прочитанными %w", err)
	}

	return nil
}

func (s *NotificationService) userUpworkAccountIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	account, err := s.users.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("notification service: получение аккаунта пользователя %w", err)
	}

	upworkAccounts, err := s.accounts.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("notification service: получение привязанных аккаунтов %w", err)
	}

	if len(upworkAccounts) == 0 {
		return nil, apperror.ErrAccountNotFound
	}

	ids := make([]uuid.UUID, 0, len(upworkAccounts))
	for _, a := range upworkAccounts {
		ids = append(ids, a.ID)
	}

	return ids, nil
}
