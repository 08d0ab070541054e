package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

// NotificationRepository отвечает за уведомления привязанных аккаунтов.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository создаёт экземпляр репозитория.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// ListByUpworkAccounts возвращает уведомления по набору привязанных аккаунтов,
// свежие первыми.
func (r *NotificationRepository) ListByUpworkAccounts(ctx context.Context, upworkAccountIDs []uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	query := `
		SELECT * FROM notifications
		WHERE upwork_account_id = ANY($1)
		ORDER BY posted_on DESC
	`
	if err := r.db.SelectContext(ctx, &notifications, query, pq.Array(upworkAccountIDs)); err != nil {
		return nil, fmt.Errorf("notification repository: list %w", err)
	}

	return notifications, nil
}

// MarkAsRead помечает уведомление прочитанным, если оно принадлежит
// одному из привязанных аккаунтов.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, upworkAccountIDs []uuid.UUID, notificationID uuid.UUID) error {
	query := `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND upwork_account_id = ANY($2)
	`
	result, err := r.db.ExecContext(ctx, query, notificationID, pq.Array(upworkAccountIDs))
	if err != nil {
		return fmt.Errorf("notification repository: mark as read %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("notification repository: mark as read rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead помечает все уведомления привязанных аккаунтов прочитанными.
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, upworkAccountIDs []uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE upwork_account_id = ANY($1) AND NOT is_read`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(upworkAccountIDs)); err != nil {
		return fmt.Errorf("notification repository: mark all as read %w", err)
	}

	return nil
}

// CountUnread возвращает число непрочитанных уведомлений.
func (r *NotificationRepository) CountUnread(ctx context.Context, upworkAccountIDs []uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE upwork_account_id = ANY($1) AND NOT is_read`
	if err := r.db.GetContext(ctx, &count, query, pq.Array(upworkAccountIDs)); err != nil {
		return 0, fmt.Errorf("notification repository: count unread %w", err)
	}

	return count, nil
}
