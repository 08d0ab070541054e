package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bidbotteam/bidbot-backend/internal/models"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotificationNotFound возвращается, когда уведомление не найдено.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrSubscriptionNotFound возвращается, когда подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// UserRepository отвечает за пользователей и их аккаунты.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}

	return &user, nil
}

// GetAccountByUserID возвращает аккаунт, к которому привязан пользователь.
func (r *UserRepository) GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	var account models.Account
	query := `
		SELECT a.* FROM accounts a
		JOIN users u ON u.account_id = a.id
		WHERE u.id = $1
	`
	if err := r.db.GetContext(ctx, &account, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get account by user id %w", err)
	}

	return &account, nil
}

// GetSubscriptionByID возвращает подписку по идентификатору.
func (r *UserRepository) GetSubscriptionByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.GetContext(ctx, &subscription, `SELECT * FROM subscriptions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("user repository: get subscription %w", err)
	}

	return &subscription, nil
}

// ListUserIDsByUpworkAccount возвращает пользователей, которым принадлежат
// события привязанного аккаунта. Используется для адресной доставки по вебсокету.
func (r *UserRepository) ListUserIDsByUpworkAccount(ctx context.Context, upworkAccountID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT u.id FROM users u
		JOIN upwork_accounts ua ON ua.account_id = u.account_id
		WHERE ua.id = $1
	`
	if err := r.db.SelectContext(ctx, &ids, query, upworkAccountID); err != nil {
		return nil, fmt.Errorf("user repository: list user ids by upwork account %w", err)
	}

	return ids, nil
}

// ListByIDs возвращает пользователей по списку идентификаторов.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, `SELECT * FROM users WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("user repository: list by ids %w", err)
	}

	return users, nil
}
