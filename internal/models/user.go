package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает пользователя сервиса автоматизации ставок.
// Регистрация и вход обслуживаются отдельным сервисом, здесь
// пользователь нужен для привязки маршрутов к его аккаунту.
type User struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Role      string     `db:"role" json:"role"`
	AccountID *uuid.UUID `db:"account_id" json:"account_id,omitempty"`
	Blocked   bool       `db:"blocked" json:"blocked"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Account объединяет команду пользователей, подписку и привязанные аккаунты биржи.
type Account struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	OwnerID           uuid.UUID  `db:"owner_id" json:"owner_id"`
	Type              string     `db:"type" json:"type"`
	MaxUpworkAccounts int        `db:"max_upwork_accounts" json:"max_upwork_accounts"`
	Description       *string    `db:"description" json:"description,omitempty"`
	SubscriptionID    *uuid.UUID `db:"subscription_id" json:"subscription_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}

// Subscription описывает тарифный план аккаунта.
// Оплата и вебхуки платёжного провайдера обслуживаются снаружи.
type Subscription struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Type       string    `db:"type" json:"type"`
	ExpiryDate time.Time `db:"expiry_date" json:"expiry_date"`
	IsExpired  bool      `db:"is_expired" json:"is_expired"`
}
