package models

import (
	"time"

	"github.com/google/uuid"
)

// Connects — баланс коннектов привязанного аккаунта биржи.
type Connects struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UpworkAccountID uuid.UUID `db:"upwork_account_id" json:"upwork_account_id"`
	Connects        int       `db:"connects" json:"connects"`
}

// ConnectsHistory — запись об изменении баланса коннектов.
type ConnectsHistory struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConnectsID     uuid.UUID `db:"connects_id" json:"connects_id"`
	Action         string    `db:"action" json:"action"`
	ConnectsChange int       `db:"connects_change" json:"connectsChange"`
	Date           time.Time `db:"date" json:"date"`
}
