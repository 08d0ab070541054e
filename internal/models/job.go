package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job описывает объявление о работе, снятое ботом с биржи.
// После создания запись не меняется: пайплайн читает её только на вход.
type Job struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	UpworkID       string         `db:"upwork_id" json:"upwork_id"`
	Title          string         `db:"title" json:"title"`
	Description    string         `db:"description" json:"description"`
	Country        string         `db:"country" json:"country"`
	Budget         *float64       `db:"budget" json:"budget,omitempty"`
	MinHourlyPrice *float64       `db:"min_hourly_price" json:"minHourlyPrice,omitempty"`
	MaxHourlyPrice *float64       `db:"max_hourly_price" json:"maxHourlyPrice,omitempty"`
	Items          pq.StringArray `db:"items" json:"items"`
	PaymentStatus  string         `db:"payment_status" json:"payment_status"`
	PostedOn       *string        `db:"posted_on" json:"postedOn,omitempty"`
	Proposals      int            `db:"proposals" json:"proposals"`
	Rating         float64        `db:"rating" json:"rating"`
	Spendings      float64        `db:"spendings" json:"spendings"`
	Type           string         `db:"type" json:"type"`
	URL            string         `db:"url" json:"url"`
	JobStatus      string         `db:"job_status" json:"job_status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// IsPaymentUnverified проверяет, что платёжный статус клиента не подтверждён.
// Биржа отдаёт статус свободным текстом, поэтому ищем подстроку.
func (j *Job) IsPaymentUnverified() bool {
	return strings.Contains(j.PaymentStatus, "unverified")
}
