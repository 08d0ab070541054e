package models

import (
	"time"

	"github.com/google/uuid"
)

// SuggestedJob — работа, прошедшая фильтры и ожидающая решения человека.
// Инвариант: bid_price заполнен только для fixed работ, hourly_price —
// только для hourly; одновременно оба поля не заполняются никогда.
type SuggestedJob struct {
	ID                   uuid.UUID `db:"id" json:"id"`
	UpworkAccountID      uuid.UUID `db:"upwork_account_id" json:"upwork_account_id"`
	JobID                uuid.UUID `db:"job_id" json:"job_id"`
	ProposalGenerated    string    `db:"proposal_generated" json:"proposalGenerated"`
	ProposalStatus       string    `db:"proposal_status" json:"proposalStatus"`
	JobApplicationStatus string    `db:"job_application_status" json:"jobApplicationStatus"`
	BidPrice             *float64  `db:"bid_price" json:"bidPrice,omitempty"`
	HourlyPrice          *float64  `db:"hourly_price" json:"hourlyPrice,omitempty"`
	JobType              string    `db:"job_type" json:"jobType"`
	JobDuration          string    `db:"job_duration" json:"jobDuration"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`

	// Job заполняется join-ом при выдаче списков.
	Job *Job `db:"-" json:"job,omitempty"`
}

// AppliedJob — работа, на которую человек решил податься.
type AppliedJob struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	UpworkAccountID      uuid.UUID  `db:"upwork_account_id" json:"upwork_account_id"`
	JobID                uuid.UUID  `db:"job_id" json:"job_id"`
	ProposalGenerated    string     `db:"proposal_generated" json:"proposalGenerated"`
	JobApplicationStatus string     `db:"job_application_status" json:"jobApplicationStatus"`
	BidPrice             *float64   `db:"bid_price" json:"bidPrice,omitempty"`
	HourlyPrice          *float64   `db:"hourly_price" json:"hourlyPrice,omitempty"`
	JobType              string     `db:"job_type" json:"jobType"`
	JobDuration          string     `db:"job_duration" json:"jobDuration"`
	JobStatus            string     `db:"job_status" json:"jobStatus"`
	AppliedOn            time.Time  `db:"applied_on" json:"appliedOn"`
	CompletionDate       *time.Time `db:"completion_date" json:"completionDate,omitempty"`

	Job *Job `db:"-" json:"job,omitempty"`
}

// Notification — уведомление, показываемое пользователю в интерфейсе.
type Notification struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UpworkAccountID uuid.UUID `db:"upwork_account_id" json:"upwork_account_id"`
	PostedOn        time.Time `db:"posted_on" json:"postedOn"`
	IsRead          bool      `db:"is_read" json:"isRead"`
	Title           string    `db:"title" json:"title"`
	Icon            *string   `db:"icon" json:"icon,omitempty"`
	ImageURL        *string   `db:"image_url" json:"imageUrl,omitempty"`
	RedirectURL     *string   `db:"redirect_url" json:"redirect_url,omitempty"`
}
