package models

import (
	"time"

	"github.com/google/uuid"
)

// Task — задача на канбан-доске аккаунта, привязанная к работе.
type Task struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AccountID   uuid.UUID `db:"account_id" json:"account_id"`
	JobID       uuid.UUID `db:"job_id" json:"job"`
	AssignedTo  uuid.UUID `db:"assigned_to" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"columnId"`
	Priority    string    `db:"priority" json:"priority"`
	DueDate     time.Time `db:"due_date" json:"dueDate"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Assignee заполняется join-ом при выдаче доски.
	Assignee *TaskAssignee `db:"-" json:"assignee,omitempty"`
}

// TaskAssignee — краткая карточка исполнителя для доски.
type TaskAssignee struct {
	ID   uuid.UUID `db:"assignee_id" json:"_id"`
	Name string    `db:"assignee_name" json:"name"`
}
