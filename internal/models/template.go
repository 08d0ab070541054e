package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TemplateType типы шаблонов предложений
const (
	TemplateTypeGeneral    = "General"
	TemplateTypeCustomized = "Customized"
)

// ProposalTemplate — пользовательский шаблон, из которого собирается предложение.
type ProposalTemplate struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	TemplateItems pq.StringArray `db:"template_items" json:"templateItems"`
	CreatedBy     uuid.UUID      `db:"created_by" json:"createdBy"`
	Type          string         `db:"type" json:"type"`
}
