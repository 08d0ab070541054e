package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

// TemplateRepo описывает взаимодействие сервиса с шаблонами предложений.
type TemplateRepo interface {
	Create(ctx context.Context, template *models.ProposalTemplate) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProposalTemplate, error)
	Update(ctx context.Context, template *models.ProposalTemplate) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TemplateInput — данные шаблона от клиента.
type TemplateInput struct {
	Name          string   `json:"name" binding:"required"`
	TemplateItems []string `json:"templateItems" binding:"required"`
}

// TemplateService обслуживает шаблоны предложений: общие и личные.
type TemplateService struct {
	templates TemplateRepo
}

// NewTemplateService создаёт сервис шаблонов.
func NewTemplateService(templates TemplateRepo) *TemplateService {
	return &TemplateService{templates: templates}
}

// List возвращает общие шаблоны и личные шаблоны пользователя.
func (s *TemplateService) List(ctx context.Context, userID uuid.UUID) ([]models.ProposalTemplate, error) {
	templates, err := s.templates.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("template service: список %w", err)
	}

	return templates, nil
}

// Create сохраняет личный шаблон пользователя.
func (s *TemplateService) Create(ctx context.Context, userID uuid.UUID, input TemplateInput) (*models.ProposalTemplate, error) {
	if len(input.TemplateItems) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "шаблон должен содержать хотя бы один блок")
	}

	template := models.ProposalTemplate{
		Name:          input.Name,
		TemplateItems: pq.StringArray(input.TemplateItems),
		CreatedBy:     userID,
		Type:          models.TemplateTypeCustomized,
	}

	if err := s.templates.Create(ctx, &template); err != nil {
		return nil, fmt.Errorf("template service: создание %w", err)
	}

	return &template, nil
}

// Update изменяет личный шаблон пользователя. Общие шаблоны менять нельзя.
func (s *TemplateService) Update(ctx context.Context, userID, templateID uuid.UUID, input TemplateInput) (*models.ProposalTemplate, error) {
	if len(input.TemplateItems) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "шаблон должен содержать хотя бы один блок")
	}

	template := models.ProposalTemplate{
		ID:            templateID,
		Name:          input.Name,
		TemplateItems: pq.StringArray(input.TemplateItems),
		CreatedBy:     userID,
		Type:          models.TemplateTypeCustomized,
	}

	if err := s.templates.Update(ctx, &template); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, apperror.New(apperror.ErrCodeNotFound, "шаблон не найден")
		}
		return nil, fmt.Errorf("template service: обновление %w", err)
	}

	return &template, nil
}

// Delete удаляет личный шаблон пользователя. Общие шаблоны удалять нельзя.
func (s *TemplateService) Delete(ctx context.Context, userID, templateID uuid.UUID) error {
	if err := s.templates.Delete(ctx, templateID, userID); err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return apperror.New(apperror.ErrCodeNotFound, "шаблон не найден")
		}
		return fmt.Errorf("template service: удаление %w", err)
	}

	return nil
}
