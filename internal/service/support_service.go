package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/pkg/apperror"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
)

const faqCacheKey = "faq:list"

// TicketRepo описывает взаимодействие сервиса с обращениями в поддержку.
type TicketRepo interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]models.Ticket, error)
	GetByID(ctx context.Context, accountID, ticketID uuid.UUID) (*models.Ticket, error)
	UpdateStatus(ctx context.Context, accountID, ticketID uuid.UUID, status string) error
	AddResponse(ctx context.Context, response *models.TicketResponse) error
}

// FAQRepo описывает доступ к справочнику вопросов-ответов.
type FAQRepo interface {
	List(ctx context.Context) ([]models.FAQ, error)
}

// TicketInput — данные нового обращения.
type TicketInput struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Type        string `json:"type"`
}

// SupportService обслуживает обращения в поддержку и справочник FAQ.
// Справочник меняется редко, поэтому кэшируется в памяти.
type SupportService struct {
	tickets TicketRepo
	faqs    FAQRepo
	users   AccountResolver
	cache   *cache.Cache
}

// NewSupportService создаёт сервис поддержки.
func NewSupportService(tickets TicketRepo, faqs FAQRepo, users AccountResolver) *SupportService {
	return &SupportService{
		tickets: tickets,
		faqs:    faqs,
		users:   users,
		cache:   cache.New(10*time.Minute, 15*time.Minute),
	}
}

// CreateTicket регистрирует новое обращение.
func (s *SupportService) CreateTicket(ctx context.Context, userID uuid.UUID, input TicketInput) (*models.Ticket, error) {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := models.ValidTaskPriorities[input.Priority]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "недопустимый приоритет обращения")
	}

	ticketType := input.Type
	if ticketType == "" {
		ticketType = models.TicketTypeOther
	}
	if _, ok := models.ValidTicketTypes[ticketType]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "недопустимая категория обращения")
	}

	ticket := models.Ticket{
		AccountID:   account.ID,
		Subject:     input.Subject,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      models.TicketStatusActive,
		Type:        ticketType,
	}

	if err := s.tickets.Create(ctx, &ticket); err != nil {
		return nil, fmt.Errorf("support service: создание обращения %w", err)
	}

	return &ticket, nil
}

// ListTickets возвращает обращения аккаунта с перепиской.
func (s *SupportService) ListTickets(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.tickets.ListByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("support service: список обращений %w", err)
	}

	return tickets, nil
}

// AddResponse добавляет сообщение пользователя в переписку по обращению.
func (s *SupportService) AddResponse(ctx context.Context, userID, ticketID uuid.UUID, message string) (*models.TicketResponse, error) {
	if message == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "сообщение не может быть пустым")
	}

	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, account.ID, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, apperror.ErrTicketNotFound
		}
		return nil, fmt.Errorf("support service: получение обращения %w", err)
	}

	if ticket.Status != models.TicketStatusActive {
		return nil, apperror.New(apperror.ErrCodeValidation, "переписка по закрытому обращению недоступна")
	}

	response := models.TicketResponse{
		TicketID: ticket.ID,
		Message:  message,
		IsAdmin:  false,
	}

	if err := s.tickets.AddResponse(ctx, &response); err != nil {
		return nil, fmt.Errorf("support service: добавление сообщения %w", err)
	}

	return &response, nil
}

// UpdateTicketStatus меняет статус обращения.
func (s *SupportService) UpdateTicketStatus(ctx context.Context, userID, ticketID uuid.UUID, status string) error {
	if _, ok := models.ValidTicketStatuses[status]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "недопустимый статус обращения")
	}

	account, err := s.resolveAccount(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.tickets.UpdateStatus(ctx, account.ID, ticketID, status); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return apperror.ErrTicketNotFound
		}
		return fmt.Errorf("support service: смена статуса %w", err)
	}

	return nil
}

// ListFAQs возвращает справочник вопросов-ответов, отдавая кэш при попадании.
func (s *SupportService) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	if cached, ok := s.cache.Get(faqCacheKey); ok {
		return cached.([]models.FAQ), nil
	}

	faqs, err := s.faqs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("support service: справочник %w", err)
	}

	s.cache.Set(faqCacheKey, faqs, cache.DefaultExpiration)

	return faqs, nil
}

func (s *SupportService) resolveAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	account, err := s.users.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, fmt.Errorf("support service: получение аккаунта пользователя %w", err)
	}

	return account, nil
}
