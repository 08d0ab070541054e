package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidbotteam/bidbot-backend/internal/service"
)

// SupportHandler обрабатывает тикеты поддержки и FAQ.
type SupportHandler struct {
	support *service.SupportService
}

// NewSupportHandler создаёт обработчик поддержки.
func NewSupportHandler(support *service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

type ticketResponseRequest struct {
	Message string `json:"message" binding:"required"`
}

type ticketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateTicket создаёт тикет поддержки.
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	var input service.TicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	ticket, err := h.support.CreateTicket(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// ListTickets возвращает тикеты аккаунта пользователя.
func (h *SupportHandler) ListTickets(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	tickets, err := h.support.ListTickets(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// AddResponse добавляет ответ в переписку по тикету.
func (h *SupportHandler) AddResponse(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	ticketID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор тикета"})
		return
	}

	var req ticketResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	response, err := h.support.AddResponse(c.Request.Context(), userID, ticketID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"response": response})
}

// UpdateTicketStatus меняет статус тикета.
func (h *SupportHandler) UpdateTicketStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	ticketID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор тикета"})
		return
	}

	var req ticketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	if err := h.support.UpdateTicketStatus(c.Request.Context(), userID, ticketID, req.Status); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "статус тикета обновлён"})
}

// ListFAQs возвращает часто задаваемые вопросы.
func (h *SupportHandler) ListFAQs(c *gin.Context) {
	faqs, err := h.support.ListFAQs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"faqs": faqs})
}
