package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidbotteam/bidbot-backend/internal/models"
	"github.com/bidbotteam/bidbot-backend/internal/service"
)

// AccountHandler обрабатывает привязанные аккаунты биржи: список,
// настройки пайплайна и баланс коннектов.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler создаёт обработчик аккаунтов.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type adjustConnectsRequest struct {
	Action string `json:"action" binding:"required"`
	Change int    `json:"change" binding:"required"`
}

// List возвращает привязанные аккаунты пользователя.
func (h *AccountHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	overview, err := h.accounts.ListUpworkAccounts(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetConfiguration возвращает настройки подбора для аккаунта.
func (h *AccountHandler) GetConfiguration(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	upworkAccountID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор аккаунта"})
		return
	}

	cfg, err := h.accounts.GetConfiguration(c.Request.Context(), userID, upworkAccountID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"configuration": cfg})
}

// UpdateConfiguration сохраняет настройки подбора для аккаунта.
func (h *AccountHandler) UpdateConfiguration(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	upworkAccountID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор аккаунта"})
		return
	}

	var cfg models.Configuration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	if err := h.accounts.UpdateConfiguration(c.Request.Context(), userID, upworkAccountID, cfg); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "настройки сохранены"})
}

// GetConnects возвращает баланс коннектов с историей.
func (h *AccountHandler) GetConnects(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	upworkAccountID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор аккаунта"})
		return
	}

	balance, err := h.accounts.GetConnects(c.Request.Context(), userID, upworkAccountID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// AdjustConnects пополняет или списывает коннекты вручную.
func (h *AccountHandler) AdjustConnects(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	upworkAccountID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор аккаунта"})
		return
	}

	var req adjustConnectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	connects, err := h.accounts.AdjustConnects(c.Request.Context(), userID, upworkAccountID, req.Action, req.Change)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connects": connects})
}
