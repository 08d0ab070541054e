package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidbotteam/bidbot-backend/internal/service"
)

// TemplateHandler обрабатывает шаблоны предложений.
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler создаёт обработчик шаблонов.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List возвращает общие шаблоны и личные шаблоны пользователя.
func (h *TemplateHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	templates, err := h.templates.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// Create сохраняет личный шаблон пользователя.
func (h *TemplateHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	var input service.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	template, err := h.templates.Create(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// Update изменяет личный шаблон пользователя.
func (h *TemplateHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор шаблона"})
		return
	}

	var input service.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	template, err := h.templates.Update(c.Request.Context(), userID, templateID, input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// Delete удаляет личный шаблон пользователя.
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор шаблона"})
		return
	}

	if err := h.templates.Delete(c.Request.Context(), userID, templateID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "шаблон удалён"})
}
