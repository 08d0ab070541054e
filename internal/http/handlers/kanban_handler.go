package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidbotteam/bidbot-backend/internal/service"
)

// KanbanHandler обрабатывает канбан-доску задач команды.
type KanbanHandler struct {
	tasks *service.TaskService
}

// NewKanbanHandler создаёт обработчик канбан-доски.
func NewKanbanHandler(tasks *service.TaskService) *KanbanHandler {
	return &KanbanHandler{tasks: tasks}
}

type moveTaskRequest struct {
	Status string `json:"status" binding:"required"`
}

// Board возвращает доску: колонки по статусам с карточками задач.
func (h *KanbanHandler) Board(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	board, err := h.tasks.Board(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": board})
}

// Create добавляет задачу на доску.
func (h *KanbanHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// Update изменяет поля задачи.
func (h *KanbanHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	taskID, err := parseUUIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор задачи"})
		return
	}

	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, taskID, input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Move переносит задачу в другую колонку.
func (h *KanbanHandler) Move(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	taskID, err := parseUUIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор задачи"})
		return
	}

	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	task, err := h.tasks.Move(c.Request.Context(), userID, taskID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Delete удаляет задачу с доски.
func (h *KanbanHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	taskID, err := parseUUIDParam(c, "taskId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор задачи"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "задача удалена"})
}
