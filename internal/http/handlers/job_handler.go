package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bidbotteam/bidbot-backend/internal/goroutine"
	"github.com/bidbotteam/bidbot-backend/internal/logger"
	"github.com/bidbotteam/bidbot-backend/internal/service"
)

// JobHandler обрабатывает приём работ от бота-сборщика и действия
// пользователя над подобранными работами.
type JobHandler struct {
	jobs     *service.JobService
	pipeline *service.JobPipeline
	// rootCtx живёт столько же, сколько сервер: фоновая обработка
	// партии не должна обрываться вместе с контекстом HTTP запроса.
	rootCtx context.Context
}

// NewJobHandler создаёт обработчик работ.
func NewJobHandler(rootCtx context.Context, jobs *service.JobService, pipeline *service.JobPipeline) *JobHandler {
	return &JobHandler{
		jobs:     jobs,
		pipeline: pipeline,
		rootCtx:  rootCtx,
	}
}

type addJobsRequest struct {
	AccountID uuid.UUID          `json:"accountId" binding:"required"`
	Data      []service.JobInput `json:"data" binding:"required"`
}

type applyJobRequest struct {
	Proposal    string   `json:"proposal" binding:"required"`
	BidAmount   *float64 `json:"bidAmount"`
	HourlyPrice *float64 `json:"hourlyPrice"`
	Duration    string   `json:"duration"`
}

// AddJobs принимает партию работ от бота. Ответ уходит сразу после
// сохранения, подбор запускается в фоне.
func (h *JobHandler) AddJobs(c *gin.Context) {
	var req addJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	newJobIDs, err := h.jobs.IngestJobs(c.Request.Context(), req.AccountID, req.Data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "работы приняты",
		"total":   len(req.Data),
		"new":     len(newJobIDs),
	})

	if len(newJobIDs) == 0 {
		return
	}

	accountID := req.AccountID
	goroutine.SafeGoWithContext(h.rootCtx, func(ctx context.Context) {
		if err := h.pipeline.ProcessJobs(ctx, accountID, newJobIDs); err != nil {
			logger.Log.WithField("upwork_account_id", accountID).
				Errorf("Job pipeline failed: %v", err)
		}
	})
}

// ListSuggested возвращает подобранные работы пользователя.
func (h *JobHandler) ListSuggested(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	suggested, err := h.jobs.ListSuggested(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestedJobs": suggested})
}

// ListApplied возвращает работы, на которые поданы отклики.
func (h *JobHandler) ListApplied(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	applied, err := h.jobs.ListApplied(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appliedJobs": applied})
}

// GetJobDetails возвращает работу вместе со статусом участия пользователя.
func (h *JobHandler) GetJobDetails(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор работы"})
		return
	}

	details, err := h.jobs.GetJobDetails(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ApplyJob переводит подобранную работу в отклики.
func (h *JobHandler) ApplyJob(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор работы"})
		return
	}

	var req applyJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный формат запроса"})
		return
	}

	applied, err := h.jobs.ApplyJob(c.Request.Context(), userID, jobID, req.Proposal, req.BidAmount, req.HourlyPrice, req.Duration)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appliedJob": applied})
}

// IgnoreJob убирает работу из подобранных.
func (h *JobHandler) IgnoreJob(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор работы"})
		return
	}

	if err := h.jobs.IgnoreJob(c.Request.Context(), userID, jobID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "работа скрыта"})
}

// MarkJobSpam убирает работу из подобранных и запоминает её как спам.
func (h *JobHandler) MarkJobSpam(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
		return
	}

	jobID, err := parseUUIDParam(c, "jobId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный идентификатор работы"})
		return
	}

	if err := h.jobs.MarkJobSpam(c.Request.Context(), userID, jobID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "работа помечена как спам"})
}
