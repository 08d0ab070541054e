package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bidbotteam/bidbot-backend/internal/config"
	"github.com/bidbotteam/bidbot-backend/internal/http/handlers"
	"github.com/bidbotteam/bidbot-backend/internal/http/middleware"
	"github.com/bidbotteam/bidbot-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	jobHandler *handlers.JobHandler,
	notificationHandler *handlers.NotificationHandler,
	accountHandler *handlers.AccountHandler,
	kanbanHandler *handlers.KanbanHandler,
	supportHandler *handlers.SupportHandler,
	templateHandler *handlers.TemplateHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Вебхук бота-сборщика: без авторизации, но с лимитом частоты.
	webhookRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/add-jobs", webhookRateLimit, jobHandler.AddJobs)

	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/jobs/suggested", jobHandler.ListSuggested)
		protected.GET("/jobs/applied", jobHandler.ListApplied)
		protected.GET("/jobs/:jobId", jobHandler.GetJobDetails)
		protected.POST("/job/apply/:jobId", jobHandler.ApplyJob)
		protected.POST("/ignore/job/:jobId", jobHandler.IgnoreJob)
		protected.POST("/mark/job/spam/:jobId", jobHandler.MarkJobSpam)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread/count", notificationHandler.UnreadCount)
		protected.POST("/notifications/mark/:id", notificationHandler.MarkAsRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)

		protected.GET("/accounts", accountHandler.List)
		protected.GET("/accounts/:id/configuration", accountHandler.GetConfiguration)
		protected.PUT("/accounts/:id/configuration", accountHandler.UpdateConfiguration)
		protected.GET("/accounts/:id/connects", accountHandler.GetConnects)
		protected.POST("/accounts/:id/connects", accountHandler.AdjustConnects)

		protected.GET("/tasks", kanbanHandler.Board)
		protected.POST("/tasks", kanbanHandler.Create)
		protected.PUT("/tasks/:taskId", kanbanHandler.Update)
		protected.PUT("/tasks/:taskId/status", kanbanHandler.Move)
		protected.DELETE("/tasks/:taskId", kanbanHandler.Delete)

		protected.GET("/support/tickets", supportHandler.ListTickets)
		protected.POST("/support/tickets", supportHandler.CreateTicket)
		protected.POST("/support/tickets/:id/responses", supportHandler.AddResponse)
		protected.PUT("/support/tickets/:id/status", supportHandler.UpdateTicketStatus)
		protected.GET("/support/faqs", supportHandler.ListFAQs)

		protected.GET("/templates", templateHandler.List)
		protected.POST("/templates", templateHandler.Create)
		protected.PUT("/templates/:id", templateHandler.Update)
		protected.DELETE("/templates/:id", templateHandler.Delete)
	}

	return r
}
