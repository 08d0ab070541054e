package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bidbotteam/bidbot-backend/internal/http/middleware"
)

func TestJobHandler_ListSuggested_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &JobHandler{jobs: nil}
	r.GET("/jobs/suggested", handler.ListSuggested)

	req, _ := http.NewRequest("GET", "/jobs/suggested", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobHandler_AddJobs_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &JobHandler{jobs: nil}
	r.POST("/add-jobs", handler.AddJobs)

	body := strings.NewReader(`{"accountId": "not-a-uuid"}`)
	req, _ := http.NewRequest("POST", "/add-jobs", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_ApplyJob_InvalidJobID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &JobHandler{jobs: nil}
	r.POST("/job/apply/:jobId", func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		handler.ApplyJob(c)
	})

	req, _ := http.NewRequest("POST", "/job/apply/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_MarkJobSpam_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &JobHandler{jobs: nil}
	r.POST("/mark/job/spam/:jobId", handler.MarkJobSpam)

	req, _ := http.NewRequest("POST", "/mark/job/spam/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
