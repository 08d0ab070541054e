package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProposal(t *testing.T) {
	var received ProposalRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generateProposal", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(ProposalResponse{
			Proposal:  "Здравствуйте! Готов взяться за ваш проект.",
			Status:    "ok",
			ModelUsed: "default-model",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	proposal, err := client.GenerateProposal(context.Background(), "Build a landing page", []string{"React", "CSS"}, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "Здравствуйте! Готов взяться за ваш проект.", proposal)

	// Проверяем контракт запроса к сервису генерации
	assert.Equal(t, "Build a landing page", received.JobDescription)
	assert.Equal(t, "Professional", received.Tone)
	assert.Equal(t, 500, received.MaxLength)
	assert.Equal(t, DefaultModel, received.Model)
	assert.Equal(t, []string{"React", "CSS"}, received.JobTags)
	assert.Equal(t, "fixed", received.JobType)
	assert.Empty(t, received.PreviousProposals)
	assert.Empty(t, received.AssociatedFiles)
	assert.Empty(t, received.UserPreviousProjects)
}

func TestGenerateProposalServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "default-model", 5*time.Second)

	_, err := client.GenerateProposal(context.Background(), "desc", nil, "hourly")
	assert.Error(t, err)
}

func TestGenerateProposalMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default-model", 5*time.Second)

	_, err := client.GenerateProposal(context.Background(), "desc", nil, "fixed")
	assert.Error(t, err)
}

func TestGenerateProposalContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "default-model", 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.GenerateProposal(ctx, "desc", nil, "fixed")
	assert.Error(t, err)
}
