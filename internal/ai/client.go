package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultModel используется, когда модель не указана в настройках.
const DefaultModel = "default-model"

// ProposalRequest — тело запроса к сервису генерации предложений.
type ProposalRequest struct {
	JobDescription       string   `json:"job_description"`
	AdditionalContext    string   `json:"additional_context"`
	Tone                 string   `json:"tone"`
	MaxLength            int      `json:"max_length"`
	Model                string   `json:"model"`
	PreviousProposals    []string `json:"previous_proposals"`
	AssociatedFiles      []string `json:"associated_files"`
	JobTags              []string `json:"job_tags"`
	JobType              string   `json:"job_type"`
	UserPreviousProjects []string `json:"user_previous_projects"`
}

// ProposalResponse — ответ сервиса генерации предложений.
type ProposalResponse struct {
	Proposal  string `json:"proposal"`
	Status    string `json:"status"`
	ModelUsed string `json:"model_used"`
}

// Client обращается к внешнему сервису генерации сопроводительных
// предложений. Сбой генерации не должен останавливать конвейер —
// вызывающая сторона обязана уметь продолжать с пустым текстом.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateProposal запрашивает текст предложения под описание работы.
func (c *Client) GenerateProposal(ctx context.Context, jobDescription string, jobTags []string, jobType string) (string, error) {
	if jobTags == nil {
		jobTags = []string{}
	}

	reqBody := ProposalRequest{
		JobDescription:       jobDescription,
		AdditionalContext:    "",
		Tone:                 "Professional",
		MaxLength:            500,
		Model:                c.model,
		PreviousProposals:    []string{},
		AssociatedFiles:      []string{},
		JobTags:              jobTags,
		JobType:              jobType,
		UserPreviousProjects: []string{},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/generateProposal",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("ai: build request %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: do request %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai: read response %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var proposalResp ProposalResponse
	if err := json.Unmarshal(body, &proposalResp); err != nil {
		return "", fmt.Errorf("ai: decode response %w", err)
	}

	return proposalResp.Proposal, nil
}
