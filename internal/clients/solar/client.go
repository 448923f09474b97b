package solar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jobdam/jobdam-backend/internal/logger"
)

// Message is a single chat turn sent to the Upstage Solar
// chat-completions endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the Upstage Solar API client used by the content generation
// service. The remote reply is free text; callers own the parsing.
type Client interface {
	CreateChatCompletion(ctx context.Context, messages []Message) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("UPSTAGE_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing UPSTAGE_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("UPSTAGE_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.upstage.ai/v1/solar"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("UPSTAGE_MODEL"))
	if model == "" {
		model = "solar-pro"
	}

	timeoutSec := 60
	if v := os.Getenv("UPSTAGE_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("client", "SolarClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type chatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *client) CreateChatCompletion(ctx context.Context, messages []Message) (string, error) {
	payload := chatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("solar chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read solar response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Solar API returned non-2xx", "status", resp.StatusCode, "body", string(raw))
		return "", fmt.Errorf("solar API status %d", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode solar response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("solar API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
