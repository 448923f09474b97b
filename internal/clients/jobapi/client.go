package jobapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jobdam/jobdam-backend/internal/logger"
)

// Posting is one item from the public job-posting feed. Deadline comes
// back as an 8-digit date string (YYYYMMDD).
type Posting struct {
	CompanyName    string `json:"companyName"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	Deadline       string `json:"deadline"`
	SourceURL      string `json:"sourceUrl"`
	PositionName   string `json:"positionName"`
	CategoryName   string `json:"categoryName"`
}

// Client fetches job postings from the external public API.
type Client interface {
	FetchPostings(ctx context.Context, numOfRows int) ([]Posting, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("JOB_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing JOB_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("JOB_API_BASE_URL"))
	if baseURL == "" {
		return nil, fmt.Errorf("missing JOB_API_BASE_URL")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeoutSec := 30
	if v := os.Getenv("JOB_API_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("client", "JobAPIClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type feedResponse struct {
	Items []Posting `json:"items"`
}

func (c *client) FetchPostings(ctx context.Context, numOfRows int) ([]Posting, error) {
	query := url.Values{}
	query.Set("serviceKey", c.apiKey)
	query.Set("numOfRows", strconv.Itoa(numOfRows))
	query.Set("resultType", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("job feed request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read job feed response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("Job feed returned non-2xx", "status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("job feed status %d", resp.StatusCode)
	}

	var parsed feedResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode job feed response: %w", err)
	}
	return parsed.Items, nil
}
