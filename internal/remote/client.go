package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/interviewdesk/internal/constants"
	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/models"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// Source is the interview backend: four read queries plus single-record
// create, partial update and delete.
type Source interface {
	ByDate(ctx context.Context, date time.Time) ([]models.Interview, error)
	ByRange(ctx context.Context, start, end time.Time) ([]models.Interview, error)
	ByMonth(ctx context.Context, month time.Month, year int) ([]models.Interview, error)
	// ByPreset fetches a server-defined window: "week", "work-week" or "month".
	ByPreset(ctx context.Context, preset string) ([]models.Interview, error)

	Create(ctx context.Context, draft models.Interview) (models.Interview, error)
	Update(ctx context.Context, id int64, patch models.Patch) (models.Interview, error)
	Delete(ctx context.Context, id int64) error
}

// maxErrorBody caps how much of an error response is kept for display.
const maxErrorBody = 64 << 10

// Client talks to the REST backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Source = (*Client)(nil)

// NewClient builds a client for baseURL (for example
// "http://127.0.0.1:8000/api"). Timeout bounds each request; zero means the
// default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ByDate(ctx context.Context, date time.Time) ([]models.Interview, error) {
	q := url.Values{}
	q.Set("date", utils.FormatDate(date))
	return c.list(ctx, "/interview/date/", q)
}

func (c *Client) ByRange(ctx context.Context, start, end time.Time) ([]models.Interview, error) {
	q := url.Values{}
	q.Set("start_date", utils.FormatDate(start))
	q.Set("end_date", utils.FormatDate(end))
	return c.list(ctx, "/interview/date-range", q)
}

func (c *Client) ByMonth(ctx context.Context, month time.Month, year int) ([]models.Interview, error) {
	q := url.Values{}
	q.Set("month", fmt.Sprintf("%02d", int(month)))
	q.Set("year", strconv.Itoa(year))
	return c.list(ctx, "/interview/month", q)
}

func (c *Client) ByPreset(ctx context.Context, preset string) ([]models.Interview, error) {
	switch preset {
	case "week", "work-week", "month":
	default:
		return nil, fmt.Errorf("unknown preset range %q", preset)
	}
	return c.list(ctx, "/interview/"+preset+"/", nil)
}

func (c *Client) Create(ctx context.Context, draft models.Interview) (models.Interview, error) {
	draft.ID = nil
	var created models.Interview
	if err := c.do(ctx, http.MethodPost, "/interview/schedule/", nil, draft, &created); err != nil {
		return models.Interview{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id int64, patch models.Patch) (models.Interview, error) {
	var updated models.Interview
	path := fmt.Sprintf("/interview/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, patch, &updated); err != nil {
		return models.Interview{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/interview/%d/", id), nil, nil, nil)
}

func (c *Client) list(ctx context.Context, path string, query url.Values) ([]models.Interview, error) {
	var out []models.Interview
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Interview{}
	}
	return out, nil
}

// do performs one request. Bodies are JSON; out may be nil when no body is
// expected.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(constants.RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("Request failed", "op", op, "request_id", requestID, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("Request completed", "op", op, "request_id", requestID,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	switch {
	case resp.StatusCode >= 500:
		return &TransportError{Op: op, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return parseValidation(resp.StatusCode, raw)
	default:
		return &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
}
