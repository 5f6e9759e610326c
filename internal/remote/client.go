package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/vmhl-standings/internal/domain/teams"
	"github.com/preston-bernstein/vmhl-standings/internal/logging"
	"github.com/preston-bernstein/vmhl-standings/internal/metrics"
)

// Config controls how the client reaches the remote store.
type Config struct {
	BaseURL string
	// AdminSecret is sent as X-Admin-Password on every mutating request.
	AdminSecret string
	HTTPClient  *http.Client
	Timeout     time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Client talks to the single teams endpoint of the remote store.
type Client struct {
	baseURL      string
	adminSecret  string
	httpClient   httpDoer
	logger       *slog.Logger
	metrics      *metrics.Recorder
	newRequestID func() string
}

// NewClient constructs a remote store client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:      normalizeBaseURL(cfg.BaseURL),
		adminSecret:  cfg.AdminSecret,
		httpClient:   resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		newRequestID: uuid.NewString,
	}
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTeams fetches the full standings list in the order the store returns it.
func (c *Client) ListTeams(ctx context.Context) ([]teams.Team, error) {
	var items []teams.Team
	if err := c.do(ctx, OpList, http.MethodGet, nil, &items, false); err != nil {
		return nil, err
	}
	if items == nil {
		items = []teams.Team{}
	}
	return items, nil
}

// CreateTeam posts {name, logo_url}; the store assigns id, counters and position.
func (c *Client) CreateTeam(ctx context.Context, draft teams.Draft) error {
	return c.do(ctx, OpCreate, http.MethodPost, draft, nil, true)
}

// UpdateTeam sends a full record or a reposition as a PUT.
func (c *Client) UpdateTeam(ctx context.Context, update teams.Update) error {
	if update == nil {
		return &TransportError{Op: OpUpdate, Err: errors.New("nil update")}
	}
	logWithOp(ctx, c.logger, slog.LevelDebug, OpUpdate, "remote update",
		slog.Int(logging.FieldTeamID, update.TeamID()),
		slog.String("kind", update.Kind()),
	)
	return c.do(ctx, OpUpdate, http.MethodPut, update.Body(), nil, true)
}

// DeleteTeam removes a team by id.
func (c *Client) DeleteTeam(ctx context.Context, id int) error {
	return c.do(ctx, OpDelete, http.MethodDelete, map[string]int{"id": id}, nil, true)
}

// SwapPositions exchanges two positions in one request.
func (c *Client) SwapPositions(ctx context.Context, swap teams.Swap) error {
	return c.do(ctx, OpSwap, http.MethodPatch, swap, nil, true)
}

func (c *Client) do(ctx context.Context, op, method string, body any, out any, authorized bool) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordRemoteCall(op, time.Since(start), err)
	}()

	req, err := c.buildRequest(ctx, op, method, body, authorized)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logWithOp(ctx, c.logger, slog.LevelWarn, op, "remote call failed", slog.Any("error", err))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.metrics.RecordRejected(op, resp.StatusCode)
		logWithOp(ctx, c.logger, slog.LevelWarn, op, "remote call rejected",
			slog.Int(logging.FieldStatusCode, resp.StatusCode),
		)
		return &RejectedError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return &TransportError{Op: op, Err: decodeErr}
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, op, method string, body any, authorized bool) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if authorized {
		req.Header.Set(headerAdminPassword, c.adminSecret)
	}
	if c.newRequestID != nil {
		req.Header.Set(headerRequestID, c.newRequestID())
	}
	return req, nil
}

// errorMessage pulls {"error": "..."} out of a rejection body, falling back to the raw text.
func errorMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}
