// Package client is the Go client for the worship team API. Reads go
// through a short-TTL cache, cold-start fetches share one in-flight
// request, and transient failures retry with backoff. Mutations
// invalidate only the scope they touched.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/resilience"
	"github.com/schul92/worshipteam-api/internal/track"
	"github.com/schul92/worshipteam-api/pkg/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client

	runner    *resilience.Runner
	bootstrap *resilience.Runner
	cache     *resilience.Cache
	flight    singleflight.Group
	debounce  *resilience.Debouncer
	log       *zap.SugaredLogger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = log }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = resilience.NewCache(ttl) }
}

func WithDebounceWait(wait time.Duration) Option {
	return func(c *Client) { c.debounce = resilience.NewDebouncer(wait) }
}

func WithPolicies(normal, bootstrap resilience.Policy, tracker track.Tracker, log *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.runner = resilience.NewRunner(normal, log, tracker)
		c.bootstrap = resilience.NewRunner(bootstrap, log, tracker)
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	log := zap.NewNop().Sugar()
	cl := &Client{
		baseURL:   baseURL,
		token:     token,
		http:      &http.Client{},
		runner:    resilience.NewRunner(resilience.DefaultPolicy(), log, track.NopTracker{}),
		bootstrap: resilience.NewRunner(resilience.BootstrapPolicy(), log, track.NopTracker{}),
		cache:     resilience.NewCache(time.Minute),
		debounce:  resilience.NewDebouncer(400 * time.Millisecond),
		log:       log,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

func (c *Client) SetToken(token string) {
	c.token = token
	c.cache.Clear()
}

func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError converts an error response into the typed taxonomy so the
// retry wrapper can tell a permanent rejection from a transient fault.
func statusError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.NewAuth(msg)
	case http.StatusForbidden:
		return apperrors.NewPermission(msg)
	case http.StatusNotFound:
		// NotFoundError appends " not found" itself; the server message
		// already carries it.
		return apperrors.NewNotFound(strings.TrimSuffix(msg, " not found"))
	case http.StatusConflict:
		return apperrors.NewConflict("%s", msg)
	case http.StatusBadRequest:
		return fmt.Errorf("validation rejected: %s", msg)
	default:
		return fmt.Errorf("request failed with %d: %s", resp.StatusCode, msg)
	}
}

// getCached runs a GET through the cache. The decoded value is stored
// under the op+path key for the cache TTL.
func getCached[T any](ctx context.Context, c *Client, runner *resilience.Runner, op, path string) (T, error) {
	var zero T
	key := resilience.Key(op, path)
	if v, ok := c.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	var out T
	err := runner.Do(ctx, op, func(ctx context.Context) error {
		return c.request(ctx, http.MethodGet, path, nil, &out)
	})
	if err != nil {
		return zero, err
	}
	c.cache.Set(key, out)
	return out, nil
}

// FetchTeams is the cold-start entry point. Concurrent callers share one
// request through the single-flight group, and the bootstrap policy's
// longer timeout absorbs connection setup.
func (c *Client) FetchTeams(ctx context.Context) ([]dto.TeamResponse, error) {
	v, err, _ := c.flight.Do("bootstrap:teams", func() (any, error) {
		return getCached[[]dto.TeamResponse](ctx, c, c.bootstrap, "teams", "/api/v1/teams")
	})
	if err != nil {
		return nil, err
	}
	return v.([]dto.TeamResponse), nil
}

func (c *Client) Services(ctx context.Context, teamID uuid.UUID) ([]dto.ServiceResponse, error) {
	return getCached[[]dto.ServiceResponse](ctx, c, c.runner,
		"services", "/api/v1/teams/"+teamID.String()+"/services")
}

func (c *Client) AvailabilityRequests(ctx context.Context, teamID uuid.UUID) (dto.AvailabilityRequestsResponse, error) {
	return getCached[dto.AvailabilityRequestsResponse](ctx, c, c.runner,
		"availability-requests", "/api/v1/teams/"+teamID.String()+"/availability/requests")
}

func (c *Client) Dashboard(ctx context.Context, teamID uuid.UUID) ([]dto.DaySummaryResponse, error) {
	return getCached[[]dto.DaySummaryResponse](ctx, c, c.runner,
		"dashboard", "/api/v1/teams/"+teamID.String()+"/availability/dashboard")
}

// SetAvailability submits the bulk upsert. The server keys rows by
// (team, user, date), so replaying after a timeout replaces rather than
// duplicates; a timed-out attempt is an unknown outcome the runner may
// safely retry. On success the availability scope is invalidated so the
// next read refetches server truth.
func (c *Client) SetAvailability(ctx context.Context, teamID uuid.UUID, entries []dto.AvailabilityEntryRequest) error {
	err := c.runner.Do(ctx, "set-availability", func(ctx context.Context) error {
		return c.request(ctx, http.MethodPost,
			"/api/v1/teams/"+teamID.String()+"/availability",
			dto.SetAvailabilityRequest{Entries: entries}, nil)
	})
	if err != nil {
		return err
	}
	c.cache.InvalidatePrefix(resilience.Key("availability-requests"))
	c.cache.InvalidatePrefix(resilience.Key("dashboard"))
	return nil
}

// SetAvailabilityDebounced coalesces a burst of edits into one upsert:
// each call resets the window, and only the final entry set is sent once
// calls stop arriving. Delivery errors go through onErr since the caller
// has moved on by the time the save fires.
func (c *Client) SetAvailabilityDebounced(teamID uuid.UUID, entries []dto.AvailabilityEntryRequest, onErr func(error)) {
	c.debounce.Call(func() {
		if err := c.SetAvailability(context.Background(), teamID, entries); err != nil {
			if onErr != nil {
				onErr(err)
			}
			c.log.Warnw("debounced availability save failed", "team_id", teamID, "error", err)
		}
	})
}

func (c *Client) CreateTeam(ctx context.Context, req dto.CreateTeamRequest) (dto.TeamResponse, error) {
	var out dto.TeamResponse
	err := c.runner.Do(ctx, "create-team", func(ctx context.Context) error {
		return c.request(ctx, http.MethodPost, "/api/v1/teams", req, &out)
	})
	if err != nil {
		return dto.TeamResponse{}, err
	}
	c.cache.InvalidatePrefix(resilience.Key("teams"))
	return out, nil
}

// ReconcileRequests replaces a cached pending/responded snapshot with
// server truth. Draft services that vanished server-side (published,
// cancelled, or deleted since the snapshot) are dropped silently; the
// fresh snapshot wins wholesale rather than being merged item by item.
func (c *Client) ReconcileRequests(cached, fresh dto.AvailabilityRequestsResponse) dto.AvailabilityRequestsResponse {
	freshIDs := make(map[uuid.UUID]struct{}, len(fresh.Pending)+len(fresh.Responded))
	for _, p := range fresh.Pending {
		freshIDs[p.Service.ID] = struct{}{}
	}
	for _, r := range fresh.Responded {
		freshIDs[r.Service.ID] = struct{}{}
	}

	for _, p := range cached.Pending {
		if _, ok := freshIDs[p.Service.ID]; !ok {
			c.log.Debugw("dropping vanished availability request", "service_id", p.Service.ID)
		}
	}
	return fresh
}
