package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schul92/worshipteam-api/internal/apperrors"
	"github.com/schul92/worshipteam-api/internal/logger"
	"github.com/schul92/worshipteam-api/internal/resilience"
	"github.com/schul92/worshipteam-api/internal/track"
	"github.com/schul92/worshipteam-api/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicies() Option {
	policy := resilience.Policy{Attempts: 3, Base: time.Millisecond, Multiplier: 2, Timeout: 200 * time.Millisecond}
	return WithPolicies(policy, policy, track.NopTracker{}, logger.Nop())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token", fastPolicies()), srv
}

func TestClient_FetchTeams_SingleFlight(t *testing.T) {
	var calls atomic.Int32
	slow := make(chan struct{})
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-slow
		_ = json.NewEncoder(w).Encode([]dto.TeamResponse{{ID: uuid.New(), Name: "Praise Band"}})
	})

	var wg sync.WaitGroup
	results := make([][]dto.TeamResponse, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			teams, err := cl.FetchTeams(context.Background())
			assert.NoError(t, err)
			results[i] = teams
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(slow)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, teams := range results {
		require.Len(t, teams, 1)
		assert.Equal(t, "Praise Band", teams[0].Name)
	}
}

func TestClient_Services_Cached(t *testing.T) {
	var calls atomic.Int32
	teamID := uuid.New()
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode([]dto.ServiceResponse{{ID: uuid.New(), TeamID: teamID, Name: "3/15 Sunday Worship"}})
	})

	first, err := cl.Services(context.Background(), teamID)
	require.NoError(t, err)
	second, err := cl.Services(context.Background(), teamID)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
}

func TestClient_SetAvailability_InvalidatesRequestScope(t *testing.T) {
	var gets atomic.Int32
	teamID := uuid.New()
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
			_ = json.NewEncoder(w).Encode(dto.AvailabilityRequestsResponse{})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "availability saved"})
	})

	_, err := cl.AvailabilityRequests(context.Background(), teamID)
	require.NoError(t, err)
	_, err = cl.AvailabilityRequests(context.Background(), teamID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), gets.Load())

	err = cl.SetAvailability(context.Background(), teamID, []dto.AvailabilityEntryRequest{
		{Date: "2026-03-15", IsAvailable: true},
	})
	require.NoError(t, err)

	_, err = cl.AvailabilityRequests(context.Background(), teamID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), gets.Load())
}

func TestClient_SetAvailabilityDebounced_OnlyLastBurstSent(t *testing.T) {
	var posts atomic.Int32
	var mu sync.Mutex
	var lastBody dto.SetAvailabilityRequest
	teamID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&lastBody)
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "availability saved"})
	}))
	t.Cleanup(srv.Close)
	cl := New(srv.URL, "test-token", fastPolicies(), WithDebounceWait(20*time.Millisecond))

	cl.SetAvailabilityDebounced(teamID, []dto.AvailabilityEntryRequest{
		{Date: "2026-03-15", IsAvailable: true},
	}, nil)
	cl.SetAvailabilityDebounced(teamID, []dto.AvailabilityEntryRequest{
		{Date: "2026-03-15", IsAvailable: false},
	}, nil)

	assert.Eventually(t, func() bool { return posts.Load() == 1 },
		time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lastBody.Entries, 1)
	assert.False(t, lastBody.Entries[0].IsAvailable)
}

func TestClient_Forbidden_NotRetried(t *testing.T) {
	var calls atomic.Int32
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "only owners and admins may view the staffing dashboard"})
	})

	_, err := cl.Dashboard(context.Background(), uuid.New())

	assert.True(t, apperrors.IsPermission(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_NotFound_MessageNotDoubled(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "team not found"})
	})

	_, err := cl.Services(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "team not found", err.Error())
}

func TestClient_ServerError_RetriedThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	teamID := uuid.New()
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode([]dto.ServiceResponse{})
	})

	_, err := cl.Services(context.Background(), teamID)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_SetAvailability_TimeoutReplaySafe(t *testing.T) {
	var calls atomic.Int32
	teamID := uuid.New()
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// First attempt stalls past the per-attempt timeout: outcome
		// unknown to the caller. The replay lands on the same
		// (team, user, date) keys, so nothing duplicates.
		if calls.Add(1) == 1 {
			time.Sleep(400 * time.Millisecond)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "availability saved"})
	})

	err := cl.SetAvailability(context.Background(), teamID, []dto.AvailabilityEntryRequest{
		{Date: "2026-03-15", IsAvailable: false},
	})

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ReconcileRequests_FreshSnapshotWins(t *testing.T) {
	cl := New("http://localhost", "tok", fastPolicies())

	vanished := uuid.New()
	kept := uuid.New()
	cached := dto.AvailabilityRequestsResponse{
		Pending: []dto.PendingRequestResponse{
			{Service: dto.ServiceResponse{ID: vanished, Name: "3/15 Sunday Worship"}},
			{Service: dto.ServiceResponse{ID: kept, Name: "3/22 Sunday Worship"}},
		},
	}
	fresh := dto.AvailabilityRequestsResponse{
		Pending: []dto.PendingRequestResponse{
			{Service: dto.ServiceResponse{ID: kept, Name: "3/22 Sunday Worship"}},
		},
	}

	got := cl.ReconcileRequests(cached, fresh)

	require.Len(t, got.Pending, 1)
	assert.Equal(t, kept, got.Pending[0].Service.ID)
}
