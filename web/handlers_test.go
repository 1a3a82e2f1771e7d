/* handlers_test.go
 * Contains unit tests for handlers.go using httptest and a mock-backed API
 */

package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"classtools/api/api"
	"classtools/api/store"
)

func newTestServer(mockStore *api.MockStore) *Server {
	a := &api.API{
		Store: mockStore,
		Rnd:   rand.New(rand.NewSource(1)),
	}
	return NewServer(Config{Addr: ":0", API: a, RateLimit: rate.Limit(1000), Burst: 1000})
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func wireRoster() []Participant {
	return []Participant{
		{ID: "a", DisplayName: "Ada Clarke"},
		{ID: "b", DisplayName: "Ben Okafor"},
		{ID: "c", DisplayName: "Cam Reyes"},
	}
}

// region Picker endpoint tests

func TestPickHandler_Success(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.PickHandler, "/picker/pick", PickRequest{Participants: wireRoster()})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp PickResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Exhausted)
	require.NotNil(t, resp.Student)
	assert.Equal(t, 1, resp.Position)
}

func TestPickHandler_Exhausted(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.PickHandler, "/picker/pick", PickRequest{})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp PickResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Exhausted)
	assert.Nil(t, resp.Student)
}

func TestPickHandler_MethodNotAllowed(t *testing.T) {
	s := newTestServer(api.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/picker/pick", nil)
	rec := httptest.NewRecorder()
	s.PickHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPickHandler_BadJSON(t *testing.T) {
	s := newTestServer(api.NewMockStore())

	req := httptest.NewRequest(http.MethodPost, "/picker/pick", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.PickHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPickHandler_OutOfOrderConflict(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.AppendPickError = store.ErrOutOfOrderAppend
	s := newTestServer(mockStore)

	rec := postJSON(t, s.PickHandler, "/picker/pick", PickRequest{Participants: wireRoster()})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCompleteRoundHandler_Success(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.GetOrCreateActiveRound()
	s := newTestServer(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/picker/complete", nil)
	rec := httptest.NewRecorder()
	s.CompleteRoundHandler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, mockStore.Rounds[0].IsActive)
}

func TestNewRoundHandler_Created(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	req := httptest.NewRequest(http.MethodPost, "/picker/new-round", nil)
	rec := httptest.NewRecorder()
	s.NewRoundHandler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var round store.PickerRound
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&round))
	assert.True(t, round.IsActive)
}

func TestPickStatsHandler_Get(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.Rounds = []store.PickerRound{
		{ID: "r1", Picks: []store.Pick{{StudentID: "a", StudentName: "Ada Clarke", Position: 1}}},
	}
	s := newTestServer(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/picker/stats", nil)
	rec := httptest.NewRecorder()
	s.PickStatsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPickStatsHandler_RejectsPost(t *testing.T) {
	s := newTestServer(api.NewMockStore())

	req := httptest.NewRequest(http.MethodPost, "/picker/stats", nil)
	rec := httptest.NewRecorder()
	s.PickStatsHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPickStatsHandler_StoreError(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.GetRoundsError = errors.New("db down")
	s := newTestServer(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/picker/stats", nil)
	rec := httptest.NewRecorder()
	s.PickStatsHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// endregion

// region Shuffler endpoint tests

func TestShuffleHandler_ReturnsPermutation(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.ShuffleHandler, "/shuffler/run", ShuffleRequest{Participants: wireRoster()})
	assert.Equal(t, http.StatusOK, rec.Code)

	var results []store.ShuffleResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	require.Len(t, results, 3)

	seen := make(map[string]bool)
	for i, r := range results {
		assert.Equal(t, i+1, r.Position)
		seen[r.StudentID] = true
	}
	assert.Len(t, seen, 3)
	assert.Len(t, mockStore.ShuffleRuns, 1)
}

func TestToggleCompletionHandler_Success(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.ShuffleRuns = []store.ShuffleRun{
		{ID: "r1", Results: "[]", CompletedStudentIDs: "[]"},
	}
	s := newTestServer(mockStore)

	rec := postJSON(t, s.ToggleCompletionHandler, "/shuffler/toggle", ToggleRequest{RunID: "r1", StudentID: "a"})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ToggleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"a"}, resp.CompletedStudentIDs)
}

func TestShuffleStatsHandler_Get(t *testing.T) {
	mockStore := api.NewMockStore()
	mockStore.ShuffleRuns = []store.ShuffleRun{
		{ID: "r1", Results: "[]", FirstStudentID: "a", LastStudentID: "b", CompletedStudentIDs: "[]"},
	}
	s := newTestServer(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/shuffler/stats", nil)
	rec := httptest.NewRecorder()
	s.ShuffleStatsHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// endregion

// region Assigner endpoint tests

func TestEquitableHandler_Success(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.EquitableHandler, "/assigners/equitable", AssignerRequest{
		Participants: wireRoster(),
		Items:        []string{"whiteboard", "plants", "library"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var results []store.AssignmentResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	assert.Len(t, results, 3)
}

func TestEquitableHandler_StrictMismatch(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.EquitableHandler, "/assigners/equitable", AssignerRequest{
		Participants: wireRoster(),
		Items:        []string{"whiteboard"},
		Strict:       true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Error)
}

func TestRotatingHandler_Success(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.RotatingHandler, "/assigners/rotating", AssignerRequest{
		Participants: wireRoster(),
		Items:        []string{"attendance"},
		Direction:    "front-to-back",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var results []store.AssignmentResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].StudentID)
}

func TestRandomHandler_Success(t *testing.T) {
	mockStore := api.NewMockStore()
	s := newTestServer(mockStore)

	rec := postJSON(t, s.RandomHandler, "/assigners/random", AssignerRequest{
		Participants: wireRoster(),
		Items:        []string{"t1", "t2", "t3"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var results []store.AssignmentResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	assert.Len(t, results, 3)
}

// endregion

// region Rate limit tests

func TestMutation_RateLimited(t *testing.T) {
	mockStore := api.NewMockStore()
	a := &api.API{Store: mockStore, Rnd: rand.New(rand.NewSource(1))}
	s := NewServer(Config{API: a, RateLimit: rate.Every(time.Hour), Burst: 1})

	first := postJSON(t, s.PickHandler, "/picker/pick", PickRequest{Participants: wireRoster()})
	assert.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, s.PickHandler, "/picker/pick", PickRequest{Participants: wireRoster()})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestNewServer_RateLimitDefaults(t *testing.T) {
	s := NewServer(Config{API: nil})

	assert.NotNil(t, s.limiter)
	assert.Equal(t, rate.Limit(5), s.limiter.Limit())
	assert.Equal(t, 10, s.limiter.Burst())
}

// endregion
