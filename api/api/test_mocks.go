/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"classtools/api/shared"
	"classtools/api/store"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Rounds         []store.PickerRound
	ShuffleRuns    []store.ShuffleRun
	AssignmentRuns []store.AssignmentRun

	// Error injection for testing error paths
	GetOrCreateActiveRoundError  error
	GetActiveRoundError          error
	GetRoundsError               error
	AppendPickError              error
	CompleteRoundError           error
	StartNewRoundError           error
	InsertShuffleRunError        error
	GetShuffleRunsError          error
	ToggleStudentCompletionError error
	InsertAssignmentRunError     error
	GetAssignmentRunsError       error

	ScopeValue shared.Scope
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements the minimal Client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(context.Context) error { return nil }

// NewMockStore creates a new MockStore with default values
func NewMockStore() *MockStore {
	return &MockStore{
		ScopeValue: shared.Scope{Type: "group", ID: "group-1", Name: "Group 1"},
	}
}

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)

func (m *MockStore) GetOrCreateActiveRound() (store.PickerRound, error) {
	if m.GetOrCreateActiveRoundError != nil {
		return store.PickerRound{}, m.GetOrCreateActiveRoundError
	}
	for _, r := range m.Rounds {
		if r.IsActive {
			return r, nil
		}
	}
	round := store.PickerRound{
		ID:        uuid.NewString(),
		ScopeType: m.ScopeValue.Type,
		ScopeID:   m.ScopeValue.ID,
		ScopeName: m.ScopeValue.Name,
		IsActive:  true,
		Picks:     []store.Pick{},
		StartedAt: time.Now(),
	}
	m.Rounds = append(m.Rounds, round)
	return round, nil
}

func (m *MockStore) GetActiveRound() (*store.PickerRound, error) {
	if m.GetActiveRoundError != nil {
		return nil, m.GetActiveRoundError
	}
	for i := range m.Rounds {
		if m.Rounds[i].IsActive {
			round := m.Rounds[i]
			return &round, nil
		}
	}
	return nil, nil
}

func (m *MockStore) GetRounds() ([]store.PickerRound, error) {
	if m.GetRoundsError != nil {
		return nil, m.GetRoundsError
	}
	return m.Rounds, nil
}

func (m *MockStore) AppendPick(roundID string, pick store.Pick) error {
	if m.AppendPickError != nil {
		return m.AppendPickError
	}
	for i := range m.Rounds {
		if m.Rounds[i].ID == roundID && m.Rounds[i].IsActive {
			if pick.Position != len(m.Rounds[i].Picks)+1 {
				return store.ErrOutOfOrderAppend
			}
			m.Rounds[i].Picks = append(m.Rounds[i].Picks, pick)
			return nil
		}
	}
	return store.ErrOutOfOrderAppend
}

func (m *MockStore) CompleteRound(roundID string) error {
	if m.CompleteRoundError != nil {
		return m.CompleteRoundError
	}
	for i := range m.Rounds {
		if m.Rounds[i].ID == roundID && m.Rounds[i].IsActive {
			now := time.Now()
			m.Rounds[i].IsActive = false
			m.Rounds[i].CompletedAt = &now
		}
	}
	return nil
}

func (m *MockStore) StartNewRound(prevRoundID string) (store.PickerRound, error) {
	if m.StartNewRoundError != nil {
		return store.PickerRound{}, m.StartNewRoundError
	}
	if prevRoundID != "" {
		for i := range m.Rounds {
			if m.Rounds[i].ID == prevRoundID {
				m.Rounds[i].IsActive = false
			}
		}
	}
	round := store.PickerRound{
		ID:        uuid.NewString(),
		ScopeType: m.ScopeValue.Type,
		ScopeID:   m.ScopeValue.ID,
		ScopeName: m.ScopeValue.Name,
		IsActive:  true,
		Picks:     []store.Pick{},
		StartedAt: time.Now(),
	}
	m.Rounds = append(m.Rounds, round)
	return round, nil
}

func (m *MockStore) InsertShuffleRun(run store.ShuffleRun) (store.ShuffleRun, error) {
	if m.InsertShuffleRunError != nil {
		return store.ShuffleRun{}, m.InsertShuffleRunError
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.RunDate.IsZero() {
		run.RunDate = time.Now()
	}
	run.ScopeType = m.ScopeValue.Type
	run.ScopeID = m.ScopeValue.ID
	run.ScopeName = m.ScopeValue.Name
	m.ShuffleRuns = append(m.ShuffleRuns, run)
	return run, nil
}

func (m *MockStore) GetShuffleRuns() ([]store.ShuffleRun, error) {
	if m.GetShuffleRunsError != nil {
		return nil, m.GetShuffleRunsError
	}
	return m.ShuffleRuns, nil
}

func (m *MockStore) ToggleStudentCompletion(runID string, studentID string) ([]string, error) {
	if m.ToggleStudentCompletionError != nil {
		return nil, m.ToggleStudentCompletionError
	}
	for i := range m.ShuffleRuns {
		if m.ShuffleRuns[i].ID != runID {
			continue
		}
		ids, err := m.ShuffleRuns[i].ParseCompletedIDs()
		if err != nil {
			ids = []string{}
		}
		updated := []string{}
		found := false
		for _, id := range ids {
			if id == studentID {
				found = true
				continue
			}
			updated = append(updated, id)
		}
		if !found {
			updated = append(ids, studentID)
		}
		payload, err := json.Marshal(updated)
		if err != nil {
			return nil, err
		}
		m.ShuffleRuns[i].CompletedStudentIDs = string(payload)
		return updated, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *MockStore) InsertAssignmentRun(run store.AssignmentRun) (store.AssignmentRun, error) {
	if m.InsertAssignmentRunError != nil {
		return store.AssignmentRun{}, m.InsertAssignmentRunError
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.RunDate.IsZero() {
		run.RunDate = time.Now()
	}
	run.ScopeType = m.ScopeValue.Type
	run.ScopeID = m.ScopeValue.ID
	run.ScopeName = m.ScopeValue.Name
	m.AssignmentRuns = append(m.AssignmentRuns, run)
	return run, nil
}

func (m *MockStore) GetAssignmentRuns(kind string) ([]store.AssignmentRun, error) {
	if m.GetAssignmentRunsError != nil {
		return nil, m.GetAssignmentRunsError
	}
	var runs []store.AssignmentRun
	for _, run := range m.AssignmentRuns {
		if run.Kind == kind {
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// GetScope returns the mock's scope
func (m *MockStore) GetScope() shared.Scope {
	return m.ScopeValue
}

// GetDatabase returns a stub database handle
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return &mockDatabase{name: "test_db"}
}

// GetClient returns a stub client handle
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}
