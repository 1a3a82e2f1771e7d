/* models.go
 * This file contains the structs and helper functions that relate to DB objects
 */

package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Assignment run kinds. Each assigner family keeps an independent history
// within a scope.
const (
	KindEquitable = "equitable"
	KindRotating  = "rotating"
	KindRandom    = "random"
)

// Pick records one draw within a picker round. Picks are immutable once
// created; position is 1-based and strictly sequential within a round.
type Pick struct {
	StudentID   string    `bson:"studentId"`
	StudentName string    `bson:"studentName"`
	Position    int       `bson:"position"`
	PickedAt    time.Time `bson:"pickedAt"`
}

// PickerRound is a container for sequential no-repeat picks. At most one round
// per scope is active at a time; the store enforces this with a conditional
// create rather than a client-side check.
type PickerRound struct {
	ID          string     `bson:"_id,omitempty"`
	ScopeType   string     `bson:"scopeType"`
	ScopeID     string     `bson:"scopeId"`
	ScopeName   string     `bson:"scopeName,omitempty"`
	IsActive    bool       `bson:"isActive"`
	Picks       []Pick     `bson:"picks"`
	StartedAt   time.Time  `bson:"startedAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty"`
}

// ShuffleResult is one row of a shuffle run's serialized results payload.
type ShuffleResult struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Position    int    `json:"position"`
}

// ShuffleRun records one full-list permutation. The permutation itself is
// stored as a JSON blob and parsed back for stats, so a corrupt payload can be
// skipped without losing the first/last counters which are stored alongside.
type ShuffleRun struct {
	ID                  string    `bson:"_id,omitempty"`
	ScopeType           string    `bson:"scopeType"`
	ScopeID             string    `bson:"scopeId"`
	ScopeName           string    `bson:"scopeName,omitempty"`
	Results             string    `bson:"results"`
	FirstStudentID      string    `bson:"firstStudentId"`
	LastStudentID       string    `bson:"lastStudentId"`
	RunDate             time.Time `bson:"runDate"`
	CompletedStudentIDs string    `bson:"completedStudentIds,omitempty"`
}

// ParseResults unpacks the serialized permutation
// Preconditions: none
// Postconditions: Returns the ordered results, or an error if the payload is malformed
func (r ShuffleRun) ParseResults() ([]ShuffleResult, error) {
	var results []ShuffleResult
	if err := json.Unmarshal([]byte(r.Results), &results); err != nil {
		return nil, fmt.Errorf("failed to parse shuffle results: %w", err)
	}
	return results, nil
}

// ParseCompletedIDs unpacks the completion checklist. An empty field decodes
// to an empty list, not an error.
func (r ShuffleRun) ParseCompletedIDs() ([]string, error) {
	if r.CompletedStudentIDs == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(r.CompletedStudentIDs), &ids); err != nil {
		return nil, fmt.Errorf("failed to parse completed student ids: %w", err)
	}
	return ids, nil
}

// AssignmentResult is one row of an assignment run's serialized results
// payload. Pool is set when the run was gender balanced; the per-pool rotation
// counters are derived from it.
type AssignmentResult struct {
	Item        string `json:"item"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Pool        string `json:"pool,omitempty"`
}

// AssignmentRun records one assigner invocation. Kind separates the equitable,
// rotating and random histories.
type AssignmentRun struct {
	ID        string    `bson:"_id,omitempty"`
	Kind      string    `bson:"kind"`
	ScopeType string    `bson:"scopeType"`
	ScopeID   string    `bson:"scopeId"`
	ScopeName string    `bson:"scopeName,omitempty"`
	RunDate   time.Time `bson:"runDate"`
	Results   string    `bson:"results"`
}

// ParseResults unpacks the serialized assignment rows
// Preconditions: none
// Postconditions: Returns the ordered rows, or an error if the payload is malformed
func (r AssignmentRun) ParseResults() ([]AssignmentResult, error) {
	var results []AssignmentResult
	if err := json.Unmarshal([]byte(r.Results), &results); err != nil {
		return nil, fmt.Errorf("failed to parse assignment results: %w", err)
	}
	return results, nil
}

// MarshalResults serializes assignment rows for storage
func MarshalResults(results []AssignmentResult) (string, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to serialize assignment results: %w", err)
	}
	return string(data), nil
}

// MarshalShuffleResults serializes shuffle rows for storage
func MarshalShuffleResults(results []ShuffleResult) (string, error) {
	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to serialize shuffle results: %w", err)
	}
	return string(data), nil
}
