/* assignment_runs.go
 * Contains the methods for interacting with the assignment_runs collection
 */

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsertAssignmentRun persists one assigner invocation
// Preconditions: Receives an AssignmentRun with Kind and Results set; an empty ID or RunDate is filled in
// Postconditions: Returns the stored run, or an error if the insert fails
func (s *Store) InsertAssignmentRun(run AssignmentRun) (AssignmentRun, error) {
	if run.Kind == "" {
		return AssignmentRun{}, fmt.Errorf("assignment run kind cannot be empty")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.RunDate.IsZero() {
		run.RunDate = time.Now()
	}
	run.ScopeType = s.Scope.Type
	run.ScopeID = s.Scope.ID
	run.ScopeName = s.Scope.Name

	if _, err := s.Collections.AssignmentRuns.InsertOne(context.TODO(), run); err != nil {
		return AssignmentRun{}, fmt.Errorf("failed to insert assignment run: %w", err)
	}
	return run, nil
}

// GetAssignmentRuns returns all runs of one assigner kind for the store's scope.
// The full unfiltered history is load bearing: experience counts and rotation
// offsets are derived from it on every call.
// Preconditions: Receives the run kind (KindEquitable, KindRotating or KindRandom)
// Postconditions: Returns slice of AssignmentRun, or an error if it occurs
func (s *Store) GetAssignmentRuns(kind string) ([]AssignmentRun, error) {
	filter := s.scopeFilter()
	filter["kind"] = kind

	cursor, err := s.Collections.AssignmentRuns.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching assignment runs from db: %w", err)
	}

	var runs []AssignmentRun
	if err = cursor.All(context.TODO(), &runs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of assignment runs: %w", err)
	}
	return runs, nil
}
