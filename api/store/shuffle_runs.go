/* shuffle_runs.go
 * Contains the methods for interacting with the shuffler_runs collection
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertShuffleRun persists a completed shuffle run
// Preconditions: Receives a ShuffleRun; an empty ID or RunDate is filled in
// Postconditions: Returns the stored run, or an error if the insert fails
func (s *Store) InsertShuffleRun(run ShuffleRun) (ShuffleRun, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.RunDate.IsZero() {
		run.RunDate = time.Now()
	}
	run.ScopeType = s.Scope.Type
	run.ScopeID = s.Scope.ID
	run.ScopeName = s.Scope.Name

	if _, err := s.Collections.ShufflerRuns.InsertOne(context.TODO(), run); err != nil {
		return ShuffleRun{}, fmt.Errorf("failed to insert shuffle run: %w", err)
	}
	return run, nil
}

// GetShuffleRuns returns all shuffle runs for the store's scope. Used in shuffle stats calculations.
// Preconditions: none
// Postconditions: Returns slice of ShuffleRun, or an error if it occurs
func (s *Store) GetShuffleRuns() ([]ShuffleRun, error) {
	cursor, err := s.Collections.ShufflerRuns.Find(context.TODO(), s.scopeFilter())
	if err != nil {
		return nil, fmt.Errorf("error fetching shuffle runs from db: %w", err)
	}

	var runs []ShuffleRun
	if err = cursor.All(context.TODO(), &runs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of shuffle runs: %w", err)
	}
	return runs, nil
}

// ToggleStudentCompletion flips a student's entry on a run's completion checklist
// Preconditions: Receives the run id and the student id to toggle
// Postconditions: Returns the updated checklist, or an error if it occurs
func (s *Store) ToggleStudentCompletion(runID string, studentID string) ([]string, error) {
	var run ShuffleRun
	err := s.Collections.ShufflerRuns.FindOne(context.TODO(), bson.M{"_id": runID}).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching shuffle run from db: %w", err)
	}

	ids, err := run.ParseCompletedIDs()
	if err != nil {
		// A corrupt checklist is replaced rather than blocking the toggle
		ids = []string{}
	}

	var updated []string
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
	if updated == nil {
		updated = []string{}
	}

	payload, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize completed student ids: %w", err)
	}

	update := bson.M{"$set": bson.M{"completedStudentIds": string(payload)}}
	if _, err := s.Collections.ShufflerRuns.UpdateOne(context.TODO(), bson.M{"_id": runID}, update); err != nil {
		return nil, fmt.Errorf("failed to update completed student ids: %w", err)
	}
	return updated, nil
}
