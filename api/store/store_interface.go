/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"classtools/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetOrCreateActiveRound() (PickerRound, error)
	GetActiveRound() (*PickerRound, error)
	GetRounds() ([]PickerRound, error)
	AppendPick(roundID string, pick Pick) error
	CompleteRound(roundID string) error
	StartNewRound(prevRoundID string) (PickerRound, error)

	InsertShuffleRun(run ShuffleRun) (ShuffleRun, error)
	GetShuffleRuns() ([]ShuffleRun, error)
	ToggleStudentCompletion(runID string, studentID string) ([]string, error)

	InsertAssignmentRun(run AssignmentRun) (AssignmentRun, error)
	GetAssignmentRuns(kind string) ([]AssignmentRun, error)

	// Getter methods for accessing fields
	GetScope() shared.Scope
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetScope returns the scope this store is keyed on
func (s *Store) GetScope() shared.Scope {
	return s.Scope
}

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
