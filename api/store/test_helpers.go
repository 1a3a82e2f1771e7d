/* test_helpers.go
 * Contains test helper functions and sample data builders for store package tests
 */

package store

import (
	"context"
	"time"

	"classtools/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTestStore creates a Store instance for testing purposes.
// This can be used with a real test database or in-memory MongoDB.
func NewTestStore(dbName string, mongoURI string) (*Store, error) {
	return NewStore(dbName, mongoURI, shared.Scope{Type: "class", ID: "test-class", Name: "Test Class"})
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewTestStore("test_classtools", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSamplePicks creates sample Pick data for testing.
func CreateSamplePicks() []Pick {
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	return []Pick{
		{StudentID: "s1", StudentName: "Ada Clarke", Position: 1, PickedAt: now},
		{StudentID: "s2", StudentName: "Ben Okafor", Position: 2, PickedAt: now.Add(time.Minute)},
	}
}

// CreateSampleShuffleRun creates sample ShuffleRun data for testing.
func CreateSampleShuffleRun(id string) ShuffleRun {
	results, _ := MarshalShuffleResults([]ShuffleResult{
		{StudentID: "s1", StudentName: "Ada Clarke", Position: 1},
		{StudentID: "s2", StudentName: "Ben Okafor", Position: 2},
	})
	return ShuffleRun{
		ID:                  id,
		Results:             results,
		FirstStudentID:      "s1",
		LastStudentID:       "s2",
		RunDate:             time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		CompletedStudentIDs: "[]",
	}
}

// CreateSampleAssignmentRun creates sample AssignmentRun data for testing.
func CreateSampleAssignmentRun(id string, kind string) AssignmentRun {
	results, _ := MarshalResults([]AssignmentResult{
		{Item: "whiteboard", StudentID: "s1", StudentName: "Ada Clarke"},
		{Item: "plants", StudentID: "s2", StudentName: "Ben Okafor"},
	})
	return AssignmentRun{
		ID:      id,
		Kind:    kind,
		Results: results,
		RunDate: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	}
}
