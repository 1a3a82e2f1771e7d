/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * picker_rounds, shuffle_runs and assignment_runs. Each of these files contain methods for interacting with that
 * part of the database
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"classtools/api/shared"
)

// Collections groups the mongo collections the store operates on
type Collections struct {
	PickerRounds   *mongo.Collection
	ShufflerRuns   *mongo.Collection
	AssignmentRuns *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Scope       shared.Scope
	Collections Collections
}

// NewStore initialises the Store. Sets the scope all queries are keyed on and initialises the db connection
// Preconditions: Receives strings containing dbName and mongoURI, and the scope this store serves
// Postconditions: Sets collection values and returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, scope shared.Scope) (*Store, error) {
	if dbName == "" || scope.Type == "" || scope.ID == "" {
		return nil, fmt.Errorf("dbName, scope type and scope id cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	return &Store{
		Client:   client,
		Database: db,
		Scope:    scope,
		Collections: Collections{
			PickerRounds:   db.Collection("picker_rounds"),
			ShufflerRuns:   db.Collection("shuffler_runs"),
			AssignmentRuns: db.Collection("assignment_runs"),
		},
	}, nil
}

// scopeFilter returns the filter fields shared by every scoped query
func (s *Store) scopeFilter() bson.M {
	return bson.M{
		"scopeType": s.Scope.Type,
		"scopeId":   s.Scope.ID,
	}
}
