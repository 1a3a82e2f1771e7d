/* picker_rounds.go
 * Contains the methods for interacting with the picker_rounds collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrOutOfOrderAppend is returned when a pick's position is not the next in
// sequence for its round, or the round is no longer active.
var ErrOutOfOrderAppend = errors.New("pick position is not the next in sequence")

// GetOrCreateActiveRound returns the active round for the store's scope, creating one if none exists.
// The create is conditional at the database (upsert keyed on scope + isActive), so two concurrent
// callers cannot both create a round.
// Preconditions: none
// Postconditions: Returns the active PickerRound, or an error if it occurs
func (s *Store) GetOrCreateActiveRound() (PickerRound, error) {
	filter := s.scopeFilter()
	filter["isActive"] = true

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"scopeName": s.Scope.Name,
			"picks":     []Pick{},
			"startedAt": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var round PickerRound
	err := s.Collections.PickerRounds.FindOneAndUpdate(context.TODO(), filter, update, opts).Decode(&round)
	if err != nil {
		return PickerRound{}, fmt.Errorf("failed to get or create active round: %w", err)
	}
	return round, nil
}

// GetActiveRound returns the active round for the store's scope, or nil when there is none
// Preconditions: none
// Postconditions: Returns a pointer to the active PickerRound or nil, or an error if it occurs
func (s *Store) GetActiveRound() (*PickerRound, error) {
	filter := s.scopeFilter()
	filter["isActive"] = true

	var round PickerRound
	err := s.Collections.PickerRounds.FindOne(context.TODO(), filter).Decode(&round)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching active round from db: %w", err)
	}
	return &round, nil
}

// GetRounds returns all picker rounds for the store's scope, active and completed.
// Used in pick stats calculations.
// Preconditions: none
// Postconditions: Returns slice of PickerRound, or an error if it occurs
func (s *Store) GetRounds() ([]PickerRound, error) {
	cursor, err := s.Collections.PickerRounds.Find(context.TODO(), s.scopeFilter())
	if err != nil {
		return nil, fmt.Errorf("error fetching rounds from db: %w", err)
	}

	var rounds []PickerRound
	if err = cursor.All(context.TODO(), &rounds); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of rounds: %w", err)
	}
	return rounds, nil
}

// AppendPick appends a pick to an active round. The update filter requires the round's picks array
// to hold exactly position-1 entries, so appends are monotonic even under concurrent callers.
// Preconditions: Receives the round id and the Pick to append; pick.Position is 1-based
// Postconditions: Appends the pick, or returns ErrOutOfOrderAppend if the position is not the next
// expected value (or the round is inactive), or another error if the update fails
func (s *Store) AppendPick(roundID string, pick Pick) error {
	if pick.Position < 1 {
		return ErrOutOfOrderAppend
	}

	filter := bson.M{
		"_id":      roundID,
		"isActive": true,
		"picks":    bson.M{"$size": pick.Position - 1},
	}
	update := bson.M{
		"$push": bson.M{"picks": pick},
	}

	res, err := s.Collections.PickerRounds.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to append pick: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrOutOfOrderAppend
	}
	return nil
}

// CompleteRound marks a round inactive and stamps its completion time. Idempotent in effect:
// a round that is already complete is left untouched, keeping its original completedAt.
// Preconditions: Receives the round id
// Postconditions: The round is inactive, or an error is returned if the update fails
func (s *Store) CompleteRound(roundID string) error {
	filter := bson.M{"_id": roundID, "isActive": true}
	update := bson.M{
		"$set": bson.M{
			"isActive":    false,
			"completedAt": time.Now(),
		},
	}

	_, err := s.Collections.PickerRounds.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to complete round: %w", err)
	}
	return nil
}

// StartNewRound marks the previous round inactive (if given) and creates a fresh active round
// Preconditions: Receives the previous round id, or an empty string when there is none
// Postconditions: Returns the newly created PickerRound, or an error if it occurs
func (s *Store) StartNewRound(prevRoundID string) (PickerRound, error) {
	if prevRoundID != "" {
		filter := bson.M{"_id": prevRoundID}
		update := bson.M{"$set": bson.M{"isActive": false}}
		if _, err := s.Collections.PickerRounds.UpdateOne(context.TODO(), filter, update); err != nil {
			return PickerRound{}, fmt.Errorf("failed to deactivate previous round: %w", err)
		}
	}

	round := PickerRound{
		ID:        uuid.NewString(),
		ScopeType: s.Scope.Type,
		ScopeID:   s.Scope.ID,
		ScopeName: s.Scope.Name,
		IsActive:  true,
		Picks:     []Pick{},
		StartedAt: time.Now(),
	}

	if _, err := s.Collections.PickerRounds.InsertOne(context.TODO(), round); err != nil {
		return PickerRound{}, fmt.Errorf("failed to insert new round: %w", err)
	}
	return round, nil
}
