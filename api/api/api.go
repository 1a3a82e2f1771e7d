/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, functions should
 * only be called from this file, not the sub packages for logic and store. The facade fetches history, hands it to
 * the pure logic layer, and persists the produced record; the logic layer itself never touches the database.
 */

package api

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"classtools/api/logic"
	"classtools/api/shared"
	"classtools/api/store"
)

// API provides methods for interacting with the classroom random-tools data layer
type API struct {
	Store store.Interface
	Rnd   *rand.Rand
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, scope shared.Scope) (*API, error) {
	s, err := store.NewStore(dbName, mongoURI, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store: s,
		Rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// RunEquitable runs the equitable assigner for the store's scope and persists the resulting run.
// It receives the roster, the item list, the gender balancing flag and a strict flag; with strict
// set a roster that cannot be fully covered is an error instead of a partial assignment.
// It returns the assignment rows, or an error if it occurs.
func (a *API) RunEquitable(participants []shared.Participant, items []string, balanceGender bool, strict bool) ([]store.AssignmentResult, error) {
	runs, err := a.Store.GetAssignmentRuns(store.KindEquitable)
	if err != nil {
		return nil, err
	}

	exp := logic.FoldExperience(runs)
	if exp.Skipped > 0 {
		log.Printf("skipped %d malformed equitable history records", exp.Skipped)
	}

	results, unassigned := logic.RunEquitableAssigner(a.Rnd, participants, items, balanceGender, exp)
	if strict && len(unassigned) > 0 {
		return nil, fmt.Errorf("%w: %d of %d participants left without an item", logic.ErrCountMismatch, len(unassigned), len(participants))
	}

	if err := a.persistAssignmentRun(store.KindEquitable, results); err != nil {
		return nil, err
	}
	return results, nil
}

// RunRotating runs the rotating assigner for the store's scope and persists the resulting run.
// The rotation offset per pool is derived from the stored run history, so persisting the run is
// what advances the rotation.
// It returns the assignment rows, or an error if it occurs.
func (a *API) RunRotating(participants []shared.Participant, items []string, direction string, balanceGender bool, strict bool) ([]store.AssignmentResult, error) {
	runs, err := a.Store.GetAssignmentRuns(store.KindRotating)
	if err != nil {
		return nil, err
	}

	counts, skipped := logic.FoldRunCounts(runs)
	if skipped > 0 {
		log.Printf("skipped %d malformed rotating history records", skipped)
	}

	results := logic.RunRotatingAssigner(participants, items, logic.ParseDirection(direction), balanceGender, counts)
	if strict && len(results) < len(participants) {
		return nil, fmt.Errorf("%w: %d of %d participants left without an item", logic.ErrCountMismatch, len(participants)-len(results), len(participants))
	}

	if err := a.persistAssignmentRun(store.KindRotating, results); err != nil {
		return nil, err
	}
	return results, nil
}

// RunRandom runs the one-shot random assigner and persists the resulting run.
// It returns the assignment rows, or an error if it occurs.
func (a *API) RunRandom(participants []shared.Participant, items []string) ([]store.AssignmentResult, error) {
	results := logic.RunRandomAssigner(a.Rnd, participants, items)

	if err := a.persistAssignmentRun(store.KindRandom, results); err != nil {
		return nil, err
	}
	return results, nil
}

// persistAssignmentRun stores a run record unless the run produced nothing
func (a *API) persistAssignmentRun(kind string, results []store.AssignmentResult) error {
	if len(results) == 0 {
		return nil
	}
	payload, err := store.MarshalResults(results)
	if err != nil {
		return err
	}
	_, err = a.Store.InsertAssignmentRun(store.AssignmentRun{Kind: kind, Results: payload})
	return err
}

// PickStudent draws one student, without replacement, from the scope's active round, creating the
// round if none exists. It receives the current roster and returns the picked participant and its
// 1-based position, or (nil, 0) when every student has already been picked this round.
func (a *API) PickStudent(roster []shared.Participant) (*shared.Participant, int, error) {
	round, err := a.Store.GetOrCreateActiveRound()
	if err != nil {
		return nil, 0, err
	}

	available := logic.AvailableStudents(roster, round)
	picked := logic.PickRandomStudent(a.Rnd, available)
	if picked == nil {
		return nil, 0, nil
	}

	position := len(round.Picks) + 1
	pick := store.Pick{
		StudentID:   picked.ID,
		StudentName: picked.DisplayName,
		Position:    position,
		PickedAt:    time.Now(),
	}
	if err := a.Store.AppendPick(round.ID, pick); err != nil {
		return nil, 0, err
	}
	return picked, position, nil
}

// CompleteActiveRound marks the scope's active round completed. A scope with no active round is
// left untouched.
func (a *API) CompleteActiveRound() error {
	round, err := a.Store.GetActiveRound()
	if err != nil {
		return err
	}
	if round == nil {
		return nil
	}
	return a.Store.CompleteRound(round.ID)
}

// StartNewRound deactivates the scope's current round (if any) and creates a fresh active round.
// It returns the new round, or an error if it occurs.
func (a *API) StartNewRound() (store.PickerRound, error) {
	round, err := a.Store.GetActiveRound()
	if err != nil {
		return store.PickerRound{}, err
	}

	prevID := ""
	if round != nil {
		prevID = round.ID
	}
	return a.Store.StartNewRound(prevID)
}

// PickStats folds the scope's full round history into per-student pick stats
func (a *API) PickStats() ([]logic.PickStats, error) {
	rounds, err := a.Store.GetRounds()
	if err != nil {
		return nil, err
	}
	return logic.CalculatePickStats(rounds), nil
}

// RunShuffle produces a constrained full-list permutation of the roster and persists it as a run.
// It returns the ordered results with 1-based positions; an empty roster produces no results and
// no run record.
func (a *API) RunShuffle(participants []shared.Participant) ([]store.ShuffleResult, error) {
	if len(participants) == 0 {
		return []store.ShuffleResult{}, nil
	}

	runs, err := a.Store.GetShuffleRuns()
	if err != nil {
		return nil, err
	}

	stats, skipped := logic.CalculateShuffleStats(runs, rosterNames(participants))
	if skipped > 0 {
		log.Printf("skipped %d malformed shuffle history records", skipped)
	}

	ordered := logic.ShuffleWithConstraints(a.Rnd, participants, stats)

	results := make([]store.ShuffleResult, 0, len(ordered))
	for i, p := range ordered {
		results = append(results, store.ShuffleResult{
			StudentID:   p.ID,
			StudentName: p.DisplayName,
			Position:    i + 1,
		})
	}

	payload, err := store.MarshalShuffleResults(results)
	if err != nil {
		return nil, err
	}

	_, err = a.Store.InsertShuffleRun(store.ShuffleRun{
		Results:             payload,
		FirstStudentID:      results[0].StudentID,
		LastStudentID:       results[len(results)-1].StudentID,
		CompletedStudentIDs: "[]",
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ToggleCompletion flips a student's entry on a shuffle run's completion checklist and returns
// the updated checklist
func (a *API) ToggleCompletion(runID string, studentID string) ([]string, error) {
	return a.Store.ToggleStudentCompletion(runID, studentID)
}

// ShuffleStats folds the scope's full shuffle history into per-student stats. The roster supplies
// display names and may be empty.
func (a *API) ShuffleStats(roster []shared.Participant) ([]logic.ShuffleStats, error) {
	runs, err := a.Store.GetShuffleRuns()
	if err != nil {
		return nil, err
	}

	stats, skipped := logic.CalculateShuffleStats(runs, rosterNames(roster))
	if skipped > 0 {
		log.Printf("skipped %d malformed shuffle history records", skipped)
	}
	return stats, nil
}

// ResolveStudents matches operator-typed names against the roster
func (a *API) ResolveStudents(names []string, roster []shared.Participant) ([]shared.Participant, []string) {
	return logic.ResolveStudents(names, roster)
}

// rosterNames builds the id -> display name map the stats folds use
func rosterNames(roster []shared.Participant) map[string]string {
	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.DisplayName
	}
	return names
}
