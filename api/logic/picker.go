/* picker.go
 * Contains the logic for the random picker: drawing students without
 * replacement within a round and folding pick history into stats
 */

package logic

import (
	"math/rand"
	"sort"

	"classtools/api/shared"
	"classtools/api/store"
)

// PickStats aggregates one student's pick history across all rounds of a scope.
type PickStats struct {
	StudentID      string
	StudentName    string
	PositionCounts map[int]int // position -> times picked at that position
	TotalPicks     int
}

// AvailableStudents returns the roster minus the students already picked in
// the given round.
func AvailableStudents(roster []shared.Participant, round store.PickerRound) []shared.Participant {
	picked := make(map[string]bool, len(round.Picks))
	for _, pick := range round.Picks {
		picked[pick.StudentID] = true
	}

	var available []shared.Participant
	for _, p := range roster {
		if !picked[p.ID] {
			available = append(available, p)
		}
	}
	return available
}

// PickRandomStudent uniformly selects one participant from the available pool
// Preconditions: Receives a seeded rand source and the pool of not-yet-picked participants
// Postconditions: Returns the picked participant, or nil when the pool is empty
func PickRandomStudent(rnd *rand.Rand, available []shared.Participant) *shared.Participant {
	if len(available) == 0 {
		return nil
	}
	picked := available[rnd.Intn(len(available))]
	return &picked
}

// CalculatePickStats folds all picks across all rounds for a scope into
// per-student position counts
// Preconditions: Receives the scope's full round history
// Postconditions: Returns one PickStats per student seen, ordered by student id
func CalculatePickStats(rounds []store.PickerRound) []PickStats {
	statsMap := make(map[string]*PickStats)

	for _, round := range rounds {
		for _, pick := range round.Picks {
			stats := statsMap[pick.StudentID]
			if stats == nil {
				stats = &PickStats{
					StudentID:      pick.StudentID,
					StudentName:    pick.StudentName,
					PositionCounts: make(map[int]int),
				}
				statsMap[pick.StudentID] = stats
			}
			stats.PositionCounts[pick.Position]++
			stats.TotalPicks++
		}
	}

	out := make([]PickStats, 0, len(statsMap))
	for _, stats := range statsMap {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out
}
