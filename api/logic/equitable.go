/* equitable.go
 * Contains the logic for the equitable assigner: least-experienced students are
 * assigned to their least-experienced items, so exposure evens out over runs
 */

package logic

import (
	"errors"
	"math/rand"
	"sort"

	"classtools/api/shared"
	"classtools/api/store"
)

// ErrCountMismatch is returned by callers that require exact coverage when the
// participant and item counts differ.
var ErrCountMismatch = errors.New("participant and item counts do not match")

// ExperienceStats holds the per-student exposure counters folded from an
// assigner's run history.
type ExperienceStats struct {
	Total   map[string]int            // studentId -> total past assignments
	PerItem map[string]map[string]int // studentId -> item -> count
	Skipped int                       // history records with malformed results
}

// FoldExperience derives exposure counters from all prior runs for a scope.
// Preconditions: Receives the scope's full equitable run history
// Postconditions: Returns the folded counters; malformed records are skipped and counted, never fatal
func FoldExperience(runs []store.AssignmentRun) ExperienceStats {
	stats := ExperienceStats{
		Total:   make(map[string]int),
		PerItem: make(map[string]map[string]int),
	}

	for _, run := range runs {
		results, err := run.ParseResults()
		if err != nil {
			stats.Skipped++
			continue
		}
		for _, row := range results {
			stats.Total[row.StudentID]++
			perItem := stats.PerItem[row.StudentID]
			if perItem == nil {
				perItem = make(map[string]int)
				stats.PerItem[row.StudentID] = perItem
			}
			perItem[row.Item]++
		}
	}
	return stats
}

// RunEquitableAssigner assigns items to participants, least experienced first.
// Participants are ordered by ascending total experience (ties broken randomly)
// and each greedily takes the remaining item they have held least often (ties
// broken randomly). With balanceGender the roster is split into male, female
// and unspecified pools and each non-empty pool is assigned independently
// against the full item list.
// Preconditions: Receives a seeded rand source, the roster, the item list,
// the gender balancing flag and the folded experience counters
// Postconditions: Returns min(|P|,|I|) assignment rows per pool plus the
// participants left without an item
func RunEquitableAssigner(rnd *rand.Rand, participants []shared.Participant, items []string, balanceGender bool, exp ExperienceStats) ([]store.AssignmentResult, []shared.Participant) {
	if len(participants) == 0 {
		return []store.AssignmentResult{}, nil
	}
	if len(items) == 0 {
		return []store.AssignmentResult{}, participants
	}

	var results []store.AssignmentResult
	var unassigned []shared.Participant

	for _, pool := range splitPools(participants, balanceGender) {
		// Shuffling before the stable sort makes the experience tie-break
		// random instead of roster-order biased.
		ordered := Shuffle(rnd, pool.members)
		sort.SliceStable(ordered, func(i, j int) bool {
			return exp.Total[ordered[i].ID] < exp.Total[ordered[j].ID]
		})

		remaining := make([]string, len(items))
		copy(remaining, items)

		for _, p := range ordered {
			if len(remaining) == 0 {
				unassigned = append(unassigned, p)
				continue
			}
			idx := leastExperiencedItem(rnd, exp.PerItem[p.ID], remaining)
			results = append(results, store.AssignmentResult{
				Item:        remaining[idx],
				StudentID:   p.ID,
				StudentName: p.DisplayName,
				Pool:        pool.name,
			})
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
	}

	if results == nil {
		results = []store.AssignmentResult{}
	}
	return results, unassigned
}

// leastExperiencedItem picks the index of the remaining item the student has
// held least often, choosing randomly among equally-least items.
func leastExperiencedItem(rnd *rand.Rand, perItem map[string]int, remaining []string) int {
	min := perItem[remaining[0]]
	for _, item := range remaining[1:] {
		if perItem[item] < min {
			min = perItem[item]
		}
	}

	var candidates []int
	for i, item := range remaining {
		if perItem[item] == min {
			candidates = append(candidates, i)
		}
	}
	return candidates[rnd.Intn(len(candidates))]
}

// pool is one gender partition of a roster, or the whole roster when gender
// balancing is off.
type pool struct {
	name    string
	members []shared.Participant
}

// splitPools partitions a roster for gender balancing. Without balancing the
// whole roster forms a single unnamed pool.
func splitPools(participants []shared.Participant, balanceGender bool) []pool {
	if !balanceGender {
		return []pool{{name: "", members: participants}}
	}

	byName := map[string][]shared.Participant{}
	for _, p := range participants {
		key := shared.PoolOf(p)
		byName[key] = append(byName[key], p)
	}

	var pools []pool
	for _, name := range []string{shared.PoolMale, shared.PoolFemale, shared.PoolUnspecified} {
		if members := byName[name]; len(members) > 0 {
			pools = append(pools, pool{name: name, members: members})
		}
	}
	return pools
}
