/* shuffler.go
 * Contains the logic for the constrained shuffler: full-list permutations where
 * the first and last positions are biased toward students with the fewest
 * historical first/last appearances
 */

package logic

import (
	"math/rand"
	"sort"

	"classtools/api/shared"
	"classtools/api/store"
)

// ShuffleStats aggregates one student's shuffle history across all runs of a scope.
type ShuffleStats struct {
	StudentID     string
	StudentName   string
	FirstCount    int // times been first
	LastCount     int // times been last
	TotalShuffles int // total appearances
}

// CalculateShuffleStats folds first/last counts and total appearances from all
// runs for a scope. roster maps student id -> display name and may be nil;
// names fall back to what the serialized results recorded.
// Preconditions: Receives the scope's full run history and an optional roster
// Postconditions: Returns one ShuffleStats per student seen (ordered by student
// id) plus the number of runs whose results payload was malformed
func CalculateShuffleStats(runs []store.ShuffleRun, roster map[string]string) ([]ShuffleStats, int) {
	statsMap := make(map[string]*ShuffleStats)
	skipped := 0

	get := func(studentID, fallbackName string) *ShuffleStats {
		stats := statsMap[studentID]
		if stats == nil {
			name := roster[studentID]
			if name == "" {
				name = fallbackName
			}
			stats = &ShuffleStats{StudentID: studentID, StudentName: name}
			statsMap[studentID] = stats
		}
		return stats
	}

	for _, run := range runs {
		get(run.FirstStudentID, "Unknown").FirstCount++
		get(run.LastStudentID, "Unknown").LastCount++

		results, err := run.ParseResults()
		if err != nil {
			skipped++
			continue
		}
		for _, result := range results {
			get(result.StudentID, result.StudentName).TotalShuffles++
		}
	}

	out := make([]ShuffleStats, 0, len(statsMap))
	for _, stats := range statsMap {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out, skipped
}

// ShuffleWithConstraints produces a full-list permutation where first and last
// go to students with the minimum historical first/last counts (ties broken
// randomly, last excluding first whenever the exclusion leaves candidates),
// with the middle shuffled uniformly.
// Preconditions: Receives a seeded rand source, the roster and the folded stats
// Postconditions: Returns a permutation of the roster; empty and single-student
// rosters are returned as-is
func ShuffleWithConstraints(rnd *rand.Rand, participants []shared.Participant, stats []ShuffleStats) []shared.Participant {
	if len(participants) == 0 {
		return []shared.Participant{}
	}
	if len(participants) == 1 {
		return []shared.Participant{participants[0]}
	}

	firstCounts := make(map[string]int, len(stats))
	lastCounts := make(map[string]int, len(stats))
	for _, s := range stats {
		firstCounts[s.StudentID] = s.FirstCount
		lastCounts[s.StudentID] = s.LastCount
	}

	first := pickMinCount(rnd, participants, firstCounts)

	// last is drawn from the roster minus first so the result stays a
	// permutation even when first also holds the minimum last count
	rest := make([]shared.Participant, 0, len(participants)-1)
	for _, p := range participants {
		if p.ID != first.ID {
			rest = append(rest, p)
		}
	}
	last := pickMinCount(rnd, rest, lastCounts)

	var middle []shared.Participant
	for _, p := range rest {
		if p.ID != last.ID {
			middle = append(middle, p)
		}
	}
	shuffledMiddle := Shuffle(rnd, middle)

	out := make([]shared.Participant, 0, len(participants))
	out = append(out, first)
	out = append(out, shuffledMiddle...)
	out = append(out, last)
	return out
}

// pickMinCount picks uniformly among the participants whose count is minimal
func pickMinCount(rnd *rand.Rand, participants []shared.Participant, counts map[string]int) shared.Participant {
	min := counts[participants[0].ID]
	for _, p := range participants[1:] {
		if counts[p.ID] < min {
			min = counts[p.ID]
		}
	}

	var eligible []shared.Participant
	for _, p := range participants {
		if counts[p.ID] == min {
			eligible = append(eligible, p)
		}
	}
	return eligible[rnd.Intn(len(eligible))]
}
