/* rotating.go
 * Contains the logic for the rotating assigner: items are handed out in fixed
 * order starting from a per-scope offset that slides forward each run
 */

package logic

import (
	"classtools/api/shared"
	"classtools/api/store"
)

// Direction controls which end of the item list pairing starts from.
type Direction string

const (
	DirectionFrontToBack Direction = "front-to-back"
	DirectionBackToFront Direction = "back-to-front"
)

// ParseDirection maps a stored direction string onto a Direction. The legacy
// values "left" and "right" are still accepted from old records.
func ParseDirection(s string) Direction {
	switch s {
	case string(DirectionBackToFront), "left":
		return DirectionBackToFront
	default:
		return DirectionFrontToBack
	}
}

// FoldRunCounts derives the per-pool generation counters from all prior
// rotating runs for a scope. A run increments the counter of every pool it
// covered; rows without a pool marker count toward the shared pool.
// Preconditions: Receives the scope's full rotating run history
// Postconditions: Returns pool name -> run count; malformed records are skipped and counted, never fatal
func FoldRunCounts(runs []store.AssignmentRun) (map[string]int, int) {
	counts := make(map[string]int)
	skipped := 0

	for _, run := range runs {
		results, err := run.ParseResults()
		if err != nil {
			skipped++
			continue
		}
		seen := make(map[string]bool)
		for _, row := range results {
			name := row.Pool
			if name == "" {
				name = shared.PoolAll
			}
			seen[name] = true
		}
		for name := range seen {
			counts[name]++
		}
	}
	return counts, skipped
}

// RunRotatingAssigner pairs items with participants starting from each pool's
// rotation offset. The offset is the pool's prior run count mod the pool size,
// so with a stable roster every start point is visited before any repeats.
// With balanceGender each gender pool rotates independently against the full
// item list.
// Preconditions: Receives the roster (ordered, stable across runs by caller
// contract), the item list, the direction, the gender balancing flag and the
// folded run counters
// Postconditions: Returns min(|pool|,|I|) assignment rows per pool; each
// participant appears at most once
func RunRotatingAssigner(participants []shared.Participant, items []string, direction Direction, balanceGender bool, runCounts map[string]int) []store.AssignmentResult {
	if len(participants) == 0 || len(items) == 0 {
		return []store.AssignmentResult{}
	}

	results := []store.AssignmentResult{}

	for _, pool := range splitPools(participants, balanceGender) {
		counterName := pool.name
		if counterName == "" {
			counterName = shared.PoolAll
		}
		offset := runCounts[counterName] % len(pool.members)

		n := len(pool.members)
		if len(items) < n {
			n = len(items)
		}

		for k := 0; k < n; k++ {
			p := pool.members[(offset+k)%len(pool.members)]

			itemIdx := k
			if direction == DirectionBackToFront {
				itemIdx = len(items) - 1 - k
			}

			results = append(results, store.AssignmentResult{
				Item:        items[itemIdx],
				StudentID:   p.ID,
				StudentName: p.DisplayName,
				Pool:        pool.name,
			})
		}
	}
	return results
}
