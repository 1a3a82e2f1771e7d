/* random.go
 * Contains the logic for the random assigner: a one-shot shuffled pairing of
 * items to participants with no history
 */

package logic

import (
	"math/rand"

	"classtools/api/shared"
	"classtools/api/store"
)

// RunRandomAssigner shuffles the item list and pairs it with the roster in
// order, truncating to the shorter of the two.
// Preconditions: Receives a seeded rand source, the roster and the item list
// Postconditions: Returns min(|P|,|I|) assignment rows
func RunRandomAssigner(rnd *rand.Rand, participants []shared.Participant, items []string) []store.AssignmentResult {
	if len(participants) == 0 || len(items) == 0 {
		return []store.AssignmentResult{}
	}

	shuffled := Shuffle(rnd, items)

	n := len(participants)
	if len(shuffled) < n {
		n = len(shuffled)
	}

	results := make([]store.AssignmentResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, store.AssignmentResult{
			Item:        shuffled[i],
			StudentID:   participants[i].ID,
			StudentName: participants[i].DisplayName,
		})
	}
	return results
}
