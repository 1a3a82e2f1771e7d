/* roster.go
 * Contains the logic for resolving operator-typed student names against a roster
 */

package logic

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"classtools/api/shared"
)

// ResolveStudents matches typed names against the roster's display names and
// checks if they are valid.
// Preconditions: receives the typed names and the roster supplied by the caller
// Postconditions: returns the matched participants and the names that matched nobody
func ResolveStudents(names []string, roster []shared.Participant) ([]shared.Participant, []string) {
	var matched []shared.Participant
	var invalid []string

	// Convert roster names to lowercase for better matching
	lookup := make(map[string]shared.Participant)
	var rosterLower []string
	for _, p := range roster {
		lower := strings.ToLower(p.DisplayName)
		lookup[lower] = p
		rosterLower = append(rosterLower, lower)
	}

	for _, name := range names {
		lowerName := strings.ToLower(strings.TrimSpace(name))
		fuzzyResults := fuzzy.RankFind(lowerName, rosterLower)
		// If there is no valid roster name, add it to the invalid list
		if len(fuzzyResults) == 0 {
			invalid = append(invalid, name)
			continue
		} else if len(fuzzyResults) == 1 {
			matched = append(matched, lookup[fuzzyResults[0].Target])
		} else { // If there are multiple matches, check to see if theres an exact match with the input
			temp := ""
			for i := range fuzzyResults {
				if fuzzyResults[i].Target == lowerName {
					temp = fuzzyResults[i].Target
				}
			}
			// If no exact match was found, take the best ranked match
			if temp == "" {
				temp = fuzzyResults[0].Target
			}
			matched = append(matched, lookup[temp])
		}
	}
	return matched, invalid
}
