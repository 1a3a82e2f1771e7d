/* models.go
 * This file contains the structs and helper functions that are shared between sub packages
 */

package shared

import "strings"

// Participant is a student eligible for selection. Rosters are supplied by the
// caller per invocation; this package never fetches them.
type Participant struct {
	ID          string
	DisplayName string
	Gender      string // "male", "female", "other", "" (unspecified)
}

// Scope identifies the grouping a fairness history applies to, e.g. a seating
// group or the whole class. History from one scope never affects another.
type Scope struct {
	Type string
	ID   string
	Name string
}

// Pool names used when gender balancing splits a roster. Participants whose
// gender is not recognisably male or female go to PoolUnspecified; they are
// assigned like any other pool rather than silently dropped.
const (
	PoolAll         = "all"
	PoolMale        = "male"
	PoolFemale      = "female"
	PoolUnspecified = "unspecified"
)

// IsBoy reports whether a gender string represents a boy/male
func IsBoy(gender string) bool {
	switch strings.ToLower(gender) {
	case "m", "male", "boy":
		return true
	}
	return false
}

// IsGirl reports whether a gender string represents a girl/female
func IsGirl(gender string) bool {
	switch strings.ToLower(gender) {
	case "f", "female", "girl":
		return true
	}
	return false
}

// PoolOf maps a participant's gender onto the pool it belongs to when gender
// balancing is enabled.
func PoolOf(p Participant) string {
	if IsBoy(p.Gender) {
		return PoolMale
	}
	if IsGirl(p.Gender) {
		return PoolFemale
	}
	return PoolUnspecified
}
