/* rotating_test.go
 * Contains unit tests for rotating.go functions
 */

package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classtools/api/shared"
	"classtools/api/store"
)

// TestParseDirection tests direction parsing including the legacy values
func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirectionFrontToBack, ParseDirection("front-to-back"))
	assert.Equal(t, DirectionBackToFront, ParseDirection("back-to-front"))
	assert.Equal(t, DirectionBackToFront, ParseDirection("left"))
	assert.Equal(t, DirectionFrontToBack, ParseDirection("right"))
	assert.Equal(t, DirectionFrontToBack, ParseDirection(""))
	assert.Equal(t, DirectionFrontToBack, ParseDirection("garbage"))
}

// TestRunRotatingAssigner_OffsetZero tests the first run of a fresh scope
func TestRunRotatingAssigner_OffsetZero(t *testing.T) {
	results := RunRotatingAssigner(testRoster(), []string{"x", "y", "z"}, DirectionFrontToBack, false, map[string]int{})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].StudentID)
	assert.Equal(t, "x", results[0].Item)
	assert.Equal(t, "b", results[1].StudentID)
	assert.Equal(t, "y", results[1].Item)
	assert.Equal(t, "c", results[2].StudentID)
	assert.Equal(t, "z", results[2].Item)
}

// TestRunRotatingAssigner_OffsetAdvances tests that one prior run shifts the start by one
func TestRunRotatingAssigner_OffsetAdvances(t *testing.T) {
	counts := map[string]int{shared.PoolAll: 1}
	results := RunRotatingAssigner(testRoster(), []string{"x", "y", "z"}, DirectionFrontToBack, false, counts)

	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].StudentID)
	assert.Equal(t, "x", results[0].Item)
	assert.Equal(t, "c", results[1].StudentID)
	assert.Equal(t, "y", results[1].Item)
	assert.Equal(t, "a", results[2].StudentID)
	assert.Equal(t, "z", results[2].Item)
}

// TestRunRotatingAssigner_BackToFront tests reverse item order pairing
func TestRunRotatingAssigner_BackToFront(t *testing.T) {
	results := RunRotatingAssigner(testRoster(), []string{"x", "y", "z"}, DirectionBackToFront, false, map[string]int{})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].StudentID)
	assert.Equal(t, "z", results[0].Item)
	assert.Equal(t, "c", results[2].StudentID)
	assert.Equal(t, "x", results[2].Item)
}

// TestRunRotatingAssigner_VisitsEveryStart tests that |P| successive runs give
// every participant a turn at being first
func TestRunRotatingAssigner_VisitsEveryStart(t *testing.T) {
	roster := testRoster()
	items := []string{"x", "y", "z"}

	firsts := make(map[string]bool)
	for run := 0; run < len(roster); run++ {
		counts := map[string]int{shared.PoolAll: run}
		results := RunRotatingAssigner(roster, items, DirectionFrontToBack, false, counts)
		require.NotEmpty(t, results)
		firsts[results[0].StudentID] = true
	}

	assert.Len(t, firsts, len(roster))
}

// TestRunRotatingAssigner_FewerItemsThanStudents tests truncation to min(|P|,|I|)
func TestRunRotatingAssigner_FewerItemsThanStudents(t *testing.T) {
	counts := map[string]int{shared.PoolAll: 2}
	results := RunRotatingAssigner(testRoster(), []string{"x"}, DirectionFrontToBack, false, counts)

	require.Len(t, results, 1)
	assert.Equal(t, "c", results[0].StudentID)
	assert.Equal(t, "x", results[0].Item)
}

// TestRunRotatingAssigner_GenderPoolsRotateIndependently tests that each pool
// keeps its own generation counter
func TestRunRotatingAssigner_GenderPoolsRotateIndependently(t *testing.T) {
	roster := []shared.Participant{
		{ID: "m1", DisplayName: "Ben", Gender: "male"},
		{ID: "m2", DisplayName: "Max", Gender: "male"},
		{ID: "f1", DisplayName: "Ada", Gender: "female"},
		{ID: "f2", DisplayName: "Dina", Gender: "female"},
	}
	items := []string{"x", "y"}

	counts := map[string]int{shared.PoolMale: 1, shared.PoolFemale: 0}
	results := RunRotatingAssigner(roster, items, DirectionFrontToBack, true, counts)

	require.Len(t, results, 4)

	byPool := make(map[string][]store.AssignmentResult)
	for _, row := range results {
		byPool[row.Pool] = append(byPool[row.Pool], row)
	}

	// Male pool advanced by one, female pool still at its start
	assert.Equal(t, "m2", byPool[shared.PoolMale][0].StudentID)
	assert.Equal(t, "x", byPool[shared.PoolMale][0].Item)
	assert.Equal(t, "f1", byPool[shared.PoolFemale][0].StudentID)
	assert.Equal(t, "x", byPool[shared.PoolFemale][0].Item)
}

// TestRunRotatingAssigner_Empty tests the empty edge cases
func TestRunRotatingAssigner_Empty(t *testing.T) {
	assert.Empty(t, RunRotatingAssigner(nil, []string{"x"}, DirectionFrontToBack, false, map[string]int{}))
	assert.Empty(t, RunRotatingAssigner(testRoster(), nil, DirectionFrontToBack, false, map[string]int{}))
}

// TestFoldRunCounts_PerPool tests that runs increment every pool they covered
func TestFoldRunCounts_PerPool(t *testing.T) {
	runs := []store.AssignmentRun{
		{Kind: store.KindRotating, Results: mustMarshal(t, []store.AssignmentResult{
			{Item: "x", StudentID: "m1", Pool: shared.PoolMale},
			{Item: "x", StudentID: "f1", Pool: shared.PoolFemale},
		})},
		{Kind: store.KindRotating, Results: mustMarshal(t, []store.AssignmentResult{
			{Item: "x", StudentID: "m1", Pool: shared.PoolMale},
		})},
		{Kind: store.KindRotating, Results: mustMarshal(t, []store.AssignmentResult{
			{Item: "x", StudentID: "a"}, // unbalanced run, counts toward the shared pool
		})},
	}

	counts, skipped := FoldRunCounts(runs)

	assert.Equal(t, 0, skipped)
	assert.Equal(t, 2, counts[shared.PoolMale])
	assert.Equal(t, 1, counts[shared.PoolFemale])
	assert.Equal(t, 1, counts[shared.PoolAll])
}

// TestFoldRunCounts_SkipsMalformed tests that corrupt history is skipped and counted
func TestFoldRunCounts_SkipsMalformed(t *testing.T) {
	runs := []store.AssignmentRun{
		{Kind: store.KindRotating, Results: "not json"},
		{Kind: store.KindRotating, Results: mustMarshal(t, []store.AssignmentResult{
			{Item: "x", StudentID: "a"},
		})},
	}

	counts, skipped := FoldRunCounts(runs)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, counts[shared.PoolAll])
}
