/* shuffle.go
 * Contains the shuffle primitive shared by the random assigner and the shuffler
 */

package logic

import "math/rand"

// Shuffle returns a new slice holding every input element exactly once, in
// uniformly random order (Fisher-Yates). The input is never mutated. Callers
// own the rand source so tests can seed it.
func Shuffle[T any](rnd *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i >= 1; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
