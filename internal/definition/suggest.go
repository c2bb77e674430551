package definition

// maxSuggestDistance is the largest edit distance still worth suggesting.
// It catches transpositions, dropped and extra characters.
const maxSuggestDistance = 3

// maxSuggestMemo bounds the memoized answers kept per definition. The memo
// starts over once full.
const maxSuggestMemo = 256

// SuggestOption returns the declared long option closest to an unknown
// name, formatted as "--name", or "" when nothing is close enough.
// Results are memoized per definition.
func (d *Definition) SuggestOption(unknown string) string {
	d.suggestMu.Lock()
	defer d.suggestMu.Unlock()

	if s, ok := d.suggestMemo[unknown]; ok {
		return s
	}

	best := ""
	bestDistance := maxSuggestDistance + 1
	for pair := d.options.Oldest(); pair != nil; pair = pair.Next() {
		distance := levenshtein(unknown, pair.Key)
		if distance < bestDistance {
			bestDistance = distance
			best = pair.Key
		}
	}

	suggestion := ""
	if best != "" {
		suggestion = "--" + best
	}
	if len(d.suggestMemo) >= maxSuggestMemo {
		clear(d.suggestMemo)
	}
	d.suggestMemo[unknown] = suggestion
	return suggestion
}

// levenshtein computes the edit distance between two strings using a
// single row of the distance matrix.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}

		previous = current
	}

	return previous[len(a)]
}
