// Package levenshtein provides the edit-distance routine backing "did you
// mean" suggestions: every candidate within a threshold, ranked, so callers
// can populate a suggestion list rather than a single closest match.
package levenshtein

import "sort"

// Distance computes the Levenshtein edit distance between str and tgt.
func Distance(str, tgt string) int {
	if len(str) == 0 {
		return len(tgt)
	}

	if len(tgt) == 0 {
		return len(str)
	}

	dists := make([][]int, len(str)+1)
	for i := range dists {
		dists[i] = make([]int, len(tgt)+1)
		dists[i][0] = i
	}

	for j := range dists[0] {
		dists[0][j] = j
	}

	for sidx, sc := range str {
		for tidx, tc := range tgt {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]
				continue
			}

			min := dists[sidx][tidx] + 1
			if dists[sidx+1][tidx]+1 < min {
				min = dists[sidx+1][tidx] + 1
			}
			if dists[sidx][tidx+1]+1 < min {
				min = dists[sidx][tidx+1] + 1
			}

			dists[sidx+1][tidx+1] = min
		}
	}

	return dists[len(str)][len(tgt)]
}

// candidate pairs a choice with its distance from the queried word, used only
// to stable-sort Suggestions' output.
type candidate struct {
	value string
	dist  int
}

// Suggestions returns every entry of choices whose edit distance from word is
// at most threshold, ordered by increasing distance (ties broken by original
// order). threshold <= 0 falls back to a distance proportional to the
// queried word's length, matching common CLI "did you mean" heuristics.
func Suggestions(word string, choices []string, threshold int) []string {
	if len(choices) == 0 {
		return nil
	}

	if threshold <= 0 {
		threshold = len(word)/3 + 1
	}

	candidates := make([]candidate, 0, len(choices))

	for _, c := range choices {
		d := Distance(word, c)
		if d <= threshold {
			candidates = append(candidates, candidate{value: c, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.value
	}

	return out
}

// Closest returns the single nearest choice to word and its distance, or
// ("", 0) if choices is empty.
func Closest(word string, choices []string) (string, int) {
	if len(choices) == 0 {
		return "", 0
	}

	best := -1
	bestDist := -1

	for i, c := range choices {
		d := Distance(word, c)
		if best < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}

	return choices[best], bestDist
}
