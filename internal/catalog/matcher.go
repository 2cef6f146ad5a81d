// Package catalog resolves free-text user queries against the
// subject/chapter naming hierarchy.
package catalog

import (
	"strings"
)

// Confidence is the tier of match strength, exact > contains > fuzzy.
type Confidence string

const (
	ConfidenceExact    Confidence = "exact"
	ConfidenceContains Confidence = "contains"
	ConfidenceFuzzy    Confidence = "fuzzy"
)

const (
	// scoreThreshold is the minimum blended score a fuzzy candidate must
	// exceed (strictly) to be returned.
	scoreThreshold = 0.5
	// tokenThreshold is the minimum per-token similarity for a query
	// token to count as matched against a candidate token.
	tokenThreshold = 0.7
	// minTokenLen drops query tokens too short to be discriminative.
	minTokenLen = 3
)

// Match is the result of resolving a query against a candidate list.
type Match struct {
	Name       string
	Confidence Confidence
	Score      float64
}

// Resolve finds the best matching candidate for a noisy free-text
// query, or nil when no candidate is confident enough. Matching is
// layered: exact equality first, then substring containment in either
// direction, then a blended fuzzy score. Ties break on input order, so
// the result is deterministic for a given candidate list.
func Resolve(candidates []string, query string) *Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(candidates) == 0 {
		return nil
	}

	for _, c := range candidates {
		if strings.ToLower(c) == query {
			return &Match{Name: c, Confidence: ConfidenceExact, Score: 1.0}
		}
	}

	for _, c := range candidates {
		folded := strings.ToLower(c)
		if strings.Contains(folded, query) || strings.Contains(query, folded) {
			return &Match{Name: c, Confidence: ConfidenceContains, Score: 1.0}
		}
	}

	queryTokens := discriminativeTokens(query)

	var best *Match
	bestScore := scoreThreshold
	for _, c := range candidates {
		folded := strings.ToLower(c)
		candidateTokens := strings.Fields(folded)

		matched := 0
		for _, qt := range queryTokens {
			for _, ct := range candidateTokens {
				if similarity(qt, ct) > tokenThreshold {
					matched++
					break
				}
			}
		}

		overlap := float64(matched) / float64(max(len(queryTokens), 1))
		full := similarity(folded, query)
		total := 0.7*overlap + 0.3*full

		if total > bestScore {
			bestScore = total
			best = &Match{Name: c, Confidence: ConfidenceFuzzy, Score: total}
		}
	}

	return best
}

// discriminativeTokens splits the query on whitespace and drops tokens
// shorter than minTokenLen.
func discriminativeTokens(query string) []string {
	var tokens []string
	for _, t := range strings.Fields(query) {
		if len([]rune(t)) >= minTokenLen {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// similarity is an edit-distance ratio in [0, 1]; two empty strings
// are fully similar.
func similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-levenshteinDistance(a, b)) / float64(maxLen)
}

// levenshteinDistance computes the edit distance between two strings
// using two rolling rows instead of the full matrix.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	cols := len(r2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}
