package title

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is the strength of a fuzzy title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult is the best candidate for a query title.
type MatchResult struct {
	Index      int // position in the candidate slice, -1 when no match
	Title      string
	Score      float64 // Jaro-Winkler similarity (0.0-1.0)
	Confidence Confidence
}

// Match finds the candidate most similar to query.
// Jaro-Winkler favors shared prefixes, which suits movie titles; sequel
// numbers that agree earn a bonus and ones that disagree a penalty.
func Match(query string, candidates []string) MatchResult {
	best := MatchResult{Index: -1, Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	q := Clean(query)
	qNums := numberRegex.FindAllString(q, -1)

	for i, candidate := range candidates {
		c := Clean(candidate)
		score := float64(edlib.JaroWinklerSimilarity(q, c))
		score = adjustScoreForNumbers(score, qNums, numberRegex.FindAllString(c, -1))

		if score > best.Score {
			best.Index = i
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best = MatchResult{Index: -1, Score: best.Score, Confidence: ConfidenceNone}
	}
	return best
}

func adjustScoreForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range queryNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
