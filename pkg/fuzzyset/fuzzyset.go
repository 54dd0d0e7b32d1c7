package fuzzyset

import (
	"golang.org/x/text/unicode/norm"
	"math"
	"sort"
	"unicode/utf8"
)

const (
	DefaultGramSizeLower = 2
	DefaultGramSizeUpper = 3
	DefaultMinScore      = 0.33

	// candidates kept from the cosine pass before the levenshtein rescoring
	rescoreWindow = 50
)

type Match struct {
	Score     float64 `json:"score"`
	Candidate string  `json:"candidate"`
	Index     int     `json:"index"`
}

type IScorer interface {
	Rank(candidates []string, query string) []Match
}

// Scorer ranks candidates by n-gram cosine similarity, then rescores the best
// of them with a levenshtein ratio. Gram sizes are tried from largest to
// smallest and the first size that produces a result wins.
type Scorer struct {
	GramSizeLower  int
	GramSizeUpper  int
	MinScore       float64
	UseLevenshtein bool
}

func New() *Scorer {
	return &Scorer{
		GramSizeLower:  DefaultGramSizeLower,
		GramSizeUpper:  DefaultGramSizeUpper,
		MinScore:       DefaultMinScore,
		UseLevenshtein: true,
	}
}

func (s *Scorer) Rank(candidates []string, query string) []Match {
	if len(candidates) == 0 {
		return nil
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = norm.NFC.String(c)
	}
	query = norm.NFC.String(query)

	for size := s.GramSizeUpper; size >= s.GramSizeLower; size-- {
		if matches := s.rankWithGramSize(normalized, candidates, query, size); len(matches) > 0 {
			return matches
		}
	}

	return nil
}

func (s *Scorer) rankWithGramSize(normalized, original []string, query string, size int) []Match {
	queryGrams := gramCounts(query, size)
	queryNorm := vectorNorm(queryGrams)
	if queryNorm == 0 {
		return nil
	}

	var matches []Match
	for i, candidate := range normalized {
		grams := gramCounts(candidate, size)
		candidateNorm := vectorNorm(grams)
		if candidateNorm == 0 {
			continue
		}

		dot := 0
		for gram, count := range queryGrams {
			dot += count * grams[gram]
		}
		if dot == 0 {
			continue
		}

		matches = append(matches, Match{
			Score:     float64(dot) / (queryNorm * candidateNorm),
			Candidate: original[i],
			Index:     i,
		})
	}

	sortMatches(matches)

	if s.UseLevenshtein {
		if len(matches) > rescoreWindow {
			matches = matches[:rescoreWindow]
		}
		for i := range matches {
			matches[i].Score = Similarity(normalized[matches[i].Index], query)
		}
		sortMatches(matches)
	}

	kept := matches[:0]
	for _, m := range matches {
		if m.Score >= s.MinScore {
			kept = append(kept, m)
		}
	}

	return kept
}

// Similarity is the levenshtein ratio of two strings in [0, 1].
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := math.Max(float64(utf8.RuneCountInString(a)), float64(utf8.RuneCountInString(b)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(LevenshteinDistance(a, b))/maxLen
}

func LevenshteinDistance(a, b string) int {
	s1 := []rune(a)
	s2 := []rune(b)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

func gramCounts(value string, size int) map[string]int {
	runes := []rune("-" + value + "-")
	for len(runes) < size {
		runes = append(runes, '-')
	}

	counts := make(map[string]int, len(runes))
	for i := 0; i+size <= len(runes); i++ {
		counts[string(runes[i:i+size])]++
	}

	return counts
}

func vectorNorm(counts map[string]int) float64 {
	sum := 0
	for _, c := range counts {
		sum += c * c
	}
	return math.Sqrt(float64(sum))
}

// sortMatches orders by score, ties keep the lower candidate index first.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})
}
