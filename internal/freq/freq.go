// Package freq computes letter frequency and probability statistics
// over fixed-length word corpora.
package freq

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmptyCorpus is returned when a computation needs at least one word.
	ErrEmptyCorpus = errors.New("corpus is empty")
	// ErrUnequalLength is returned when words in a corpus differ in length.
	ErrUnequalLength = errors.New("words have unequal lengths")
	// ErrZeroTotal is returned when a probability divisor is not positive.
	ErrZeroTotal = errors.New("total count must be greater than 0")
	// ErrZeroVariance is returned when z-score normalization is undefined.
	ErrZeroVariance = errors.New("frequency distribution has zero variance")
)

// LetterFrequency maps a letter to its occurrence count.
type LetterFrequency map[rune]int

// PositionalFrequency maps a 1-based letter position to the letter
// counts observed at that position.
type PositionalFrequency map[int]LetterFrequency

// Distribution maps a letter to a probability in [0, 1].
type Distribution map[rune]float64

// Letters tallies every letter occurrence across all words. Input is
// assumed to be pre-filtered to letters; no normalization is applied.
func Letters(words []string) LetterFrequency {
	counts := make(LetterFrequency)
	for _, word := range words {
		for _, r := range word {
			counts[r]++
		}
	}
	return counts
}

// Total returns the sum of all counts.
func (f LetterFrequency) Total() int {
	total := 0
	for _, count := range f {
		total += count
	}
	return total
}

// Positional tallies letters per 1-based position. The position range
// is taken from the first word; every word must share that length.
func Positional(words []string) (PositionalFrequency, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCorpus
	}
	length := len([]rune(words[0]))
	out := make(PositionalFrequency, length)
	for _, word := range words {
		runes := []rune(word)
		if len(runes) != length {
			return nil, ErrUnequalLength
		}
		for i, r := range runes {
			pos := i + 1
			if out[pos] == nil {
				out[pos] = make(LetterFrequency)
			}
			out[pos][r]++
		}
	}
	return out, nil
}

// Probabilities divides each count by total. The caller chooses the
// divisor, which allows normalizing against another corpus's total.
func Probabilities(f LetterFrequency, total int) (Distribution, error) {
	if total <= 0 {
		return nil, ErrZeroTotal
	}
	dist := make(Distribution, len(f))
	for letter, count := range f {
		dist[letter] = float64(count) / float64(total)
	}
	return dist, nil
}

// PositionalProbabilities normalizes each position by its own total.
// Positions only exist when they saw at least one letter, so the
// per-position total is always positive.
func PositionalProbabilities(pf PositionalFrequency) map[int]Distribution {
	out := make(map[int]Distribution, len(pf))
	for pos, counts := range pf {
		total := counts.Total()
		dist := make(Distribution, len(counts))
		for letter, count := range counts {
			dist[letter] = float64(count) / float64(total)
		}
		out[pos] = dist
	}
	return out
}

// TotalVariationDistance returns half the sum of absolute probability
// differences over the union of both supports. A letter missing from
// one distribution contributes its full probability from the other.
// The result is in [0, 1]: 0 for identical distributions, 1 for
// disjoint supports.
func TotalVariationDistance(p, q Distribution) float64 {
	sum := 0.0
	for letter, pv := range p {
		sum += math.Abs(pv - q[letter])
	}
	for letter, qv := range q {
		if _, ok := p[letter]; !ok {
			sum += qv
		}
	}
	return sum / 2
}

// Summary holds aggregate statistics over a frequency distribution.
type Summary struct {
	Mean       float64
	StdDev     float64
	Normalized map[rune]float64
}

// Statistics computes the mean, population standard deviation, and
// per-letter z-scores of the counts.
func Statistics(f LetterFrequency) (Summary, error) {
	if len(f) == 0 {
		return Summary{}, ErrEmptyCorpus
	}
	n := float64(len(f))
	mean := float64(f.Total()) / n

	variance := 0.0
	for _, count := range f {
		diff := float64(count) - mean
		variance += diff * diff
	}
	variance /= n
	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return Summary{}, ErrZeroVariance
	}

	normalized := make(map[rune]float64, len(f))
	for letter, count := range f {
		normalized[letter] = (float64(count) - mean) / stdDev
	}
	return Summary{Mean: mean, StdDev: stdDev, Normalized: normalized}, nil
}

// LetterRank is one entry of a top-N ranking.
type LetterRank struct {
	Letter  rune
	Count   int
	Percent float64
}

// TopLetters returns the n most frequent letters in descending count
// order, ties broken alphabetically. Percent is computed against the
// full distribution's total, not the top-n subset.
func TopLetters(f LetterFrequency, n int) []LetterRank {
	if n <= 0 || len(f) == 0 {
		return nil
	}
	total := f.Total()
	ranks := make([]LetterRank, 0, len(f))
	for letter, count := range f {
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total) * 100
		}
		ranks = append(ranks, LetterRank{Letter: letter, Count: count, Percent: percent})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count == ranks[j].Count {
			return ranks[i].Letter < ranks[j].Letter
		}
		return ranks[i].Count > ranks[j].Count
	})
	if n > len(ranks) {
		n = len(ranks)
	}
	return ranks[:n]
}
