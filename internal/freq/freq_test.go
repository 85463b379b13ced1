package freq

import (
	"errors"
	"math"
	"testing"
)

func TestLettersCountsAllOccurrences(t *testing.T) {
	words := []string{"apple", "angle", "ankle"}
	counts := Letters(words)

	expected := map[rune]int{'a': 3, 'p': 2, 'l': 3, 'e': 3, 'n': 2, 'g': 1, 'k': 1}
	if len(counts) != len(expected) {
		t.Fatalf("expected %d distinct letters, got %d", len(expected), len(counts))
	}
	for letter, count := range expected {
		if counts[letter] != count {
			t.Fatalf("expected %q count %d, got %d", letter, count, counts[letter])
		}
	}
	if counts.Total() != 5*len(words) {
		t.Fatalf("expected total %d, got %d", 5*len(words), counts.Total())
	}
}

func TestPositionalCountsPerPosition(t *testing.T) {
	words := []string{"apple", "angle", "ankle"}
	pf, err := Positional(words)
	if err != nil {
		t.Fatalf("Positional failed: %v", err)
	}
	if len(pf) != 5 {
		t.Fatalf("expected 5 positions, got %d", len(pf))
	}
	if len(pf[1]) != 1 || pf[1]['a'] != 3 {
		t.Fatalf("unexpected position 1 counts: %v", pf[1])
	}
	for pos := 1; pos <= 5; pos++ {
		if got := pf[pos].Total(); got != len(words) {
			t.Fatalf("expected position %d total %d, got %d", pos, len(words), got)
		}
	}
}

func TestPositionalEmptyCorpus(t *testing.T) {
	if _, err := Positional(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestPositionalUnequalLengths(t *testing.T) {
	if _, err := Positional([]string{"apple", "ant"}); !errors.Is(err, ErrUnequalLength) {
		t.Fatalf("expected ErrUnequalLength, got %v", err)
	}
	if _, err := Positional([]string{"ant", "apple"}); !errors.Is(err, ErrUnequalLength) {
		t.Fatalf("expected ErrUnequalLength for longer later word, got %v", err)
	}
}

func TestProbabilitiesSumToOne(t *testing.T) {
	counts := Letters([]string{"apple", "angle", "ankle"})
	dist, err := Probabilities(counts, counts.Total())
	if err != nil {
		t.Fatalf("Probabilities failed: %v", err)
	}
	sum := 0.0
	for _, p := range dist {
		if p < 0 || p > 1 {
			t.Fatalf("probability out of range: %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("expected probabilities to sum to 1, got %v", sum)
	}
}

func TestProbabilitiesZeroTotal(t *testing.T) {
	if _, err := Probabilities(LetterFrequency{'a': 1}, 0); !errors.Is(err, ErrZeroTotal) {
		t.Fatalf("expected ErrZeroTotal, got %v", err)
	}
}

func TestProbabilitiesCrossCorpusTotal(t *testing.T) {
	dist, err := Probabilities(LetterFrequency{'a': 1}, 4)
	if err != nil {
		t.Fatalf("Probabilities failed: %v", err)
	}
	if dist['a'] != 0.25 {
		t.Fatalf("expected 0.25 with caller-supplied total, got %v", dist['a'])
	}
}

func TestPositionalProbabilitiesSelfNormalize(t *testing.T) {
	pf, err := Positional([]string{"ab", "ac", "bd"})
	if err != nil {
		t.Fatalf("Positional failed: %v", err)
	}
	probs := PositionalProbabilities(pf)
	for pos, dist := range probs {
		sum := 0.0
		for _, p := range dist {
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("position %d probabilities sum to %v", pos, sum)
		}
	}
	if math.Abs(probs[1]['a']-2.0/3.0) > 1e-9 {
		t.Fatalf("unexpected probability at position 1: %v", probs[1]['a'])
	}
}

func TestTotalVariationDistanceReflexive(t *testing.T) {
	p := Distribution{'a': 0.5, 'b': 0.5}
	if d := TotalVariationDistance(p, p); d != 0 {
		t.Fatalf("expected tvd(p,p)=0, got %v", d)
	}
}

func TestTotalVariationDistanceSymmetric(t *testing.T) {
	p := Distribution{'a': 0.5, 'b': 0.5}
	q := Distribution{'a': 0.5, 'b': 0.3, 'c': 0.2}
	if TotalVariationDistance(p, q) != TotalVariationDistance(q, p) {
		t.Fatalf("expected symmetric distance")
	}
	if d := TotalVariationDistance(p, q); math.Abs(d-0.2) > 1e-9 {
		t.Fatalf("expected distance 0.2, got %v", d)
	}
}

func TestTotalVariationDistanceDisjoint(t *testing.T) {
	p := Distribution{'a': 0.5, 'b': 0.5}
	q := Distribution{'c': 1.0}
	if d := TotalVariationDistance(p, q); math.Abs(d-1.0) > 1e-9 {
		t.Fatalf("expected distance 1 for disjoint supports, got %v", d)
	}
}

func TestStatistics(t *testing.T) {
	summary, err := Statistics(LetterFrequency{'a': 2, 'b': 4, 'c': 6})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if math.Abs(summary.Mean-4.0) > 1e-9 {
		t.Fatalf("expected mean 4, got %v", summary.Mean)
	}
	expectedStd := math.Sqrt(8.0 / 3.0)
	if math.Abs(summary.StdDev-expectedStd) > 1e-9 {
		t.Fatalf("expected stddev %v, got %v", expectedStd, summary.StdDev)
	}
	if math.Abs(summary.Normalized['b']) > 1e-9 {
		t.Fatalf("expected z-score 0 for mean count, got %v", summary.Normalized['b'])
	}
}

func TestStatisticsZeroVariance(t *testing.T) {
	if _, err := Statistics(LetterFrequency{'a': 3, 'b': 3}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("expected ErrZeroVariance, got %v", err)
	}
	if _, err := Statistics(LetterFrequency{'a': 3}); !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("expected ErrZeroVariance for single letter, got %v", err)
	}
}

func TestTopLettersOrderAndPercent(t *testing.T) {
	f := LetterFrequency{'a': 5, 'b': 3, 'c': 3, 'd': 1}
	top := TopLetters(f, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Letter != 'a' || top[0].Count != 5 {
		t.Fatalf("unexpected first entry: %+v", top[0])
	}
	if math.Abs(top[0].Percent-5.0/12.0*100) > 1e-9 {
		t.Fatalf("expected percent against full total, got %v", top[0].Percent)
	}
	// Alphabetical tie-break: b before c.
	if top[1].Letter != 'b' || top[1].Count != 3 {
		t.Fatalf("unexpected second entry: %+v", top[1])
	}
	if math.Abs(top[1].Percent-25.0) > 1e-9 {
		t.Fatalf("expected 25%%, got %v", top[1].Percent)
	}
}

func TestTopLettersClampsN(t *testing.T) {
	f := LetterFrequency{'a': 2, 'b': 1}
	if top := TopLetters(f, 10); len(top) != 2 {
		t.Fatalf("expected clamp to distribution size, got %d", len(top))
	}
	if top := TopLetters(f, 0); top != nil {
		t.Fatalf("expected nil for n=0, got %v", top)
	}
}
