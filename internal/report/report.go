// Package report builds and renders letter-frequency analysis reports.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jinnic/wordle-analysis/internal/corpus"
	"github.com/jinnic/wordle-analysis/internal/freq"
	"github.com/jinnic/wordle-analysis/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Report contains precomputed data for rendering.
type Report struct {
	Wordle  *corpus.Corpus
	English *corpus.Corpus

	WordleFreq  freq.LetterFrequency
	EnglishFreq freq.LetterFrequency

	WordlePos  freq.PositionalFrequency
	EnglishPos freq.PositionalFrequency

	WordleProbs  freq.Distribution
	EnglishProbs freq.Distribution

	WordlePosProbs  map[int]freq.Distribution
	EnglishPosProbs map[int]freq.Distribution

	TVD float64
}

// Build computes letter and positional frequencies, probability
// distributions and the total variation distance for two corpora.
func Build(wordle, english *corpus.Corpus) (Report, error) {
	r := Report{Wordle: wordle, English: english}

	r.WordleFreq = freq.Letters(wordle.Words)
	r.EnglishFreq = freq.Letters(english.Words)

	var err error
	if r.WordlePos, err = freq.Positional(wordle.Words); err != nil {
		return Report{}, fmt.Errorf("wordle corpus: %w", err)
	}
	if r.EnglishPos, err = freq.Positional(english.Words); err != nil {
		return Report{}, fmt.Errorf("english corpus: %w", err)
	}

	if r.WordleProbs, err = freq.Probabilities(r.WordleFreq, r.WordleFreq.Total()); err != nil {
		return Report{}, fmt.Errorf("wordle corpus: %w", err)
	}
	if r.EnglishProbs, err = freq.Probabilities(r.EnglishFreq, r.EnglishFreq.Total()); err != nil {
		return Report{}, fmt.Errorf("english corpus: %w", err)
	}

	r.WordlePosProbs = freq.PositionalProbabilities(r.WordlePos)
	r.EnglishPosProbs = freq.PositionalProbabilities(r.EnglishPos)

	r.TVD = freq.TotalVariationDistance(r.WordleProbs, r.EnglishProbs)
	return r, nil
}

// TopLetter returns the most frequent letter of the Wordle corpus.
func (r Report) TopLetter() string {
	ranks := freq.TopLetters(r.WordleFreq, 1)
	if len(ranks) == 0 {
		return ""
	}
	return string(ranks[0].Letter)
}

// RenderSummary prints corpus sizes and the divergence headline.
func RenderSummary(w io.Writer, r Report) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Wordle answers: %d words (length %d)\n", len(r.Wordle.Words), r.Wordle.Length); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "English words: %d words (length %d)\n", len(r.English.Words), r.English.Length); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total variation distance: %.4f\n", r.TVD); err != nil {
		return err
	}
	if top := r.TopLetter(); top != "" {
		if _, err := fmt.Fprintf(w, "Top Wordle letter: %s\n", top); err != nil {
			return err
		}
	}
	if summary, err := freq.Statistics(r.WordleFreq); err == nil {
		if _, err := fmt.Fprintf(w, "Wordle letter counts: mean=%.2f stddev=%.2f\n", summary.Mean, summary.StdDev); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderTopLetters prints the top-N letter table for both corpora side by side.
func RenderTopLetters(w io.Writer, r Report, n int) error {
	wordleRanks := freq.TopLetters(r.WordleFreq, n)
	englishRanks := freq.TopLetters(r.EnglishFreq, n)
	if len(wordleRanks) == 0 && len(englishRanks) == 0 {
		_, err := fmt.Fprintln(w, "No letter stats found.")
		return err
	}

	headers := []string{"Rank", "Wordle", "Count", "Pct", "English", "Count", "Pct"}
	rows := make([][]string, 0, len(wordleRanks))
	size := len(wordleRanks)
	if len(englishRanks) > size {
		size = len(englishRanks)
	}
	for i := 0; i < size; i++ {
		row := []string{fmt.Sprintf("%d", i+1), "", "", "", "", "", ""}
		if i < len(wordleRanks) {
			row[1] = string(wordleRanks[i].Letter)
			row[2] = fmt.Sprintf("%d", wordleRanks[i].Count)
			row[3] = fmt.Sprintf("%.2f%%", wordleRanks[i].Percent)
		}
		if i < len(englishRanks) {
			row[4] = string(englishRanks[i].Letter)
			row[5] = fmt.Sprintf("%d", englishRanks[i].Count)
			row[6] = fmt.Sprintf("%.2f%%", englishRanks[i].Percent)
		}
		rows = append(rows, row)
	}

	if _, err := fmt.Fprintf(w, "Top %d Letters\n", n); err != nil {
		return err
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAll prints the full report: summary, frequency bars for both
// corpora, the probability comparison, positional heatmaps and the
// top-N table.
func RenderAll(w io.Writer, r Report, topN int) error {
	if err := RenderSummary(w, r); err != nil {
		return err
	}
	if err := RenderFrequencyBars(w, "Wordle Letter Frequency", r.WordleFreq); err != nil {
		return err
	}
	if err := RenderFrequencyBars(w, "English Letter Frequency", r.EnglishFreq); err != nil {
		return err
	}
	if err := RenderComparisonBars(w, "Letter Probability Comparison", "wordle", "english", r.WordleProbs, r.EnglishProbs); err != nil {
		return err
	}
	if err := RenderPositionalHeatmap(w, "Wordle Letters by Position", r.WordlePos); err != nil {
		return err
	}
	if err := RenderPositionalHeatmap(w, "English Letters by Position", r.EnglishPos); err != nil {
		return err
	}
	return RenderTopLetters(w, r, topN)
}

// RenderHistory prints the divergence trend across past runs and a run table.
func RenderHistory(w io.Writer, runs []model.RunRecord, window int) error {
	return RenderHistoryWithSize(w, runs, window, 0, 10)
}

// RenderHistoryWithSize prints history sized to a given total width.
func RenderHistoryWithSize(w io.Writer, runs []model.RunRecord, window, totalWidth, height int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}

	tvds := make([]float64, len(runs))
	for i, r := range runs {
		tvds[i] = r.TVD
	}
	smoothed := MovingAverage(tvds, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	if err := PlotSeries(w, "Divergence Trend", "TVD", smoothed, width, height); err != nil {
		return err
	}

	headers := []string{"Run", "Date", "Wordle", "English", "TVD", "Top", "Source"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.RanAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.WordleWords),
			fmt.Sprintf("%d", r.EnglishWords),
			fmt.Sprintf("%.4f", r.TVD),
			r.TopLetter,
			r.Source,
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
