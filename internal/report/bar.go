package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/jinnic/wordle-analysis/internal/freq"
)

const (
	barGlyph    = "█"
	maxBarWidth = 40

	colorCyan  = "\x1b[36m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

// RenderFrequencyBars writes a horizontal bar chart of letter counts,
// most frequent letter first.
func RenderFrequencyBars(w io.Writer, title string, f freq.LetterFrequency) error {
	return RenderFrequencyBarsWithColor(w, title, f, false)
}

// RenderFrequencyBarsWithColor renders frequency bars with optional
// forced color output for non-terminal writers.
func RenderFrequencyBarsWithColor(w io.Writer, title string, f freq.LetterFrequency, forceColor bool) error {
	total := f.Total()
	if total == 0 {
		_, err := fmt.Fprintf(w, "%s: no data\n", title)
		return err
	}
	ranks := freq.TopLetters(f, len(f))

	maxCount := ranks[0].Count
	useColor := shouldUseColor(w, forceColor)
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, r := range ranks {
		bar := barGlyphs(r.Count, maxCount)
		if useColor {
			bar = colorCyan + bar + colorReset
		}
		if _, err := fmt.Fprintf(w, "  %c %s %d (%.2f%%)\n", r.Letter, bar, r.Count, r.Percent); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderComparisonBars writes paired probability bars for two distributions
// over the union of their letters, in alphabetical order.
func RenderComparisonBars(w io.Writer, title, leftName, rightName string, left, right freq.Distribution) error {
	return RenderComparisonBarsWithColor(w, title, leftName, rightName, left, right, false)
}

// RenderComparisonBarsWithColor renders comparison bars with optional
// forced color output for non-terminal writers.
func RenderComparisonBarsWithColor(w io.Writer, title, leftName, rightName string, left, right freq.Distribution, forceColor bool) error {
	letters := unionLetters(left, right)
	if len(letters) == 0 {
		_, err := fmt.Fprintf(w, "%s: no data\n", title)
		return err
	}

	maxProb := 0.0
	for _, l := range letters {
		if left[l] > maxProb {
			maxProb = left[l]
		}
		if right[l] > maxProb {
			maxProb = right[l]
		}
	}
	if maxProb == 0 {
		maxProb = 1
	}

	useColor := shouldUseColor(w, forceColor)
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s vs %s\n", leftName, rightName); err != nil {
		return err
	}
	for _, l := range letters {
		lBar := barGlyphsScaled(left[l], maxProb)
		rBar := barGlyphsScaled(right[l], maxProb)
		if useColor {
			lBar = colorCyan + lBar + colorReset
			rBar = colorGreen + rBar + colorReset
		}
		if _, err := fmt.Fprintf(w, "  %c %6.3f %s\n    %6.3f %s\n", l, left[l], lBar, right[l], rBar); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func barGlyphs(count, maxCount int) string {
	if maxCount <= 0 {
		return ""
	}
	width := count * maxBarWidth / maxCount
	if width == 0 && count > 0 {
		width = 1
	}
	return strings.Repeat(barGlyph, width)
}

func barGlyphsScaled(value, maxValue float64) string {
	if maxValue <= 0 {
		return ""
	}
	width := int(value / maxValue * float64(maxBarWidth))
	if width == 0 && value > 0 {
		width = 1
	}
	return strings.Repeat(barGlyph, width)
}

func unionLetters(distributions ...freq.Distribution) []rune {
	seen := map[rune]struct{}{}
	for _, d := range distributions {
		for l := range d {
			seen[l] = struct{}{}
		}
	}
	letters := make([]rune, 0, len(seen))
	for l := range seen {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
