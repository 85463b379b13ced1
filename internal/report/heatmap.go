package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jinnic/wordle-analysis/internal/freq"
)

var shadeRamp = []rune(" .:-=+*#%@")

// RenderPositionalHeatmap writes a letter-by-position grid of counts.
// The glyph shade tracks the count's share of its position total.
// Rows are letters in alphabetical order, columns are word positions.
func RenderPositionalHeatmap(w io.Writer, title string, pf freq.PositionalFrequency) error {
	if len(pf) == 0 {
		_, err := fmt.Fprintf(w, "%s: no data\n", title)
		return err
	}

	positions := make([]int, 0, len(pf))
	for pos := range pf {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	totals := make(map[int]int, len(positions))
	letterSet := map[rune]struct{}{}
	maxShare := 0.0
	for _, pos := range positions {
		total := pf[pos].Total()
		totals[pos] = total
		if total == 0 {
			continue
		}
		for l, count := range pf[pos] {
			letterSet[l] = struct{}{}
			share := float64(count) / float64(total)
			if share > maxShare {
				maxShare = share
			}
		}
	}
	if maxShare == 0 {
		maxShare = 1
	}
	letters := make([]rune, 0, len(letterSet))
	for l := range letterSet {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	var header strings.Builder
	header.WriteString("    ")
	for _, pos := range positions {
		header.WriteString(fmt.Sprintf("  %d   ", pos))
	}
	if _, err := fmt.Fprintln(w, header.String()); err != nil {
		return err
	}

	for _, l := range letters {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("  %c ", l))
		for _, pos := range positions {
			count := pf[pos][l]
			share := 0.0
			if totals[pos] > 0 {
				share = float64(count) / float64(totals[pos])
			}
			row.WriteString(fmt.Sprintf(" %c%4d", shadeGlyph(share, maxShare), count))
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "  shade: '%c' = 0  '%c' = %.3f of position\n\n", shadeRamp[0], shadeRamp[len(shadeRamp)-1], maxShare)
	return err
}

func shadeGlyph(value, maxValue float64) rune {
	if maxValue <= 0 || value <= 0 {
		return shadeRamp[0]
	}
	idx := int(value / maxValue * float64(len(shadeRamp)-1))
	if idx >= len(shadeRamp) {
		idx = len(shadeRamp) - 1
	}
	return shadeRamp[idx]
}
