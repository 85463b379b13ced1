package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jinnic/wordle-analysis/internal/corpus"
	"github.com/jinnic/wordle-analysis/internal/freq"
	"github.com/jinnic/wordle-analysis/internal/model"
)

func mustCorpus(t *testing.T, name string, words []string) *corpus.Corpus {
	t.Helper()
	c, err := corpus.New(name, words)
	if err != nil {
		t.Fatalf("corpus.New failed: %v", err)
	}
	return c
}

func TestBuildComputesDivergence(t *testing.T) {
	wordle := mustCorpus(t, "wordle", []string{"aa"})
	english := mustCorpus(t, "english", []string{"ab"})

	r, err := Build(wordle, english)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if math.Abs(r.TVD-0.5) > 1e-9 {
		t.Fatalf("expected TVD 0.5, got %v", r.TVD)
	}
	if r.WordleFreq['a'] != 2 {
		t.Fatalf("unexpected wordle frequency: %v", r.WordleFreq)
	}
	if r.EnglishProbs['b'] != 0.5 {
		t.Fatalf("unexpected english probability: %v", r.EnglishProbs)
	}
	if r.EnglishPosProbs[2]['b'] != 1.0 {
		t.Fatalf("unexpected positional probability: %v", r.EnglishPosProbs)
	}
	if r.TopLetter() != "a" {
		t.Fatalf("expected top letter a, got %q", r.TopLetter())
	}
}

func TestBuildRejectsUnequalLengths(t *testing.T) {
	wordle := mustCorpus(t, "wordle", []string{"aa"})
	english := &corpus.Corpus{Name: "english", Words: []string{"ab", "abc"}, Length: 2}

	if _, err := Build(wordle, english); err == nil {
		t.Fatalf("expected error for unequal word lengths")
	}
}

func TestRenderSummary(t *testing.T) {
	wordle := mustCorpus(t, "wordle", []string{"apple", "angle"})
	english := mustCorpus(t, "english", []string{"ankle"})
	r, err := Build(wordle, english)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, r); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Wordle answers: 2 words (length 5)") {
		t.Fatalf("expected wordle corpus line, got %q", out)
	}
	if !strings.Contains(out, "Total variation distance:") {
		t.Fatalf("expected divergence line, got %q", out)
	}
}

func TestRenderTopLetters(t *testing.T) {
	wordle := mustCorpus(t, "wordle", []string{"apple", "angle", "ankle"})
	english := mustCorpus(t, "english", []string{"about", "other"})
	r, err := Build(wordle, english)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RenderTopLetters(&buf, r, 3); err != nil {
		t.Fatalf("RenderTopLetters failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Top 3 Letters") {
		t.Fatalf("expected table title, got %q", out)
	}
	if !strings.Contains(out, "Rank") || !strings.Contains(out, "Wordle") {
		t.Fatalf("expected table header, got %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+1+3 {
		t.Fatalf("expected title, header and 3 rows, got %d lines", len(lines))
	}
}

func TestRenderFrequencyBars(t *testing.T) {
	f := freq.LetterFrequency{'a': 3, 'b': 1}

	var buf bytes.Buffer
	if err := RenderFrequencyBars(&buf, "Letters", f); err != nil {
		t.Fatalf("RenderFrequencyBars failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Letters") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "3 (75.00%)") {
		t.Fatalf("expected count and percent for a, got %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "a") {
		t.Fatalf("expected most frequent letter first, got %q", lines[1])
	}
}

func TestRenderFrequencyBarsForcedColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	f := freq.LetterFrequency{'a': 2}

	var buf bytes.Buffer
	if err := RenderFrequencyBarsWithColor(&buf, "Letters", f, true); err != nil {
		t.Fatalf("RenderFrequencyBarsWithColor failed: %v", err)
	}
	if !strings.Contains(buf.String(), colorCyan) {
		t.Fatalf("expected ANSI color with forced output, got %q", buf.String())
	}

	buf.Reset()
	if err := RenderFrequencyBars(&buf, "Letters", f); err != nil {
		t.Fatalf("RenderFrequencyBars failed: %v", err)
	}
	if strings.Contains(buf.String(), colorCyan) {
		t.Fatalf("expected plain output for non-terminal writer, got %q", buf.String())
	}
}

func TestRenderComparisonBarsForcedColorRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	left := freq.Distribution{'a': 1.0}
	right := freq.Distribution{'a': 1.0}

	var buf bytes.Buffer
	if err := RenderComparisonBarsWithColor(&buf, "Comparison", "wordle", "english", left, right, true); err != nil {
		t.Fatalf("RenderComparisonBarsWithColor failed: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected NO_COLOR to win over forced color, got %q", buf.String())
	}
}

func TestRenderFrequencyBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderFrequencyBars(&buf, "Letters", freq.LetterFrequency{}); err != nil {
		t.Fatalf("RenderFrequencyBars failed: %v", err)
	}
	if !strings.Contains(buf.String(), "no data") {
		t.Fatalf("expected no data marker, got %q", buf.String())
	}
}

func TestRenderComparisonBars(t *testing.T) {
	left := freq.Distribution{'a': 1.0}
	right := freq.Distribution{'a': 0.5, 'b': 0.5}

	var buf bytes.Buffer
	if err := RenderComparisonBars(&buf, "Comparison", "wordle", "english", left, right); err != nil {
		t.Fatalf("RenderComparisonBars failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "wordle vs english") {
		t.Fatalf("expected corpus names, got %q", out)
	}
	if !strings.Contains(out, "1.000") || !strings.Contains(out, "0.500") {
		t.Fatalf("expected probability values, got %q", out)
	}
	aIdx := strings.IndexRune(out, 'a')
	bIdx := strings.IndexRune(out, 'b')
	if aIdx == -1 || bIdx == -1 || aIdx > bIdx {
		t.Fatalf("expected letters in alphabetical order, got %q", out)
	}
}

func TestRenderPositionalHeatmap(t *testing.T) {
	pf := freq.PositionalFrequency{
		1: {'a': 3},
		2: {'a': 1, 'b': 1},
	}

	var buf bytes.Buffer
	if err := RenderPositionalHeatmap(&buf, "Positions", pf); err != nil {
		t.Fatalf("RenderPositionalHeatmap failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Positions") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "@   3") {
		t.Fatalf("expected densest shade with the count annotated, got %q", out)
	}
	if !strings.Contains(out, "=   1") {
		t.Fatalf("expected half-share shade for the split position, got %q", out)
	}
	if !strings.Contains(out, "shade:") {
		t.Fatalf("expected legend line, got %q", out)
	}
}

func TestShadeGlyph(t *testing.T) {
	if shadeGlyph(0, 1) != ' ' {
		t.Fatalf("expected blank glyph for zero")
	}
	if shadeGlyph(1, 1) != '@' {
		t.Fatalf("expected densest glyph for maximum")
	}
}

func TestRenderHistory(t *testing.T) {
	runs := []model.RunRecord{
		{ID: 1, RanAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), WordleWords: 500, EnglishWords: 4000, TVD: 0.21, TopLetter: "e", Source: "scrape"},
		{ID: 2, RanAt: time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC), WordleWords: 510, EnglishWords: 4000, TVD: 0.20, TopLetter: "e", Source: "cache"},
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, runs, 2); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Divergence Trend") {
		t.Fatalf("expected trend plot title, got %q", out)
	}
	if !strings.Contains(out, "2026-08-01 12:00") {
		t.Fatalf("expected run date, got %q", out)
	}
	if !strings.Contains(out, "0.2100") {
		t.Fatalf("expected run TVD, got %q", out)
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil, 3); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("expected empty marker, got %q", buf.String())
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1})
	if len(out) != 2 {
		t.Fatalf("expected 2 glyphs, got %q", out)
	}
	if out[0] != sparkChars[0] || out[1] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("expected full range glyphs, got %q", out)
	}
}
