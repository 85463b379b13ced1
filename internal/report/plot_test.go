package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	// Ten points at width ten: no clamping, resampling is the identity.
	values := []float64{0.1, 0.15, 0.2, 0.25, 0.3, 0.3, 0.25, 0.2, 0.15, 0.1}

	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", "TVD", values, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "TVD: min=0.1000 max=0.3000") {
		t.Fatalf("expected range line in output, got %q", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 1 + 4
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotSeriesLabelsResampledRange(t *testing.T) {
	// Below the minimum width the series is upsampled and the labels
	// track the interpolated data, not the raw input.
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "", "TVD", []float64{0.1, 0.2, 0.3, 0.2, 0.1}, 5, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if !strings.Contains(buf.String(), "TVD: min=0.1000 max=") {
		t.Fatalf("expected range line in output, got %q", buf.String())
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", "X", nil, 5, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-6-len(axisSeparator) {
		t.Fatalf("unexpected width for 80 columns: %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("expected minimum width for narrow terminal, got %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected minimum width for unknown terminal, got %d", got)
	}
}

func TestResampleSeriesDownsamples(t *testing.T) {
	values := []float64{1, 1, 3, 3}
	out := resampleSeries(values, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 3 {
		t.Fatalf("unexpected resample result: %v", out)
	}
}

func TestResampleSeriesUpsamples(t *testing.T) {
	values := []float64{0, 2}
	out := resampleSeries(values, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(out))
	}
	if out[0] != 0 || out[1] != 1 || out[2] != 2 {
		t.Fatalf("unexpected interpolation: %v", out)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("unexpected moving average at %d: got %v want %v", i, out[i], want[i])
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	values := []float64{1, 2, 3}
	out := MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("expected identity for window 1, got %v", out)
		}
	}
}
