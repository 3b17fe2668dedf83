// Package stats contains drill statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/dewtone/stenodactylus/internal/model"
)

const sparkChars = " .:-=+*#%@"

// DrillMetrics computes chords per minute and accuracy for a drill.
func DrillMetrics(matched, missed int, durationMs int64) (cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	if minutes <= 0 {
		return 0, 0
	}
	cpm = float64(matched) / minutes
	den := float64(matched + missed)
	if den > 0 {
		accuracy = float64(matched) / den
	}
	return cpm, accuracy
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

// RenderSummary prints a summary table for drills.
func RenderSummary(w io.Writer, drills []model.DrillAggregate) error {
	if len(drills) == 0 {
		_, err := fmt.Fprintln(w, "No drills found.")
		return err
	}
	var totalCPM, totalAcc float64
	bestCPM := 0.0
	bestStreak := 0
	for _, d := range drills {
		cpm, acc := DrillMetrics(d.Matched, d.Missed, d.DurationMs)
		totalCPM += cpm
		totalAcc += acc
		if cpm > bestCPM {
			bestCPM = cpm
		}
		if d.BestStreak > bestStreak {
			bestStreak = d.BestStreak
		}
	}
	count := float64(len(drills))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Drills: %d\n", len(drills)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Chords/min: %.2f\n", totalCPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Chords/min: %.2f\n", bestCPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Streak: %d\n", bestStreak); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurves prints learning curves for speed and accuracy.
func RenderCurves(w io.Writer, drills []model.DrillAggregate, window int) error {
	return RenderCurvesWithSize(w, drills, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, drills []model.DrillAggregate, window, totalWidth, height int, useColor bool) error {
	if len(drills) == 0 {
		return nil
	}
	cpms := make([]float64, len(drills))
	accs := make([]float64, len(drills))
	for i, d := range drills {
		cpm, acc := DrillMetrics(d.Matched, d.Missed, d.DurationMs)
		cpms[i] = cpm
		accs[i] = acc * 100
	}
	cpms = MovingAverage(cpms, window)
	accs = MovingAverage(accs, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "Chords/min", Values: cpms},
		{Name: "Accuracy", Values: accs},
	}, width, height, useColor)
}

// RenderStrokeTable prints per-stroke aggregates sorted by lowest accuracy.
func RenderStrokeTable(w io.Writer, aggs []model.StrokeAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No stroke stats found.")
		return err
	}
	type row struct {
		stroke    string
		acc       float64
		latency   float64
		correct   int
		incorrect int
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total)
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, row{
			stroke:    agg.Stroke,
			acc:       acc,
			latency:   lat,
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].stroke < rows[j].stroke
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Stroke (Windowed)"); err != nil {
		return err
	}

	headers := []string{"Stroke", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.stroke,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%.1f", r.latency),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	lines := formatTable(headers, tableRows, rightAlign)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderStrokeCurves prints per-stroke learning curves.
func RenderStrokeCurves(w io.Writer, drills []model.DrillAggregate, perDrill map[int64]map[string]model.StrokeAggregate, strokes []string, window int) error {
	return RenderStrokeCurvesWithSize(w, drills, perDrill, strokes, window, 0, 10, false)
}

// RenderStrokeCurvesWithSize prints per-stroke learning curves sized to a given total width.
func RenderStrokeCurvesWithSize(w io.Writer, drills []model.DrillAggregate, perDrill map[int64]map[string]model.StrokeAggregate, strokes []string, window, totalWidth, height int, useColor bool) error {
	if len(strokes) == 0 || len(drills) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Stroke Curves"); err != nil {
		return err
	}
	for _, stroke := range strokes {
		accSeries := make([]float64, len(drills))
		latSeries := make([]float64, len(drills))
		for i, d := range drills {
			if data, ok := perDrill[d.DrillID]; ok {
				if agg, ok := data[stroke]; ok {
					total := agg.Correct + agg.Incorrect
					if total > 0 {
						accSeries[i] = float64(agg.Correct) / float64(total) * 100
					}
					if agg.LatencyCount > 0 {
						latSeries[i] = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
					}
				}
			}
		}
		accSeries = MovingAverage(accSeries, window)
		latSeries = MovingAverage(latSeries, window)
		width := 0
		if totalWidth > 0 {
			width = PlotWidthFor(totalWidth)
		}
		if err := PlotSeriesWithColor(w, fmt.Sprintf("Stroke %s", stroke), []Series{
			{Name: "Accuracy", Values: accSeries},
			{Name: "Latency", Values: latSeries},
		}, width, height, useColor); err != nil {
			return err
		}
	}
	return nil
}
