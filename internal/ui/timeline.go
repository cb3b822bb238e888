package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/RoadWing/internal/schedule"
	"github.com/josephgoksu/RoadWing/models"
)

// RenderTimeline draws the derived schedule as a Gantt-style bar chart.
// One row per slot, bars scaled so the full horizon fits the terminal.
// A slot's bar is shaded by its progress: filled cells for the completed
// share, light cells for the remainder.
func RenderTimeline(tl schedule.Timeline, tasks []models.Task) string {
	if len(tl.Slots) == 0 {
		return StyleSubtle.Render("No tasks scheduled.")
	}

	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	const labelWidth = 24
	chartWidth := TermWidth() - labelWidth - 8
	if chartWidth < tl.TotalPeriods {
		chartWidth = tl.TotalPeriods
	}
	cellsPerPeriod := chartWidth / tl.TotalPeriods
	if cellsPerPeriod < 1 {
		cellsPerPeriod = 1
	}

	var sb strings.Builder
	sb.WriteString(padRight("", labelWidth))
	sb.WriteString(" ")
	sb.WriteString(StyleSubtle.Render(periodRuler(tl.TotalPeriods, cellsPerPeriod)))
	sb.WriteString("\n")

	for _, slot := range tl.Slots {
		title := titles[slot.TaskID]
		if title == "" {
			title = TruncateID(slot.TaskID)
		}
		sb.WriteString(StyleText.Render(padRight(Truncate(title, labelWidth), labelWidth)))
		sb.WriteString(" ")

		lead := strings.Repeat(" ", slot.StartPeriod*cellsPerPeriod)
		barLen := slot.DurationPeriods * cellsPerPeriod
		done := barLen * slot.ProgressPercent / 100
		bar := StyleSuccess.Render(strings.Repeat("█", done)) +
			StylePrimary.Render(strings.Repeat("░", barLen-done))
		sb.WriteString(lead + bar)
		sb.WriteString(StyleSubtle.Render(fmt.Sprintf("  %dw", slot.DurationPeriods)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(StyleSubtle.Render(fmt.Sprintf("Horizon: %d periods", tl.TotalPeriods)))
	return sb.String()
}

// periodRuler renders period numbers along the top of the chart, one marker
// per period, padded to the period's cell width.
func periodRuler(totalPeriods, cellsPerPeriod int) string {
	var sb strings.Builder
	for p := 0; p < totalPeriods; p++ {
		label := fmt.Sprintf("%d", p+1)
		if len(label) > cellsPerPeriod {
			label = label[:cellsPerPeriod]
		}
		sb.WriteString(padRight(label, cellsPerPeriod))
	}
	return sb.String()
}
