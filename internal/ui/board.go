package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/RoadWing/models"
)

// boardColumns fixes the Kanban column order. Blocked gets its own column
// even though it contributes nothing to progress.
var boardColumns = []models.TaskStatus{
	models.StatusTodo,
	models.StatusInProgress,
	models.StatusCompleted,
	models.StatusBlocked,
}

var columnTitles = map[models.TaskStatus]string{
	models.StatusTodo:       "To Do",
	models.StatusInProgress: "In Progress",
	models.StatusCompleted:  "Completed",
	models.StatusBlocked:    "Blocked",
}

// RenderBoard lays tasks out as a Kanban board, one column per status.
// Within a column tasks keep the order they arrive in, which ListTasks
// already guarantees (OrderIndex, insertion order on ties).
func RenderBoard(tasks []models.Task, members []models.Member) string {
	width := TermWidth()
	colWidth := width/len(boardColumns) - 4
	if colWidth < 18 {
		colWidth = 18
	}

	byEmail := make(map[string]string, len(members))
	for _, m := range members {
		label := m.Name
		if label == "" {
			label = m.Email
		}
		byEmail[m.UserID] = label
	}

	rendered := make([]string, 0, len(boardColumns))
	for _, status := range boardColumns {
		var cards []string
		for _, t := range tasks {
			if t.Status != status {
				continue
			}
			cards = append(cards, renderCard(t, byEmail, colWidth))
		}

		header := StatusStyle(status).Bold(true).Render(
			fmt.Sprintf("%s %s (%d)", StatusIcon(status), columnTitles[status], len(cards)))
		body := StyleSubtle.Render("empty")
		if len(cards) > 0 {
			body = strings.Join(cards, "\n\n")
		}

		col := StyleColumn.Width(colWidth).Render(header + "\n\n" + body)
		rendered = append(rendered, col)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderCard(t models.Task, byID map[string]string, width int) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(Truncate(t.Title, width)))
	sb.WriteString("\n")
	sb.WriteString(PriorityStyle(t.Priority).Render(string(t.Priority)))
	if t.EstimateHours != nil {
		sb.WriteString(StyleSubtle.Render(fmt.Sprintf(" · %gh", *t.EstimateHours)))
	}
	if t.AssigneeID != nil {
		if name, ok := byID[*t.AssigneeID]; ok {
			sb.WriteString("\n")
			sb.WriteString(StyleSubtle.Render("@ " + Truncate(name, width-2)))
		}
	}
	return sb.String()
}
