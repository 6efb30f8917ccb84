package client

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	stepStyle      = lipgloss.NewStyle().Faint(true)
	successStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failureStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cancelledStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	summaryStyle   = lipgloss.NewStyle().PaddingLeft(2)
)

// renderProgress formats one progress event as a terminal line.
func renderProgress(event models.SyncProgress) string {
	if !event.State.IsTerminal() {
		return stepStyle.Render(fmt.Sprintf("[%s] %s", event.State, event.Message))
	}
	return stateStyle(event.State).Render(event.Message)
}

func stateStyle(state models.SyncState) lipgloss.Style {
	switch state {
	case models.SyncStateSuccess:
		return successStyle
	case models.SyncStateCancelled:
		return cancelledStyle
	default:
		return failureStyle
	}
}

// renderSummary lists the dispatched actions of a finished pass, sorted by
// action name, followed by the conflicts the remote side won.
func renderSummary(result models.SyncResult) string {
	var lines []string

	names := make([]string, 0, len(result.Summary.Actions))
	counts := make(map[string]int, len(result.Summary.Actions))
	for action, n := range result.Summary.Actions {
		if action == models.SyncActionNone || n == 0 {
			continue
		}
		names = append(names, action.String())
		counts[action.String()] = n
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%-16s %d", name, counts[name]))
	}

	for _, c := range result.Summary.Conflicts {
		lines = append(lines, fmt.Sprintf("conflict: note %d (%s), remote kept", c.LocalID, c.Name))
	}

	if len(lines) == 0 {
		lines = append(lines, "nothing to do")
	}
	lines = append(lines, fmt.Sprintf("took %s", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond)))

	return summaryStyle.Render(strings.Join(lines, "\n"))
}
