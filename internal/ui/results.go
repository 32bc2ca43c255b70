// Package ui provides result rendering components.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// PrintWorkerResult prints one scenario instance's terminal outcome.
//
// Parameters:
//   - scenarioName: the scenario's name within the environment run
//   - status: "completed", "failed", or "timeout"
//   - sessionID: the session's ID, for cross-referencing the full report
//   - errMsg: the terminal error message if any (empty on success)
func PrintWorkerResult(scenarioName, status, sessionID, errMsg string) {
	var statusStyle lipgloss.Style
	var statusIcon string

	switch status {
	case "completed":
		statusStyle = StatusPassedStyle
		statusIcon = "✓"
	case "failed", "timeout":
		statusStyle = StatusFailedStyle
		statusIcon = "✗"
	default:
		statusStyle = DimStyle
		statusIcon = "?"
	}

	statusLine := fmt.Sprintf("%s %s", statusIcon, scenarioName)
	fmt.Println(statusStyle.Render(statusLine))
	fmt.Printf("  %s %s\n", DimStyle.Render("Session:"), DimStyle.Render(sessionID))

	if errMsg != "" {
		fmt.Printf("  %s %s\n", DimStyle.Render("Error:"), ErrorStyle.Render(errMsg))
	}
}

// PrintResultBox prints a boxed result summary for one scenario instance.
//
// Parameters:
//   - status: "Completed" or "Failed"
//   - sessionID: the session's ID
//   - duration: execution duration string
func PrintResultBox(status, sessionID, duration string) {
	var boxStyle lipgloss.Style
	var icon string

	switch status {
	case "Completed":
		boxStyle = ResultBoxPassedStyle
		icon = "✓"
	case "Failed":
		boxStyle = ResultBoxFailedStyle
		icon = "✗"
	default:
		boxStyle = BoxStyle
		icon = "•"
	}

	titleLine := fmt.Sprintf("%s %s", icon, status)
	if duration != "" {
		titleLine += fmt.Sprintf("  %s", DimStyle.Render(duration))
	}

	content := titleLine + "\n"
	content += fmt.Sprintf("Session: %s", sessionID)

	fmt.Println(boxStyle.Render(content))
}

// PrintEnvironmentResult prints a full environment batch's summary.
//
// Parameters:
//   - name: environment name
//   - passed: number of workers that completed successfully
//   - failed: number of workers that failed or timed out
//   - total: total workers run
//   - durationMS: the batch's wall-clock duration in milliseconds
func PrintEnvironmentResult(name string, passed, failed, total int, durationMS int64) {
	var statusStyle lipgloss.Style
	var statusIcon string

	if failed == 0 {
		statusStyle = StatusPassedStyle
		statusIcon = "✓"
	} else {
		statusStyle = StatusFailedStyle
		statusIcon = "✗"
	}

	statusLine := fmt.Sprintf("%s %s", statusIcon, name)
	fmt.Println(statusStyle.Render(statusLine))

	summary := fmt.Sprintf("  %d/%d workers completed", passed, total)
	if failed > 0 {
		summary += fmt.Sprintf(", %d failed", failed)
	}
	fmt.Println(InfoStyle.Render(summary))
	fmt.Printf("  %s %dms\n", DimStyle.Render("Duration:"), durationMS)
}
