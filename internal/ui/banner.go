// Package ui provides the ASCII banner for the stormcast CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// banner is the ASCII art logo for stormcast.
const banner = `
  ███████╗████████╗ ██████╗ ██████╗ ███╗   ███╗ ██████╗ █████╗ ███████╗████████╗
  ██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗████╗ ████║██╔════╝██╔══██╗██╔════╝╚══██╔══╝
  ███████╗   ██║   ██║   ██║██████╔╝██╔████╔██║██║     ███████║███████╗   ██║
  ╚════██║   ██║   ██║   ██║██╔══██╗██║╚██╔╝██║██║     ██╔══██║╚════██║   ██║
  ███████║   ██║   ╚██████╔╝██║  ██║██║ ╚═╝ ██║╚██████╗██║  ██║███████║   ██║
  ╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚═╝     ╚═╝ ╚═════╝╚═╝  ╚═╝╚══════╝   ╚═╝`

// tagline is the product tagline.
const tagline = "Distributed load generation, scripted in Go"

// PrintBanner prints the stormcast banner with version info.
func PrintBanner(version string) {
	styledBanner := lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Render(banner)

	fmt.Println(styledBanner)
	fmt.Println()

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		PaddingLeft(2)
	fmt.Println(taglineStyle.Render(tagline))
	fmt.Println()

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		PaddingLeft(2)

	fmt.Println(infoStyle.Render(fmt.Sprintf("Version: %s", version)))
	fmt.Println()
}

// PrintMiniBanner prints a smaller banner for commands.
func PrintMiniBanner() {
	styledBanner := lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Render("stormcast")
	fmt.Println(styledBanner)
}

// GetHelpText returns the formatted help text for the CLI.
func GetHelpText() string {
	purple := lipgloss.NewStyle().Foreground(Purple).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	return fmt.Sprintf(`%s

  %s

%s
  %s         Run an environment descriptor's scenarios
  %s      Check a descriptor for structural errors
  %s                 Scaffold a new environment descriptor

%s
  %s      Summarize a JSON report's headline numbers

%s  stormcast run environment.yaml
%s  stormcast validate environment.yaml`,
		purple.Render(banner),
		dim.Render(tagline),
		purple.Render("Quick Start:"),
		purple.Render("stormcast run <descriptor.yaml>"),
		purple.Render("stormcast validate <descriptor.yaml>"),
		purple.Render("stormcast init <descriptor.yaml>"),
		purple.Render("Reports:"),
		purple.Render("stormcast report summarize <report.json>"),
		purple.Render("Example: "),
		purple.Render("Example: "),
	)
}
