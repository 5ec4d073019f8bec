// Package style centralizes terminal styling and structured-output helpers
// for the ply CLI.
package style

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

var (
	// Color palette
	ErrorColor       = lipgloss.Color("#FF6B6B")
	ErrorBgColor     = lipgloss.Color("#3D2020")
	WarningColor     = lipgloss.Color("#FFA726")
	SuccessColor     = lipgloss.Color("#66BB6A")
	InfoColor        = lipgloss.Color("#42A5F5")
	MutedColor       = lipgloss.Color("#6C757D")
	AccentColor      = lipgloss.Color("#7C3AED")
	CodeColor        = lipgloss.Color("#D4D4D4")
	PrimaryTextColor = lipgloss.Color("#E4E4E7")

	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)

	// Report styles
	BannerStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Bold(true)
)

// PrintJSON outputs data as formatted JSON
func PrintJSON(w io.Writer, data interface{}) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding JSON: %v\n", err)
	}
}

// PrintYAML outputs data as YAML
func PrintYAML(w io.Writer, data interface{}) {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(w, "Error encoding YAML: %v\n", err)
	}
	encoder.Close()
}

// SuccessString renders a success message with its icon
func SuccessString(message string) string {
	icon := lipgloss.NewStyle().Foreground(SuccessColor).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(SuccessColor).Render(message)
	return fmt.Sprintf("%s %s", icon, msg)
}

// Error prints an error message with styling
func Error(w io.Writer, message string) {
	icon := lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render("✗")
	msg := lipgloss.NewStyle().Foreground(ErrorColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}

// Warning prints a warning message with styling
func Warning(w io.Writer, message string) {
	icon := lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("⚠")
	msg := lipgloss.NewStyle().Foreground(WarningColor).Render(message)
	fmt.Fprintf(w, "%s %s\n", icon, msg)
}
