package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	b.WriteString(renderConfigInfo(data))
	b.WriteString("\n")

	b.WriteString(renderHistoryInfo(data))
	b.WriteString("\n")

	b.WriteString(renderProviders(data))
	b.WriteString("\n")

	b.WriteString(renderEngineInfo(data))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConfigInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⚙️  Configuration:") + "\n")

	if data.ConfigPath != "" {
		b.WriteString("   " + keyStyle.Render("Config: ") + successStyle.Render("✓ "+data.ConfigPath) + "\n")
		if data.ConfigName != "" {
			b.WriteString("   " + keyStyle.Render("CLI name: ") + valueStyle.Render(data.ConfigName) + "\n")
		}
		if data.ConfigLang != "" {
			b.WriteString("   " + keyStyle.Render("Language: ") + valueStyle.Render(data.ConfigLang) + "\n")
		}
	} else {
		b.WriteString("   " + keyStyle.Render("Config: ") + errorStyle.Render("✗ Not found") + "\n")
		for _, candidate := range data.CandidateLs {
			b.WriteString("   " + subtleStyle.Render("searched: "+candidate) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderHistoryInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🕘 History:") + "\n")

	if data.HistoryPath != "" {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render(data.HistoryPath) + "\n")
		b.WriteString("   " + keyStyle.Render("Entries: ") + valueStyle.Render(fmt.Sprintf("%d", data.HistoryCount)))
	} else {
		b.WriteString("   " + subtleStyle.Render("No history store configured"))
	}

	return b.String()
}

func renderProviders(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🧩 Providers:") + "\n")

	if len(data.Providers) == 0 {
		b.WriteString("   " + subtleStyle.Render("None registered"))
		return b.String()
	}

	for i, p := range data.Providers {
		state := successStyle.Render("enabled")
		if !p.Enabled {
			state = errorStyle.Render("disabled")
		}
		b.WriteString(fmt.Sprintf("   %s %s (%s)",
			keyStyle.Render(fmt.Sprintf("[%d]", p.Priority)),
			valueStyle.Render(p.Name),
			state))
		if i < len(data.Providers)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderEngineInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🚀 Engine:") + "\n")

	state := successStyle.Render("✓ Enabled")
	if !data.Enabled {
		state = errorStyle.Render("✗ Disabled")
	}
	b.WriteString("   " + keyStyle.Render("Registry: ") + state + "\n")
	b.WriteString("   " + keyStyle.Render("Analyzers: ") + valueStyle.Render(fmt.Sprintf("%d", data.Analyzers)) + "\n")
	b.WriteString("   " + keyStyle.Render("Cache: ") + valueStyle.Render(fmt.Sprintf("%d / %d entries", data.CacheSize, data.CacheMax)))

	return b.String()
}
