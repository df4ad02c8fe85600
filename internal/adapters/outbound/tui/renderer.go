package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// categoryOrder is the order checks run in, used to group issues.
var categoryOrder = []string{
	domain.CategoryStructure,
	domain.CategoryControl,
	domain.CategoryManifest,
	domain.CategorySchema,
}

// RenderReport renders a validation report for the terminal.
func RenderReport(report *domain.ValidationReport) string {
	var b strings.Builder

	title := headerStyle.Render(report.Submission.BaseName)
	subtitle := dimStyle.Render("Landing Zone Validation")
	verdict := verdictStyle(report.Status).Render(strings.ToUpper(report.Status))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	meta := fmt.Sprintf("passes %d", report.Passes)
	if report.Manifest != nil {
		if report.Manifest.SequenceNumber != "" {
			meta += "  seq " + report.Manifest.SequenceNumber
		}
		if report.Manifest.Version != "" {
			meta += "  version " + report.Manifest.Version
		}
	}
	b.WriteString("  " + dimStyle.Render(meta) + "\n")

	if len(report.Fixes) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Auto-fixes") + "\n")
		for _, fix := range report.Fixes {
			renderFix(&b, fix)
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if len(report.Issues) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteString("  ")
	b.WriteString(failStyle.Bold(true).Render(fmt.Sprintf("%d", len(report.Issues))))
	b.WriteString("\n")

	for _, cat := range categoryOrder {
		issues := issuesIn(report.Issues, cat)
		if len(issues) == 0 {
			continue
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			catNameStyle.Render(cat),
			dimStyle.Render(fmt.Sprintf("(%d)", len(issues))),
		)
		for _, issue := range issues {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("●"), issue.Message)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderFix(b *strings.Builder, fix domain.AppliedFix) {
	fmt.Fprintf(b, "    %s %s  %s\n",
		warnStyle.Render("●"),
		fix.Description,
		faintStyle.Render(filepath.Base(fix.Path)),
	)
}

func issuesIn(issues []domain.Issue, category string) []domain.Issue {
	var out []domain.Issue
	for _, i := range issues {
		if i.Category == category {
			out = append(out, i)
		}
	}
	return out
}

func verdictStyle(status string) lipgloss.Style {
	switch status {
	case domain.StatusPassed:
		return lipgloss.NewStyle().Bold(true).Foreground(success)
	case domain.StatusFailed, domain.StatusUnpackFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(danger)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(fg)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
