package tui

import (
	"fmt"
	"strings"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// RenderRunSummary renders one line per processed archive plus totals.
func RenderRunSummary(summary *domain.RunSummary) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Landing Zone Run") + "  " + dimStyle.Render(summary.RunID) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if len(summary.Outcomes) == 0 {
		b.WriteString("  " + dimStyle.Render("No .tar files found in incoming directory.") + "\n\n")
		return b.String()
	}

	for _, o := range summary.Outcomes {
		status := verdictStyle(o.Status).Render(padRight(o.Status, 14))
		line := fmt.Sprintf("  %s %s", status, padRight(o.Archive, 28))

		switch {
		case o.Error != "":
			line += "  " + failStyle.Render(o.Error)
		case o.IssueCount > 0:
			line += "  " + dimStyle.Render(fmt.Sprintf("%d issues", o.IssueCount))
		}
		if o.Transferred {
			line += "  " + passStyle.Render("sent")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s  %s\n\n",
		passStyle.Render(fmt.Sprintf("%d passed", summary.Count(domain.StatusPassed))),
		failStyle.Render(fmt.Sprintf("%d failed", summary.Count(domain.StatusFailed))),
		warnStyle.Render(fmt.Sprintf("%d unpack failures", summary.Count(domain.StatusUnpackFailed))),
	)
	return b.String()
}

// RenderFixPlan lists remediation actions, applied or planned.
func RenderFixPlan(plan *domain.FixPlan) string {
	var b strings.Builder

	heading := "Applied fixes"
	if plan.DryRun {
		heading = "Planned fixes (dry run)"
	}
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render(heading) + "  " + dimStyle.Render(plan.Submission.BaseName) + "\n\n")

	if len(plan.Applied) == 0 {
		b.WriteString("  " + dimStyle.Render("Nothing to fix.") + "\n\n")
		return b.String()
	}
	for _, fix := range plan.Applied {
		renderFix(&b, fix)
	}
	b.WriteString("\n")
	return b.String()
}
