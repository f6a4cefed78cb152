package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/parcelup/internal/parcel"
)

var (
	statusColorGreen = lipgloss.Color("#22c55e")
	statusColorRed   = lipgloss.Color("#ef4444")
	statusColorBlue  = lipgloss.Color("#3b82f6")
	statusColorAmber = lipgloss.Color("#f59e0b")
	statusColorDim   = lipgloss.Color("#6b7280")
	statusColorWhite = lipgloss.Color("#f9fafb")
)

// statusStyles groups the styles used by renderStatus.
type statusStyles struct {
	title, section, dim, active, candidate, pending, failed lipgloss.Style
}

func newStatusStyles(styled bool) statusStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return statusStyles{plain, plain, plain, plain, plain, plain, plain}
	}
	return statusStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(statusColorWhite),
		section:   lipgloss.NewStyle().Bold(true).Foreground(statusColorBlue),
		dim:       lipgloss.NewStyle().Foreground(statusColorDim),
		active:    lipgloss.NewStyle().Foreground(statusColorGreen),
		candidate: lipgloss.NewStyle().Bold(true).Foreground(statusColorBlue),
		pending:   lipgloss.NewStyle().Foreground(statusColorAmber),
		failed:    lipgloss.NewStyle().Foreground(statusColorRed),
	}
}

// renderStatus produces the status table, styled when the output is a terminal.
func renderStatus(report *StatusReport, styled bool) string {
	st := newStatusStyles(styled)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(st.title.Render(fmt.Sprintf("  parcelup status: %s on %s", report.Product, report.Cluster)))
	b.WriteString("\n")
	b.WriteString(st.dim.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n\n")

	if len(report.Parcels) == 0 {
		b.WriteString(st.dim.Render(fmt.Sprintf("  No %s parcels known to this cluster.", report.Product)))
		b.WriteString("\n")
	} else {
		b.WriteString(st.dim.Render(fmt.Sprintf("  %-2s %-36s %-20s %s", "", "Version", "Stage", "Progress")))
		b.WriteString("\n")
		for _, p := range report.Parcels {
			renderParcelRow(&b, st, report, p)
		}
	}

	b.WriteString("\n")
	b.WriteString(st.section.Render("  Upgrade"))
	b.WriteString("\n")
	switch {
	case report.Note != "":
		b.WriteString("    " + st.pending.Render(report.Note))
	case report.Candidate != "":
		fmt.Fprintf(&b, "    %s → %s", report.Active, st.candidate.Render(report.Candidate))
	}
	b.WriteString("\n")

	return b.String()
}

func renderParcelRow(b *strings.Builder, st statusStyles, report *StatusReport, p ParcelStatus) {
	marker, style := " ", st.dim
	switch {
	case len(p.Errors) > 0:
		marker, style = "!", st.failed
	case p.Version == report.Candidate:
		marker, style = "→", st.candidate
	case p.Stage == parcel.StageActivated.String():
		marker, style = "✓", st.active
	case isTransitional(p.Stage):
		marker, style = "…", st.pending
	}

	progress := "-"
	if pct := p.Percent(); pct >= 0 {
		progress = fmt.Sprintf("%d%% (%d/%d)", pct, p.Progress, p.TotalProgress)
	}

	fmt.Fprintf(b, "  %s %-36s %s %s\n", style.Render(marker), p.Version, style.Render(fmt.Sprintf("%-20s", p.Stage)), progress)
	for _, e := range p.Errors {
		b.WriteString("      " + st.failed.Render(e) + "\n")
	}
}

func isTransitional(stage string) bool {
	switch parcel.Stage(stage) {
	case parcel.StageDownloading, parcel.StageDistributing, parcel.StageUndistributing, parcel.StageActivating:
		return true
	}
	return false
}
