package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

var (
	accent  = lipgloss.Color("#2563EB")
	fg      = lipgloss.Color("#E5E7EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	warning = lipgloss.Color("#F59E0B")
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Width(68)

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	remoteStyle  = lipgloss.NewStyle().Foreground(success).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(warning)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
)

// RenderResult draws the recommendation tabs as terminal sections
func RenderResult(projectName string, r *models.RecommendationResult) string {
	var b strings.Builder
	rec := r.Recommendation

	origin := remoteStyle.Render("AI backend")
	if r.Origin == models.OriginFallback {
		origin = noticeStyle.Render("local fallback")
	}
	if r.Partial {
		origin += dimStyle.Render(" (partial)")
	}
	header := headerStyle.Render("DesignPanda") + "\n" +
		titleStyle.Render(projectName) + "\n\n" +
		titleStyle.Render(rec.Pattern) + "\n" +
		dimStyle.Render("source: ") + origin
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n")

	for _, n := range r.Notices {
		b.WriteString(noticeStyle.Render("! "+n) + "\n")
	}

	section := func(name string) {
		b.WriteString(sectionStyle.Render(name) + "\n")
	}

	section("Overview")
	b.WriteString(wrap(rec.Description, 72) + "\n")

	section("Frameworks")
	for _, f := range rec.Frameworks {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(f.Name), dimStyle.Render(f.Description))
	}

	section("Libraries")
	for _, l := range rec.Libraries {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(l.Name), dimStyle.Render(l.Description))
	}

	section("Deployment")
	for _, d := range rec.Deployment {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(d.Name), dimStyle.Render(d.CostEstimate))
		fmt.Fprintf(&b, "    perf %d  scale %d  cost %d  maint %d  sec %d\n",
			d.Metrics.Performance, d.Metrics.Scalability, d.Metrics.Cost, d.Metrics.Maintenance, d.Metrics.Security)
	}

	section("Diagrams")
	for _, kind := range models.DiagramKinds {
		d := rec.Diagrams.Get(kind)
		fmt.Fprintf(&b, "  %-10s %s\n", kind, dimStyle.Render(string(d.Visual.Kind)))
	}

	if len(rec.SearchResults) > 0 {
		section("Related reading")
		for _, s := range rec.SearchResults {
			fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render(s.Title), dimStyle.Render(fmt.Sprintf("(%s, %.2f)", s.Source, s.RelevanceScore)))
		}
	}
	return b.String()
}

// wrap breaks text on spaces so no line exceeds width
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return "  " + strings.Join(lines, "\n  ")
}
