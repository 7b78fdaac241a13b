package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"drawcast/app"
	"drawcast/domain/report"
)

// RenderMarkdown writes the run result as a markdown summary document.
func RenderMarkdown(result *app.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Draw prediction for %s (%s)\n\n", result.Report.TargetDate, result.Report.DayOfWeek)
	fmt.Fprintf(&b, "Scored %d main and %d star candidates against %d historical draws.\n\n",
		result.MainCandidates, result.StarCandidates, result.Draws)

	writeOutcome(&b, "Most likely", result.Report.MostLikely)
	writeOutcome(&b, "Least likely", result.Report.LeastLikely)

	b.WriteString("## Slot profiles\n\n")
	b.WriteString("| Slot | Samples | Mean | StdDev | Median | Entropy |\n")
	b.WriteString("|------|---------|------|--------|--------|---------|\n")
	for _, p := range result.Profiles {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.1f | %.3f |\n",
			p.Slot, p.Samples, p.Mean, p.StdDev, p.Median, p.Entropy)
	}

	return b.String()
}

func writeOutcome(b *strings.Builder, title string, o report.Outcome) {
	p := o.Positions
	d := o.Distances
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "Positions: **%d %d %d %d %d** + **%d %d**\n\n",
		p.P1, p.P2, p.P3, p.P4, p.P5, p.P6, p.P7)
	fmt.Fprintf(b, "Distances: %d, %d, %d, %d (stars: %d)\n\n",
		d.P1P2, d.P2P3, d.P3P4, d.P4P5, d.P6P7)
}

// RenderHTML renders the markdown summary to a standalone HTML page.
func RenderHTML(result *app.RunResult) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML([]byte(RenderMarkdown(result)), p, renderer)
}
