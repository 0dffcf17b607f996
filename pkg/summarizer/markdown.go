package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l10n.T("Merge Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", l10n.T("Generated"), s.GeneratedAt.Format(time.RFC3339))

	// Sources
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Sources"))
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", l10n.T("Role"), l10n.T("Path"), l10n.T("Duration"), l10n.T("Codec"), l10n.T("Size"))
	b.WriteString("|---|---|---|---|---|\n")
	for _, src := range s.Sources {
		size := "-"
		if !src.Size.IsZero() {
			size = src.Size.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			l10n.T(src.Role), escape(src.Path), formatDuration(src.Duration), orDash(src.Codec), size)
	}
	b.WriteString("\n")

	// Composition
	c := s.Composition
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Composition"))
	writeHeader(&b)
	writeRow(&b, l10n.T("Total Duration"), formatDuration(c.TotalDuration))
	writeRow(&b, l10n.T("Cut At"), formatDuration(c.SeamAt))
	writeRow(&b, l10n.T("Render Size"), c.RenderSize.String())
	writeRow(&b, l10n.T("Frame Rate"), fmt.Sprintf("%.2f fps", c.FrameRate))
	b.WriteString("\n")

	// Export
	e := s.Export
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Export"))
	writeHeader(&b)
	writeRow(&b, l10n.T("Status"), orDash(e.Status))
	writeRow(&b, l10n.T("Output"), escape(orDash(e.OutputPath)))
	writeRow(&b, l10n.T("Container"), orDash(e.Container))
	writeRow(&b, l10n.T("Quality"), orDash(e.Preset))
	writeRow(&b, l10n.T("Network Optimized"), yesNo(e.NetworkOptimized))
	if e.FileSize > 0 {
		writeRow(&b, l10n.T("File Size"), formatBytes(e.FileSize))
	}
	if e.Elapsed > 0 {
		writeRow(&b, l10n.T("Export Time"), formatDuration(e.Elapsed))
	}
	if e.Error != "" {
		writeRow(&b, l10n.T("Error"), escape(e.Error))
	}
	b.WriteString("\n")

	// Library
	lib := s.Library
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Library"))
	writeHeader(&b)
	writeRow(&b, l10n.T("Outcome"), orDash(lib.Outcome))
	if lib.AssetID != "" {
		writeRow(&b, l10n.T("Asset ID"), lib.AssetID)
		writeRow(&b, l10n.T("Location"), escape(lib.Location))
	}
	if lib.Error != "" {
		writeRow(&b, l10n.T("Error"), escape(lib.Error))
	}
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "%s clipmerge\n", l10n.T("Generated by"))

	return b.String()
}

func writeHeader(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", l10n.T("Item"), l10n.T("Value"))
}

func writeRow(b *strings.Builder, item, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", item, value)
}

// formatDuration prints seconds with millisecond precision, e.g. "12.000 s".
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f s", d.Seconds())
}

func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit*unit:
		return fmt.Sprintf("%.2f GB", float64(n)/(unit*unit*unit))
	case n >= unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	}
	return fmt.Sprintf("%d B", n)
}

func yesNo(v bool) string {
	if v {
		return l10n.T("Yes")
	}
	return l10n.T("No")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// escape keeps pipes in paths and messages from breaking table rows.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var _ Formatter = (*MarkdownFormatter)(nil)
