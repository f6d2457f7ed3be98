package report

import (
	"bytes"
	"fmt"

	"rehabengine/domain/dataset"
	"rehabengine/internal/profiling"
)

// buildGenerationReport writes a markdown summary of one generation run:
// run metadata, per-table row counts, and numeric column statistics.
func buildGenerationReport(snap *dataset.Snapshot) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# Generation Report\n\n")
	fmt.Fprintf(&b, "- **Run ID:** %s\n", snap.RunID)
	fmt.Fprintf(&b, "- **Seed:** %d\n", snap.Seed)
	fmt.Fprintf(&b, "- **Inmates:** %d\n", snap.InmateCount)
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", snap.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Tables\n\n")
	fmt.Fprintf(&b, "| Table | Rows |\n|---|---|\n")
	for _, name := range dataset.TableNames {
		if t, ok := snap.Tables[name]; ok {
			fmt.Fprintf(&b, "| %s | %d |\n", name, t.RowCount())
		}
	}
	b.WriteString("\n")

	for _, summary := range profiling.SummarizeSnapshot(snap) {
		writeTableSection(&b, summary)
	}

	return b.Bytes()
}

func writeTableSection(b *bytes.Buffer, summary profiling.TableSummary) {
	fmt.Fprintf(b, "## %s\n\n", summary.Table)
	fmt.Fprintf(b, "%d rows, %d columns.\n\n", summary.RowCount, len(summary.Columns))

	numeric := false
	for _, c := range summary.Columns {
		if c.Numeric {
			numeric = true
			break
		}
	}
	if !numeric {
		return
	}

	fmt.Fprintf(b, "| Column | Mean | Median | Std Dev | Min | Max |\n|---|---|---|---|---|---|\n")
	for _, c := range summary.Columns {
		if !c.Numeric {
			continue
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			c.Name, num(c.Mean), num(c.Median), num(c.StdDev), num(c.Min), num(c.Max))
	}
	b.WriteString("\n")
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}
