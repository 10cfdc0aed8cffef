package report

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Row is one line of the closing summary table.
type Row struct {
	Source      string
	Output      string
	OutputBytes int64
	Preserved   float64
	Err         error
}

// Summary renders the per-file table and a totals line. Nothing is printed
// for an empty run.
func (r *Reporter) Summary(rows []Row) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(r.w, SummaryTable(rows))

	var failed int
	for _, row := range rows {
		if row.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(r.w, "%d converted, %d failed\n", len(rows)-failed, failed)
}

// SummaryTable formats the per-file outcome of a run.
func SummaryTable(rows []Row) string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		if row.Err != nil {
			cells = append(cells, []string{row.Source, "-", "-", "-", "failed"})
			continue
		}
		cells = append(cells, []string{
			row.Source,
			row.Output,
			humanize.Bytes(uint64(max(row.OutputBytes, 0))),
			fmt.Sprintf("%.2f%%", row.Preserved),
			"ok",
		})
	}
	return Table(
		[]string{"File", "Output", "Size", "Preserved", "Status"},
		cells,
		[]Alignment{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft},
	)
}
