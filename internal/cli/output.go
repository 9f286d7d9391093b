package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"sosa_resort/internal/domain"
)

// table prints a header row unless compact, then rows, tab separated.
func (r *runner) table(header string, rows func(w io.Writer)) error {
	tw := tabwriter.NewWriter(r.out, 2, 2, 2, ' ', 0)
	if !r.compact {
		fmt.Fprintln(tw, header)
	}
	rows(tw)
	return tw.Flush()
}

func (r *runner) pageFooter(p domain.Pagination) {
	if r.compact || p.LastPage <= 1 {
		return
	}
	fmt.Fprintf(r.out, "page %d of %d (%d total)\n", p.CurrentPage, p.LastPage, p.Total)
}

func formatPrice(v float64) string { return fmt.Sprintf("GHS %.2f", v) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
