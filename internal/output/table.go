package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// OutputTable prints a tab-aligned table for the binding, conflict, and
// backup listings. Human-mode output goes to stderr; stdout stays clean
// for structured formats.
func OutputTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}
