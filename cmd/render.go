package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dxpr/content-intel/json"
)

// renderJSON pretty-prints any payload.
func renderJSON(w io.Writer, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

// renderTable prints a header row and cell rows aligned in columns.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// render picks the output style from the --format flag. The table renderer
// is only used when the command supplied tabular rows; everything else
// falls back to JSON.
func render(w io.Writer, format string, v any, header []string, rows [][]string) error {
	if format == "table" && header != nil {
		return renderTable(w, header, rows)
	}
	return renderJSON(w, v)
}
