package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/hidro-hq/ana-telemetry/pkg/ana"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type outputFormat string

const (
	formatTable    outputFormat = "table"
	formatCSV      outputFormat = "csv"
	formatMarkdown outputFormat = "markdown"
)

func parseFormat(raw string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case formatTable, formatCSV, formatMarkdown:
		return f, nil
	case "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q", raw)
	}
}

// NewTable returns a rounded table writer mirrored to out.
func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// render prints tbl with its index as the first column.
func render(out io.Writer, tbl *ana.Table, format outputFormat) {
	t := NewTable(out)

	header := table.Row{tbl.Index()}
	for _, c := range tbl.Columns() {
		header = append(header, c)
	}
	t.AppendHeader(header)

	keys := tbl.Keys()
	for i, row := range tbl.Rows() {
		r := table.Row{keys[i]}
		for _, c := range tbl.Columns() {
			r = append(r, row.Get(c))
		}
		t.AppendRow(r)
	}

	switch format {
	case formatCSV:
		t.RenderCSV()
	case formatMarkdown:
		t.RenderMarkdown()
	default:
		t.AppendFooter(table.Row{fmt.Sprintf("%d rows", tbl.Len())})
		t.Render()
	}
}

func (o *options) print(cmd *cobra.Command, tbl *ana.Table) error {
	format, err := parseFormat(o.format)
	if err != nil {
		return err
	}
	render(cmd.OutOrStdout(), tbl, format)
	return nil
}
