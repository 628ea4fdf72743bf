package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/rpupo63/portfolio-admin/normalize"
	"github.com/spf13/cobra"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newTable(out io.Writer) *tabwriter.Writer {
	writer := new(tabwriter.Writer)
	writer.Init(out, 0, 8, 1, '\t', 0)
	return writer
}

// cell renders one record value for a table column.
func cell(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case string:
		if value == "" {
			return "-"
		}
		return strings.ReplaceAll(value, "\t", " ")
	case float64:
		if value == math.Trunc(value) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	case bool:
		return fmt.Sprintf("%t", value)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// printRecords writes records as a table of the shape's listing columns.
func printRecords(out io.Writer, shape normalize.Shape, records []normalize.Record) error {
	writer := newTable(out)

	headers := make([]string, len(shape.Columns))
	rules := make([]string, len(shape.Columns))
	for i, column := range shape.Columns {
		headers[i] = strings.ToUpper(column)
		rules[i] = strings.Repeat("-", len(column))
	}
	fmt.Fprintln(writer, strings.Join(headers, "\t"))
	fmt.Fprintln(writer, strings.Join(rules, "\t"))

	for _, record := range records {
		cells := make([]string, len(shape.Columns))
		for i, column := range shape.Columns {
			cells[i] = cell(record[column])
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}
