package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	"github.com/naveego/storyreader/pkg/util"
	"github.com/naveego/storyreader/pkg/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	formatYAML  = "yaml"
	formatTable = "table"
)

// outputFormat returns the format requested with --output, or "" when the
// command should use its own display.
func outputFormat() string {
	return strings.ToLower(viper.GetString(ArgGlobalOutput))
}

func printOutput(out interface{}, columns ...string) error {
	return printOutputWithDefaultFormat(formatTable, out, columns...)
}

func printOutputWithDefaultFormat(defaultFormat string, out interface{}, columns ...string) error {
	format := outputFormat()
	if format == "" {
		format = defaultFormat
	}
	return renderOutput(os.Stdout, format, out, columns...)
}

func renderOutput(w io.Writer, format string, out interface{}, columns ...string) error {

	switch strings.ToLower(format[0:1]) {
	case "j":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "y":
		b, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "t":
		tabler, ok := out.(util.Tabler)
		if !ok {
			return errors.Errorf("%T can't be rendered as a table", out)
		}
		renderTable(w, tabler, columns...)
		return nil
	default:
		return errors.Errorf("Unrecognized format %q (valid formats are 'json', 'yaml', and 'table')", format)
	}
}

// renderTable renders tabler, limited to columns when any are given.
func renderTable(w io.Writer, tabler util.Tabler, columns ...string) {
	headers := tabler.Headers()
	keep := make([]int, 0, len(headers))
	for i, h := range headers {
		if len(columns) == 0 || containsFold(columns, h) {
			keep = append(keep, i)
		}
	}

	var header table.Row
	var columnConfigs []table.ColumnConfig
	for _, i := range keep {
		header = append(header, headers[i])
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Name:   headers[i],
			Align:  text.AlignLeft,
			VAlign: text.VAlignTop,
		})
	}

	t := table.NewWriter()
	t.AppendHeader(header)
	t.SetColumnConfigs(columnConfigs)
	t.SetOutputMirror(w)
	for _, cols := range tabler.Rows() {
		row := table.Row{}
		for _, i := range keep {
			if i < len(cols) {
				row = append(row, cols[i])
			}
		}
		t.AppendRow(row)
	}
	t.Render()
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
