// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/staranto/mimemap/internal/config"
)

// Supported --output values.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Formats lists every supported --output value.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatRaw}

// Options carries the presentation flags shared by the listing commands.
type Options struct {
	Format string
	Filter string
	Query  string
	Color  bool
	Titles bool
}

// ColorEnabled reports whether colour was requested and w is a terminal.
// NO_COLOR always wins.
func ColorEnabled(requested bool, w io.Writer) bool {
	if !requested || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SliceDiceSpit filters, queries and renders a JSON rows document according
// to opts.
func SliceDiceSpit(raw []byte, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Format == FormatRaw {
		_, err := fmt.Fprintln(w, string(raw))
		return err
	}

	rows := FilterDataset(raw, opts.Filter)

	if opts.Query != "" {
		result := QueryDataset(rows, opts.Query)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing", opts.Query)
		}
		return spitResult(result, opts, w)
	}

	switch opts.Format {
	case FormatJSON, FormatYAML:
		return spitResult(QueryDataset(rows, ""), opts, w)
	default:
		TableWriter(rows, opts, w)
		return nil
	}
}

// spitResult writes a query result. Text output prints one scalar per line.
func spitResult(result gjson.Result, opts Options, w io.Writer) error {
	switch opts.Format {
	case FormatJSON:
		_, err := fmt.Fprintln(w, strings.TrimRight(result.Get("@pretty").Raw, "\n"))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(result.Value())
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		values := []gjson.Result{result}
		if result.IsArray() {
			values = result.Array()
		}
		for _, v := range values {
			if _, err := fmt.Fprintln(w, InterfaceToString(v, "-")); err != nil {
				return err
			}
		}
		return nil
	}
}

// TableWriter renders the rows in a tabular form honoring color, titles and
// padding options. Columns follow the key order of the first row.
func TableWriter(rows []gjson.Result, opts Options, w io.Writer) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var headers []string
	rows[0].ForEach(func(key, _ gjson.Result) bool {
		headers = append(headers, key.String())
		return true
	})

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(headers))
		for _, h := range headers {
			line = append(line, InterfaceToString(row.Get(h), "-"))
		}
		cells = append(cells, line)
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		t = t.Headers(headers...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString flattens a JSON value for a table cell. Arrays are joined
// with spaces. A custom empty value may be provided.
func InterfaceToString(value gjson.Result, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch {
	case !value.Exists() || value.Type == gjson.Null:
		return emptyValue[0]
	case value.IsArray():
		parts := make([]string, 0, len(value.Array()))
		for _, v := range value.Array() {
			parts = append(parts, InterfaceToString(v, emptyValue...))
		}
		if len(parts) == 0 {
			return emptyValue[0]
		}
		return strings.Join(parts, " ")
	case value.IsObject():
		return value.Raw
	default:
		if value.String() == "" {
			return emptyValue[0]
		}
		return value.String()
	}
}
