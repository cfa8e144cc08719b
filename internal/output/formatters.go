package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ConsoleFormatter renders a human-readable text report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(report.Title + "\n")
	buf.WriteString(strings.Repeat("=", utf8.RuneCountInString(report.Title)) + "\n")

	width := 0
	for _, l := range report.Lines {
		if n := utf8.RuneCountInString(l.Label); n > width {
			width = n
		}
	}
	for _, l := range report.Lines {
		pad := width - utf8.RuneCountInString(l.Label)
		fmt.Fprintf(&buf, "%s:%s %s\n", l.Label, strings.Repeat(" ", pad), l.Value)
	}

	if report.Table != nil {
		if len(report.Lines) > 0 {
			buf.WriteString("\n")
		}
		writeTextTable(&buf, report.Table)
	}

	for _, n := range report.Notes {
		buf.WriteString("\n• " + n)
	}
	if len(report.Notes) > 0 {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func writeTextTable(buf *bytes.Buffer, t *Table) {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if n := utf8.RuneCountInString(cell); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				buf.WriteString("  ")
			}
			buf.WriteString(cell)
			if i < len(cells)-1 {
				buf.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		buf.WriteString("\n")
	}

	writeRow(t.Header)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range t.Rows {
		writeRow(row)
	}
}

// JSONFormatter renders report.Data as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(report *Report) ([]byte, error) {
	data, err := json.MarshalIndent(structured(report), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLFormatter renders report.Data as YAML.
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(structured(report))
}

// structured falls back to the labelled lines when a report carries no data.
func structured(report *Report) any {
	if report.Data != nil {
		return report.Data
	}
	m := make(map[string]string, len(report.Lines))
	for _, l := range report.Lines {
		m[l.Label] = l.Value
	}
	return m
}

// CSVFormatter renders the table when present, otherwise label,value rows.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if report.Table != nil {
		if err := w.Write(report.Table.Header); err != nil {
			return nil, err
		}
		for _, row := range report.Table.Rows {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write([]string{"field", "value"}); err != nil {
			return nil, err
		}
		for _, l := range report.Lines {
			if err := w.Write([]string{l.Label, l.Value}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
