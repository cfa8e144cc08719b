package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter renders a Report into bytes.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter.
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"yaml":    YAMLFormatter{},
}

// formatAliases maps alternate spellings onto registered formatter names.
var formatAliases = map[string]string{
	"text":  "console",
	"table": "console",
	"yml":   "yaml",
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	return formatters[key]
}

// FormatNames lists the registered formatter names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write formats report with the named formatter and writes it to w.
func Write(w io.Writer, format string, report *Report) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (want one of %s)", format, strings.Join(FormatNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s format failed: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
