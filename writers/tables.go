package writers

import (
	"encoding/csv"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Table is anything with a header row and string records, such as the
// league scores and comments tables.
type Table interface {
	Header() []string
	Records() [][]string
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatCSV, FormatYAML)
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}

// List is a single column table.
type List struct {
	Column string
	Values []string
}

func (l List) Header() []string {
	return []string{l.Column}
}

func (l List) Records() [][]string {
	records := make([][]string, len(l.Values))
	for i, v := range l.Values {
		records[i] = []string{v}
	}
	return records
}

func WriteYAML(w io.Writer, v any) error {
	yamlEncoder := yaml.NewEncoder(w)
	yamlEncoder.SetIndent(2)
	if err := yamlEncoder.Encode(v); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := yamlEncoder.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}
