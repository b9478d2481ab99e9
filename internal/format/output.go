package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Tabular values can be rendered in the text format.
type Tabular interface {
	TableHeaders() []string
	TableRows() [][]string
}

// Table is a ready-made Tabular.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) TableHeaders() []string { return t.Headers }
func (t Table) TableRows() [][]string  { return t.Rows }

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (tables for Tabular values, indented JSON otherwise)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteText(w io.Writer, v any) error {
	tv, ok := v.(Tabular)
	if !ok {
		return WriteJSON(w, v, true)
	}
	rows := tv.TableRows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(tv.TableHeaders()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return st.Bold(true)
			}
			return st
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
