// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

// Theme holds the color scheme for text output.
type Theme struct {
	Title lipgloss.Color
	Label lipgloss.Color
	Value lipgloss.Color
	Warn  lipgloss.Color
	Hint  lipgloss.Color
}

var defaultTheme = Theme{
	Title: lipgloss.Color("#5FAFD7"), // light blue
	Label: lipgloss.Color("#AFAFAF"), // gray
	Value: lipgloss.Color("#00D787"), // green
	Warn:  lipgloss.Color("#FFAF00"), // amber
	Hint:  lipgloss.Color("#6C6C6C"), // dim gray
}

// printer renders command results in the selected format.
type printer struct {
	w      io.Writer
	format string
	r      *lipgloss.Renderer
	theme  Theme
}

func (a *app) printer() *printer {
	return &printer{
		w:      a.out,
		format: a.output,
		r:      lipgloss.NewRenderer(a.out),
		theme:  defaultTheme,
	}
}

// structured writes v as JSON or YAML. It reports false for text output.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(p.w, string(data))
		return true, err
	case formatYAML:
		// Round trip through JSON so YAML keys match the API field names.
		data, err := json.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		return true, enc.Close()
	}
	return false, nil
}

func (p *printer) title(s string) {
	fmt.Fprintln(p.w, p.r.NewStyle().Foreground(p.theme.Title).Bold(true).Render(s))
}

func (p *printer) field(label string, value any) {
	l := p.r.NewStyle().Foreground(p.theme.Label).Render(label + ":")
	v := p.r.NewStyle().Foreground(p.theme.Value).Render(fmt.Sprint(value))
	fmt.Fprintf(p.w, "  %s %s\n", l, v)
}

func (p *printer) hint(s string) {
	fmt.Fprintln(p.w, p.r.NewStyle().Foreground(p.theme.Hint).Italic(true).Render(s))
}

func (p *printer) warn(s string) {
	fmt.Fprintln(p.w, p.r.NewStyle().Foreground(p.theme.Warn).Bold(true).Render("warning: "+s))
}

func (p *printer) table(headers []string, rows [][]string) {
	header := p.r.NewStyle().Foreground(p.theme.Title).Bold(true).Padding(0, 1)
	cell := p.r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.r.NewStyle().Foreground(p.theme.Hint)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(p.w, t.Render())
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func km(v float64) string {
	return fmt.Sprintf("%.1f km", v)
}

func score(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
