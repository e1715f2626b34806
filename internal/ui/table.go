// Package ui renders the overload-set summary printed by `wrapgen check`.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status of one overload set.
const (
	StatusOK        = "ok"
	StatusAmbiguous = "ambiguous"
	StatusMissing   = "missing"
)

// Row is one line of the summary.
type Row struct {
	Name      string
	Overloads int
	Arities   []int
	Status    string
	Detail    string
}

const (
	minNameWidth = 12
	statusWidth  = 10
	countWidth   = 5
)

// RenderTable lays rows out in aligned columns no wider than width. Colour
// is applied only when useColor is set.
func RenderTable(rows []Row, width int, useColor bool) string {
	if len(rows) == 0 {
		return ""
	}
	nameWidth := minNameWidth
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Name))
	}
	if width > 0 {
		// two-space gutters between the four columns
		limit := width - statusWidth - countWidth - 6 - arityWidth(rows)
		nameWidth = max(minNameWidth, min(nameWidth, limit))
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	var b strings.Builder
	header := fmt.Sprintf("%s  %*s  %s  %s",
		runewidth.FillRight("SET", nameWidth), countWidth, "N", runewidth.FillRight("STATUS", statusWidth), "ARITIES")
	b.WriteString(paint(titleStyle, header, useColor))
	b.WriteByte('\n')

	for _, r := range rows {
		status := paint(styleStatus(r.Status), runewidth.FillRight(r.Status, statusWidth), useColor)
		line := fmt.Sprintf("%s  %*d  %s  %s",
			runewidth.FillRight(truncate(r.Name, nameWidth), nameWidth), countWidth, r.Overloads, status, joinArities(r.Arities))
		if r.Detail != "" {
			line += "  " + r.Detail
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func arityWidth(rows []Row) int {
	w := len("ARITIES")
	for _, r := range rows {
		w = max(w, len(joinArities(r.Arities)))
	}
	return w
}

func joinArities(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func paint(style lipgloss.Style, s string, useColor bool) string {
	if !useColor {
		return s
	}
	return style.Render(s)
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case StatusMissing:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case StatusAmbiguous:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
