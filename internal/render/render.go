// Package render formats results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/equiv"
)

const (
	EquivalentMessage    = "The expressions are equivalent."
	NotEquivalentMessage = "The expressions are not equivalent."
)

// NoColor disables every style, for pipes and tests.
var NoColor bool

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
	diffStyle    = cellStyle.Foreground(lipgloss.Color("9")).Bold(true)
)

func style(s lipgloss.Style) lipgloss.Style {
	if NoColor {
		return lipgloss.NewStyle()
	}
	return s
}

// Verdict returns the sentence reporting an equivalence check.
func Verdict(equivalent bool) string {
	if equivalent {
		return EquivalentMessage
	}
	return NotEquivalentMessage
}

// StyledVerdict is Verdict with a status mark.
func StyledVerdict(equivalent bool) string {
	if equivalent {
		return style(successStyle).Render("✔ " + Verdict(true))
	}
	return style(errorStyle).Render("✖ " + Verdict(false))
}

// Assignment formats a as "A=1 B=0", following the order of vars.
func Assignment(a boolexpr.Assignment, vars []string) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v + "=" + bit(a[v])
	}
	return strings.Join(parts, " ")
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Report describes an equivalence check of expr1 and expr2.
func Report(r equiv.Report, expr1, expr2 string) string {
	var sb strings.Builder
	sb.WriteString(StyledVerdict(r.Equivalent()))
	sb.WriteByte('\n')
	sb.WriteString(style(mutedStyle).Render(fmt.Sprintf("strategy: %s, variables: %d", r.Strategy, len(r.Variables))))
	if r.Strategy == equiv.TruthTable {
		sb.WriteString(style(mutedStyle).Render(fmt.Sprintf(", rows: %d", r.Rows)))
	}
	if r.Equivalent() {
		sb.WriteByte('\n')
		return sb.String()
	}
	fmt.Fprintf(&sb, "\n%s %s\n", style(titleStyle).Render("counterexample:"), Assignment(r.Counterexample, r.Variables))
	fmt.Fprintf(&sb, "  %s = %s\n", style(accentStyle).Render(expr1), bit(r.Left))
	fmt.Fprintf(&sb, "  %s = %s\n", style(accentStyle).Render(expr2), bit(r.Right))
	return sb.String()
}

// TruthTable renders one row per assignment of vars, in enumeration order,
// with one column per variable then one per expression. Rows on which the
// expressions disagree are highlighted.
func TruthTable(vars []string, exprs []boolexpr.Expr) (string, error) {
	bound := make([]*boolexpr.Bound, len(exprs))
	for i, e := range exprs {
		b, err := boolexpr.Bind(e, vars)
		if err != nil {
			return "", err
		}
		bound[i] = b
	}

	headers := make([]string, 0, len(vars)+len(exprs))
	headers = append(headers, vars...)
	for _, e := range exprs {
		headers = append(headers, e.String())
	}

	nRows := uint64(1) << len(vars)
	rows := make([][]string, 0, nRows)
	differ := make(map[int]bool)
	for row := uint64(0); row < nRows; row++ {
		cells := make([]string, 0, len(headers))
		for k := range vars {
			cells = append(cells, bit(row>>uint(k)&1 == 1))
		}
		for i, b := range bound {
			v := b.EvalBits(row)
			if i > 0 && v != bound[0].EvalBits(row) {
				differ[len(rows)] = true
			}
			cells = append(cells, bit(v))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style(mutedStyle)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return style(headerStyle).Padding(0, 1)
			case differ[row] && col >= len(vars):
				return style(diffStyle).Padding(0, 1)
			default:
				return style(cellStyle).Padding(0, 1)
			}
		})
	return t.Render(), nil
}

// Panel frames lines in a rounded border.
func Panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !NoColor {
		border = border.BorderForeground(lipgloss.Color("8"))
	}
	return border.Render(strings.Join(lines, "\n"))
}

// Title renders a section title.
func Title(s string) string {
	return style(titleStyle).Render(s)
}
