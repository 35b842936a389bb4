package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/frudas24/airclick/internal/clicker"
	"github.com/frudas24/airclick/internal/wininput"
)

// View renders the control panel: title, fields, status and key help.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AirClick"))
	b.WriteString("\n\n")
	b.WriteString(m.renderField(fieldInterval, "Interval ms", m.inputs[fieldInterval].View()))
	b.WriteString(m.renderField(fieldLimit, "Max clicks", m.inputs[fieldLimit].View()))
	b.WriteString(m.renderField(fieldButton, "Button", m.renderButtons()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderField(i int, label, value string) string {
	style := labelStyle
	if i == m.focus && !m.running {
		style = focusedLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(label), value) + "\n"
}

func (m Model) renderButtons() string {
	parts := make([]string, 0, 2)
	for _, b := range []wininput.Button{wininput.ButtonLeft, wininput.ButtonRight} {
		style := buttonStyle
		if b == m.button {
			style = selectedButtonStyle
		}
		parts = append(parts, style.Render(b.String()))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderStatus() string {
	var lines []string
	switch {
	case m.stopping:
		lines = append(lines, stoppingStyle.Render("■ stopping after the current click"))
	case m.running:
		lines = append(lines, runningStyle.Render("● running: "+m.active.Params.String()))
	case m.last != nil:
		lines = append(lines, infoStyle.Render(outcomeLine(*m.last)))
	default:
		lines = append(lines, infoStyle.Render("idle"))
	}
	if m.err != nil {
		lines = append(lines, errorStyle.Render("✗ "+m.err.Error()))
	}
	return strings.Join(lines, "\n")
}

// outcomeLine renders the last outcome with its duration.
func outcomeLine(o clicker.Outcome) string {
	return fmt.Sprintf("last run %s (%s)", o, o.Elapsed().Round(time.Millisecond))
}
