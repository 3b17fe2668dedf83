package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dewtone/stenodactylus/internal/chord"
	"github.com/dewtone/stenodactylus/internal/steno"
)

var (
	greyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C"))
	brightGreenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E")).Bold(true)
	dimGreenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D4F"))
	brightRedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5C57")).Bold(true)
	dimRedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A3333"))
	driftOnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	driftOffStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
)

func styleFor(state chord.KeyState) lipgloss.Style {
	switch state {
	case chord.BrightGreen:
		return brightGreenStyle
	case chord.DimGreen:
		return dimGreenStyle
	case chord.BrightRed:
		return brightRedStyle
	case chord.DimRed:
		return dimRedStyle
	default:
		return greyStyle
	}
}

// renderKeyboard draws the steno layout with each key colored by its
// classification. The drift column sits left of S- and only reports held
// state; it never takes a chord color.
func renderKeyboard(frame chord.Frame, driftUpper, driftLower bool) string {
	numberKey, _ := steno.KeyByName("#")

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(styleFor(frame[numberKey]).Render(strings.Repeat("#", 19)))
	b.WriteByte('\n')

	b.WriteString(renderDrift(driftUpper))
	b.WriteString(renderRow(frame, steno.TopRow))
	b.WriteByte('\n')
	b.WriteString(renderDrift(driftLower))
	b.WriteString(renderRow(frame, steno.BottomRow))
	b.WriteByte('\n')

	b.WriteString(strings.Repeat(" ", 6))
	vowels := steno.VowelRow
	b.WriteString(keyCell(frame, vowels[0]))
	b.WriteByte(' ')
	b.WriteString(keyCell(frame, vowels[1]))
	b.WriteString("   ")
	b.WriteString(keyCell(frame, vowels[2]))
	b.WriteByte(' ')
	b.WriteString(keyCell(frame, vowels[3]))
	return b.String()
}

func renderRow(frame chord.Frame, keys []steno.Key) string {
	cells := make([]string, len(keys))
	for i, k := range keys {
		cells[i] = keyCell(frame, k)
	}
	return strings.Join(cells, " ")
}

func keyCell(frame chord.Frame, k steno.Key) string {
	return styleFor(frame[k]).Render(k.Label())
}

func renderDrift(held bool) string {
	if held {
		return driftOnStyle.Render("▐") + " "
	}
	return driftOffStyle.Render("▏") + " "
}
