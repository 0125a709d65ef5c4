// cli/render.go
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/mitoolbox/probability"
)

var (
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

const barWidth = 30

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RenderPMF renders one row per state: value, probability and a bar.
func RenderPMF(values, pmf []float64) string {
	width := len("value")
	for _, v := range values {
		width = max(width, len(formatValue(v)))
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s  %-8s", width, "value", "p")) + "\n")
	for i, p := range pmf {
		bar := strings.Repeat("█", int(p*barWidth+0.5))
		fmt.Fprintf(&b, "%s  %s %s\n",
			valueStyle.Render(fmt.Sprintf("%-*s", width, formatValue(values[i]))),
			formatFloat(p),
			barStyle.Render(bar))
	}
	return b.String()
}

// RenderJoint renders the joint PMF as a grid with first-vector values as
// columns and second-vector values as rows, plus both marginals.
func RenderJoint(firstValues, secondValues []float64, state probability.JointProbabilityState) string {
	const cell = 9
	rowLabel := 0
	for _, v := range secondValues {
		rowLabel = max(rowLabel, len(formatValue(v)))
	}
	rowLabel = max(rowLabel, len("Σ"))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowLabel+2))
	for _, v := range firstValues {
		b.WriteString(headStyle.Render(fmt.Sprintf("%*s", cell, formatValue(v))))
	}
	b.WriteString(headStyle.Render(fmt.Sprintf("%*s", cell, "Σ")) + "\n")

	for s := uint32(0); s < state.NumSecondStates; s++ {
		b.WriteString(headStyle.Render(fmt.Sprintf("%-*s", rowLabel, formatValue(secondValues[s]))) + "  ")
		for f := uint32(0); f < state.NumFirstStates; f++ {
			p := state.At(f, s)
			text := fmt.Sprintf("%*.4f", cell, p)
			if p == 0 {
				text = faintStyle.Render(text)
			}
			b.WriteString(text)
		}
		b.WriteString(fmt.Sprintf("%*.4f", cell, state.SecondPMF[s]) + "\n")
	}

	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s", rowLabel, "Σ")) + "  ")
	for f := uint32(0); f < state.NumFirstStates; f++ {
		b.WriteString(fmt.Sprintf("%*.4f", cell, state.FirstPMF[f]))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderMeasures renders name/value pairs in two aligned columns.
func RenderMeasures(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(headStyle.Render(fmt.Sprintf("%-*s", width, r[0])) + "  " + valueStyle.Render(r[1]) + "\n")
	}
	return b.String()
}
