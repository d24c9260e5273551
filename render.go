package main

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(gateType string) string {
	switch gateType {
	case "MEASURE":
		return "M"
	default:
		return gateType
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

// gateBox returns the three lines of a boxed gate label.
func gateBox(name string) (top, mid, bot string) {
	margin := (cellW - gateBoxW) / 2
	rightMargin := cellW - margin - gateBoxW
	top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
	mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+padCenter(name, gateNameW)+"├") + strings.Repeat("─", rightMargin)
	bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	return
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dblVertRow := strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.gate != nil && (info.isControl || info.isTarget):
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		sym := "⊕"
		if info.isControl {
			sym = "●"
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.gate != nil:
		top, mid, bot = gateBox(gateDisplayName(info.gate.Type))
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.measureBelow:
		// No gate here, but a measurement connection passes through vertically
		top = dblVertRow
		mid = strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR)
		bot = dblVertRow

	default:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// ──────────────────────────── Result sections ────────────────────────────

// renderCircuitDiagram draws the circuit as a wire grid with a classical register.
func renderCircuitDiagram(c *Circuit) string {
	var sb strings.Builder
	steps := max(c.MaxSteps, 1)

	header := strings.Repeat(" ", labelVisualW)
	for step := range steps {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := range c.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := range steps {
			top, mid, bot := renderCell(c.getCellInfo(step, qubit))
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	numCbits := c.NumCbits()
	if numCbits > 0 {
		label := fmt.Sprintf("c%d", numCbits)
		cbitLine := cbitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + cbitWireStyle.Render("══")

		for step := range steps {
			measuredQubit := c.GetMeasureAtStep(step)
			if measuredQubit >= 0 {
				bitLabel := fmt.Sprintf("%d", measuredQubit)
				dashL := (cellW - 1) / 2
				dashR := max(cellW-dashL-1-len(bitLabel), 0)
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", dashL)) +
					cbitConnectorStyle.Render("╩"+bitLabel) +
					cbitWireStyle.Render(strings.Repeat("═", dashR))
			} else {
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", cellW))
			}
		}
		sb.WriteString(cbitLine + "\n")
	}

	return sb.String()
}

// histogramBar scales count against peak into a bar of at most barMaxW cells.
func histogramBar(count, peak int) string {
	if peak <= 0 || count <= 0 {
		return ""
	}
	w := int(math.Round(float64(count) / float64(peak) * barMaxW))
	return strings.Repeat("█", max(w, 1))
}

// renderHistogram lists every outcome with its count, share and a bar.
// When noisy is non-nil both distributions are shown per outcome.
func renderHistogram(counts, noisy Counts) string {
	var sb strings.Builder

	union := make(Counts, len(counts))
	peak := 0
	for k, v := range counts {
		union[k] = 0
		peak = max(peak, v)
	}
	for k, v := range noisy {
		union[k] = 0
		peak = max(peak, v)
	}
	keys := union.Keys()

	total := counts.Total()
	for _, k := range keys {
		share := 0.0
		if total > 0 {
			share = float64(counts[k]) / float64(total) * 100
		}
		fmt.Fprintf(&sb, "%s %6d %5.1f%% %s\n", qubitLabelStyle.Render(k), counts[k], share, barStyle.Render(histogramBar(counts[k], peak)))
		if noisy != nil {
			fmt.Fprintf(&sb, "%s %6d %6s %s\n", strings.Repeat(" ", len(k)), noisy[k], "noisy", noisyBarStyle.Render(histogramBar(noisy[k], peak)))
		}
	}
	fmt.Fprintf(&sb, "%s %d shots\n", dimStyle.Render("total"), total)
	return sb.String()
}

// renderBlochTable lists per-qubit measurement probabilities and Bloch coordinates.
func renderBlochTable(state *StateVector) string {
	var sb strings.Builder
	probs := state.GetQubitProbabilities()
	vecs := state.GetBlochVectors()
	sb.WriteString(dimStyle.Render("qubit   P(0)   P(1)      x      y      z") + "\n")
	for q := range state.NumQubits {
		fmt.Fprintf(&sb, "%-5s %6.3f %6.3f %6.3f %6.3f %6.3f\n",
			fmt.Sprintf("q[%d]", q), probs[q].Prob0, probs[q].Prob1, vecs[q].X, vecs[q].Y, vecs[q].Z)
	}
	return sb.String()
}

// renderStateCity draws the real and imaginary part of every amplitude as bars.
func renderStateCity(state *StateVector) string {
	var sb strings.Builder
	const half = barMaxW / 2
	for i, amp := range state.Amplitudes {
		fmt.Fprintf(&sb, "|%s⟩ re %s  im %s\n",
			formatOutcome(i, state.NumQubits), signedBar(real(amp), half), signedBar(imag(amp), half))
	}
	return sb.String()
}

// signedBar draws v in [-1, 1] as a bar growing left or right from a centre mark.
func signedBar(v float64, half int) string {
	w := min(int(math.Round(math.Abs(v)*float64(half))), half)
	left, right := strings.Repeat(" ", half), strings.Repeat(" ", half)
	if v < 0 {
		left = strings.Repeat(" ", half-w) + strings.Repeat("▒", w)
	} else {
		right = strings.Repeat("█", w) + strings.Repeat(" ", half-w)
	}
	return fmt.Sprintf("%s│%s %+.3f", left, right, v)
}

// renderResult assembles every section for a run. Bloch data is shown for
// small registers and the amplitude view for larger ones.
func renderResult(res *RunResult) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n")
	sb.WriteString(renderCircuitDiagram(res.Circuit))
	sb.WriteString("\n")

	if res.Request.Qubits <= 2 {
		sb.WriteString(titleStyle.Render("Bloch Vectors"))
		sb.WriteString("\n")
		sb.WriteString(renderBlochTable(res.State))
	} else {
		sb.WriteString(titleStyle.Render("State City"))
		sb.WriteString("\n")
		sb.WriteString(renderStateCity(res.State))
	}
	sb.WriteString("\n")

	title := "Measurement Results (Counts)"
	if res.NoisyCounts != nil {
		title += fmt.Sprintf("  noise p=%s, %s policy", formatProbability(*res.Request.FlipProbability), res.Policy)
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(renderHistogram(res.Counts, res.NoisyCounts))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("run %s  %s", res.ID, res.Elapsed.Round(time.Microsecond))))

	return sb.String()
}
