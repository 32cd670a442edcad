package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"slidepane/internal/anim"
	"slidepane/internal/panel"
)

// Composite renders the stage into a width x height block. Hosts draw
// bottom to top: the main host sits at its presented offset, and the
// front side host shows through the gap it leaves. render must return a
// host's full-container content.
//
// Compositing is done on plain rune grids: ANSI sequences are stripped and
// cells are assumed single-width, so pane chrome should rely on glyphs
// rather than color.
func Composite(st *anim.Stage, main panel.Host, width, height int, render func(panel.Host) string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	off := int(math.Round(st.Offset(main)))
	if off > width {
		off = width
	}
	if off < -width {
		off = -width
	}

	mainLines := normalize(render(main), width, height)
	if off == 0 {
		return strings.Join(mainLines, "\n")
	}

	var sideLines []string
	if side := frontSide(st, main); side != nil {
		sideLines = normalize(render(side), width, height)
	} else {
		sideLines = normalize("", width, height)
	}

	out := make([]string, height)
	for i := range out {
		if off > 0 {
			// Main slid right: the side pane's leftmost columns show.
			out[i] = slice(sideLines[i], 0, off) + slice(mainLines[i], 0, width-off)
		} else {
			// Main slid left: the side pane's rightmost columns show.
			k := -off
			out[i] = slice(mainLines[i], k, width) + slice(sideLines[i], width-k, width)
		}
	}
	return strings.Join(out, "\n")
}

// frontSide returns the topmost non-main host, the one layered in front.
func frontSide(st *anim.Stage, main panel.Host) panel.Host {
	order := st.Order()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i] != main {
			return order[i]
		}
	}
	return nil
}

// normalize strips ANSI sequences and shapes content into exactly height
// lines of exactly width cells.
func normalize(content string, width, height int) []string {
	lines := strings.Split(ansi.Strip(content), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	for i := 0; i < height; i++ {
		var r []rune
		if i < len(lines) {
			r = []rune(lines[i])
		}
		if len(r) > width {
			r = r[:width]
		}
		out[i] = string(r) + strings.Repeat(" ", width-len(r))
	}
	return out
}

// slice returns columns [from, to) of a normalized line.
func slice(line string, from, to int) string {
	r := []rune(line)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}
