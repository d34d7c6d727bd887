package printers

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/storyboard/pkg/template"
	"tableflip.dev/storyboard/pkg/timeutil"
)

// DefaultTimelineWidth is the number of cells Timeline spreads the template
// over.
const DefaultTimelineWidth = 60

// Timeline draws the sections as one proportional bar, followed by a tick row
// marking the playhead at the given time. Every non-empty section gets at
// least one cell.
func (pp *PrettyPrint) Timeline(t template.Template, playhead float64, width int) {
	if width <= 0 {
		width = DefaultTimelineWidth
	}
	cells := TimelineCells(t, width)
	if len(cells) == 0 {
		pp.none()
		return
	}

	var bar strings.Builder
	for i, n := range cells {
		if n == 0 {
			continue
		}
		s := t.Sections[i]
		label := []rune(s.Type.Title())
		block := make([]rune, n)
		for j := range block {
			if j < len(label) && n > len(label) {
				block[j] = label[j]
			} else {
				block[j] = '━'
			}
		}
		bar.WriteString(typeColor(s.Type).Sprint(string(block)))
	}
	_, _ = fmt.Fprintln(pp.Writer(), bar.String())

	total := 0
	for _, n := range cells {
		total += n
	}
	at := 0
	if t.TotalDuration > 0 {
		at = int(math.Round(playhead / t.TotalDuration * float64(total)))
	}
	if at >= total {
		at = total - 1
	}
	if at < 0 {
		at = 0
	}
	tick := strings.Repeat(" ", at) + "▲"
	_, _ = color.New(color.FgHiRed).Fprintln(pp.Writer(), tick)
	_, _ = color.New(color.Faint).Fprintf(pp.Writer(), "%s / %s\n",
		timeutil.FormatSeconds(playhead), timeutil.FormatSeconds(t.TotalDuration))
}

// TimelineCells splits width cells across the sections in proportion to
// their durations. Zero-length sections get no cells; others get at least
// one. It returns nil when there is nothing to draw.
func TimelineCells(t template.Template, width int) []int {
	if len(t.Sections) == 0 || t.TotalDuration <= 0 || width <= 0 {
		return nil
	}
	cells := make([]int, len(t.Sections))
	used := 0
	for i, s := range t.Sections {
		if s.Duration <= 0 {
			continue
		}
		// Cumulative rounding keeps the sum at width.
		end := int(math.Round((s.StartTime + s.Duration) / t.TotalDuration * float64(width)))
		n := end - used
		if n < 1 {
			n = 1
		}
		cells[i] = n
		used += n
	}
	return cells
}
