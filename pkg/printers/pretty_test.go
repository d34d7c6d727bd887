package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/template"
)

func init() {
	color.NoColor = true
}

func sample(durations ...float64) template.Template {
	t := template.New("tpl", "s0", "Demo", time.Unix(0, 0))
	t.Sections = nil
	for i, d := range durations {
		s := template.NewSection(template.SectionBody, "", d)
		s.ID = string(rune('a' + i))
		s.Name = "Section " + s.ID
		t.Sections = append(t.Sections, s)
	}
	t.Retime()
	return t
}

func TestTimelineCells(t *testing.T) {
	cases := map[string]struct {
		durations []float64
		width     int
		want      []int
	}{
		"proportional": {durations: []float64{3, 2, 5}, width: 60, want: []int{18, 12, 30}},
		"zero section": {durations: []float64{4, 0, 4}, width: 10, want: []int{5, 0, 5}},
		"tiny section": {durations: []float64{0.01, 9.99}, width: 10, want: []int{1, 9}},
		"empty":        {durations: nil, width: 10, want: nil},
		"all zero":     {durations: []float64{0, 0}, width: 10, want: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := TimelineCells(sample(tc.durations...), tc.width)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("cells mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTimelinePlayhead(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Timeline(sample(5, 5), 5, 20)

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if got := strings.Index(lines[1], "▲"); got != 10 {
		t.Fatalf("expected playhead at column 10, got %d:\n%s", got, buf.String())
	}
	if lines[2] != "5s / 10s" {
		t.Fatalf("unexpected clock line %q", lines[2])
	}
}

func TestTemplateMarksSelection(t *testing.T) {
	tpl := sample(3, 2)
	el := template.NewText("Hello there", nil)
	el.ID = "el-1"
	tpl.Sections[1].Elements = append(tpl.Sections[1].Elements, el)

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Template(tpl, persist.UISnapshot{SelectedSectionID: "b", SelectedElementID: "el-1", Mode: editor.ModeEdit, Device: editor.DeviceMobile})

	out := buf.String()
	for _, want := range []string{"Demo", "9:16  5s  2 sections  edit  mobile", "Section a", "> ", `"Hello there"`, "*"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Catalog(nil)
	if !strings.Contains(buf.String(), "Templates - 0 templates") || !strings.Contains(buf.String(), "none") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Report(app.Breakdown(sample(3, 1)))
	out := buf.String()
	for _, want := range []string{"4s over 2 sections, 0 elements", "Body", "100%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
