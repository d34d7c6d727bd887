package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/template"
	"tableflip.dev/storyboard/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

// Writer is where output goes, color.Output unless Out is set.
func (pp *PrettyPrint) Writer() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Writer(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Writer(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.Writer(), title)
	_, _ = c.Fprintf(pp.Writer(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.Writer(), "s")
	}
	_, _ = fmt.Fprintln(pp.Writer(), "")
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.Writer(), " none\n\n")
}

// Catalog lists stored templates, one row each.
func (pp *PrettyPrint) Catalog(snaps []persist.Snapshot) {
	pp.TitleWithCount("Templates", len(snaps), "template")
	if len(snaps) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	if pp.ShowID {
		tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Aspect"), bold.Sprint("Sections"), bold.Sprint("Duration"))
	} else {
		tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Aspect"), bold.Sprint("Sections"), bold.Sprint("Duration"))
	}
	for _, s := range snaps {
		t := s.Template
		row := []interface{}{t.Name, t.AspectRatio, len(t.Sections), timeutil.FormatSeconds(t.TotalDuration)}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
	pp.NewLine()
}

// Template prints the document header and its sections as a table. The
// selected section and element are marked.
func (pp *PrettyPrint) Template(t template.Template, ui persist.UISnapshot) {
	pp.Title(t.Name)
	faint := color.New(color.Faint)
	if t.Description != "" {
		_, _ = faint.Fprintln(pp.Writer(), t.Description)
	}
	if pp.ShowID {
		_, _ = faint.Fprintf(pp.Writer(), "id %s\n", t.ID)
	}
	_, _ = faint.Fprintf(pp.Writer(), "%s  %s  %d sections  %s  %s\n",
		t.AspectRatio, timeutil.FormatSeconds(t.TotalDuration), len(t.Sections), ui.Mode, ui.Device)
	pp.NewLine()

	if len(t.Sections) == 0 {
		pp.none()
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("", bold.Sprint("#"), bold.Sprint("Type"), bold.Sprint("Name"), bold.Sprint("Start"), bold.Sprint("Length"), bold.Sprint("Elements"))
	for i, s := range t.Sections {
		marker := " "
		if s.ID == ui.SelectedSectionID {
			marker = color.New(color.FgHiGreen, color.Bold).Sprint(">")
		}
		name := s.Name
		if pp.ShowID {
			name = fmt.Sprintf("%s %s", name, faint.Sprintf("(%s)", s.ID))
		}
		tbl.AddRow(marker, i+1, typeColor(s.Type).Sprint(s.Type.Title()), name,
			timeutil.FormatSeconds(s.StartTime), timeutil.FormatSeconds(s.Duration), len(s.Elements))
		for _, e := range s.Elements {
			em := " "
			if s.ID == ui.SelectedSectionID && e.ID == ui.SelectedElementID {
				em = color.New(color.FgHiGreen).Sprint("*")
			}
			label := elementLabel(e)
			if pp.ShowID {
				label = fmt.Sprintf("%s %s", label, faint.Sprintf("(%s)", e.ID))
			}
			tbl.AddRow("", "", em, faint.Sprint(e.Kind), label, "", "")
		}
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
	pp.NewLine()
}

// Report prints a per-type timing breakdown.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.Title(r.Name)
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(pp.Writer(), "%s over %d sections, %d elements\n\n",
		timeutil.FormatSeconds(r.TotalDuration), r.Sections, r.Elements)

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Type"), bold.Sprint("Sections"), bold.Sprint("Elements"), bold.Sprint("Time"), bold.Sprint("Share"))
	for _, item := range r.Items {
		tbl.AddRow(typeColor(item.Type).Sprint(item.Type.Title()), item.Sections, item.Elements,
			timeutil.FormatSeconds(item.Duration), fmt.Sprintf("%.0f%%", item.Share*100))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	tbl.RightAlign(4)
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
	pp.NewLine()
}

func elementLabel(e template.Element) string {
	switch e.Kind {
	case template.KindText:
		text := strings.Join(strings.Fields(e.Content), " ")
		if r := []rune(text); len(r) > 32 {
			text = string(r[:31]) + "…"
		}
		return fmt.Sprintf("%q", text)
	default:
		if e.Source != "" {
			return e.Source
		}
		return string(e.Kind)
	}
}

func typeColor(t template.SectionType) *color.Color {
	switch t {
	case template.SectionIntro:
		return color.New(color.FgCyan)
	case template.SectionHook:
		return color.New(color.FgYellow)
	case template.SectionCallToAction:
		return color.New(color.FgGreen)
	case template.SectionOutro:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgBlue)
	}
}
