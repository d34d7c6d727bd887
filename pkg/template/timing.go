package template

// Retime recomputes every section StartTime as the sum of the durations
// before it, in order, and TotalDuration as the sum of all durations.
// Negative durations count as zero.
func (t *Template) Retime() {
	var at float64
	for i := range t.Sections {
		if t.Sections[i].Duration < 0 {
			t.Sections[i].Duration = 0
		}
		t.Sections[i].StartTime = at
		at += t.Sections[i].Duration
	}
	t.TotalDuration = at
}

// EndTime is the end of the last section, or 0 for an empty template.
func (t *Template) EndTime() float64 {
	if len(t.Sections) == 0 {
		return 0
	}
	return t.Sections[len(t.Sections)-1].End()
}

// SectionAt returns the index of the section playing at time at, or -1 when
// at falls outside the timeline.
func (t *Template) SectionAt(at float64) int {
	for i := range t.Sections {
		s := t.Sections[i]
		if at >= s.StartTime && at < s.End() {
			return i
		}
	}
	return -1
}
