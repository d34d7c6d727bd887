package app

import (
	"context"

	"tableflip.dev/storyboard/pkg/template"
)

// ReportItem summarises the sections of one type.
type ReportItem struct {
	Type     template.SectionType
	Sections int
	Elements int
	Duration float64
	// Share is Duration as a fraction of the template's total, in [0,1].
	Share float64
}

// ReportResult is the timing breakdown of a stored template.
type ReportResult struct {
	ID            string
	Name          string
	TotalDuration float64
	Items         []ReportItem
	Sections      int
	Elements      int
}

// Report breaks the stored template id down by section type, in the canonical
// section type order. Types with no sections are omitted.
func (s *Service) Report(ctx context.Context, id string) (ReportResult, error) {
	snap, err := s.Template(ctx, id)
	if err != nil {
		return ReportResult{}, err
	}
	t := snap.Template.Template(template.Template{})
	return Breakdown(t), nil
}

// Breakdown groups t's sections by type.
func Breakdown(t template.Template) ReportResult {
	grouped := make(map[template.SectionType]*ReportItem)
	res := ReportResult{
		ID:            t.ID,
		Name:          t.Name,
		TotalDuration: t.TotalDuration,
		Sections:      len(t.Sections),
	}
	for _, sec := range t.Sections {
		item, ok := grouped[sec.Type]
		if !ok {
			item = &ReportItem{Type: sec.Type}
			grouped[sec.Type] = item
		}
		item.Sections++
		item.Elements += len(sec.Elements)
		item.Duration += sec.Duration
		res.Elements += len(sec.Elements)
	}

	for _, typ := range template.AllSectionTypes() {
		item, ok := grouped[typ]
		if !ok {
			continue
		}
		if t.TotalDuration > 0 {
			item.Share = item.Duration / t.TotalDuration
		}
		res.Items = append(res.Items, *item)
	}
	return res
}
