// Package persist keeps a best-effort local copy of an editor session. It
// writes a reduced projection of the state after a quiet period and restores
// it once when a session opens.
package persist

import (
	"errors"
	"fmt"

	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/template"
)

// KeyPrefix namespaces editor snapshots in storage.
const KeyPrefix = "template-editor-state-"

// Key is the storage key for the template with the given id.
func Key(templateID string) string {
	return KeyPrefix + templateID
}

// Snapshot is the essential projection written to storage. Playback clock,
// zoom, interaction history and feature discovery are left out.
type Snapshot struct {
	Template TemplateSnapshot `json:"template"`
	UI       UISnapshot       `json:"ui"`
}

type TemplateSnapshot struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	AspectRatio   template.AspectRatio `json:"aspectRatio"`
	Sections      []template.Section   `json:"sections"`
	Theme         template.Theme       `json:"theme"`
	TotalDuration float64              `json:"totalDuration"`
}

type UISnapshot struct {
	SelectedSectionID string                `json:"selectedSectionId"`
	SelectedElementID string                `json:"selectedElementId"`
	Mode              editor.Mode           `json:"mode"`
	Device            editor.Device         `json:"device"`
	ActiveTab         string                `json:"activeTab"`
	ExpertiseLevel    editor.ExpertiseLevel `json:"expertiseLevel"`
}

// Project reduces s to its essential projection.
func Project(s editor.State) Snapshot {
	t := s.Template.Clone()
	if t.Sections == nil {
		t.Sections = []template.Section{}
	}
	return Snapshot{
		Template: TemplateSnapshot{
			ID:            t.ID,
			Name:          t.Name,
			Description:   t.Description,
			AspectRatio:   t.AspectRatio,
			Sections:      t.Sections,
			Theme:         t.Theme,
			TotalDuration: t.TotalDuration,
		},
		UI: UISnapshot{
			SelectedSectionID: s.UI.SelectedSectionID,
			SelectedElementID: s.UI.SelectedElementID,
			Mode:              s.UI.Mode,
			Device:            s.UI.Device,
			ActiveTab:         s.UI.ActiveTab,
			ExpertiseLevel:    s.UI.ExpertiseLevel,
		},
	}
}

// ErrMalformed marks a stored template block that cannot be loaded.
var ErrMalformed = errors.New("persist: malformed template block")

// Validate reports whether t can be loaded. A block needs an id and a
// sections list; an empty list is fine, a missing or null one is not.
func (t TemplateSnapshot) Validate() error {
	switch {
	case t.ID == "":
		return fmt.Errorf("%w: no id", ErrMalformed)
	case t.Sections == nil:
		return fmt.Errorf("%w: no sections", ErrMalformed)
	}
	return nil
}

// Template rebuilds a document from the projection. Fields the projection
// does not carry come from base; sections always come from t.
func (t TemplateSnapshot) Template(base template.Template) template.Template {
	out := base.Clone()
	out.ID = t.ID
	out.Name = t.Name
	out.Description = t.Description
	if t.AspectRatio != "" {
		out.AspectRatio = t.AspectRatio
	}
	out.Sections = make([]template.Section, len(t.Sections))
	for i := range t.Sections {
		out.Sections[i] = t.Sections[i].Clone()
		if out.Sections[i].Elements == nil {
			out.Sections[i].Elements = []template.Element{}
		}
	}
	if t.Theme != (template.Theme{}) {
		out.Theme = t.Theme
	}
	out.Retime()
	return out
}
