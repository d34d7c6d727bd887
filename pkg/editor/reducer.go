package editor

import (
	"time"

	"github.com/google/uuid"

	"tableflip.dev/storyboard/pkg/template"
)

const (
	minZoom = 0.1
	maxZoom = 5
)

// State is everything an editor session owns. Values reachable from a State
// are treated as immutable once the State is returned from Reduce.
type State struct {
	Template template.Template `json:"template"`
	UI       UIState           `json:"ui"`
	History  History           `json:"history"`

	rev uint64
}

// Reducer maps (State, Action) to a new State. It is the single point of
// mutation for an editor session and never modifies its input.
type Reducer struct {
	// Now stamps history entries, UpdatedAt and interactions.
	Now func() time.Time
	// NewID assigns ids to new sections and elements.
	NewID func() string
	// HistoryLimit caps the undo depth. Zero means unbounded.
	HistoryLimit int
}

func (r Reducer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Reducer) newID() string {
	if r.NewID != nil {
		return r.NewID()
	}
	return uuid.NewString()
}

// Init returns the State of a session opened on t: default UI with the first
// section selected and a single history entry.
func (r Reducer) Init(t template.Template) State {
	t = t.Clone()
	t.Retime()
	ui := DefaultUIState()
	if len(t.Sections) > 0 {
		ui.SelectedSectionID = t.Sections[0].ID
	}
	return State{
		Template: t,
		UI:       ui,
		History: newHistory(HistoryEntry{
			Template:  t.Clone(),
			UI:        ui.Clone(),
			Action:    ActionInit,
			Timestamp: r.now(),
		}),
	}
}

// Reduce applies a to s. Actions that reference ids not present in s return s
// unchanged.
func (r Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadTemplate:
		next := r.Init(a.Template)
		next.History.Current.Action = ActionLoadTemplate
		next.rev = s.rev + 1
		return next

	case UpdateTemplate:
		return r.editTemplate(s, a.Type(), func(t *template.Template) bool {
			applyTemplatePatch(t, a.Patch)
			return true
		})

	case SetTemplateName:
		return r.editTemplate(s, a.Type(), func(t *template.Template) bool {
			t.Name = a.Name
			return true
		})

	case SetTemplateDescription:
		return r.editTemplate(s, a.Type(), func(t *template.Template) bool {
			t.Description = a.Description
			return true
		})

	case AddSection:
		return r.addSection(s, a)

	case UpdateSection:
		return r.editTemplate(s, a.Type(), func(t *template.Template) bool {
			sec := t.Section(a.SectionID)
			if sec == nil {
				return false
			}
			r.applySectionPatch(sec, a.Patch)
			return true
		})

	case RemoveSection:
		return r.removeSection(s, a)

	case MoveSection:
		return r.editTemplate(s, a.Type(), func(t *template.Template) bool {
			from := t.SectionIndex(a.SectionID)
			if from < 0 {
				return false
			}
			to := clampIndex(a.Index, len(t.Sections)-1)
			if to == from {
				return false
			}
			moved := t.Sections[from]
			rest := append(append([]template.Section{}, t.Sections[:from]...), t.Sections[from+1:]...)
			sections := make([]template.Section, 0, len(t.Sections))
			sections = append(sections, rest[:to]...)
			sections = append(sections, moved)
			sections = append(sections, rest[to:]...)
			t.Sections = sections
			return true
		})

	case DuplicateSection:
		return r.duplicateSection(s, a)

	case AddElement:
		return r.addElement(s, a)

	case UpdateElement:
		return r.editTemplate(s, a.Type(), func(t *template.Template) bool {
			sec := t.Section(a.Ref.SectionID)
			if sec == nil {
				return false
			}
			el := sec.Element(a.Ref.ElementID)
			if el == nil {
				return false
			}
			applyElementPatch(el, a.Patch)
			return true
		})

	case RemoveElement:
		return r.removeElement(s, a)

	case SelectSection:
		ui := s.UI.Clone()
		if ui.SelectedSectionID != a.SectionID {
			ui.SelectedElementID = ""
		}
		ui.SelectedSectionID = a.SectionID
		return withUI(s, ui)

	case SelectElement:
		ui := s.UI.Clone()
		if a.Ref == nil {
			ui.SelectedElementID = ""
			return withUI(s, ui)
		}
		ui.SelectedSectionID = a.Ref.SectionID
		ui.SelectedElementID = a.Ref.ElementID
		ui.Panels.Properties = true
		return withUI(s, ui)

	case TrackInteraction:
		ui := s.UI.Clone()
		ui.LastInteraction = &Interaction{Type: a.InteractionType, Target: a.Target, Timestamp: r.now()}
		ui.RecentTools = rememberTool(ui.RecentTools, toolName(a.Target))
		return withUI(s, ui)

	case SetCurrentTime:
		ui := s.UI.Clone()
		ui.CurrentTime = clamp(a.Time, 0, s.Template.TotalDuration)
		return withUI(s, ui)

	case SetPlaying:
		ui := s.UI.Clone()
		ui.IsPlaying = a.Playing
		return withUI(s, ui)

	case TogglePlayback:
		ui := s.UI.Clone()
		ui.IsPlaying = !ui.IsPlaying
		return withUI(s, ui)

	case SetPlaybackSpeed:
		if a.Speed <= 0 {
			return s
		}
		ui := s.UI.Clone()
		ui.PlaybackSpeed = a.Speed
		return withUI(s, ui)

	case SetZoom:
		ui := s.UI.Clone()
		ui.Zoom = clamp(a.Zoom, minZoom, maxZoom)
		return withUI(s, ui)

	case SetMode:
		if _, err := ParseMode(string(a.Mode)); err != nil {
			return s
		}
		ui := s.UI.Clone()
		ui.Mode = a.Mode
		if a.Mode == ModePreview {
			ui.SelectedElementID = ""
		}
		return withUI(s, ui)

	case SetDevice:
		if _, err := ParseDevice(string(a.Device)); err != nil {
			return s
		}
		ui := s.UI.Clone()
		ui.Device = a.Device
		return withUI(s, ui)

	case TogglePanel:
		ui := s.UI.Clone()
		switch a.Panel {
		case PanelTimeline:
			ui.Panels.Timeline = !ui.Panels.Timeline
		case PanelProperties:
			ui.Panels.Properties = !ui.Panels.Properties
		case PanelLayers:
			ui.Panels.Layers = !ui.Panels.Layers
		default:
			return s
		}
		return withUI(s, ui)

	case SetActiveTab:
		if a.Tab == "" {
			return s
		}
		ui := s.UI.Clone()
		ui.ActiveTab = a.Tab
		return withUI(s, ui)

	case SetExpertiseLevel:
		if _, err := ParseExpertiseLevel(string(a.Level)); err != nil {
			return s
		}
		ui := s.UI.Clone()
		ui.ExpertiseLevel = a.Level
		return withUI(s, ui)

	case DiscoverFeature:
		if a.Feature == "" || s.UI.Discovered[a.Feature] {
			return s
		}
		ui := s.UI.Clone()
		if ui.Discovered == nil {
			ui.Discovered = map[string]bool{}
		}
		ui.Discovered[a.Feature] = true
		return withUI(s, ui)

	case Undo:
		h, ok := s.History.undo()
		if !ok {
			return s
		}
		return r.restore(s, h, "undo")

	case Redo:
		h, ok := s.History.redo()
		if !ok {
			return s
		}
		return r.restore(s, h, "redo")
	}
	return s
}

// editTemplate clones the document, applies fn and, when fn reports a change,
// retimes, stamps UpdatedAt and pushes a history entry tagged typ.
func (r Reducer) editTemplate(s State, typ ActionType, fn func(t *template.Template) bool) State {
	t := s.Template.Clone()
	if !fn(&t) {
		return s
	}
	return r.commit(s, typ, t, s.UI.Clone())
}

func (r Reducer) commit(s State, typ ActionType, t template.Template, ui UIState) State {
	now := r.now()
	t.Retime()
	t.UpdatedAt = now
	// The playhead never runs past the end of a shortened template.
	ui.CurrentTime = clamp(ui.CurrentTime, 0, t.TotalDuration)
	return State{
		Template: t,
		UI:       ui,
		History: s.History.push(HistoryEntry{
			Template:  t.Clone(),
			UI:        ui.Clone(),
			Action:    typ,
			Timestamp: now,
		}, r.HistoryLimit),
		rev: s.rev + 1,
	}
}

func (r Reducer) addSection(s State, a AddSection) State {
	t := s.Template.Clone()
	sec := a.Section.Clone()
	sec.ID = r.newID()
	sec.StartTime = t.EndTime()
	if sec.Elements == nil {
		sec.Elements = []template.Element{}
	}
	for i := range sec.Elements {
		if sec.Elements[i].ID == "" {
			sec.Elements[i].ID = r.newID()
		}
	}
	t.Sections = append(t.Sections, sec)

	ui := s.UI.Clone()
	ui.SelectedSectionID = sec.ID
	ui.SelectedElementID = ""
	return r.commit(s, a.Type(), t, ui)
}

func (r Reducer) removeSection(s State, a RemoveSection) State {
	t := s.Template.Clone()
	i := t.SectionIndex(a.SectionID)
	if i < 0 {
		return s
	}
	t.Sections = append(t.Sections[:i], t.Sections[i+1:]...)

	ui := s.UI.Clone()
	if ui.SelectedSectionID == a.SectionID {
		ui.SelectedSectionID = ""
		ui.SelectedElementID = ""
	}
	return r.commit(s, a.Type(), t, ui)
}

func (r Reducer) duplicateSection(s State, a DuplicateSection) State {
	t := s.Template.Clone()
	i := t.SectionIndex(a.SectionID)
	if i < 0 {
		return s
	}
	cp := t.Sections[i].Clone()
	cp.ID = r.newID()
	cp.Name = cp.Name + " (copy)"
	for j := range cp.Elements {
		cp.Elements[j].ID = r.newID()
	}
	sections := make([]template.Section, 0, len(t.Sections)+1)
	sections = append(sections, t.Sections[:i+1]...)
	sections = append(sections, cp)
	sections = append(sections, t.Sections[i+1:]...)
	t.Sections = sections

	ui := s.UI.Clone()
	ui.SelectedSectionID = cp.ID
	ui.SelectedElementID = ""
	return r.commit(s, a.Type(), t, ui)
}

func (r Reducer) addElement(s State, a AddElement) State {
	t := s.Template.Clone()
	sec := t.Section(a.SectionID)
	if sec == nil {
		return s
	}
	el := a.Element.Clone()
	if el.ID == "" {
		el.ID = r.newID()
	}
	sec.Elements = append(sec.Elements, el)

	ui := s.UI.Clone()
	ui.SelectedSectionID = a.SectionID
	ui.SelectedElementID = el.ID
	return r.commit(s, a.Type(), t, ui)
}

func (r Reducer) removeElement(s State, a RemoveElement) State {
	t := s.Template.Clone()
	sec := t.Section(a.Ref.SectionID)
	if sec == nil {
		return s
	}
	j := sec.ElementIndex(a.Ref.ElementID)
	if j < 0 {
		return s
	}
	sec.Elements = append(sec.Elements[:j], sec.Elements[j+1:]...)

	ui := s.UI.Clone()
	if ui.SelectedElementID == a.Ref.ElementID {
		ui.SelectedElementID = ""
	}
	return r.commit(s, a.Type(), t, ui)
}

// restore transplants the current entry of h into a new State and records the
// undo/redo as the last interaction.
func (r Reducer) restore(s State, h History, kind string) State {
	ui := h.Current.UI.Clone()
	ui.LastInteraction = &Interaction{
		Type:      kind,
		Target:    string(h.Current.Action),
		Timestamp: r.now(),
	}
	return State{
		Template: h.Current.Template.Clone(),
		UI:       ui,
		History:  h,
		rev:      s.rev + 1,
	}
}

func withUI(s State, ui UIState) State {
	return State{Template: s.Template, UI: ui, History: s.History, rev: s.rev + 1}
}

func applyTemplatePatch(t *template.Template, p TemplatePatch) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AspectRatio != nil {
		t.AspectRatio = *p.AspectRatio
	}
	if p.Theme != nil {
		t.Theme = *p.Theme
	}
	if p.ClearSound {
		t.Sound = nil
	}
	if p.Sound != nil {
		snd := *p.Sound
		t.Sound = &snd
	}
	if p.UserID != nil {
		t.UserID = *p.UserID
	}
	if p.IsPublished != nil {
		t.IsPublished = *p.IsPublished
	}
}

func (r Reducer) applySectionPatch(s *template.Section, p SectionPatch) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Elements != nil {
		s.Elements = make([]template.Element, len(p.Elements))
		for i := range p.Elements {
			s.Elements[i] = p.Elements[i].Clone()
			if s.Elements[i].ID == "" {
				s.Elements[i].ID = r.newID()
			}
		}
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.Transition != nil {
		s.Transition = *p.Transition
	}
}

func applyElementPatch(e *template.Element, p ElementPatch) {
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Source != nil {
		e.Source = *p.Source
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Size != nil {
		e.Size = *p.Size
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.Opacity != nil {
		e.Opacity = *p.Opacity
	}
	if p.Style != nil {
		st := *p.Style
		if st.Shadow != nil {
			sh := *st.Shadow
			st.Shadow = &sh
		}
		e.Style = st
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}
