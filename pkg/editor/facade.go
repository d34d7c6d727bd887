package editor

import (
	"fmt"

	"tableflip.dev/storyboard/pkg/template"
)

// SelectedSection resolves the selected section id against the current
// template. The result is a copy; edit it through UpdateSection.
func (e *Editor) SelectedSection() *template.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveLocked().section
}

// SelectedElement resolves the selected element within the selected section.
// It is nil whenever SelectedSection is nil.
func (e *Editor) SelectedElement() *template.Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveLocked().element
}

func (e *Editor) resolveLocked() selection {
	if e.memo.valid && e.memo.revision == e.revision {
		return e.memo
	}
	sel := selection{revision: e.revision, valid: true}
	t := e.state.Template
	if sec := t.Section(e.state.UI.SelectedSectionID); sec != nil {
		cp := sec.Clone()
		sel.section = &cp
		if el := cp.Element(e.state.UI.SelectedElementID); el != nil {
			elCopy := el.Clone()
			sel.element = &elCopy
		}
	}
	e.memo = sel
	return sel
}

// CanUndo reports whether there is an edit to undo.
func (e *Editor) CanUndo() bool {
	return e.State().History.CanUndo()
}

// CanRedo reports whether there is an undone edit to redo.
func (e *Editor) CanRedo() bool {
	return e.State().History.CanRedo()
}

// Template returns the current document.
func (e *Editor) Template() template.Template {
	return e.State().Template
}

// Section looks a section up by id.
func (e *Editor) Section(id string) (template.Section, error) {
	t := e.Template()
	sec := t.Section(id)
	if sec == nil {
		return template.Section{}, fmt.Errorf("section %q: %w", id, ErrNotFound)
	}
	return sec.Clone(), nil
}

// Element looks an element up by section and element id.
func (e *Editor) Element(ref ElementRef) (template.Element, error) {
	sec, err := e.Section(ref.SectionID)
	if err != nil {
		return template.Element{}, err
	}
	el := sec.Element(ref.ElementID)
	if el == nil {
		return template.Element{}, fmt.Errorf("element %q: %w", ref.ElementID, ErrNotFound)
	}
	return *el, nil
}

// Load replaces the document and resets UI and history.
func (e *Editor) Load(t template.Template) State {
	return e.Dispatch(LoadTemplate{Template: t})
}

func (e *Editor) Rename(name string) State {
	return e.Dispatch(SetTemplateName{Name: name})
}

func (e *Editor) Describe(description string) State {
	return e.Dispatch(SetTemplateDescription{Description: description})
}

func (e *Editor) UpdateTemplate(p TemplatePatch) State {
	return e.Dispatch(UpdateTemplate{Patch: p})
}

// AddSection appends a default-styled section and selects it. The new id is
// the returned state's UI.SelectedSectionID.
func (e *Editor) AddSection(typ template.SectionType, name string, duration float64) State {
	return e.Dispatch(AddSection{Section: template.NewSection(typ, name, duration)})
}

func (e *Editor) UpdateSection(id string, p SectionPatch) State {
	return e.Dispatch(UpdateSection{SectionID: id, Patch: p})
}

func (e *Editor) RemoveSection(id string) State {
	return e.Dispatch(RemoveSection{SectionID: id})
}

func (e *Editor) MoveSection(id string, index int) State {
	return e.Dispatch(MoveSection{SectionID: id, Index: index})
}

func (e *Editor) DuplicateSection(id string) State {
	return e.Dispatch(DuplicateSection{SectionID: id})
}

// AddTextElement adds a fully-defaulted text element to the section. A nil
// position centres it.
func (e *Editor) AddTextElement(sectionID, text string, pos *template.Position) State {
	return e.Dispatch(AddElement{SectionID: sectionID, Element: template.NewText(text, pos)})
}

func (e *Editor) UpdateElement(ref ElementRef, p ElementPatch) State {
	return e.Dispatch(UpdateElement{Ref: ref, Patch: p})
}

func (e *Editor) RemoveElement(ref ElementRef) State {
	return e.Dispatch(RemoveElement{Ref: ref})
}

func (e *Editor) SelectSection(id string) State {
	return e.Dispatch(SelectSection{SectionID: id})
}

func (e *Editor) SelectElement(sectionID, elementID string) State {
	return e.Dispatch(SelectElement{Ref: &ElementRef{SectionID: sectionID, ElementID: elementID}})
}

func (e *Editor) ClearElementSelection() State {
	return e.Dispatch(SelectElement{})
}

func (e *Editor) TogglePlayback() State {
	return e.Dispatch(TogglePlayback{})
}

// Seek moves the playhead, clamped to the template duration.
func (e *Editor) Seek(at float64) State {
	return e.Dispatch(SetCurrentTime{Time: at})
}

func (e *Editor) SetMode(m Mode) State {
	return e.Dispatch(SetMode{Mode: m})
}

func (e *Editor) SetDevice(d Device) State {
	return e.Dispatch(SetDevice{Device: d})
}

// TrackInteraction records a user interaction. Target is "tool:detail"; the
// tool part feeds the recent tools list.
func (e *Editor) TrackInteraction(kind, target string) State {
	return e.Dispatch(TrackInteraction{InteractionType: kind, Target: target})
}

func (e *Editor) Undo() State {
	return e.Dispatch(Undo{})
}

func (e *Editor) Redo() State {
	return e.Dispatch(Redo{})
}
