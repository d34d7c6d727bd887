package replay

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/editor"
	"tableflip.dev/storyboard/pkg/template"
	"tableflip.dev/storyboard/pkg/timeutil"
)

// Script is a list of editor actions. Steps run in order against one live
// session, so undo and redo see the history built by earlier steps.
//
//	steps:
//	  - action: add_section
//	    type: hook
//	    duration: 2.5s
//	  - action: add_text
//	    text: Stop scrolling
//	  - action: undo
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted action. Which fields apply depends on Action.
// Section and Element are references as understood by app.SectionRef and
// app.ElementRef; empty means the current selection.
type Step struct {
	Action   string   `yaml:"action"`
	Section  string   `yaml:"section,omitempty"`
	Element  string   `yaml:"element,omitempty"`
	Type     string   `yaml:"type,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Text     string   `yaml:"text,omitempty"`
	Duration string   `yaml:"duration,omitempty"`
	At       string   `yaml:"at,omitempty"`
	Position int      `yaml:"position,omitempty"`
	Value    string   `yaml:"value,omitempty"`
	Target   string   `yaml:"target,omitempty"`
	X        *float64 `yaml:"x,omitempty"`
	Y        *float64 `yaml:"y,omitempty"`
}

// Parse reads a Script. Unknown fields are rejected.
func Parse(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, errors.New("replay: empty script")
		}
		return Script{}, fmt.Errorf("replay: parse script: %w", err)
	}
	for i, st := range s.Steps {
		if strings.TrimSpace(st.Action) == "" {
			return Script{}, fmt.Errorf("replay: step %d has no action", i+1)
		}
	}
	return s, nil
}

// ToAction converts st into an editor action against the current state.
func (st Step) ToAction(s editor.State) (editor.Action, error) {
	t := s.Template
	ui := s.UI
	section := func() (string, error) {
		return app.SectionRef(t, st.Section, ui.SelectedSectionID)
	}
	element := func() (editor.ElementRef, error) {
		sec, err := section()
		if err != nil {
			return editor.ElementRef{}, err
		}
		el, err := app.ElementRef(t, sec, st.Element, ui.SelectedElementID)
		return editor.ElementRef{SectionID: sec, ElementID: el}, err
	}

	switch strings.ToLower(strings.TrimSpace(st.Action)) {
	case "rename":
		return editor.SetTemplateName{Name: st.Name}, nil
	case "describe":
		return editor.SetTemplateDescription{Description: st.Text}, nil
	case "aspect":
		a, err := template.ParseAspectRatio(st.Value)
		if err != nil {
			return nil, err
		}
		return editor.UpdateTemplate{Patch: editor.TemplatePatch{AspectRatio: &a}}, nil

	case "add_section":
		typ, err := template.ParseSectionType(st.Type)
		if err != nil {
			return nil, err
		}
		dur := template.DefaultSectionDuration
		if st.Duration != "" {
			if dur, err = timeutil.ParseSeconds(st.Duration); err != nil {
				return nil, err
			}
		}
		return editor.AddSection{Section: template.NewSection(typ, st.Name, dur)}, nil
	case "update_section":
		id, err := section()
		if err != nil {
			return nil, err
		}
		patch := editor.SectionPatch{}
		if st.Name != "" {
			patch.Name = &st.Name
		}
		if st.Type != "" {
			typ, err := template.ParseSectionType(st.Type)
			if err != nil {
				return nil, err
			}
			patch.Type = &typ
		}
		if st.Duration != "" {
			d, err := timeutil.ParseSeconds(st.Duration)
			if err != nil {
				return nil, err
			}
			patch.Duration = &d
		}
		return editor.UpdateSection{SectionID: id, Patch: patch}, nil
	case "remove_section":
		id, err := section()
		return editor.RemoveSection{SectionID: id}, err
	case "move_section":
		id, err := section()
		if err != nil {
			return nil, err
		}
		if st.Position < 1 {
			return nil, errors.New("move_section needs position >= 1")
		}
		return editor.MoveSection{SectionID: id, Index: st.Position - 1}, nil
	case "duplicate_section":
		id, err := section()
		return editor.DuplicateSection{SectionID: id}, err

	case "add_text":
		id, err := section()
		if err != nil {
			return nil, err
		}
		el := template.NewText(st.Text, nil)
		if st.X != nil {
			el.Position.X = *st.X
		}
		if st.Y != nil {
			el.Position.Y = *st.Y
		}
		return editor.AddElement{SectionID: id, Element: el}, nil
	case "update_text":
		ref, err := element()
		if err != nil {
			return nil, err
		}
		return editor.UpdateElement{Ref: ref, Patch: editor.ElementPatch{Content: &st.Text}}, nil
	case "remove_element":
		ref, err := element()
		return editor.RemoveElement{Ref: ref}, err

	case "select_section":
		id, err := section()
		return editor.SelectSection{SectionID: id}, err
	case "select_element":
		ref, err := element()
		if err != nil {
			return nil, err
		}
		return editor.SelectElement{Ref: &ref}, nil
	case "clear_element":
		return editor.SelectElement{}, nil
	case "track":
		return editor.TrackInteraction{InteractionType: st.Value, Target: st.Target}, nil

	case "seek":
		at, err := timeutil.ParseSeconds(st.At)
		if err != nil {
			return nil, err
		}
		return editor.SetCurrentTime{Time: at}, nil
	case "play":
		return editor.SetPlaying{Playing: true}, nil
	case "pause":
		return editor.SetPlaying{Playing: false}, nil
	case "toggle_playback":
		return editor.TogglePlayback{}, nil
	case "speed":
		f, err := strconv.ParseFloat(st.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("speed: %w", err)
		}
		return editor.SetPlaybackSpeed{Speed: f}, nil
	case "zoom":
		f, err := strconv.ParseFloat(st.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("zoom: %w", err)
		}
		return editor.SetZoom{Zoom: f}, nil

	case "mode":
		m, err := editor.ParseMode(st.Value)
		return editor.SetMode{Mode: m}, err
	case "device":
		d, err := editor.ParseDevice(st.Value)
		return editor.SetDevice{Device: d}, err
	case "panel":
		p, err := editor.ParsePanel(st.Value)
		return editor.TogglePanel{Panel: p}, err
	case "tab":
		return editor.SetActiveTab{Tab: st.Value}, nil
	case "level":
		l, err := editor.ParseExpertiseLevel(st.Value)
		return editor.SetExpertiseLevel{Level: l}, err
	case "discover":
		return editor.DiscoverFeature{Feature: st.Value}, nil

	case "undo":
		return editor.Undo{}, nil
	case "redo":
		return editor.Redo{}, nil
	}
	return nil, fmt.Errorf("unknown action %q", st.Action)
}
