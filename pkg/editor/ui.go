package editor

import (
	"fmt"
	"strings"
	"time"
)

// Mode switches the canvas between editing and playback preview.
type Mode string

const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
)

// Device is the frame the preview is rendered into.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

// ExpertiseLevel tiers the amount of guidance shown to the user.
type ExpertiseLevel string

const (
	ExpertiseBeginner     ExpertiseLevel = "beginner"
	ExpertiseIntermediate ExpertiseLevel = "intermediate"
	ExpertiseExpert       ExpertiseLevel = "expert"
)

// Panel names a toggleable editor panel.
type Panel string

const (
	PanelTimeline   Panel = "timeline"
	PanelProperties Panel = "properties"
	PanelLayers     Panel = "layers"
)

// ParseMode converts a string to a Mode.
func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeEdit, ModePreview:
		return m, nil
	}
	return ModeEdit, fmt.Errorf("editor: unknown mode %q", raw)
}

// ParseDevice converts a string to a Device.
func ParseDevice(raw string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(raw))); d {
	case DeviceMobile, DeviceTablet, DeviceDesktop:
		return d, nil
	}
	return DeviceMobile, fmt.Errorf("editor: unknown device %q", raw)
}

// ParseExpertiseLevel converts a string to an ExpertiseLevel.
func ParseExpertiseLevel(raw string) (ExpertiseLevel, error) {
	switch l := ExpertiseLevel(strings.ToLower(strings.TrimSpace(raw))); l {
	case ExpertiseBeginner, ExpertiseIntermediate, ExpertiseExpert:
		return l, nil
	}
	return ExpertiseBeginner, fmt.Errorf("editor: unknown expertise level %q", raw)
}

// ParsePanel converts a string to a Panel.
func ParsePanel(raw string) (Panel, error) {
	switch p := Panel(strings.ToLower(strings.TrimSpace(raw))); p {
	case PanelTimeline, PanelProperties, PanelLayers:
		return p, nil
	}
	return PanelTimeline, fmt.Errorf("editor: unknown panel %q", raw)
}

// MaxRecentTools bounds UIState.RecentTools.
const MaxRecentTools = 5

// Panels holds the visibility of each editor panel.
type Panels struct {
	Timeline   bool `json:"timeline"`
	Properties bool `json:"properties"`
	Layers     bool `json:"layers"`
}

// Interaction records the last thing the user did.
type Interaction struct {
	Type      string    `json:"type"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// UIState is the view state paired with each document snapshot. Selection is
// held as ids and must be resolved against the template on every read.
type UIState struct {
	SelectedSectionID string          `json:"selectedSectionId,omitempty"`
	SelectedElementID string          `json:"selectedElementId,omitempty"`
	CurrentTime       float64         `json:"currentTime"`
	IsPlaying         bool            `json:"isPlaying"`
	PlaybackSpeed     float64         `json:"playbackSpeed"`
	Zoom              float64         `json:"zoom"`
	Mode              Mode            `json:"mode"`
	Device            Device          `json:"device"`
	Panels            Panels          `json:"panels"`
	ActiveTab         string          `json:"activeTab"`
	LastInteraction   *Interaction    `json:"lastInteraction,omitempty"`
	RecentTools       []string        `json:"recentTools"`
	ExpertiseLevel    ExpertiseLevel  `json:"expertiseLevel"`
	Discovered        map[string]bool `json:"discovered"`
}

// DefaultUIState is the view state of a freshly opened editor.
func DefaultUIState() UIState {
	return UIState{
		PlaybackSpeed:  1,
		Zoom:           1,
		Mode:           ModeEdit,
		Device:         DeviceMobile,
		Panels:         Panels{Timeline: true, Properties: false, Layers: false},
		ActiveTab:      "design",
		RecentTools:    []string{},
		ExpertiseLevel: ExpertiseBeginner,
		Discovered:     map[string]bool{},
	}
}

// Clone returns a copy that shares no slice, map or pointer with u.
func (u UIState) Clone() UIState {
	out := u
	if u.LastInteraction != nil {
		li := *u.LastInteraction
		out.LastInteraction = &li
	}
	if u.RecentTools != nil {
		out.RecentTools = append([]string(nil), u.RecentTools...)
	}
	if u.Discovered != nil {
		out.Discovered = make(map[string]bool, len(u.Discovered))
		for k, v := range u.Discovered {
			out.Discovered[k] = v
		}
	}
	return out
}

// toolName is the part of an interaction target before the first ':'.
func toolName(target string) string {
	if i := strings.Index(target, ":"); i >= 0 {
		return target[:i]
	}
	return target
}

// rememberTool appends tool if absent and keeps the most recent
// MaxRecentTools entries.
func rememberTool(recent []string, tool string) []string {
	out := append([]string(nil), recent...)
	for _, t := range out {
		if t == tool {
			return out
		}
	}
	out = append(out, tool)
	if len(out) > MaxRecentTools {
		out = out[len(out)-MaxRecentTools:]
	}
	return out
}
