package editor

import "tableflip.dev/storyboard/pkg/template"

// ActionType tags an Action and the history entry it produced.
type ActionType string

const (
	ActionInit                   ActionType = "INIT"
	ActionLoadTemplate           ActionType = "LOAD_TEMPLATE"
	ActionUpdateTemplate         ActionType = "UPDATE_TEMPLATE"
	ActionSetTemplateName        ActionType = "SET_TEMPLATE_NAME"
	ActionSetTemplateDescription ActionType = "SET_TEMPLATE_DESCRIPTION"
	ActionAddSection             ActionType = "ADD_SECTION"
	ActionUpdateSection          ActionType = "UPDATE_SECTION"
	ActionRemoveSection          ActionType = "REMOVE_SECTION"
	ActionMoveSection            ActionType = "MOVE_SECTION"
	ActionDuplicateSection       ActionType = "DUPLICATE_SECTION"
	ActionAddElement             ActionType = "ADD_ELEMENT"
	ActionUpdateElement          ActionType = "UPDATE_ELEMENT"
	ActionRemoveElement          ActionType = "REMOVE_ELEMENT"
	ActionSelectSection          ActionType = "SELECT_SECTION"
	ActionSelectElement          ActionType = "SELECT_ELEMENT"
	ActionTrackInteraction       ActionType = "TRACK_INTERACTION"
	ActionSetCurrentTime         ActionType = "SET_CURRENT_TIME"
	ActionSetPlaying             ActionType = "SET_PLAYING"
	ActionTogglePlayback         ActionType = "TOGGLE_PLAYBACK"
	ActionSetPlaybackSpeed       ActionType = "SET_PLAYBACK_SPEED"
	ActionSetZoom                ActionType = "SET_ZOOM"
	ActionSetMode                ActionType = "SET_MODE"
	ActionSetDevice              ActionType = "SET_DEVICE"
	ActionTogglePanel            ActionType = "TOGGLE_PANEL"
	ActionSetActiveTab           ActionType = "SET_ACTIVE_TAB"
	ActionSetExpertiseLevel      ActionType = "SET_EXPERTISE_LEVEL"
	ActionDiscoverFeature        ActionType = "DISCOVER_FEATURE"
	ActionUndo                   ActionType = "UNDO"
	ActionRedo                   ActionType = "REDO"
)

// Action is the closed set of inputs accepted by Reducer.Reduce. Only types
// declared in this package implement it.
type Action interface {
	Type() ActionType
	isAction()
}

type action struct{}

func (action) isAction() {}

// TemplatePatch shallow-merges onto a template; nil fields are left as is.
type TemplatePatch struct {
	Name        *string
	Description *string
	AspectRatio *template.AspectRatio
	Theme       *template.Theme
	Sound       *template.Sound
	ClearSound  bool
	UserID      *string
	IsPublished *bool
}

// SectionPatch shallow-merges onto a section. StartTime is derived and cannot
// be patched.
type SectionPatch struct {
	Name       *string
	Type       *template.SectionType
	Duration   *float64
	Elements   []template.Element
	Background *template.Background
	Transition *template.Transition
}

// ElementPatch shallow-merges onto an element.
type ElementPatch struct {
	Content  *string
	Source   *string
	Position *template.Position
	Size     *template.Size
	Rotation *float64
	Opacity  *float64
	Style    *template.Style
}

// ElementRef addresses an element inside a section.
type ElementRef struct {
	SectionID string
	ElementID string
}

type LoadTemplate struct {
	action
	Template template.Template
}

type UpdateTemplate struct {
	action
	Patch TemplatePatch
}

type SetTemplateName struct {
	action
	Name string
}

type SetTemplateDescription struct {
	action
	Description string
}

// AddSection appends Section to the timeline. Any ID or StartTime on Section
// is ignored.
type AddSection struct {
	action
	Section template.Section
}

type UpdateSection struct {
	action
	SectionID string
	Patch     SectionPatch
}

type RemoveSection struct {
	action
	SectionID string
}

// MoveSection moves a section to Index, clamped to the timeline bounds.
type MoveSection struct {
	action
	SectionID string
	Index     int
}

// DuplicateSection inserts a copy with fresh ids right after the original.
type DuplicateSection struct {
	action
	SectionID string
}

type AddElement struct {
	action
	SectionID string
	Element   template.Element
}

type UpdateElement struct {
	action
	Ref   ElementRef
	Patch ElementPatch
}

type RemoveElement struct {
	action
	Ref ElementRef
}

type SelectSection struct {
	action
	SectionID string
}

// SelectElement selects Ref, or clears the element selection when Ref is nil.
type SelectElement struct {
	action
	Ref *ElementRef
}

type TrackInteraction struct {
	action
	InteractionType string
	Target          string
}

type SetCurrentTime struct {
	action
	Time float64
}

type SetPlaying struct {
	action
	Playing bool
}

type TogglePlayback struct{ action }

type SetPlaybackSpeed struct {
	action
	Speed float64
}

type SetZoom struct {
	action
	Zoom float64
}

type SetMode struct {
	action
	Mode Mode
}

type SetDevice struct {
	action
	Device Device
}

type TogglePanel struct {
	action
	Panel Panel
}

type SetActiveTab struct {
	action
	Tab string
}

type SetExpertiseLevel struct {
	action
	Level ExpertiseLevel
}

type DiscoverFeature struct {
	action
	Feature string
}

type Undo struct{ action }

type Redo struct{ action }

func (LoadTemplate) Type() ActionType           { return ActionLoadTemplate }
func (UpdateTemplate) Type() ActionType         { return ActionUpdateTemplate }
func (SetTemplateName) Type() ActionType        { return ActionSetTemplateName }
func (SetTemplateDescription) Type() ActionType { return ActionSetTemplateDescription }
func (AddSection) Type() ActionType             { return ActionAddSection }
func (UpdateSection) Type() ActionType          { return ActionUpdateSection }
func (RemoveSection) Type() ActionType          { return ActionRemoveSection }
func (MoveSection) Type() ActionType            { return ActionMoveSection }
func (DuplicateSection) Type() ActionType       { return ActionDuplicateSection }
func (AddElement) Type() ActionType             { return ActionAddElement }
func (UpdateElement) Type() ActionType          { return ActionUpdateElement }
func (RemoveElement) Type() ActionType          { return ActionRemoveElement }
func (SelectSection) Type() ActionType          { return ActionSelectSection }
func (SelectElement) Type() ActionType          { return ActionSelectElement }
func (TrackInteraction) Type() ActionType       { return ActionTrackInteraction }
func (SetCurrentTime) Type() ActionType         { return ActionSetCurrentTime }
func (SetPlaying) Type() ActionType             { return ActionSetPlaying }
func (TogglePlayback) Type() ActionType         { return ActionTogglePlayback }
func (SetPlaybackSpeed) Type() ActionType       { return ActionSetPlaybackSpeed }
func (SetZoom) Type() ActionType                { return ActionSetZoom }
func (SetMode) Type() ActionType                { return ActionSetMode }
func (SetDevice) Type() ActionType              { return ActionSetDevice }
func (TogglePanel) Type() ActionType            { return ActionTogglePanel }
func (SetActiveTab) Type() ActionType           { return ActionSetActiveTab }
func (SetExpertiseLevel) Type() ActionType      { return ActionSetExpertiseLevel }
func (DiscoverFeature) Type() ActionType        { return ActionDiscoverFeature }
func (Undo) Type() ActionType                   { return ActionUndo }
func (Redo) Type() ActionType                   { return ActionRedo }
