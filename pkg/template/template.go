package template

import "time"

// DefaultSectionDuration is the length in seconds of the section a new
// template starts with.
const DefaultSectionDuration = 3.0

// Template is the document root. Section order is playback order.
type Template struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	AspectRatio   AspectRatio `json:"aspectRatio"`
	Sections      []Section   `json:"sections"`
	Sound         *Sound      `json:"sound,omitempty"`
	Theme         Theme       `json:"theme"`
	TotalDuration float64     `json:"totalDuration"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	UserID        string      `json:"userId,omitempty"`
	IsPublished   bool        `json:"isPublished"`
}

// Section is a timed segment of the template. StartTime is derived from the
// durations of the sections before it.
type Section struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Type       SectionType `json:"type"`
	StartTime  float64     `json:"startTime"`
	Duration   float64     `json:"duration"`
	Elements   []Element   `json:"elements"`
	Background Background  `json:"background"`
	Transition Transition  `json:"transition"`
}

// Element is a positioned, styled unit of content owned by one section.
// Content carries text for KindText; Source references the media or shape
// for the other kinds.
type Element struct {
	ID       string      `json:"id"`
	Kind     ElementKind `json:"kind"`
	Content  string      `json:"content,omitempty"`
	Source   string      `json:"source,omitempty"`
	Position Position    `json:"position"`
	Size     Size        `json:"size"`
	Rotation float64     `json:"rotation,omitempty"`
	Opacity  float64     `json:"opacity"`
	Style    Style       `json:"style"`
}

// Position is expressed in percent of the frame; Z orders overlapping elements.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z int     `json:"z"`
}

// Size is expressed in percent of the frame.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Style struct {
	FontFamily string    `json:"fontFamily,omitempty"`
	FontSize   float64   `json:"fontSize,omitempty"`
	FontWeight string    `json:"fontWeight,omitempty"`
	Color      string    `json:"color,omitempty"`
	Alignment  Alignment `json:"alignment,omitempty"`
	Shadow     *Shadow   `json:"shadow,omitempty"`
}

type Shadow struct {
	Color   string  `json:"color"`
	Blur    float64 `json:"blur"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type Background struct {
	Type    BackgroundType `json:"type"`
	Value   string         `json:"value"`
	Opacity float64        `json:"opacity"`
}

type Transition struct {
	Type     TransitionType `json:"type"`
	Duration float64        `json:"duration"`
}

// Sound references an audio track laid under the whole template.
type Sound struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	URL    string  `json:"url,omitempty"`
	Volume float64 `json:"volume"`
}

type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	FontFamily string `json:"fontFamily"`
}

// DefaultTheme is applied to new templates.
func DefaultTheme() Theme {
	return Theme{
		Primary:    "#8B5CF6",
		Secondary:  "#EC4899",
		Background: "#000000",
		Text:       "#FFFFFF",
		FontFamily: "Inter",
	}
}

// DefaultBackground is a solid black, fully opaque background.
func DefaultBackground() Background {
	return Background{Type: BackgroundColor, Value: "#000000", Opacity: 1}
}

// DefaultTransition is a short fade.
func DefaultTransition() Transition {
	return Transition{Type: TransitionFade, Duration: 0.5}
}

// NewSection returns a section of the given type with default styling and no
// elements. The caller assigns the ID.
func NewSection(typ SectionType, name string, duration float64) Section {
	if name == "" {
		name = typ.Title()
	}
	return Section{
		Name:       name,
		Type:       typ,
		Duration:   duration,
		Elements:   []Element{},
		Background: DefaultBackground(),
		Transition: DefaultTransition(),
	}
}

// New builds a template holding one default "Intro" section.
func New(id, sectionID, name string, now time.Time) Template {
	if name == "" {
		name = "Untitled Template"
	}
	intro := NewSection(SectionIntro, "Intro", DefaultSectionDuration)
	intro.ID = sectionID
	t := Template{
		ID:          id,
		Name:        name,
		AspectRatio: AspectPortrait,
		Sections:    []Section{intro},
		Theme:       DefaultTheme(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.Retime()
	return t
}

// SectionIndex returns the position of the section with the given id, or -1.
func (t *Template) SectionIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Section returns a pointer into t.Sections for the given id, or nil.
func (t *Template) Section(id string) *Section {
	if i := t.SectionIndex(id); i >= 0 {
		return &t.Sections[i]
	}
	return nil
}

// ElementIndex returns the position of the element with the given id, or -1.
func (s *Section) ElementIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Elements {
		if s.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Element returns a pointer into s.Elements for the given id, or nil.
func (s *Section) Element(id string) *Element {
	if i := s.ElementIndex(id); i >= 0 {
		return &s.Elements[i]
	}
	return nil
}

// End is the time at which the section stops playing.
func (s Section) End() float64 {
	return s.StartTime + s.Duration
}
