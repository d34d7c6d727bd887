// Package template defines the editable short-form video document: an ordered
// timeline of sections, each owning its elements, background and transition.
package template

import (
	"fmt"
	"strings"
)

// SectionType tags the narrative role of a section.
type SectionType string

const (
	// SectionIntro opens the video.
	SectionIntro SectionType = "intro"
	// SectionHook grabs attention in the first seconds.
	SectionHook SectionType = "hook"
	// SectionBody carries the main content.
	SectionBody SectionType = "body"
	// SectionCallToAction asks the viewer to do something.
	SectionCallToAction SectionType = "callToAction"
	// SectionOutro closes the video.
	SectionOutro SectionType = "outro"
)

// AllSectionTypes returns the supported section types in timeline order.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionIntro,
		SectionHook,
		SectionBody,
		SectionCallToAction,
		SectionOutro,
	}
}

// ParseSectionType converts a string to a SectionType or returns an error for
// unknown values. Matching ignores case, so "cta" style inputs must be spelled
// out as "callToAction".
func ParseSectionType(raw string) (SectionType, error) {
	want := strings.TrimSpace(raw)
	if want == "" {
		return SectionBody, nil
	}
	for _, candidate := range AllSectionTypes() {
		if strings.EqualFold(string(candidate), want) {
			return candidate, nil
		}
	}
	return SectionBody, fmt.Errorf("template: unknown section type %q", raw)
}

// Title is the human label used for default section names.
func (t SectionType) Title() string {
	switch t {
	case SectionIntro:
		return "Intro"
	case SectionHook:
		return "Hook"
	case SectionBody:
		return "Body"
	case SectionCallToAction:
		return "Call to Action"
	case SectionOutro:
		return "Outro"
	default:
		return string(t)
	}
}

// AspectRatio is the output frame shape.
type AspectRatio string

const (
	AspectPortrait  AspectRatio = "9:16"
	AspectSquare    AspectRatio = "1:1"
	AspectVertical  AspectRatio = "4:5"
	AspectLandscape AspectRatio = "16:9"
)

// AllAspectRatios returns the supported aspect ratios, default first.
func AllAspectRatios() []AspectRatio {
	return []AspectRatio{AspectPortrait, AspectSquare, AspectVertical, AspectLandscape}
}

// ParseAspectRatio converts a string to an AspectRatio.
func ParseAspectRatio(raw string) (AspectRatio, error) {
	a := AspectRatio(strings.TrimSpace(raw))
	if a == "" {
		return AspectPortrait, nil
	}
	for _, candidate := range AllAspectRatios() {
		if candidate == a {
			return candidate, nil
		}
	}
	return AspectPortrait, fmt.Errorf("template: unknown aspect ratio %q", raw)
}

// ElementKind identifies the variant of an element.
type ElementKind string

const (
	KindText  ElementKind = "text"
	KindImage ElementKind = "image"
	KindVideo ElementKind = "video"
	KindShape ElementKind = "shape"
)

// ParseElementKind converts a string to an ElementKind.
func ParseElementKind(raw string) (ElementKind, error) {
	k := ElementKind(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case KindText, KindImage, KindVideo, KindShape:
		return k, nil
	case "":
		return KindText, nil
	}
	return KindText, fmt.Errorf("template: unknown element kind %q", raw)
}

// BackgroundType selects how a section background is painted.
type BackgroundType string

const (
	BackgroundColor BackgroundType = "color"
	BackgroundImage BackgroundType = "image"
	BackgroundVideo BackgroundType = "video"
)

// TransitionType selects the effect used when entering a section.
type TransitionType string

const (
	TransitionNone  TransitionType = "none"
	TransitionFade  TransitionType = "fade"
	TransitionSlide TransitionType = "slide"
	TransitionZoom  TransitionType = "zoom"
)

// Alignment is the horizontal text alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)
