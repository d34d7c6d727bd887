package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/storyboard/pkg/template"
)

var (
	ErrSectionNotFound = errors.New("app: section not found")
	ErrElementNotFound = errors.New("app: element not found")
)

// SectionRef finds a section of t by reference. An empty ref means the
// selected section; "#N" is the 1-based timeline position; anything else is
// an id or a unique id prefix.
func SectionRef(t template.Template, ref, selected string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if selected == "" || t.SectionIndex(selected) < 0 {
			return "", fmt.Errorf("%w: nothing selected", ErrSectionNotFound)
		}
		return selected, nil
	}
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 1 || n > len(t.Sections) {
			return "", fmt.Errorf("%w: position %s of %d", ErrSectionNotFound, ref, len(t.Sections))
		}
		return t.Sections[n-1].ID, nil
	}
	ids := make([]string, len(t.Sections))
	for i, s := range t.Sections {
		ids[i] = s.ID
	}
	id, err := matchID(ids, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, err)
	}
	return id, nil
}

// ElementRef finds an element of the section sectionID by id or unique id
// prefix. An empty ref means the selected element.
func ElementRef(t template.Template, sectionID, ref, selected string) (string, error) {
	sec := t.Section(sectionID)
	if sec == nil {
		return "", fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if selected == "" || sec.ElementIndex(selected) < 0 {
			return "", fmt.Errorf("%w: nothing selected", ErrElementNotFound)
		}
		return selected, nil
	}
	ids := make([]string, len(sec.Elements))
	for i, e := range sec.Elements {
		ids[i] = e.ID
	}
	id, err := matchID(ids, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrElementNotFound, err)
	}
	return id, nil
}

func matchID(ids []string, ref string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no match for %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous", ref)
	}
}
