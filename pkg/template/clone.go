package template

// Clone returns a deep copy that shares no slices or pointers with t.
func (t Template) Clone() Template {
	out := t
	if t.Sound != nil {
		s := *t.Sound
		out.Sound = &s
	}
	if t.Sections != nil {
		out.Sections = make([]Section, len(t.Sections))
		for i := range t.Sections {
			out.Sections[i] = t.Sections[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the section and its elements.
func (s Section) Clone() Section {
	out := s
	if s.Elements != nil {
		out.Elements = make([]Element, len(s.Elements))
		for i := range s.Elements {
			out.Elements[i] = s.Elements[i].Clone()
		}
	}
	return out
}

// Clone returns a copy of the element with its own shadow.
func (e Element) Clone() Element {
	out := e
	if e.Style.Shadow != nil {
		sh := *e.Style.Shadow
		out.Style.Shadow = &sh
	}
	return out
}
