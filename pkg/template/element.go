package template

// DefaultShadow is the soft drop shadow applied to new text.
func DefaultShadow() Shadow {
	return Shadow{Color: "rgba(0,0,0,0.5)", Blur: 4, OffsetX: 0, OffsetY: 2}
}

// NewText builds a fully-defaulted text element: centred, white, bold, with
// the default shadow. A nil position centres the element in the frame.
func NewText(content string, pos *Position) Element {
	p := Position{X: 50, Y: 50, Z: 1}
	if pos != nil {
		p = *pos
	}
	shadow := DefaultShadow()
	return Element{
		Kind:     KindText,
		Content:  content,
		Position: p,
		Size:     Size{Width: 80, Height: 20},
		Opacity:  1,
		Style: Style{
			FontFamily: "Inter",
			FontSize:   32,
			FontWeight: "bold",
			Color:      "#FFFFFF",
			Alignment:  AlignCenter,
			Shadow:     &shadow,
		},
	}
}
