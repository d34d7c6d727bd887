package editor

import "testing"

func TestParseUIValues(t *testing.T) {
	if m, err := ParseMode(" Preview "); err != nil || m != ModePreview {
		t.Fatalf("ParseMode = %q %v", m, err)
	}
	if d, err := ParseDevice("TABLET"); err != nil || d != DeviceTablet {
		t.Fatalf("ParseDevice = %q %v", d, err)
	}
	if l, err := ParseExpertiseLevel("expert"); err != nil || l != ExpertiseExpert {
		t.Fatalf("ParseExpertiseLevel = %q %v", l, err)
	}
	if p, err := ParsePanel("Layers"); err != nil || p != PanelLayers {
		t.Fatalf("ParsePanel = %q %v", p, err)
	}

	for name, parse := range map[string]func(string) error{
		"mode":   func(s string) error { _, err := ParseMode(s); return err },
		"device": func(s string) error { _, err := ParseDevice(s); return err },
		"level":  func(s string) error { _, err := ParseExpertiseLevel(s); return err },
		"panel":  func(s string) error { _, err := ParsePanel(s); return err },
	} {
		if err := parse("bogus"); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}
