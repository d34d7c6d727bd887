package options

import (
	"testing"

	"tableflip.dev/storyboard/pkg/template"
)

func TestSectionOptions(t *testing.T) {
	o := SectionOptions{}
	if _, ok, err := o.SectionType(); ok || err != nil {
		t.Fatalf("unset type should be skipped, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := o.Seconds(); ok || err != nil {
		t.Fatalf("unset duration should be skipped, got ok=%v err=%v", ok, err)
	}

	o = SectionOptions{Type: "CallToAction", Duration: "1m5s"}
	typ, ok, err := o.SectionType()
	if !ok || err != nil || typ != template.SectionCallToAction {
		t.Fatalf("SectionType = %q %v %v", typ, ok, err)
	}
	sec, ok, err := o.Seconds()
	if !ok || err != nil || sec != 65 {
		t.Fatalf("Seconds = %v %v %v", sec, ok, err)
	}

	o = SectionOptions{Type: "nope", Duration: "soon"}
	if _, _, err := o.SectionType(); err == nil {
		t.Fatalf("expected an error for an unknown type")
	}
	if _, _, err := o.Seconds(); err == nil {
		t.Fatalf("expected an error for a bad duration")
	}
}
