package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/persist"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/template"
)

// demo seeds local storage with a sample promo template.
func main() {
	cfg, err := store.LoadConfig()
	if err != nil {
		panic(err)
	}
	log, _ := zap.NewDevelopment()
	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		panic(err)
	}
	svc := &app.Service{Storage: p, Debounce: cfg.Debounce(), Log: log}

	ctx := context.Background()
	sess, err := svc.Create(ctx, "Demo promo", "A sample 15 second vertical promo.", template.AspectPortrait)
	if err != nil {
		panic(err)
	}
	intro := sess.Template().Sections[0].ID
	sess.AddTextElement(intro, "Meet storyboard", nil)

	hook := sess.AddSection(template.SectionHook, "Hook", 2.5).UI.SelectedSectionID
	sess.AddTextElement(hook, "Stop scrolling", &template.Position{X: 50, Y: 20, Z: 1})

	sess.AddSection(template.SectionBody, "Features", 6)
	cta := sess.AddSection(template.SectionCallToAction, "Try it", 3.5).UI.SelectedSectionID
	sess.AddTextElement(cta, "Link in bio", nil)
	st := sess.SelectSection(hook)

	if err := sess.Close(); err != nil {
		panic(err)
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.Template(st.Template, persist.Project(st).UI)
	pp.Timeline(st.Template, 0, printers.DefaultTimelineWidth)
	fmt.Println()
}
