// Package info reports where templates are stored and how sessions are
// configured.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/printers"
	"tableflip.dev/storyboard/pkg/store"
	"tableflip.dev/storyboard/pkg/timeutil"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}
	out := pp.Writer()

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return fmt.Errorf("info: no storage configured")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	if override := os.Getenv("STORYBOARD_CONFIG_PATH"); override != "" {
		tbl.AddRow(bold.Sprint("config"), override+" (STORYBOARD_CONFIG_PATH)")
	} else {
		tbl.AddRow(bold.Sprint("config"), "./.storyboard.yaml")
	}
	limit := "unbounded"
	if l := n.Config.HistoryLimit(); l > 0 {
		limit = fmt.Sprintf("%d", l)
	}
	tbl.AddRow(bold.Sprint("path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("debounce"), timeutil.FormatSeconds(n.Config.Debounce().Seconds()))
	tbl.AddRow(bold.Sprint("history"), limit)
	tbl.AddRow(bold.Sprint("log level"), n.Config.LogLevel())

	pp.NewLine()
	_, _ = fmt.Fprintln(out, tbl)
	pp.NewLine()

	snaps, err := n.Service.Templates(ctx)
	if err != nil {
		return err
	}
	pp.Catalog(snaps)
	return nil
}
