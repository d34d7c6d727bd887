package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/storyboard/pkg/app"
	"tableflip.dev/storyboard/pkg/store"
)

// env is the state every subcommand shares: configuration, storage and the
// logger built in the root's pre-run hook.
type env struct {
	verbose bool
	cfg     store.Config
	log     *zap.Logger
}

func New() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "storyboard",
		Short: base.Wrap80("Edit short-video templates on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Log debug output to stderr.")

	addCommands(cmd, e)
	return cmd
}

func addCommands(topLevel *cobra.Command, e *env) {
	addNew(topLevel, e)
	addList(topLevel, e)
	addShow(topLevel, e)
	addRemove(topLevel, e)
	addSection(topLevel, e)
	addText(topLevel, e)
	addReplay(topLevel, e)
	addReport(topLevel, e)
	addExport(topLevel, e)
	addImport(topLevel, e)
	addWatch(topLevel, e)
	addInfo(topLevel, e)
	addVersion(topLevel)
}

func (e *env) init() error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	e.cfg = cfg

	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.LogLevel())
	if err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel(), err)
	}
	if e.verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)
	e.log, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// service opens storage and returns an app.Service over it.
func (e *env) service() (*app.Service, error) {
	p, err := store.Load(e.cfg, store.WithLogger(e.log.Named("store")))
	if err != nil {
		return nil, err
	}
	return &app.Service{
		Storage:      p,
		Debounce:     e.cfg.Debounce(),
		HistoryLimit: e.cfg.HistoryLimit(),
		Log:          e.log,
	}, nil
}
