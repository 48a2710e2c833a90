package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/jsonwatch/internal/config"
	"github.com/oakwood-commons/jsonwatch/internal/highlight"
	"github.com/oakwood-commons/jsonwatch/internal/layout"
	"github.com/oakwood-commons/jsonwatch/internal/snapshot"
	"github.com/oakwood-commons/jsonwatch/internal/watch"
)

// ErrNotATerminal is wrapped in a TerminalError when stdout is redirected.
var ErrNotATerminal = errors.New("stdout is not a terminal")

// TerminalError reports a failure to enter, run or restore the terminal UI.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// Options configure one viewer session.
type Options struct {
	Path          string
	Marker        string
	Title         string
	NoColor       bool
	Theme         Theme
	Layout        layout.Options
	LineStepRatio float64
	PollInterval  time.Duration
	HopInterval   time.Duration
	PaneCommand   string
	PaneArgs      []string
	Width         int // initial size, 0 until the terminal reports it
	Height        int
}

// OptionsFromConfig maps the merged config plus the two positional
// arguments onto session options.
func OptionsFromConfig(cfg config.Config, path, creature string) Options {
	if path == "" {
		path = cfg.File
	}
	return Options{
		Path:          path,
		Marker:        cfg.Marker(creature),
		Title:         cfg.Title,
		NoColor:       cfg.NoColor,
		Theme:         ThemeByName(cfg, cfg.Theme),
		Layout:        layout.Options{KeyRatio: cfg.Layout.KeyRatio, MinKeyWidth: cfg.Layout.MinKeyWidth},
		LineStepRatio: cfg.Layout.LineStepRatio,
		PollInterval:  cfg.PollInterval.Duration,
		HopInterval:   cfg.HopInterval.Duration,
		PaneCommand:   cfg.PaneSwitch.Command,
		PaneArgs:      append([]string(nil), cfg.PaneSwitch.Args...),
	}
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = 250 * time.Millisecond
	}
	if o.HopInterval <= 0 {
		o.HopInterval = highlight.DefaultInterval
	}
	if o.Layout.MinKeyWidth <= 0 || o.Layout.KeyRatio <= 0 {
		o.Layout = layout.DefaultOptions()
	}
	if o.LineStepRatio <= 0 {
		o.LineStepRatio = 0.10
	}
	if o.Theme.KeyColor == nil {
		o.Theme = fallbackDefaultTheme()
	}
	return o
}

// Terminal runs a model with the terminal in raw mode on the alternate
// screen, restoring it before returning on every path.
type Terminal interface {
	Run(ctx context.Context, m tea.Model) error
}

// Watcher is the file-change notification source.
type Watcher interface {
	Events() <-chan struct{}
	Close() error
}

// WatchFunc registers a watch on path.
type WatchFunc func(ctx context.Context, path string, log logr.Logger) (Watcher, error)

// Collaborators are the side-effecting dependencies of Run. Zero fields get
// the real implementations.
type Collaborators struct {
	Terminal Terminal
	Watch    WatchFunc
	Spawner  Spawner
	Chooser  highlight.Chooser
	Now      func() time.Time
	Log      logr.Logger
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Terminal == nil {
		c.Terminal = ProgramTerminal{}
	}
	if c.Watch == nil {
		c.Watch = func(ctx context.Context, path string, log logr.Logger) (Watcher, error) {
			return watch.New(ctx, path, log)
		}
	}
	if c.Spawner == nil {
		c.Spawner = ExecSpawner{}
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Log.GetSink() == nil {
		c.Log = logr.Discard()
	}
	return c
}

// ProgramTerminal is the Bubble Tea backed Terminal.
type ProgramTerminal struct {
	Options []tea.ProgramOption
}

// Run refuses to start when stdout is not a terminal, then runs the program.
// Cancelling ctx ends the session without an error.
func (t ProgramTerminal) Run(ctx context.Context, m tea.Model) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // fd fits in int
		return &TerminalError{Op: "open", Err: ErrNotATerminal}
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.Options...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return &TerminalError{Op: "run", Err: err}
	}
	return nil
}

// Run captures the baseline, registers the watch and hands the loop to the
// terminal. Baseline and watch failures are returned before the terminal is
// touched.
func Run(ctx context.Context, opts Options, c Collaborators) error {
	c = c.withDefaults()
	log := c.Log.WithValues("file", opts.Path)

	store, err := snapshot.New(opts.Path)
	if err != nil {
		log.Error(err, "cannot capture baseline")
		return err
	}
	log.Info("baseline captured", "keys", store.Baseline().Len())

	w, err := c.Watch(ctx, opts.Path, log)
	if err != nil {
		log.Error(err, "cannot watch file")
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			log.V(1).Info("closing watcher", "error", cerr.Error())
		}
	}()

	m := NewModel(store, w.Events(), opts, c)
	if err := c.Terminal.Run(ctx, m); err != nil {
		var te *TerminalError
		if !errors.As(err, &te) {
			err = &TerminalError{Op: "run", Err: err}
		}
		log.Error(err, "terminal session failed")
		return err
	}
	log.Info("session ended")
	return nil
}
