package ui

import (
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jsonwatch/internal/diff"
	"github.com/oakwood-commons/jsonwatch/internal/highlight"
	"github.com/oakwood-commons/jsonwatch/internal/layout"
	"github.com/oakwood-commons/jsonwatch/internal/scroll"
	"github.com/oakwood-commons/jsonwatch/internal/snapshot"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// State is everything the loop mutates: snapshots, highlight, scroll cursor
// and terminal size. It is owned by the Model and only touched from Update.
type State struct {
	Store  *snapshot.Store
	Picker *highlight.Picker
	Scroll scroll.State
	Width  int
	Height int
}

// fileChangedMsg carries one notification from the watcher.
type fileChangedMsg struct{}

// pollMsg fires when the poll interval passed without a notification.
type pollMsg struct{}

// Model is the Bubble Tea model of the viewer. Every message except a quit
// ends with the same step: drain pending file notifications, refreshing and
// re-checking the highlight for each, then refresh and re-check once more.
type Model struct {
	State *State

	opts    Options
	keys    KeyMap
	styles  styles
	notify  <-chan struct{}
	spawner Spawner
	now     func() time.Time
	log     logr.Logger

	quitting bool
}

// NewModel builds the loop around an already captured store. notify may be
// nil, in which case only the poll timer drives refreshes.
func NewModel(store *snapshot.Store, notify <-chan struct{}, opts Options, c Collaborators) *Model {
	c = c.withDefaults()
	opts = opts.withDefaults()
	return &Model{
		State: &State{
			Store:  store,
			Picker: highlight.New(c.Now(), opts.HopInterval, c.Chooser),
			Width:  opts.Width,
			Height: opts.Height,
		},
		opts:    opts,
		keys:    DefaultKeyMap(),
		styles:  newStyles(opts.Theme, opts.NoColor),
		notify:  notify,
		spawner: c.Spawner,
		now:     c.Now,
		log:     c.Log,
	}
}

// Init starts the first wait for activity.
func (m *Model) Init() tea.Cmd {
	return m.waitForActivity()
}

// waitForActivity blocks for at most one poll interval on the watcher.
func (m *Model) waitForActivity() tea.Cmd {
	notify := m.notify
	d := m.opts.PollInterval
	return func() tea.Msg {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-notify:
			return fileChangedMsg{}
		case <-timer.C:
			return pollMsg{}
		}
	}
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.State.Width = msg.Width
		m.State.Height = msg.Height
	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)
	case fileChangedMsg:
		m.tick()
		cmd = m.waitForActivity()
	case pollMsg:
		cmd = m.waitForActivity()
	}
	m.drainNotifications()
	m.tick()
	m.syncViewport()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	rows := m.State.Store.Current().Len()
	h := m.height()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.State.Scroll.Move(scroll.LineStep(h, m.opts.LineStepRatio), rows)
	case key.Matches(msg, m.keys.Up):
		m.State.Scroll.Move(-scroll.LineStep(h, m.opts.LineStepRatio), rows)
	case key.Matches(msg, m.keys.PageDown):
		m.State.Scroll.Move(scroll.PageStep(h), rows)
	case key.Matches(msg, m.keys.PageUp):
		m.State.Scroll.Move(-scroll.PageStep(h), rows)
	case key.Matches(msg, m.keys.SwitchPane):
		m.switchPane()
	}
}

// switchPane is best effort; a failure is logged and otherwise ignored.
func (m *Model) switchPane() {
	if m.opts.PaneCommand == "" {
		return
	}
	if err := m.spawner.Spawn(m.opts.PaneCommand, m.opts.PaneArgs...); err != nil {
		m.log.V(1).Info("pane switch failed", "command", m.opts.PaneCommand, "error", err.Error())
	}
}

func (m *Model) drainNotifications() {
	if m.notify == nil {
		return
	}
	for {
		select {
		case <-m.notify:
			m.tick()
		default:
			return
		}
	}
}

// tick reloads the file and gives the highlight a chance to hop.
func (m *Model) tick() {
	m.refresh()
	m.hop()
}

func (m *Model) refresh() {
	if err := m.State.Store.Refresh(); err != nil {
		m.log.V(1).Info("refresh failed, keeping last good snapshot", "kind", errorKind(err), "error", err.Error())
	}
	m.State.Scroll.Clamp(m.State.Store.Current().Len())
}

func (m *Model) hop() {
	store := m.State.Store
	changed := func() []string { return diff.ChangedKeys(store.Baseline(), store.Current()) }
	if !m.State.Picker.MaybeHop(m.now(), changed) {
		return
	}
	if k, ok := m.State.Picker.Key(); ok {
		m.log.V(1).Info("highlight hop", "key", k)
	}
}

// syncViewport persists the scroll offset that keeps the selection visible.
func (m *Model) syncViewport() {
	frame := m.frame()
	m.State.Scroll.Window(frame.Heights(), m.bodyHeight())
}

func (m *Model) width() int {
	if m.State.Width > 0 {
		return m.State.Width
	}
	return fallbackWidth
}

func (m *Model) height() int {
	if m.State.Height > 0 {
		return m.State.Height
	}
	return fallbackHeight
}

// bodyHeight is the number of table lines: the terminal minus the footer,
// the two border lines and the header row.
func (m *Model) bodyHeight() int {
	return max(m.height()-4, 1)
}

func (m *Model) frame() layout.Frame {
	store := m.State.Store
	hl := layout.Highlight{Marker: m.opts.Marker}
	hl.Key, hl.Set = m.State.Picker.Key()
	changed := func(k string) bool { return diff.IsChanged(store.Baseline(), store.Current(), k) }
	return layout.Layout(store.Current(), changed, hl, m.width(), m.bodyHeight(), m.opts.Layout)
}

// Quitting reports whether a quit key was pressed.
func (m *Model) Quitting() bool { return m.quitting }

func errorKind(err error) string {
	var re *snapshot.ReadError
	var pe *snapshot.ParseError
	switch {
	case errors.As(err, &re):
		return "read"
	case errors.As(err, &pe):
		return "parse"
	default:
		return "unknown"
	}
}
