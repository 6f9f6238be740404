// Package tui provides the terminal planner interface for shopcal.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mherran/shopcal/internal/config"
	"github.com/mherran/shopcal/internal/extcal"
	"github.com/mherran/shopcal/internal/notify"
	"github.com/mherran/shopcal/internal/schedule"
	"github.com/mherran/shopcal/internal/slotmap"
	"github.com/mherran/shopcal/internal/syncd"
	"github.com/mherran/shopcal/internal/tui/commands"
	"github.com/mherran/shopcal/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // A block is being dragged on the grid
	ModeModal       // Move confirmation or detail modal is open
)

// ModalType identifies the open modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalMove           // Move confirmation after a drop
	ModalDetail
)

// Editable fields in the move modal.
type moveField int

const (
	fieldNone moveField = iota
	fieldStart
	fieldEnd
	fieldTitle
	fieldNotes
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo     schedule.Repository
	client   *extcal.Client
	notifier *notify.Notifier
	daemon   *syncd.Daemon
	config   *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Calendar state
	window  slotmap.Window
	view    schedule.View
	anchor  time.Time
	visible schedule.TimeRange

	// Loaded data
	jobs    []*schedule.Job
	events  []*schedule.ExternalEvent
	unified map[string][]schedule.UnifiedItem
	loading bool

	// Drag and move confirmation
	drag *DragController
	flow *Flow
	mode Mode

	// True while the patch issued at drop time for an external event
	// is in flight; its success reopens the confirmation for edits
	// instead of closing it.
	dropPatch bool

	// Press position, to tell a click from a drag
	pressDay  time.Time
	pressSlot int

	// Pending notification captured at commit time; sent only after
	// the job move persists
	pendingNotice  notify.Reschedule
	hasNotice      bool
	committedTitle string

	// Modal state
	modalType ModalType
	detail    *schedule.UnifiedItem
	editField moveField
	editInput textinput.Model

	// Terminal dimensions and layout
	width  int
	height int
	layout gridLayout

	// Messages
	statusMsg string

	// Error state
	err error
}

// New creates a new TUI model.
func New(repo schedule.Repository, client *extcal.Client, notifier *notify.Notifier, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle

	window := slotmap.Window{
		StartHour:   cfg.Schedule.DayStartHour,
		EndHour:     cfg.Schedule.DayEndHour,
		SlotMinutes: cfg.Schedule.SlotMinutes,
	}

	m := &Model{
		repo:      repo,
		client:    client,
		notifier:  notifier,
		config:    cfg,
		theme:     t,
		styles:    styles,
		window:    window,
		view:      schedule.ViewWeek,
		anchor:    time.Now(),
		drag:      NewDragController(),
		flow:      NewFlow(),
		mode:      ModeNormal,
		editInput: ti,
		pressSlot: -1,
		unified:   map[string][]schedule.UnifiedItem{},
	}
	m.recompute()

	return m
}

// recompute refreshes the derived range, layout and unified items after
// any change to the view, anchor, data, or terminal size.
func (m *Model) recompute() {
	m.visible = schedule.ComputeRange(m.view, m.anchor)
	m.layout = buildLayout(m.view, m.visible, m.window, m.width, m.height)
	m.unified = schedule.Unify(m.jobs, m.events)
}

// reload returns the commands that refresh both sources for the
// visible range, and points the sync daemon at it.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	if m.daemon != nil {
		m.daemon.SetRange(m.visible)
	}
	return tea.Batch(
		commands.LoadJobs(m.repo, m.visible),
		commands.LoadEvents(m.client, m.visible),
	)
}

// refreshMsg carries a scheduled feed refresh from the sync daemon.
type refreshMsg struct {
	events []*schedule.ExternalEvent
	err    error
}

// waitForRefresh blocks on the next scheduled feed refresh.
func (m *Model) waitForRefresh() tea.Cmd {
	if m.daemon == nil {
		return nil
	}
	return func() tea.Msg {
		r := <-m.daemon.Updates()
		return refreshMsg{events: r.Events, err: r.Err}
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadJobs(m.repo, m.visible),
		commands.LoadEvents(m.client, m.visible),
		m.waitForRefresh(),
	)
}

// Run starts the TUI.
func Run(repo schedule.Repository, client *extcal.Client, notifier *notify.Notifier, cfg *config.Config) error {
	return RunWithDebug(repo, client, notifier, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo schedule.Repository, client *extcal.Client, notifier *notify.Notifier, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, client, notifier, cfg)

	// Background refresh keeps the external lane current while the
	// planner is open.
	if client != nil && client.Connected() && cfg.Calendar.SyncSchedule != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		daemon := syncd.New(client, cfg.Calendar.SyncSchedule, model.visible)
		if err := daemon.Start(ctx); err != nil {
			return err
		}
		model.daemon = daemon
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
