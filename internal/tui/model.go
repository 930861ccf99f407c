package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billie-coop/slides/internal/app"
	"github.com/billie-coop/slides/internal/display"
	"github.com/billie-coop/slides/internal/permission"
	"github.com/billie-coop/slides/internal/tui/components/core"
	"github.com/billie-coop/slides/internal/tui/components/dialog"
	"github.com/billie-coop/slides/internal/tui/components/imageview"
	"github.com/billie-coop/slides/internal/tui/components/status"
	"github.com/billie-coop/slides/internal/tui/events"
	"github.com/billie-coop/slides/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/dustin/go-humanize/english"
	"github.com/rs/zerolog"
)

const runTimerID = "display-run"

// Model is the slideshow screen.
type Model struct {
	width  int
	height int

	// Components
	imageView *imageview.Model
	statusBar *status.Component
	dialogs   *dialog.Manager
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	runTimer  *core.Timer

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// App holds all business logic
	app      *app.App
	pipeline *display.Pipeline
	looper   *Looper
	logger   zerolog.Logger

	// ctx ends when the screen is torn down
	ctx    context.Context
	cancel context.CancelFunc

	// UI state only
	paths  []string
	active *display.Handle
	asking bool
}

// New creates the screen for an app. Call Bind with the program before
// running it.
func New(appInstance *app.App) *Model {
	cfg := appInstance.Config.Get()
	styles.SetDefaultManager(styles.NewManager(cfg.Theme))
	theme := styles.CurrentTheme()

	keys := newKeyMap()
	looper := NewLooper()
	imageView := imageview.New()
	imageView.SetPlaceholder("Press s to start the slideshow")

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.S().Info

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		imageView:   imageView,
		statusBar:   status.New(),
		dialogs:     dialog.NewManager(appInstance.Permissions, helpMarkdown(keys, cfg.Delay.Duration)),
		spinner:     sp,
		help:        help.New(),
		keys:        keys,
		runTimer:    core.NewTimer(runTimerID, time.Second),
		eventBroker: appInstance.EventBroker,
		app:         appInstance,
		pipeline:    appInstance.NewPipeline(looper, imageView),
		looper:      looper,
		logger:      appInstance.Logger.With().Str("component", "tui").Logger(),
		ctx:         ctx,
		cancel:      cancel,
		paths:       []string{},
	}

	m.eventSub = m.eventBroker.Subscribe()

	return m
}

// Bind connects the pipeline's looper to the running program.
func (m *Model) Bind(p *tea.Program) {
	m.looper.Bind(p.Send)
}

// Init requests the read-images permission, or lists right away when it
// is already granted.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenForEvents()}

	if m.app.Permissions.Granted(permission.ReadImages) {
		m.listImages()
	} else {
		cmds = append(cmds, m.requestPermission())
	}

	return tea.Batch(cmds...)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case uiTaskMsg:
		msg.fn()
		m.syncRun()
		return m, nil

	case events.Event:
		return m, tea.Batch(m.handleEvent(msg), m.listenForEvents())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmds = append(cmds, m.updateSizes())

	case permissionResultMsg:
		m.asking = false
		if msg.granted {
			m.listImages()
			cmds = append(cmds, m.statusBar.ShowSuccess(fmt.Sprintf("Found %d images", len(m.paths))))
		} else {
			m.paths = []string{}
			m.statusBar.SetCount(0)
			cmds = append(cmds, m.statusBar.ShowWarning("Permission denied, nothing to show"))
		}

	case scanDoneMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("rescan failed")
			cmds = append(cmds, m.statusBar.ShowError("Rescan failed"))
			break
		}
		m.listImages()
		cmds = append(cmds, m.statusBar.ShowSuccess(fmt.Sprintf(
			"Rescanned: +%d −%d, %d images", msg.result.Added, msg.result.Removed, len(m.paths))))

	case spinner.TickMsg:
		if m.running() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case core.TickMsg:
		cmds = append(cmds, m.runTimer.Update(msg))

	case tea.KeyPressMsg:
		if m.dialogs.IsDialogOpen() {
			if msg.String() == "ctrl+c" {
				return m, m.quit()
			}
			return m, m.dialogs.Update(msg)
		}
		return m, m.handleKey(msg)

	default:
		cmds = append(cmds, m.statusBar.Update(msg))
	}

	m.syncRun()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Start):
		return m.start()

	case key.Matches(msg, m.keys.Cancel):
		n := m.pipeline.CancelAll()
		m.syncRun()
		if n == 0 {
			return nil
		}
		return m.statusBar.ShowInfo("Slideshow cancelled")

	case key.Matches(msg, m.keys.Rescan):
		if !m.app.Permissions.Granted(permission.ReadImages) {
			return tea.Batch(
				m.statusBar.ShowWarning("Permission needed to read images"),
				m.requestPermission(),
			)
		}
		roots := m.app.Media.Roots()
		if len(roots) == 0 {
			return m.statusBar.ShowWarning("No media roots configured")
		}
		return tea.Batch(
			m.statusBar.ShowInfo("Rescanning "+english.Plural(len(roots), "media root", "")+"…"),
			m.rescan(),
		)

	case key.Matches(msg, m.keys.Help):
		return m.dialogs.OpenDialog(dialog.HelpDialogType)
	}
	return nil
}

// start launches a run over the current list.
func (m *Model) start() tea.Cmd {
	h, err := m.pipeline.Start(m.ctx, m.paths)
	if err != nil {
		if errors.Is(err, display.ErrRunActive) {
			return m.statusBar.ShowWarning("A slideshow is already running")
		}
		return m.statusBar.ShowError(err.Error())
	}

	m.active = h
	m.imageView.Clear()
	m.statusBar.SetProgress(nil)
	return tea.Batch(m.runTimer.Start(), m.spinner.Tick)
}

// quit clears the registry, which cancels every run, before exiting.
func (m *Model) quit() tea.Cmd {
	if n := m.pipeline.CancelAll(); n > 0 {
		m.logger.Debug().Int("cancelled", n).Msg("cancelled runs on quit")
	}
	m.cancel()
	m.runTimer.Stop()
	return tea.Quit
}

// listImages runs the lister synchronously on the update loop.
func (m *Model) listImages() {
	m.paths = m.app.Media.List(m.ctx)
	m.statusBar.SetCount(len(m.paths))
}

// running reports whether the latest run is still going.
func (m *Model) running() bool {
	return m.active != nil && m.active.State() == display.Running
}

// syncRun copies run state into the status bar.
func (m *Model) syncRun() {
	if frame, decoded, ok := m.imageView.Current(); ok {
		m.statusBar.SetProgress(&status.Progress{
			Index: frame.Index,
			Total: frame.Total,
			Path:  frame.Path,
			Size:  decoded.Bytes,
		})
	}

	if m.running() {
		m.statusBar.SetActivity(m.spinner.View(), core.FormatMinutesSeconds(m.runTimer.Elapsed()))
		return
	}
	if m.runTimer.IsRunning() {
		m.runTimer.Stop()
	}
	m.statusBar.SetActivity("", "")
}
