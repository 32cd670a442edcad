// Package ui composes the slide-panel demo: a PTY-backed main pane with a
// menu pane on the left and an activity log on the right, slid by the
// panel controller over the anim stage.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"slidepane/internal/anim"
	"slidepane/internal/config"
	"slidepane/internal/panel"
	"slidepane/internal/shell"
	"slidepane/internal/trace"
)

// AppModel is the root Bubble Tea model. It owns the stage, the animation
// runner, and the panel controller, and routes key events into swipes,
// navigation messages, or the focused pane.
type AppModel struct {
	cfg config.Config

	stage  *anim.Stage
	runner *anim.Runner
	swipes *SwipeRouter
	ctrl   *panel.Controller
	keys   *KeybindRegistry
	rec    *trace.Recorder

	main  *PaneHost
	left  *PaneHost
	right *PaneHost

	mainPane *MainPane
	menu     *MenuPane
	log      *LogPane

	width  int
	height int

	// ticking is true while a Frame command is in flight; keeps the
	// frame loop from being scheduled twice.
	ticking bool

	// spans are open trace spans awaiting animation settlement.
	spans []func(finished bool)
}

var _ tea.Model = (*AppModel)(nil)

// NewAppModel builds the demo app. rec may be nil (tracing disabled).
func NewAppModel(cfg config.Config, shellRunner shell.Runner, rec *trace.Recorder) *AppModel {
	mainPane := NewMainPane(shellRunner, cfg.Shell.Command)
	menu := NewMenuPane()
	logPane := NewLogPane()

	m := &AppModel{
		cfg:      cfg,
		stage:    anim.NewStage(),
		swipes:   NewSwipeRouter(),
		keys:     NewKeybindRegistry(),
		rec:      rec,
		mainPane: mainPane,
		menu:     menu,
		log:      logPane,
		main:     &PaneHost{Name: "main", Content: mainPane},
		left:     &PaneHost{Name: "left", Content: menu},
		right:    &PaneHost{Name: "right", Content: logPane},
	}
	m.runner = anim.NewRunner(m.stage, cfg.Anim.FPS)

	// Insertion order is arbitrary; the controller normalizes layering.
	m.stage.AddHost(m.main, 80)
	m.stage.AddHost(m.left, 80)
	m.stage.AddHost(m.right, 80)

	m.ctrl = panel.New(m.stage, m.runner, m.main, m.left, m.right,
		panel.WithOffsets(cfg.Panels.LeftOffset, cfg.Panels.RightOffset),
		panel.WithCurve(panel.Curve{
			Duration:      cfg.Anim.Duration(),
			Easing:        panel.EaseInOut,
			SpringDamping: cfg.Anim.Damping,
		}),
		panel.WithGestures(m.swipes))

	// Each side pane accepts the swipe that closes it.
	m.ctrl.AddSwipeGestureInSide(m.left, panel.DirLeft)
	m.ctrl.AddSwipeGestureInSide(m.right, panel.DirRight)

	m.keys.BindWithDesc("left", msgCmd(SwipeMsg{Dir: panel.DirLeft}), "swipe left")
	m.keys.BindWithDesc("right", msgCmd(SwipeMsg{Dir: panel.DirRight}), "swipe right")
	m.keys.BindWithDesc("esc", msgCmd(CollapsePanelsMsg{}), "collapse")
	m.keys.BindWithDesc("ctrl+g", msgCmd(JumpToMainMsg{}), "jump to main")
	m.keys.BindWithDesc("ctrl+q", tea.Quit, "quit")

	// Plain-letter aliases, active only while a side pane is open so that
	// letters typed into the shell pane reach the PTY.
	sideOpen := []panel.State{panel.StateLeftOpen, panel.StateRightOpen}
	m.keys.BindForStates("h", msgCmd(SwipeMsg{Dir: panel.DirLeft}), "", sideOpen)
	m.keys.BindForStates("l", msgCmd(SwipeMsg{Dir: panel.DirRight}), "", sideOpen)
	m.keys.BindForStates("L", msgCmd(OpenPanelMsg{Side: panel.SideLeft}), "open left", sideOpen)
	m.keys.BindForStates("R", msgCmd(OpenPanelMsg{Side: panel.SideRight}), "open right", sideOpen)
	m.keys.BindForStates("g", msgCmd(JumpToMainMsg{}), "", sideOpen)
	m.keys.BindForStates("q", tea.Quit, "", sideOpen)

	return m
}

// Controller exposes the panel state machine, mainly for tests.
func (m *AppModel) Controller() *panel.Controller { return m.ctrl }

// Stage exposes the presentation stage, mainly for tests.
func (m *AppModel) Stage() *anim.Stage { return m.stage }

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Init implements tea.Model.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.mainPane.Init(), m.menu.Init(), m.log.Init())
}

// Update implements tea.Model.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case anim.FrameMsg:
		if m.runner.Step() {
			return m, anim.Frame(m.cfg.Anim.FPS)
		}
		m.ticking = false
		m.finishSpans(true)
		return m, nil

	case SwipeMsg:
		return m, m.swipe(msg.Dir)

	case OpenPanelMsg:
		return m, m.navigate("open", func() bool { return m.ctrl.Open(msg.Side) })

	case CollapsePanelsMsg:
		return m, m.navigate("collapse", m.ctrl.CollapseAll)

	case JumpToMainMsg:
		return m, m.navigate("jump", func() bool {
			m.ctrl.JumpToMain(nil)
			return true
		})

	case ShellOutputMsg, ShellExitedMsg:
		_, cmd := m.mainPane.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if cmd := m.keys.Lookup(msg.String(), m.ctrl.State()); cmd != nil {
			return m, cmd
		}
		_, cmd := m.focused().Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := Composite(m.stage, m.main, m.width, m.height-1, func(h panel.Host) string {
		return h.(*PaneHost).Content.View()
	})
	footer := m.keys.RenderHints(m.ctrl.State())
	return body + "\n" + footer
}

// Close releases external resources (the PTY session).
func (m *AppModel) Close() {
	m.mainPane.Close()
}

// swipe delivers a gesture to the host under the finger: the open side
// pane if any, falling through to the main host, which keeps both
// directions registered.
func (m *AppModel) swipe(d panel.Direction) tea.Cmd {
	from := m.ctrl.State()
	if !m.swipes.Dispatch(m.gestureHost(), d) {
		m.swipes.Dispatch(m.main, d)
	}
	return m.afterNav("swipe "+strings.ToLower(d.String()), from)
}

func (m *AppModel) gestureHost() panel.Host {
	switch m.ctrl.State() {
	case panel.StateLeftOpen:
		return m.left
	case panel.StateRightOpen:
		return m.right
	}
	return m.main
}

func (m *AppModel) focused() View {
	switch m.ctrl.State() {
	case panel.StateLeftOpen:
		return m.menu
	case panel.StateRightOpen:
		return m.log
	}
	return m.mainPane
}

// navigate runs a navigation request and handles logging, tracing, and
// frame scheduling. f reports whether a transition started.
func (m *AppModel) navigate(kind string, f func() bool) tea.Cmd {
	from := m.ctrl.State()
	if !f() {
		m.log.Append(fmt.Sprintf("%s: rejected in %s", kind, from))
		return nil
	}
	return m.afterNav(kind, from)
}

// afterNav records the transition and starts the frame loop if an
// animation is now in flight.
func (m *AppModel) afterNav(kind string, from panel.State) tea.Cmd {
	to := m.ctrl.State()
	m.log.Append(fmt.Sprintf("%s: %s -> %s", kind, from, to))

	var disp float64
	switch to {
	case panel.StateLeftOpen:
		disp = panel.OpenDisplacement(panel.SideLeft, m.stage.Width(m.main),
			m.cfg.Panels.LeftOffset, m.cfg.Panels.RightOffset)
	case panel.StateRightOpen:
		disp = panel.OpenDisplacement(panel.SideRight, m.stage.Width(m.main),
			m.cfg.Panels.LeftOffset, m.cfg.Panels.RightOffset)
	}
	end := m.rec.Transition(kind, from, to, disp)

	if !m.runner.Active() {
		end(true)
		return nil
	}
	m.spans = append(m.spans, end)
	if m.ticking {
		return nil
	}
	m.ticking = true
	return anim.Frame(m.cfg.Anim.FPS)
}

func (m *AppModel) finishSpans(finished bool) {
	for _, end := range m.spans {
		end(finished)
	}
	m.spans = nil
}

// resize propagates terminal dimensions to the stage and panes. One line
// is reserved for the footer.
func (m *AppModel) resize(w, h int) {
	m.width, m.height = w, h
	body := h - 1
	if body < 1 {
		body = 1
	}
	for _, host := range []*PaneHost{m.main, m.left, m.right} {
		m.stage.SetWidth(host, float64(w))
	}
	m.mainPane.SetSize(w, body)
	m.log.SetSize(w, body)
}
