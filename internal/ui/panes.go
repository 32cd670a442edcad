package ui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"slidepane/internal/panel"
	"slidepane/internal/shell"
)

// View is the unit of composition: a pane's content with its own model,
// update, and view, Elm-style.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// PaneHost pairs a name with the View it hosts. The stage and the panel
// controller treat it as an opaque panel.Host; only the app dereferences
// the content.
type PaneHost struct {
	Name    string
	Content View
}

// maxScrollback bounds the shell pane's retained output, in bytes.
const maxScrollback = 64 * 1024

// MainPane is the PTY-backed main content pane: it spawns the configured
// command and shows its output in a viewport pinned to the bottom.
type MainPane struct {
	runner  shell.Runner
	command string
	session *shell.Session

	content  *bytes.Buffer
	viewport viewport.Model
	width    int
	height   int

	startErr error
	exited   bool
}

var _ View = (*MainPane)(nil)

// NewMainPane creates the main pane; the command is spawned by Init.
func NewMainPane(runner shell.Runner, command string) *MainPane {
	return &MainPane{
		runner:   runner,
		command:  command,
		content:  &bytes.Buffer{},
		viewport: viewport.New(80, 23),
		width:    80,
		height:   24,
	}
}

// Init implements View. Spawns the shell and starts the output pump.
func (p *MainPane) Init() tea.Cmd {
	sess, err := shell.Start(p.runner, p.command, "", shell.Size{
		Rows: uint16(p.height),
		Cols: uint16(p.width),
	})
	if err != nil {
		p.startErr = err
		p.content.WriteString("failed to start: " + err.Error() + "\n")
		p.refreshViewport()
		return nil
	}
	p.session = sess
	return p.waitOutput()
}

// waitOutput blocks on the next PTY chunk as a command.
func (p *MainPane) waitOutput() tea.Cmd {
	return func() tea.Msg {
		data, ok := <-p.session.Output()
		if !ok {
			return ShellExitedMsg{}
		}
		return ShellOutputMsg{Data: data}
	}
}

// Update implements View.
func (p *MainPane) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ShellOutputMsg:
		p.appendOutput(msg.Data)
		return p, p.waitOutput()
	case ShellExitedMsg:
		p.exited = true
		p.content.WriteString("\n[exited]")
		p.refreshViewport()
	case tea.KeyMsg:
		if p.session != nil && !p.exited {
			if b := keyBytes(msg); len(b) > 0 {
				p.session.Write(b) //nolint:errcheck // output pump reports exit
			}
		}
	}
	return p, nil
}

// View implements View.
func (p *MainPane) View() string {
	return Styles.Title.Render("┃ shell: "+p.command) + "\n" + p.viewport.View()
}

// SetSize updates the pane, viewport, and PTY dimensions. One line is
// reserved for the header.
func (p *MainPane) SetSize(width, height int) {
	p.width, p.height = width, height
	p.viewport.Width = width
	p.viewport.Height = paneBodyHeight(height)
	if p.session != nil {
		p.session.Resize(shell.Size{Rows: uint16(height), Cols: uint16(width)}) //nolint:errcheck
	}
	p.refreshViewport()
}

// Close terminates the shell session, if any.
func (p *MainPane) Close() {
	if p.session != nil {
		p.session.Close() //nolint:errcheck
	}
}

// appendOutput folds a raw PTY chunk into the scrollback buffer. Carriage
// returns are dropped; the compositor strips ANSI on render.
func (p *MainPane) appendOutput(data []byte) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")
	p.content.WriteString(text)
	if p.content.Len() > maxScrollback {
		b := p.content.Bytes()
		p.content = bytes.NewBuffer(append([]byte(nil), b[len(b)-maxScrollback:]...))
	}
	p.refreshViewport()
}

// refreshViewport pushes the scrollback into the viewport, following the
// newest output.
func (p *MainPane) refreshViewport() {
	p.viewport.SetContent(p.content.String())
	p.viewport.GotoBottom()
}

// paneBodyHeight is the viewport height under a one-line header.
func paneBodyHeight(paneHeight int) int {
	if paneHeight <= 1 {
		return 1
	}
	return paneHeight - 1
}

// keyBytes translates a key event into the bytes the PTY expects.
func keyBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	}
	return nil
}

// MenuPane is the left pane: a small action list driving programmatic
// navigation.
type MenuPane struct {
	items    []menuItem
	selected int
}

type menuItem struct {
	label string
	msg   tea.Msg
}

var _ View = (*MenuPane)(nil)

// NewMenuPane creates the menu with the standard navigation actions.
func NewMenuPane() *MenuPane {
	return &MenuPane{
		items: []menuItem{
			{"Reveal left pane", OpenPanelMsg{Side: panel.SideLeft}},
			{"Reveal right pane", OpenPanelMsg{Side: panel.SideRight}},
			{"Collapse", CollapsePanelsMsg{}},
			{"Reset to main", JumpToMainMsg{}},
		},
	}
}

// Init implements View.
func (p *MenuPane) Init() tea.Cmd { return nil }

// Update implements View.
func (p *MenuPane) Update(msg tea.Msg) (View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "j", "down":
		if p.selected < len(p.items)-1 {
			p.selected++
		}
	case "k", "up":
		if p.selected > 0 {
			p.selected--
		}
	case "enter":
		item := p.items[p.selected]
		return p, func() tea.Msg { return item.msg }
	}
	return p, nil
}

// View implements View.
func (p *MenuPane) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("≡ Menu") + "\n")
	for i, item := range p.items {
		line := "  " + item.label
		if i == p.selected {
			line = Styles.Selected.Render("▸ " + item.label)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// LogPane is the right pane: a rolling log of navigation activity shown in
// a viewport pinned to the newest line.
type LogPane struct {
	lines    []string
	viewport viewport.Model
}

var _ View = (*LogPane)(nil)

// NewLogPane creates an empty log pane.
func NewLogPane() *LogPane {
	return &LogPane{viewport: viewport.New(80, 23)}
}

// Append adds a log line.
func (p *LogPane) Append(line string) {
	p.lines = append(p.lines, line)
	if len(p.lines) > 200 {
		p.lines = p.lines[len(p.lines)-200:]
	}
	p.viewport.SetContent(strings.Join(p.lines, "\n"))
	p.viewport.GotoBottom()
}

// Init implements View.
func (p *LogPane) Init() tea.Cmd { return nil }

// Update implements View. Keys scroll the viewport.
func (p *LogPane) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View implements View.
func (p *LogPane) View() string {
	return Styles.Title.Render("• Activity") + "\n" + p.viewport.View()
}

// SetSize updates the pane and viewport dimensions. One line is reserved
// for the header.
func (p *LogPane) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = paneBodyHeight(height)
}
