package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"slidepane/internal/panel"
)

// KeybindRegistry maps key names (as reported by Bubble Tea, e.g. "left",
// "esc", "ctrl+g") to commands. A binding may be limited to a set of panel
// states; plain-letter bindings are scoped that way so they never shadow
// input to the shell pane.
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	stateFilter  map[string][]panel.State // nil/empty = applies in all states
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		stateFilter:  make(map[string][]panel.State),
	}
}

// Bind registers a key to a command in all states. Overwrites any existing
// binding.
func (r *KeybindRegistry) Bind(k string, cmd tea.Cmd) {
	r.BindWithDesc(k, cmd, "")
}

// BindWithDesc registers a key with a description for the help footer.
func (r *KeybindRegistry) BindWithDesc(k string, cmd tea.Cmd, desc string) {
	r.BindForStates(k, cmd, desc, nil)
}

// BindForStates registers a key active only in the given states. A nil or
// empty states slice applies the binding everywhere.
func (r *KeybindRegistry) BindForStates(k string, cmd tea.Cmd, desc string, states []panel.State) {
	r.bindings[k] = cmd
	if desc != "" {
		r.descriptions[k] = desc
	}
	if len(states) > 0 {
		r.stateFilter[k] = states
	}
}

// Lookup returns the command bound to k in the given state, or nil.
func (r *KeybindRegistry) Lookup(k string, state panel.State) tea.Cmd {
	if !r.applies(k, state) {
		return nil
	}
	return r.bindings[k]
}

func (r *KeybindRegistry) applies(k string, state panel.State) bool {
	states := r.stateFilter[k]
	if len(states) == 0 {
		return true
	}
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

// Hints returns the described bindings visible in state as help bindings,
// sorted by key for stable display.
func (r *KeybindRegistry) Hints(state panel.State) []key.Binding {
	keys := make([]string, 0, len(r.descriptions))
	for k := range r.descriptions {
		if r.applies(k, state) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, r.descriptions[k]),
		))
	}
	return out
}

// RenderHints renders the one-line help footer for the given state.
func (r *KeybindRegistry) RenderHints(state panel.State) string {
	h := help.New()
	h.Styles.ShortKey = Styles.Selected
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return h.ShortHelpView(r.Hints(state))
}
