// Package inspect implements the interactive tree-inspector TUI behind
// `wmctl tree --watch`: a live, auto-refreshing view of the container
// tree over the same IPC connection `wmctl tree`'s one-shot JSON dump
// uses. Grounded on the teacher's HistoryModel
// (internal/cli/model/history.go): a handful of bubbles components
// (there: list/textinput/help; here: viewport/key/help) composed into one
// tea.Model, with Init returning a tea.Batch of load commands and Update
// driven entirely by typed messages.
package inspect

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TreeFetcher retrieves and decodes the current serialized container tree.
// cmd/wmctl/cmd binds this to a *client.Client's GetTree call.
type TreeFetcher func() (map[string]any, error)

const pollInterval = 500 * time.Millisecond

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type keyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	}
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Up, k.Down, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// Model is the tree-inspector TUI's Bubble Tea model.
type Model struct {
	fetch    TreeFetcher
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	lastTree map[string]any
	err      error
	width    int
	height   int
}

// New builds a Model that polls fetch every pollInterval.
func New(fetch TreeFetcher) Model {
	return Model{
		fetch:    fetch,
		viewport: viewport.New(80, 24),
		help:     help.New(),
		keys:     defaultKeyMap(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchOnce, tickCmd())
}

type treeLoadedMsg struct {
	tree map[string]any
	err  error
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetchOnce() tea.Msg {
	t, err := m.fetch()
	return treeLoadedMsg{tree: t, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		m.help.Width = msg.Width
		if m.lastTree != nil {
			m.viewport.SetContent(renderTree(m.lastTree))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case treeLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.lastTree = msg.tree
			m.viewport.SetContent(renderTree(msg.tree))
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchOnce, tickCmd())
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("wm tree inspector") + dimStyle.Render("  (q to quit)") + "\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderTree walks the decoded container-tree JSON (internal/tree.Tree's
// Serialize output) into an indented outline: role, a short identifying
// label, and the few fields worth a glance at each node.
func renderTree(node map[string]any) string {
	var b strings.Builder
	writeNode(&b, node, 0)
	return b.String()
}

func writeNode(b *strings.Builder, node map[string]any, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	role, _ := node["role"].(string)
	label := role
	switch role {
	case "workspace":
		if name, ok := node["workspace_name"].(string); ok && name != "" {
			label = fmt.Sprintf("workspace %q", name)
		}
	case "output":
		if name, ok := node["output_name"].(string); ok {
			label = fmt.Sprintf("output %q", name)
		}
	case "leaf_window":
		class, _ := node["class"].(string)
		title, _ := node["title"].(string)
		label = fmt.Sprintf("window [%s] %q", class, title)
	}
	fmt.Fprintf(b, "%s- %s\n", indent, label)

	children, _ := node["children"].([]any)
	for _, c := range children {
		if child, ok := c.(map[string]any); ok {
			writeNode(b, child, depth+1)
		}
	}
}

// DecodeTree parses the raw get_tree response body into the generic map
// shape renderTree walks.
func DecodeTree(data []byte) (map[string]any, error) {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("inspect: decode tree: %w", err)
	}
	return v, nil
}
