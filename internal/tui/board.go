// Package tui renders the project board as an interactive terminal
// view: columns side by side, tasks decorated with label badges and
// group names.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/randalmurphal/boardctx/internal/badge"
	"github.com/randalmurphal/boardctx/internal/board"
	"github.com/randalmurphal/boardctx/internal/directory"
)

const columnWidth = 34

// Styles holds the board styling.
type Styles struct {
	ColumnTitle  lipgloss.Style
	FocusedTitle lipgloss.Style
	Task         lipgloss.Style
	SelectedTask lipgloss.Style
	GroupName    lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the default board styling.
func DefaultStyles() Styles {
	return Styles{
		ColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("241")),
		FocusedTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Task: lipgloss.NewStyle().
			PaddingLeft(2),
		SelectedTask: lipgloss.NewStyle().
			PaddingLeft(0).
			Foreground(lipgloss.Color("212")),
		GroupName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h")),
		Right:   key.NewBinding(key.WithKeys("right", "l")),
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Refresh: key.NewBinding(key.WithKeys("r")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// boardData is the settled result of one board load.
type boardData struct {
	columns []board.Column
	tasks   map[string][]board.Task
	labels  map[string][]board.Label
	groups  map[string]board.TaskGroup
}

type dataMsg boardData

type errMsg struct{ err error }

// Model is the bubbletea model for the board view.
type Model struct {
	ctx     context.Context
	dirs    *directory.Directories
	styles  Styles
	keys    keyMap
	spinner spinner.Model

	data   boardData
	loaded bool
	err    error
	focus  int
	cursor map[int]int
	width  int
}

// New creates a board model over an attached directory set.
func New(ctx context.Context, dirs *directory.Directories) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		ctx:     ctx,
		dirs:    dirs,
		styles:  DefaultStyles(),
		keys:    defaultKeyMap(),
		spinner: s,
		cursor:  make(map[int]int),
	}
}

// Init starts the spinner and the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// loadCmd fetches board data through the directories. Each directory
// settles independently; this command gathers one consistent snapshot.
func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		columns, err := m.dirs.Columns.Columns(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		tasks, err := m.dirs.Tasks.Tasks(m.ctx)
		if err != nil {
			return errMsg{err}
		}

		labels := make(map[string][]board.Label, len(tasks))
		groups := make(map[string]board.TaskGroup)
		for _, t := range tasks {
			assigned, err := m.dirs.Labels.LabelsForTask(m.ctx, t.ID)
			if err != nil {
				return errMsg{err}
			}
			labels[t.ID] = assigned
			if g, ok, err := m.dirs.Groups.GroupForTask(m.ctx, t.TaskGroupID); err != nil {
				return errMsg{err}
			} else if ok {
				groups[t.ID] = g
			}
		}

		return dataMsg{
			columns: columns,
			tasks:   directory.ByColumn(tasks),
			labels:  labels,
			groups:  groups,
		}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dataMsg:
		m.data = boardData(msg)
		m.loaded = true
		m.err = nil
		if m.focus >= len(m.data.columns) {
			m.focus = 0
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loaded = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			if m.focus > 0 {
				m.focus--
			}
		case key.Matches(msg, m.keys.Right):
			if m.focus < len(m.data.columns)-1 {
				m.focus++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor[m.focus] > 0 {
				m.cursor[m.focus]--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor[m.focus] < len(m.columnTasks(m.focus))-1 {
				m.cursor[m.focus]++
			}
		case key.Matches(msg, m.keys.Refresh):
			m.dirs.InvalidateAll()
			m.loaded = false
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m Model) columnTasks(i int) []board.Task {
	if i < 0 || i >= len(m.data.columns) {
		return nil
	}
	return m.data.tasks[m.data.columns[i].Slug]
}

// View renders the board.
func (m Model) View() string {
	if !m.loaded {
		return m.spinner.View() + " loading board..."
	}
	if m.err != nil {
		return m.styles.Error.Render("board unavailable: "+m.err.Error()) + "\n" +
			m.styles.Help.Render("r to retry, q to quit")
	}
	if len(m.data.columns) == 0 {
		return "No columns in this project.\n" + m.styles.Help.Render("q to quit")
	}

	rendered := make([]string, 0, len(m.data.columns))
	for i, col := range m.data.columns {
		rendered = append(rendered, m.renderColumn(i, col))
	}
	boardRow := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	help := m.styles.Help.Render("←/→ column · ↑/↓ task · r refresh · q quit")
	return boardRow + "\n" + help
}

func (m Model) renderColumn(i int, col board.Column) string {
	titleStyle := m.styles.ColumnTitle
	if i == m.focus {
		titleStyle = m.styles.FocusedTitle
	}
	tasks := m.columnTasks(i)

	title := col.Name
	if col.WIPLimit > 0 {
		title = fmt.Sprintf("%s (%d/%d)", col.Name, len(tasks), col.WIPLimit)
	} else {
		title = fmt.Sprintf("%s (%d)", col.Name, len(tasks))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for j, t := range tasks {
		line := t.Title
		if g, ok := m.data.groups[t.ID]; ok {
			line += " " + m.styles.GroupName.Render("["+g.Name+"]")
		}
		style := m.styles.Task
		if i == m.focus && j == m.cursor[i] {
			style = m.styles.SelectedTask
			line = "> " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		if badges := badge.RenderList(m.data.labels[t.ID], badge.DefaultMaxDisplay, badge.SizeSmall); badges != "" {
			b.WriteString(m.styles.Task.Render(badges))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(columnWidth).Render(b.String())
}
