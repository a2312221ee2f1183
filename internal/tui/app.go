// Terminal presentation for the task list. Follows The Elm Architecture:
// the model holds a snapshot of the store, Update maps key presses to store
// operations, View renders the snapshot.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ticklist/internal/task"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	completedTint = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// App is the TUI model. All task state lives in the store; the fields here
// are the rendered snapshot plus input widget state.
type App struct {
	store *task.Store

	mode   mode
	input  textinput.Model
	editID int64
	cursor int

	tasks  []task.Task
	filter task.Filter
	counts task.Counts

	width  int
	height int
}

func NewApp(store *task.Store) App {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 256

	a := App{
		store: store,
		input: input,
	}
	a.refresh()
	return a
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) refresh() {
	snap := a.store.Snapshot()
	a.tasks = snap.Tasks
	a.filter = snap.Filter
	a.counts = snap.Counts
	if a.cursor >= len(a.tasks) {
		a.cursor = len(a.tasks) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.mode == modeBrowse {
			return a.updateBrowse(msg)
		}
		return a.updateInput(msg)
	}

	return a, nil
}

func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "a":
		a.mode = modeAdd
		a.input.Reset()
		a.input.Focus()
		return a, textinput.Blink

	case "j", "down":
		if a.cursor < len(a.tasks)-1 {
			a.cursor++
		}

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case " ", "enter":
		if t, ok := a.selected(); ok {
			a.store.Toggle(t.ID)
			a.refresh()
		}

	case "d", "x":
		if t, ok := a.selected(); ok {
			a.store.Delete(t.ID)
			a.refresh()
		}

	case "e":
		if t, ok := a.selected(); ok {
			a.store.StartEdit(t.ID, t.Text)
			a.editID = t.ID
			a.input.SetValue(t.Text)
			a.input.Focus()
			a.mode = modeEdit
			return a, textinput.Blink
		}

	case "f":
		a.store.SetFilter(a.filter.Next())
		a.refresh()

	case "C":
		a.store.ClearAll()
		a.refresh()
	}

	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		switch a.mode {
		case modeAdd:
			a.store.Add(a.input.Value())
		case modeEdit:
			a.store.SetEditText(a.input.Value())
			a.store.SaveEdit(a.editID)
		}
		a.mode = modeBrowse
		a.input.Blur()
		a.input.Reset()
		a.refresh()
		return a, nil

	case "esc":
		if a.mode == modeEdit {
			a.store.CancelEdit()
		}
		a.mode = modeBrowse
		a.input.Blur()
		a.input.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) selected() (task.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(a.tasks) {
		return task.Task{}, false
	}
	return a.tasks[a.cursor], true
}

func (a App) View() string {
	s := titleStyle.Render("ticklist") + "  " + filterStyle.Render("["+string(a.filter)+"]") + "\n\n"

	if len(a.tasks) == 0 {
		s += footerStyle.Render("nothing here; press a to add a task") + "\n"
	}

	for i, t := range a.tasks {
		cursor := "  "
		if i == a.cursor && a.mode == modeBrowse {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		line := t.Text
		if t.Completed {
			check = "[x]"
			line = completedTint.Render(line)
		}
		s += fmt.Sprintf("%s%s %s\n", cursor, check, line)
	}

	switch a.mode {
	case modeAdd:
		s += "\nadd: " + a.input.View() + "\n"
	case modeEdit:
		s += "\nedit: " + a.input.View() + "\n"
	default:
		s += "\n" + footerStyle.Render(fmt.Sprintf(
			"%d active / %d done / %d total", a.counts.Active, a.counts.Completed, a.counts.Total)) + "\n"
		s += footerStyle.Render("a add · space toggle · e edit · d delete · f filter · C clear · q quit") + "\n"
	}

	return s
}
