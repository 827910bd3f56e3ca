package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/repositories"
	"github.com/desertthunder/enroll/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	FormView
)

const (
	fieldFirst = iota
	fieldLast
	fieldCourse
)

var fieldLabels = [...]string{"First name", "Last name", "Course name"}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	store    repositories.Store
	logger   *log.Logger
	width    int
	height   int
	list     list.Model
	students []*models.Student
	inputs   []textinput.Model
	focus    int
	formErr  error
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model backed by store.
func NewModel(ctx context.Context, store repositories.Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Course Registrations"
	l.SetShowHelp(false)

	inputs := make([]textinput.Model, len(fieldLabels))
	for i, label := range fieldLabels {
		in := textinput.New()
		in.Placeholder = label
		in.Prompt = ""
		inputs[i] = in
	}

	return &Model{
		ctx:    ctx,
		view:   ListView,
		store:  store,
		logger: logger,
		list:   l,
		inputs: inputs,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Students returns the roster held by the model.
func (m *Model) Students() []*models.Student {
	return m.students
}

// ViewState returns the view currently shown.
func (m *Model) ViewState() ViewState {
	return m.view
}

// Init initializes the TUI by loading the roster from the store.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	default:
		return m.renderList()
	}
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLoaded:
		res := msg.data.(loadResult)
		if res.err != nil {
			m.logger.Debug("load failed", "location", m.store.Location(), "error", res.err)
			m.status, m.err = fmt.Sprintf("Could not load %s", m.store.Location()), res.err
			return m, nil
		}
		m.students = append(m.students, res.students...)
		m.status, m.err = fmt.Sprintf("Loaded %d registrations from %s", len(res.students), m.store.Location()), nil
		return m, m.refresh()

	case MsgSaved:
		res := msg.data.(saveResult)
		if res.err != nil {
			m.logger.Debug("save failed", "location", m.store.Location(), "error", res.err)
			m.status, m.err = fmt.Sprintf("Could not save to %s", m.store.Location()), res.err
			return m, nil
		}
		m.status, m.err = fmt.Sprintf("Saved %d registrations to %s", res.count, m.store.Location()), nil
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.add):
		return m, m.openForm()
	case key.Matches(msg, m.keys.save):
		m.status, m.err = "Saving...", nil
		return m, m.save()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.prev):
		return m, m.focusField(m.focus - 1)
	case key.Matches(msg, m.keys.submit):
		if m.focus < fieldCourse {
			return m, m.focusField(m.focus + 1)
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) openForm() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.formErr = nil
	m.view = FormView
	return m.focusField(fieldFirst)
}

// focusField moves focus to field i, wrapping around the form.
func (m *Model) focusField(i int) tea.Cmd {
	n := len(m.inputs)
	m.focus = (i%n + n) % n
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	student, err := models.NewStudent(
		m.inputs[fieldFirst].Value(),
		m.inputs[fieldLast].Value(),
		m.inputs[fieldCourse].Value(),
	)
	if err != nil {
		m.formErr = err
		return nil
	}

	m.students = append(m.students, student)
	m.logger.Info("registered student", "student", student.String())
	m.status, m.err = fmt.Sprintf("Registered %s", student), nil
	m.view = ListView
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	return m.list.SetItems(studentItems(m.students))
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		students, err := m.store.Load(m.ctx)
		return loadedMsg(students, err)
	}
}

// save snapshots the roster so the command never reads it off the update goroutine.
func (m *Model) save() tea.Cmd {
	students := slices.Clone(m.students)
	return func() tea.Msg {
		err := m.store.Save(m.ctx, students)
		return savedMsg(len(students), err)
	}
}

func (m *Model) renderList() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if status := styles.Status(m.status, m.err); status != "" {
		b.WriteString(status + "\n")
	}
	if len(m.students) == 0 {
		b.WriteString(styles.warn.Render("No registrations yet.") + "\n")
	}
	b.WriteString("\n" + m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Register a Student for a Course"))
	b.WriteString("\n")
	for i, in := range m.inputs {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(fieldLabels[i]), in.View())
	}
	if m.formErr != nil {
		b.WriteString("\n" + styles.err.Render(m.formErr.Error()) + "\n")
		b.WriteString(styles.help.Render("Only use letters in first and last names!") + "\n")
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.submit, m.keys.back}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}
