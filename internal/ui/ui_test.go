package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/shared"
	th "github.com/desertthunder/enroll/internal/testing"
)

func newTestModel(t *testing.T, store *th.MockStore) *Model {
	t.Helper()
	m := NewModel(context.Background(), store, shared.NewLogger(io.Discard))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func fillForm(m *Model, first, last, course string) {
	typeText(m, "a")
	typeText(m, first)
	press(m, tea.KeyTab)
	typeText(m, last)
	press(m, tea.KeyTab)
	typeText(m, course)
	press(m, tea.KeyEnter)
}

func TestModelLoad(t *testing.T) {
	t.Run("populates list", func(t *testing.T) {
		store := &th.MockStore{Students: []*models.Student{
			th.MustStudent(t, "ann", "lee", "Art"),
			th.MustStudent(t, "bob", "ray", "Bio"),
		}}
		m := newTestModel(t, store)
		run(t, m, m.Init())

		if len(m.Students()) != 2 {
			t.Fatalf("expected 2 students, got %d", len(m.Students()))
		}
		if len(m.list.Items()) != 2 {
			t.Errorf("expected 2 list items, got %d", len(m.list.Items()))
		}
		item := m.list.Items()[0].(studentItem)
		if item.Title() != "Ann Lee" || item.Description() != "Art" {
			t.Errorf("unexpected first item %q / %q", item.Title(), item.Description())
		}
		if !strings.Contains(m.View(), "Loaded 2 registrations") {
			t.Errorf("expected load status in view:\n%s", m.View())
		}
	})

	t.Run("failure is shown and the model keeps running", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{LoadErr: shared.ErrFileNotFound})
		run(t, m, m.Init())

		if m.err == nil {
			t.Fatal("expected load error to be kept")
		}
		if len(m.Students()) != 0 {
			t.Errorf("expected empty roster, got %d", len(m.Students()))
		}
		view := m.View()
		if !strings.Contains(view, "Could not load mock") || !strings.Contains(view, "file not found") {
			t.Errorf("expected error status in view:\n%s", view)
		}
	})
}

func TestModelForm(t *testing.T) {
	t.Run("a opens the form", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		typeText(m, "a")

		if m.ViewState() != FormView {
			t.Fatalf("expected FormView, got %v", m.ViewState())
		}
		if !m.inputs[fieldFirst].Focused() {
			t.Error("expected first name to be focused")
		}
		if !strings.Contains(m.View(), "Register a Student for a Course") {
			t.Errorf("unexpected form view:\n%s", m.View())
		}
	})

	t.Run("valid submission registers the student", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		fillForm(m, "john", "doe", "History")

		if m.ViewState() != ListView {
			t.Fatalf("expected ListView after submit, got %v", m.ViewState())
		}
		if len(m.Students()) != 1 {
			t.Fatalf("expected 1 student, got %d", len(m.Students()))
		}
		if got := m.Students()[0].String(); got != "John Doe (History)" {
			t.Errorf("unexpected student %q", got)
		}
		if len(m.list.Items()) != 1 {
			t.Errorf("expected list to be refreshed, got %d items", len(m.list.Items()))
		}
	})

	t.Run("invalid name stays on the form", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		fillForm(m, "j0hn", "doe", "History")

		if m.ViewState() != FormView {
			t.Fatalf("expected FormView, got %v", m.ViewState())
		}
		if !errors.Is(m.formErr, shared.ErrInvalidName) {
			t.Errorf("expected ErrInvalidName, got %v", m.formErr)
		}
		if len(m.Students()) != 0 {
			t.Errorf("expected empty roster, got %d", len(m.Students()))
		}
		if !strings.Contains(m.View(), "Only use letters") {
			t.Errorf("expected inline hint:\n%s", m.View())
		}
	})

	t.Run("surrounding whitespace fails validation", func(t *testing.T) {
		for _, first := range []string{" john", "john ", "mary ann"} {
			m := newTestModel(t, &th.MockStore{})
			fillForm(m, first, "doe", "History")

			if !errors.Is(m.formErr, shared.ErrInvalidName) {
				t.Errorf("%q: expected ErrInvalidName, got %v", first, m.formErr)
			}
			if len(m.Students()) != 0 {
				t.Errorf("%q: expected empty roster, got %d", first, len(m.Students()))
			}
		}
	})

	t.Run("enter advances until the last field", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		typeText(m, "a")
		press(m, tea.KeyEnter)

		if m.focus != fieldLast {
			t.Errorf("expected focus on last name, got %d", m.focus)
		}
		if len(m.Students()) != 0 {
			t.Error("enter on an early field must not submit")
		}
	})

	t.Run("shift+tab wraps", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		typeText(m, "a")
		press(m, tea.KeyShiftTab)

		if m.focus != fieldCourse {
			t.Errorf("expected focus to wrap to course, got %d", m.focus)
		}
	})

	t.Run("q is typed, not quit", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		typeText(m, "a")
		if cmd := typeText(m, "q"); isQuit(cmd) {
			t.Fatal("q should not quit from the form")
		}
		if m.inputs[fieldFirst].Value() != "q" {
			t.Errorf("expected q in first name, got %q", m.inputs[fieldFirst].Value())
		}
	})

	t.Run("esc cancels", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		typeText(m, "a")
		typeText(m, "john")
		press(m, tea.KeyEsc)

		if m.ViewState() != ListView {
			t.Errorf("expected ListView, got %v", m.ViewState())
		}
		if len(m.Students()) != 0 {
			t.Error("cancel must not register")
		}
	})

	t.Run("reopening clears the previous entry", func(t *testing.T) {
		m := newTestModel(t, &th.MockStore{})
		fillForm(m, "j0hn", "doe", "History")
		press(m, tea.KeyEsc)
		typeText(m, "a")

		if m.formErr != nil || m.inputs[fieldFirst].Value() != "" {
			t.Error("expected a fresh form")
		}
	})
}

func TestModelSave(t *testing.T) {
	t.Run("writes a snapshot", func(t *testing.T) {
		store := &th.MockStore{}
		m := newTestModel(t, store)
		fillForm(m, "john", "doe", "History")

		cmd := typeText(m, "s")
		run(t, m, cmd)

		if store.SaveCalls != 1 || len(store.Students) != 1 {
			t.Fatalf("expected one save of 1 student, got %d / %d", store.SaveCalls, len(store.Students))
		}
		if !strings.Contains(m.View(), "Saved 1 registrations to mock") {
			t.Errorf("expected save status:\n%s", m.View())
		}
	})

	t.Run("failure keeps the roster", func(t *testing.T) {
		store := &th.MockStore{SaveErr: errors.New("read-only file system")}
		m := newTestModel(t, store)
		fillForm(m, "john", "doe", "History")
		run(t, m, typeText(m, "s"))

		if len(m.Students()) != 1 {
			t.Errorf("expected roster kept, got %d", len(m.Students()))
		}
		if !strings.Contains(m.View(), "read-only file system") {
			t.Errorf("expected error status:\n%s", m.View())
		}
	})
}

func TestModelQuit(t *testing.T) {
	tc := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &th.MockStore{})
			if _, cmd := m.Update(tt.msg); !isQuit(cmd) {
				t.Errorf("expected %s to quit", tt.name)
			}
		})
	}
}
