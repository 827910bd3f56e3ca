package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/enroll/internal/formatter"
	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/repositories"
	"github.com/desertthunder/enroll/internal/shared"
)

// Text is the menu shown before every prompt.
const Text = `
---- Course Registration Program ----
  Select from the following menu:
    1. Register a Student for a Course.
    2. Show current data.
    3. Save data to a file.
    4. Exit the program.
-----------------------------------------
`

// Menu choices.
const (
	OptionRegister = "1"
	OptionShow     = "2"
	OptionSave     = "3"
	OptionExit     = "4"
)

const (
	choicePrompt    = "Please enter a menu option (1-4): "
	invalidOption   = "ERROR: Please select a valid option"
	invalidNameHint = "Only use letters in first and last names!"
	addFailed       = "There was a non-specific error when adding data!"
)

// maxLineLength bounds a single line of input. Longer lines are discarded and reported.
const maxLineLength = 1 << 20

var errLineTooLong = fmt.Errorf("input line longer than %d bytes", maxLineLength)

var registerPrompts = [...]string{
	"Enter the student's first name: ",
	"Enter the student's last name: ",
	"Please enter the name of the course: ",
}

// Session holds the roster and the I/O used by the loop.
type Session struct {
	store    repositories.Store
	students []*models.Student
	in       *bufio.Reader
	out      io.Writer
	logger   *log.Logger
}

// SessionOpts configures a [Session]. Input defaults to [os.Stdin], Output to [os.Stdout].
type SessionOpts struct {
	Store  repositories.Store
	Input  io.Reader
	Output io.Writer
	Logger *log.Logger
}

// NewSession creates a [Session] with an empty roster.
func NewSession(opts SessionOpts) *Session {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Store == nil {
		opts.Store = repositories.NewFileRepository("")
	}

	return &Session{
		store:  opts.Store,
		in:     bufio.NewReader(opts.Input),
		out:    opts.Output,
		logger: opts.Logger,
	}
}

// Students returns the current roster.
func (s *Session) Students() []*models.Student {
	return s.students
}

// Run loads the roster and loops until the user exits, input ends or ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	s.Load(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, Text)
		choice, err := s.prompt(choicePrompt)
		switch {
		case errors.Is(err, errLineTooLong):
			s.report(invalidOption, err)
			continue
		case errors.Is(err, io.EOF):
			s.logger.Debug("input closed, leaving menu")
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if s.Dispatch(ctx, strings.TrimSpace(choice)) {
			return nil
		}
	}
}

// Dispatch performs one menu choice and reports whether the loop should stop.
func (s *Session) Dispatch(ctx context.Context, choice string) bool {
	s.logger.Debug("menu choice", "choice", choice)

	switch choice {
	case OptionRegister:
		s.Register()
	case OptionShow:
		s.Show()
	case OptionSave:
		s.Save(ctx)
	case OptionExit:
		return true
	default:
		fmt.Fprintln(s.out, invalidOption)
	}
	return false
}

// Load appends the stored roster, echoing it. Failures are reported and leave the roster as it was.
func (s *Session) Load(ctx context.Context) {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrFileNotFound) {
			s.report(fmt.Sprintf("There was an error finding the %s file!", s.store.Location()), err)
		} else {
			s.report(fmt.Sprintf("There was an error reading the data from the %s file!", s.store.Location()), err)
		}
		return
	}

	s.students = append(s.students, loaded...)
	s.logger.Info("loaded enrollments", "count", len(loaded), "from", s.store.Location())

	if err := formatter.WriteTable(s.out, loaded); err != nil {
		s.logger.Error("failed to echo loaded enrollments", "error", err)
	}
}

// Register prompts for a student and appends it when both names are valid.
func (s *Session) Register() {
	var fields [len(registerPrompts)]string
	for i, label := range registerPrompts {
		v, err := s.prompt(label)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.report(addFailed, err)
			}
			return
		}
		fields[i] = v
	}

	student, err := models.NewStudent(fields[0], fields[1], fields[2])
	if err != nil {
		if errors.Is(err, shared.ErrInvalidName) {
			s.report(invalidNameHint, err)
		} else {
			s.report(addFailed, err)
		}
		return
	}

	s.students = append(s.students, student)
	s.logger.Info("registered student", "student", student.String())

	s.Show()
}

// Show prints the roster as a table.
func (s *Session) Show() {
	if err := formatter.WriteTable(s.out, s.students); err != nil {
		s.logger.Error("failed to write roster", "error", err)
	}
}

// Save writes the roster to the store and confirms each record. The roster is never modified.
func (s *Session) Save(ctx context.Context) {
	if err := s.store.Save(ctx, s.students); err != nil {
		s.report(fmt.Sprintf("There was an error saving the data to the %s file!", s.store.Location()), err)
		return
	}

	s.logger.Info("saved enrollments", "count", len(s.students), "to", s.store.Location())

	if len(s.students) == 0 {
		fmt.Fprintf(s.out, "No registrations to save, %s now holds an empty list.\n", s.store.Location())
		return
	}
	for _, st := range s.students {
		fmt.Fprintf(s.out, "You have registered %s %s for %s.\n", st.FirstName(), st.LastName(), st.CourseName())
	}
}

func (s *Session) report(message string, err error) {
	s.logger.Debug(message, "error", err)
	ReportError(s.out, message, err)
}

// prompt writes label and reads one line. It returns [io.EOF] once input is exhausted.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
	}
	return line, err
}

// readLine reads up to the next newline. A line over [maxLineLength] is consumed whole and
// reported as [errLineTooLong] so the following read starts on a fresh line.
func (s *Session) readLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineLength {
				tooLong, line = true, nil
			}
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", errLineTooLong
	}
	return string(line), nil
}
