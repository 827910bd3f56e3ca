// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/enroll/internal/models"
)

// MockStore is an in-memory test double for [repositories.Store]
type MockStore struct {
	Students  []*models.Student
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockStore) Load(ctx context.Context) ([]*models.Student, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]*models.Student(nil), m.Students...), nil
}

func (m *MockStore) Save(ctx context.Context, students []*models.Student) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Students = append([]*models.Student(nil), students...)
	return nil
}

func (m *MockStore) Location() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

// MustStudent builds a valid student or fails the test.
func MustStudent(t *testing.T, first, last, course string) *models.Student {
	t.Helper()
	s, err := models.NewStudent(first, last, course)
	if err != nil {
		t.Fatalf("failed to build student %s %s: %v", first, last, err)
	}
	return s
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
