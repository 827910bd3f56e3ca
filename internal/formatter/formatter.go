// package formatter renders enrollments as a plain table for the menu and exports them to CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

var headers = []string{"First Name", "Last Name", "Course Name"}

// ParseFormat accepts a format name or its common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
}

// Extension returns the file extension used for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// WriteTable writes a header row followed by one aligned row per student.
func WriteTable(w io.Writer, students []*models.Student) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, s := range students {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", s.FirstName(), s.LastName(), s.CourseName()); err != nil {
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

// ExportToCSV converts students to CSV with a header row
func ExportToCSV(students []*models.Student) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range models.Enrollments(students) {
		if err := writer.Write([]string{e.FirstName, e.LastName, e.CourseName}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts students to a Markdown document with a single table
func ExportToMarkdown(students []*models.Student) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Course Registrations\n\n")
	buf.WriteString(fmt.Sprintf("**Students**: %d\n\n", len(students)))

	if len(students) == 0 {
		buf.WriteString("_No registrations._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	buf.WriteString("| --- | --- | --- |\n")
	for _, e := range models.Enrollments(students) {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", e.FirstName, e.LastName, escapeCell(e.CourseName)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts students to a numbered plain text list
func ExportToText(students []*models.Student) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Registrations: %d\n\n", len(students)))
	for i, s := range students {
		buf.WriteString(fmt.Sprintf("%d. %s %s - %s\n", i+1, s.FirstName(), s.LastName(), s.CourseName()))
	}

	return buf.Bytes(), nil
}

// Export renders students in format f.
func Export(students []*models.Student, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(students)
	case FormatMarkdown:
		return ExportToMarkdown(students)
	case FormatText:
		return ExportToText(students)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, f)
}

// WriteExport renders students and writes them to path.
//
// An empty path defaults to enrollments.{ext} inside dir. Returns the path written.
func WriteExport(students []*models.Student, f Format, path, dir string) (string, error) {
	if path == "" {
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, "enrollments."+f.Extension())
	}

	data, err := Export(students, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
