package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/shared"
)

// DefaultFile is the enrollment file read at startup and written on save.
const DefaultFile = "Enrollments.json"

// FileRepository implements [Store] over a JSON file holding an array of [models.Enrollment] objects.
type FileRepository struct {
	path string
}

// NewFileRepository creates a [FileRepository] for path, defaulting to [DefaultFile].
func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = DefaultFile
	}
	return &FileRepository{path: path}
}

// recordKeys are the exact keys of every persisted object, in file order.
var recordKeys = [...]string{"first_name", "last_name", "course_name"}

// Location returns the file path.
func (r *FileRepository) Location() string { return r.path }

// Load reads and decodes the file.
//
// Any failure aborts the whole load and returns no records:
//   - [shared.ErrFileNotFound] when the file does not exist
//   - [shared.ErrMalformedFile] for anything but an array of objects with exactly the three keys
//   - [shared.ErrInvalidName] when an entry holds a name that fails validation
func (r *FileRepository) Load(ctx context.Context) ([]*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shared.ErrMalformedFile, r.path, err)
	}

	students := make([]*models.Student, 0, len(records))
	for i, rec := range records {
		student, err := models.NewStudentFromEnrollment(rec)
		if err != nil {
			return nil, fmt.Errorf("entry %d in %s: %w", i, r.path, err)
		}
		students = append(students, student)
	}

	return students, nil
}

// Save writes students to the file as a compact JSON array, replacing prior content.
func (r *FileRepository) Save(ctx context.Context, students []*models.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(models.Enrollments(students))
	if err != nil {
		return fmt.Errorf("failed to encode enrollments: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}

	return nil
}

// decodeRecords parses data as an array of objects keyed exactly by [recordKeys], matching key case.
func decodeRecords(data []byte) ([]models.Enrollment, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var entries []map[string]json.RawMessage
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errors.New("expected an array of enrollment objects")
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the enrollment array")
	}

	records := make([]models.Enrollment, 0, len(entries))
	for i, entry := range entries {
		rec, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeEntry(entry map[string]json.RawMessage) (models.Enrollment, error) {
	if entry == nil {
		return models.Enrollment{}, errors.New("expected an object")
	}
	for k := range entry {
		if !slices.Contains(recordKeys[:], k) {
			return models.Enrollment{}, fmt.Errorf("unknown key %q", k)
		}
	}

	var values [len(recordKeys)]string
	for i, k := range recordKeys {
		raw, ok := entry[k]
		if !ok {
			return models.Enrollment{}, fmt.Errorf("missing %q", k)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return models.Enrollment{}, fmt.Errorf("%q is null", k)
		}
		if err := json.Unmarshal(raw, &values[i]); err != nil {
			return models.Enrollment{}, fmt.Errorf("%q: %w", k, err)
		}
	}

	return models.Enrollment{FirstName: values[0], LastName: values[1], CourseName: values[2]}, nil
}
