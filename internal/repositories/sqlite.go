package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/shared"
)

// SQLiteRepository implements [Store] over the enrollments table.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository wraps an already migrated database connection.
func NewSQLiteRepository(db *sql.DB, path string) *SQLiteRepository {
	return &SQLiteRepository{db: db, path: path}
}

// OpenSQLiteRepository opens the database described by cfg and applies pending migrations.
func OpenSQLiteRepository(cfg shared.DatabaseConfig) (*SQLiteRepository, error) {
	db, err := shared.NewDatabase(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrStorageUnavailable, err)
	}

	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewSQLiteRepository(db, cfg.Path), nil
}

// Location returns the database path.
func (r *SQLiteRepository) Location() string { return r.path }

// Load returns every row in saved order. Rows that no longer pass name validation abort the load.
func (r *SQLiteRepository) Load(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT first_name, last_name, course_name
		FROM enrollments
		ORDER BY sequence
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.FirstName, &e.LastName, &e.CourseName); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}

		student, err := models.NewStudentFromEnrollment(e)
		if err != nil {
			return nil, fmt.Errorf("stored enrollment %s %s: %w", e.FirstName, e.LastName, err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enrollments: %w", err)
	}

	return students, nil
}

// Save replaces every stored row with students in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, students []*models.Student) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM enrollments"); err != nil {
		return fmt.Errorf("failed to clear enrollments: %w", err)
	}

	query := `
		INSERT INTO enrollments (id, sequence, first_name, last_name, course_name) VALUES (?, ?, ?, ?, ?)
	`
	for _, e := range models.Enrollments(students) {
		sequence, err := NextSequence(tx, "enrollments")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, shared.GenerateID(), sequence, e.FirstName, e.LastName, e.CourseName); err != nil {
			return fmt.Errorf("failed to insert enrollment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit enrollments: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
