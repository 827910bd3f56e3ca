package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/enroll/internal/models"
)

// Store loads and saves the full enrollment sequence.
type Store interface {
	// Load returns every saved record in order.
	Load(ctx context.Context) ([]*models.Student, error)
	// Save overwrites the stored records with students.
	Save(ctx context.Context, students []*models.Student) error
	// Location describes where records are kept, for messages.
	Location() string
}

// NextSequence increments and returns the next sequence number for the given table within tx.
//
// Sequence numbers keep rows in the order they were saved.
func NextSequence(tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable)); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}
