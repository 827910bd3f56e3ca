package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/enroll/internal/formatter"
	"github.com/desertthunder/enroll/internal/menu"
	"github.com/desertthunder/enroll/internal/models"
	"github.com/desertthunder/enroll/internal/repositories"
	"github.com/desertthunder/enroll/internal/shared"
	"github.com/urfave/cli/v3"
)

// Menu runs the interactive registration loop until the user exits.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(store repositories.Store) error {
		session := menu.NewSession(menu.SessionOpts{
			Store:  store,
			Input:  r.input,
			Output: r.output,
			Logger: r.logger,
		})
		return session.Run(ctx)
	})
}

// List prints the stored registrations as a table.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	return r.withStore(func(store repositories.Store) error {
		students, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}

		r.logger.Debug("listing registrations", "count", len(students), "from", store.Location())
		return formatter.WriteTable(r.output, students)
	})
}

// Add appends one student to the stored registrations.
//
// A missing data file starts an empty roster; any other load failure aborts without writing.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	student, err := models.NewStudent(cmd.String("first"), cmd.String("last"), cmd.String("course"))
	if err != nil {
		return err
	}

	return r.withStore(func(store repositories.Store) error {
		students, err := store.Load(ctx)
		switch {
		case errors.Is(err, shared.ErrFileNotFound):
			r.logger.Info("no stored registrations, starting a new roster", "location", store.Location())
		case err != nil:
			return fmt.Errorf("failed to load registrations: %w", err)
		}

		students = append(students, student)
		if err := store.Save(ctx, students); err != nil {
			return fmt.Errorf("failed to save registrations: %w", err)
		}

		r.logger.Info("registered student", "student", student.String(), "total", len(students))
		return r.writePlain("You have registered %s %s for %s.\n", student.FirstName(), student.LastName(), student.CourseName())
	})
}

// Export writes the stored registrations as csv, markdown or text.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	return r.withStore(func(store repositories.Store) error {
		students, err := store.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load registrations: %w", err)
		}

		path, err := formatter.WriteExport(students, format, cmd.String("output"), r.config.Export.Directory)
		if err != nil {
			return err
		}

		r.logger.Info("exported registrations", "format", format, "path", path)
		return r.writePlain("Exported %d registrations to %s\n", len(students), path)
	})
}
