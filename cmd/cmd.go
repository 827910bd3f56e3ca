// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// command builds the root command. With no subcommand it starts the interactive menu.
func (r *Runner) command() *cli.Command {
	return &cli.Command{
		Name:    "enroll",
		Usage:   "Register students for courses",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (json or sqlite), overrides storage.backend",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Before,
		Action:   r.Menu,
		Commands: r.register(),
	}
}

// menuCommand runs the numbered registration menu.
func menuCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "menu",
		Usage:  "Run the interactive registration menu",
		Action: r.Menu,
	}
}

// listCommand prints the stored registrations.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show stored registrations",
		Action:  r.List,
	}
}

// addCommand registers one student without the menu.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Register a student for a course and save",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "first",
				Usage:    "Student's first name (letters only)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "last",
				Usage:    "Student's last name (letters only)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "course",
				Usage:    "Course name",
				Required: true,
			},
		},
		Action: r.Add,
	}
}

// exportCommand writes the registrations in a document format.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export registrations to csv, markdown or text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (csv, markdown, text)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: <export.directory>/enrollments.<ext>)",
			},
		},
		Action: r.Export,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file from the built-in template",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the SQLite database and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive registration.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for course registration",
		Action:  r.TUI,
	}
}
