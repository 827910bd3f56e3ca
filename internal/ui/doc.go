// Package ui implements an interactive terminal interface for the enrollment roster using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [ListView] : Browse the loaded roster, filter it and save it
//  2. [FormView] : Register a student with three text inputs, showing validation errors inline
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving store results via the Msg union type.
// Loading and saving run as [tea.Cmd] values; the roster itself is only mutated inside Update.
//
// Keyboard navigation uses vim-style bindings (j/k, a, s, tab, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
