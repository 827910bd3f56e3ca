// Package menu implements the line-oriented course registration loop.
//
// A [Session] owns the in-memory roster for the life of the program. It loads
// the roster from a [repositories.Store] at startup, then repeatedly renders
// [Text], reads one choice and dispatches it:
//
//  1. register a student (prompts for first name, last name and course)
//  2. show the current roster
//  3. save the roster to the store
//  4. exit
//
// Failures at any of these boundaries are printed with [ReportError] and the
// loop carries on. Only option 4, end of input or a canceled context end it.
package menu
