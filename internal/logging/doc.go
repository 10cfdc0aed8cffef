// Package logging assembles the slog loggers used by heifconv.
//
// It owns the console and JSON handlers, maps configured levels onto slog
// levels, and provides the attribute helpers components use so run IDs, file
// names, and warning context come out with the same keys everywhere. Log
// output is diagnostic only; the user-facing conversion report is written by
// the report package.
package logging
