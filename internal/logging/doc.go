// Package logging builds the slog.Logger used across buildconf and carries
// it through context.Context.
package logging
