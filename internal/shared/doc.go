// Package shared holds helpers used by more than one package of the
// bikeshare explorer that belong to no single stage of the session.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler for asserting on log output
//	- writers for trip-log CSV fixtures in the city file layout
//	- scripted answers for driving the interactive prompts
//
// It should not contain business logic.
package shared
