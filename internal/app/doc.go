// Package app runs the interactive bikeshare session loop.
//
// # Session Flow
//
// Each pass through the loop:
//
//	1. Asks for a city, month and day (re-prompting on invalid answers)
//	2. Loads the city's trip log and applies the month and day filters
//	3. Prints time, station, trip duration and user statistics
//	4. Exports the statistics when an export directory is configured
//	5. Offers the raw rows five at a time
//	6. Asks whether to restart
//
// Every pass gets a fresh session ID that the logger attaches to each record.
//
// # Error Handling
//
// Invalid answers are handled by the prompt. A dataset that cannot be loaded
// is reported and the user is offered a restart. A selection with no trips
// prints a notice instead of statistics. End of input ends the program
// normally. The app does not call os.Exit(); main controls the exit code.
package app
