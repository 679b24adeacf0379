// Package prompt reads the user's answers and validates the filter selection.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	apperrors "bikeshare/internal/errors"
)

// Prompter asks line-oriented questions on out and reads answers from in.
// It is used from a single goroutine.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// New creates a Prompter. A nil logger falls back to slog.Default().
func New(in io.Reader, out io.Writer, logger *slog.Logger) *Prompter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger.With(slog.String("component", "prompt")),
	}
}

// Ask prints question on its own line and returns the next input line
// without its line terminator. End of input yields errors.ErrInputClosed.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "%s\n", question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line == "" {
				p.logger.DebugContext(ctx, "input closed while waiting for answer")
				return "", apperrors.ErrInputClosed
			}
		} else {
			return "", apperrors.NewInputError("failed to read answer", err)
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question. Only "yes" (any case, surrounding blanks
// ignored) counts as agreement; every other answer is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

// Choose asks question until parse accepts the answer, printing an error
// after each rejected one. There is no retry limit; the loop
// ends on an accepted answer, end of input or context cancellation.
func (p *Prompter) Choose(ctx context.Context, question string, parse func(string) (string, bool)) (string, error) {
	for attempt := 1; ; attempt++ {
		answer, err := p.Ask(ctx, question)
		if err != nil {
			return "", err
		}

		if value, ok := parse(answer); ok {
			return value, nil
		}

		p.logger.DebugContext(ctx, "rejected answer",
			slog.String("question", question),
			slog.String("answer", answer),
			slog.Int("attempt", attempt))
		fmt.Fprint(p.out, "\nError: invalid input!\n\n")
	}
}
