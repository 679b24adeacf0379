// Package pager prints a table a few rows at a time on request.
package pager

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
)

// NoMoreRows is printed once every row has been shown.
const NoMoreRows = "No more rows to display."

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Pager shows a table a page at a time while the user keeps answering yes.
type Pager struct {
	table    *dataset.Table
	confirm  Confirmer
	out      io.Writer
	logger   *slog.Logger
	pageSize int
	cursor   int
}

// New creates a Pager over table positioned at the first row.
func New(table *dataset.Table, confirm Confirmer, out io.Writer, logger *slog.Logger) *Pager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pager{
		table:    table,
		confirm:  confirm,
		out:      out,
		logger:   logger.With(slog.String("component", "pager")),
		pageSize: config.PageSize,
	}
}

// Cursor returns the index of the next row to show.
func (p *Pager) Cursor() int { return p.cursor }

// Run asks before each page and prints it on yes. It returns when the user
// declines or when the table is exhausted.
func (p *Pager) Run(ctx context.Context) error {
	pages := 0
	defer func() {
		p.logger.DebugContext(ctx, "pager finished",
			slog.Int("pages", pages),
			slog.Int("rows_shown", p.cursor),
			slog.Int("rows_total", p.table.NumRows()))
	}()

	for {
		if p.cursor >= p.table.NumRows() {
			fmt.Fprintf(p.out, "\n%s\n", NoMoreRows)
			return nil
		}

		ok, err := p.confirm.Confirm(ctx, p.question())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		p.cursor += p.printPage()
		pages++
	}
}

func (p *Pager) question() string {
	which := "next"
	if p.cursor == 0 {
		which = "first"
	}
	return fmt.Sprintf("\nWould you like to display the %s %d rows of data?", which, p.pageSize)
}

// printPage prints up to pageSize rows from the cursor and returns how many.
func (p *Pager) printPage() int {
	end := min(p.cursor+p.pageSize, p.table.NumRows())

	for i := p.cursor; i < end; i++ {
		fmt.Fprintf(p.out, "\nRow %d\n", i)
		for _, f := range p.table.Row(i) {
			fmt.Fprintf(p.out, "%s: %s\n", f.Name, f.Value)
		}
	}
	fmt.Fprintln(p.out, strings.Repeat("-", config.SeparatorLen))

	return end - p.cursor
}
