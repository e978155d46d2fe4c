package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
)

// lineReader is the part of selector.LineKeySource the REPL prompts with.
type lineReader interface {
	NextLine(ctx context.Context) (string, error)
}

// runREPL is the interactive shell. Every line is echoed back. "select" asks
// for a menu style and runs one selection; "exit" or end of input leaves.
func runREPL(ctx context.Context, in lineReader, out io.Writer, selectFn func(context.Context, selector.Style) error) error {
	for {
		fmt.Fprint(out, "> ")
		line, err := in.NextLine(ctx)
		if err != nil {
			return endOfInput(out, err)
		}
		line = strings.TrimSpace(line)
		fmt.Fprintf(out, "You entered: %s\n", line)

		switch line {
		case "exit":
			return nil
		case "select":
			fmt.Fprint(out, "Choose menu style (1 or 2): ")
			choice, err := in.NextLine(ctx)
			if err != nil {
				return endOfInput(out, err)
			}
			if err := selectFn(ctx, replStyle(choice)); err != nil {
				return err
			}
		}
	}
}

// replStyle maps the style prompt answer: 2 is the preview menu, anything
// else the plain list.
func replStyle(choice string) selector.Style {
	if strings.TrimSpace(choice) == "2" {
		return selector.StylePreview
	}
	return selector.StyleList
}

// endOfInput treats closed input and a cancelled context as a normal exit.
func endOfInput(out io.Writer, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(out)
		return nil
	}
	return fmt.Errorf("repl: read input: %w", err)
}
