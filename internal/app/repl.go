package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/digitruns/internal/numbers"
)

const replPrompt = "digitruns> "

// lineReader is the subset of *liner.State the interactive loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// Interactive reads lines from the terminal and prints the numbers found in
// each one. ":q", Ctrl-C or EOF ends the session.
func (a *App) Interactive(ctx context.Context) error {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return a.interact(ctx, l, a.stdout)
}

func (a *App) interact(ctx context.Context, lr lineReader, out io.Writer) error {
	defer lr.Close()
	opts := a.options()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := lr.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}
		trimmed := strings.TrimSpace(line)
		switch trimmed {
		case "":
			continue
		case ":q", ":quit", "exit":
			return nil
		}
		lr.AppendHistory(line)
		ns := numbers.ExtractWith(line, opts)
		log.Debug().Int("distinct", len(ns)).Msg("line scanned")
		if len(ns) == 0 {
			fmt.Fprintln(out, "(none)")
			continue
		}
		fmt.Fprintln(out, strings.Join(numbers.Strings(ns), " "))
	}
}
