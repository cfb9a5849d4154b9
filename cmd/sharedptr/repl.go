package main

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
)

const (
	replPrompt   = "\033[32m>\033[0m "
	replErrorTag = "\033[31m!\033[0m "
)

// runREPL reads commands from the terminal until EOF, "exit", an
// interrupt on an empty line, or ctx being done.
func runREPL(ctx context.Context, s *Session, historyFile string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            replPrompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer l.Close()
	stop := context.AfterFunc(ctx, func() { l.Close() })
	defer stop()

	fmt.Fprintln(s.out, `type "help" for commands, "exit" to quit`)
	for {
		line, err := l.Readline()
		if ctxErr := interrupted(ctx); ctxErr != nil {
			return ctxErr
		}
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if line == "exit" || line == "quit" {
			return nil
		}
		if err := s.Exec(line); err != nil {
			fmt.Fprintf(s.out, "%s%v\n", replErrorTag, err)
		}
	}
}
