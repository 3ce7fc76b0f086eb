package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdinIsTerminal is a test seam for term.IsTerminal on standard input.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// GetSimpleText prints a prompt to w and reads a single line from reader.
// The line is trimmed; a partial last line before EOF is returned as is.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// promptConfirmer asks yes/no questions on the REPL's input. Without a
// terminal on stdin nobody can answer, so it declines unless assumeYes.
type promptConfirmer struct {
	reader      *bufio.Reader
	out         io.Writer
	assumeYes   bool
	interactive func() bool
}

func (c *promptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	if c.assumeYes {
		fmt.Fprintln(c.out, prompt, "yes")
		return true, nil
	}
	if !c.interactive() {
		fmt.Fprintln(c.out, prompt, "no (stdin is not a terminal, run with -y to confirm deletes)")
		return false, nil
	}

	answer, err := GetSimpleText(c.reader, prompt+" [y/N]", c.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
