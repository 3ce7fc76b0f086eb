package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophfolio/internal/client/form"
	"github.com/dmitrijs2005/gophfolio/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements it.
type execIface interface {
	hasProfile() bool
	List(ctx context.Context) error
	Featured(ctx context.Context) error
	Show(ctx context.Context, id string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Set(ctx context.Context, field, value string) error
	Draft(ctx context.Context) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Owner(ctx context.Context, value string) error
	Reload(ctx context.Context) error
}

const (
	helpNoProfile = "Available commands: owner <id|token>, help, exit"
	helpProfile   = "Available commands: list, featured, show <id>, new, edit <id>, set <field> <value>, " +
		"draft, save, cancel, delete <id>, owner [<id|token>], reload, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or on "exit"/"quit". Handler errors are reported to the
// user and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("folio %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help", "h":
			if a.hasProfile() {
				printlnFn(helpProfile)
				printlnFn("Fields:", fieldNames())
			} else {
				printlnFn(helpNoProfile)
			}

		case "list", "l", "ls":
			report(a.List(ctx))

		case "featured", "f":
			report(a.Featured(ctx))

		case "show":
			if rest == "" {
				printlnFn("Usage: show <id>")
				continue
			}
			report(a.Show(ctx, rest))

		case "new", "add":
			report(a.New(ctx))

		case "edit":
			if rest == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			report(a.Edit(ctx, rest))

		case "set":
			field, value := splitCommand(rest)
			if field == "" {
				printlnFn("Usage: set <field> <value>")
				continue
			}
			report(a.Set(ctx, field, value))

		case "draft":
			report(a.Draft(ctx))

		case "save", "submit":
			report(a.Save(ctx))

		case "cancel":
			report(a.Cancel(ctx))

		case "delete", "rm":
			if rest == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			report(a.Delete(ctx, rest))

		case "owner", "login":
			report(a.Owner(ctx, rest))

		case "reload":
			report(a.Reload(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// splitCommand returns the first word of line and the trimmed remainder.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

func fieldNames() string {
	names := make([]string, 0, len(form.Fields))
	for _, f := range form.Fields {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func report(err error) {
	if err != nil {
		printlnFn(describeError(err))
	}
}

func describeError(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.Is(err, common.ErrNoProfile):
		return "No owner profile. Sign in with: owner <id>"
	case errors.Is(err, common.ErrLoading):
		return "Projects are still loading; try again in a moment."
	case errors.As(err, &ve):
		return fmt.Sprintf("Cannot save: %s %s", ve.Field, ve.Message)
	case errors.Is(err, common.ErrFormClosed):
		return "No form is open. Start one with 'new' or 'edit <id>'."
	case errors.Is(err, common.ErrUnknownField):
		return fmt.Sprintf("%v. Fields: %s", err, fieldNames())
	case errors.Is(err, common.ErrorNotFound):
		return "Not found: " + err.Error()
	}
	return "Error: " + err.Error()
}
