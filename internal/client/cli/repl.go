package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Board(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Close(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  board                      show the board
  search [text]              filter cards by name; no text clears the filter
  add                        add a candidate
  move <id> <stage> [index]  drop a card on a stage (new, interview, offer, hired)
  open <id>                  open the candidate editor
  edit <field> <value>       change name, email or linkedin in the editor
  notes                      rewrite the notes in the editor
  attach <path>              upload a résumé (.pdf, .doc, .docx)
  save                       save the editor
  close                      close the editor
  delete <id>                delete a candidate
  reload                     fetch the board again
  exit | quit                leave the program`

// runREPL starts a read–eval–print loop over reader.
//
// The first token of a line is the command and the rest are its arguments.
// A command error is printed and the loop carries on. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	commands := map[string]func(context.Context, []string) error{
		"board":  a.Board,
		"b":      a.Board,
		"search": a.Search,
		"add":    a.Add,
		"move":   a.Move,
		"open":   a.Open,
		"edit":   a.Edit,
		"notes":  a.Notes,
		"attach": a.Attach,
		"save":   a.Save,
		"close":  a.Close,
		"delete": a.Delete,
		"reload": a.Reload,
	}

	for {
		printlnFn(fmt.Sprintf("hb %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		run, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := run(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}
