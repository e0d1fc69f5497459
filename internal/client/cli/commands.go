package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hireboard/internal/client/board"
	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/filex"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

var errNoEditor = errors.New("no candidate open, use 'open <id>' first")

func usage(u string) error {
	return fmt.Errorf("%w: usage: %s", common.ErrorValidation, u)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidCandidate, s)
	}
	return id, nil
}

func (a *App) editor() (*board.Editor, error) {
	e := a.store.Editor()
	if e == nil {
		return nil, errNoEditor
	}
	return e, nil
}

// Board prints the board with the active search applied.
func (a *App) Board(_ context.Context, _ []string) error {
	renderBoard(a.out, boardView{
		Job:     a.store.Job(),
		Query:   a.query,
		Total:   len(a.store.Candidates()),
		Columns: a.store.Columns(a.query),
	}, termWidth())
	return nil
}

// Search sets the name filter. Without arguments the filter is cleared.
func (a *App) Search(ctx context.Context, args []string) error {
	a.query = strings.TrimSpace(strings.Join(args, " "))
	return a.Board(ctx, nil)
}

// Add opens the add form and submits it. A failed submit keeps the draft,
// so the next "add" starts from what was typed.
func (a *App) Add(ctx context.Context, _ []string) error {
	if !a.form.Open {
		a.form.Toggle()
	}

	var err error
	if a.form.Name, err = GetField(a.reader, "Name", a.form.Name, a.out); err != nil {
		return err
	}
	if a.form.Email, err = GetField(a.reader, "Email", a.form.Email, a.out); err != nil {
		return err
	}
	if a.form.LinkedinURL, err = GetField(a.reader, "LinkedIn URL", a.form.LinkedinURL, a.out); err != nil {
		return err
	}

	created, err := a.form.Submit(ctx, a.store)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added #%d %s.\n", created.ID, created.Name)
	return a.Board(ctx, nil)
}

// locate finds the card's current slot on the unfiltered board.
func (a *App) locate(id int64) (board.Location, int, bool) {
	for _, col := range a.store.Columns("") {
		for i, c := range col.Cards {
			if c.ID == id {
				return board.Location{Stage: col.Stage, Index: i}, col.Count(), true
			}
		}
	}
	return board.Location{}, 0, false
}

func (a *App) columnCount(stage models.Stage) int {
	for _, col := range a.store.Columns("") {
		if col.Stage == stage {
			return col.Count()
		}
	}
	return 0
}

// Move drops a card on a stage column, at the end unless an index is given.
func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usage("move <id> <stage> [index]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	stage, err := models.ParseStage(args[1])
	if err != nil {
		return err
	}

	src, srcCount, ok := a.locate(id)
	if !ok {
		return fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}

	dst := board.Location{Stage: stage, Index: a.columnCount(stage)}
	if stage == src.Stage {
		dst.Index = srcCount - 1
	}
	if len(args) == 3 {
		idx, err := strconv.Atoi(args[2])
		if err != nil || idx < 0 {
			return usage("move <id> <stage> [index]")
		}
		dst.Index = idx
	}

	moved, err := a.drag.Drop(ctx, board.Move{CandidateID: id, Source: src, Destination: &dst})
	if err != nil {
		return err
	}
	if !moved {
		fmt.Fprintln(a.out, "Nothing to move.")
		return nil
	}

	fmt.Fprintf(a.out, "Moved #%d to %s.\n", id, stage.Title())
	return a.Board(ctx, nil)
}

// Open starts the editor for a candidate and shows its draft.
func (a *App) Open(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("open <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	e, err := a.store.Open(id)
	if err != nil {
		return err
	}
	a.showEditor(e)
	return nil
}

func (a *App) showEditor(e *board.Editor) {
	c, _ := a.store.Get(e.ID())
	renderEditor(a.out, e, c.Status)
}

// Edit changes one draft field. The rest of the line is the value.
func (a *App) Edit(_ context.Context, args []string) error {
	if len(args) < 1 {
		return usage("edit <name|email|linkedin> <value>")
	}
	e, err := a.editor()
	if err != nil {
		return err
	}
	if err := e.SetField(args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.showEditor(e)
	return nil
}

// Notes replaces the draft notes with a multi-line answer.
func (a *App) Notes(_ context.Context, _ []string) error {
	e, err := a.editor()
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}
	if err := e.SetField("notes", notes); err != nil {
		return err
	}
	a.showEditor(e)
	return nil
}

// Attach uploads a résumé from disk for the open candidate.
func (a *App) Attach(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("attach <path>")
	}
	e, err := a.editor()
	if err != nil {
		return err
	}

	name, data, err := filex.ReadResume(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploading %s...\n", name)
	url, err := e.AttachResume(ctx, name, data)
	if url != "" {
		fmt.Fprintln(a.out, "Résumé:", url)
	}
	return err
}

// Save commits the draft. The editor stays open.
func (a *App) Save(ctx context.Context, _ []string) error {
	e, err := a.editor()
	if err != nil {
		return err
	}
	if err := e.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

// Close ends the editor and drops any unsaved changes.
func (a *App) Close(_ context.Context, _ []string) error {
	e, err := a.editor()
	if err != nil {
		return err
	}
	e.Close()
	fmt.Fprintln(a.out, "Closed.")
	return nil
}

// Delete removes a candidate after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("candidate %d: %w", id, common.ErrorNotFound)
	}

	if !Confirm(a.reader, fmt.Sprintf("Delete #%d %s?", id, c.Name), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.store.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d.\n", id)
	return nil
}

// Reload fetches the board again.
func (a *App) Reload(ctx context.Context, _ []string) error {
	a.store.Load(ctx, a.store.JobID())
	return a.Board(ctx, nil)
}
