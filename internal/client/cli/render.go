package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/width"

	"github.com/dmitrijs2005/hireboard/internal/client/board"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

const (
	defaultTermWidth = 100
	minColumnWidth   = 10
	columnGap        = " | "
)

// termWidth is a test seam for the terminal width.
var termWidth = func() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

// boardView is everything printed for one board frame.
type boardView struct {
	Job     models.Job
	Query   string
	Total   int
	Columns []board.Column
}

// displayWidth counts terminal cells: wide and fullwidth runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// truncate shortens s to at most w cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if displayWidth(s) <= w {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runeWidth(r)
		if used+rw > w-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString("…")
	return b.String()
}

func pad(s string, w int) string {
	s = truncate(s, w)
	if d := w - displayWidth(s); d > 0 {
		s += strings.Repeat(" ", d)
	}
	return s
}

func badges(c models.Candidate) string {
	var b []string
	if c.HasNotes() {
		b = append(b, "[notes]")
	}
	if c.HasResume() {
		b = append(b, "[cv]")
	}
	return strings.Join(b, " ")
}

// cardLines renders one card: id and name, the date it was added and its
// badges when it has any.
func cardLines(c models.Candidate) []string {
	lines := []string{
		fmt.Sprintf("#%d %s", c.ID, c.Name),
		c.CreatedAt.Format("2006-01-02"),
	}
	if b := badges(c); b != "" {
		lines = append(lines, b)
	}
	return lines
}

func columnLines(col board.Column) []string {
	if col.Count() == 0 {
		return []string{"(empty)"}
	}
	var lines []string
	for i, c := range col.Cards {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, cardLines(c)...)
	}
	return lines
}

func jobHeader(v boardView) string {
	title := v.Job.Title
	if title == "" {
		title = fmt.Sprintf("Job #%d", v.Job.ID)
	}
	if v.Job.Status != "" {
		title += " (" + v.Job.Status + ")"
	}
	return title
}

// renderBoard prints the stage columns side by side, fitted to termCols.
func renderBoard(w io.Writer, v boardView, termCols int) {
	fmt.Fprintln(w, jobHeader(v))
	if v.Query != "" {
		shown := 0
		for _, c := range v.Columns {
			shown += c.Count()
		}
		fmt.Fprintf(w, "Search: %q (%d of %d)\n", v.Query, shown, v.Total)
	}
	if len(v.Columns) == 0 {
		return
	}

	n := len(v.Columns)
	colW := max((termCols-len(columnGap)*(n-1))/n, minColumnWidth)

	cells := make([][]string, n)
	heads := make([]string, n)
	rows := 0
	for i, col := range v.Columns {
		heads[i] = fmt.Sprintf("%s (%d)", col.Stage.Title(), col.Count())
		cells[i] = columnLines(col)
		rows = max(rows, len(cells[i]))
	}

	writeRow := func(parts []string) {
		for i := range parts {
			parts[i] = pad(parts[i], colW)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, columnGap), " "))
	}

	writeRow(heads)
	rule := make([]string, n)
	for i := range rule {
		rule[i] = strings.Repeat("-", colW)
	}
	writeRow(rule)

	for r := 0; r < rows; r++ {
		parts := make([]string, n)
		for i := range cells {
			if r < len(cells[i]) {
				parts[i] = cells[i][r]
			}
		}
		writeRow(parts)
	}
}

// renderEditor prints the open editor's draft.
func renderEditor(w io.Writer, e *board.Editor, stage models.Stage) {
	d := e.Draft()
	cv := d.CVURL
	if cv == "" {
		cv = "-"
	}
	if e.Uploading() {
		cv += " (uploading…)"
	}

	fmt.Fprintf(w, "Candidate #%d (%s)\n", e.ID(), stage.Title())
	fmt.Fprintf(w, "  name:     %s\n", d.Name)
	fmt.Fprintf(w, "  email:    %s\n", d.Email)
	fmt.Fprintf(w, "  linkedin: %s\n", d.LinkedinURL)
	fmt.Fprintf(w, "  résumé:   %s\n", cv)
	fmt.Fprintln(w, "  notes:")
	if d.Notes == "" {
		fmt.Fprintln(w, "    -")
		return
	}
	for _, line := range strings.Split(d.Notes, "\n") {
		fmt.Fprintln(w, "    "+line)
	}
}
