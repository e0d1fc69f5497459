package board

import (
	"slices"

	"github.com/dmitrijs2005/hireboard/internal/models"
)

// Column is one rendered stage of the board.
type Column struct {
	Stage models.Stage
	Cards []models.Candidate
}

// Count is the number of visible cards, after search filtering.
func (c Column) Count() int { return len(c.Cards) }

// Columns partitions the candidates matching query by stage, in board
// order. Cards are newest first, except that a card dropped by the drag
// controller sits where it was dropped until the next Load.
func (s *Store) Columns(query string) []Column {
	s.mu.Lock()
	visible := Search(slices.Clone(s.candidates), query)
	hints := make(map[int64]int, len(s.hints))
	for id, idx := range s.hints {
		hints[id] = idx
	}
	s.mu.Unlock()

	stages := models.AllStages()
	columns := make([]Column, 0, len(stages))
	for _, stage := range stages {
		var cards []models.Candidate
		for _, c := range visible {
			if c.Status == stage {
				cards = append(cards, c)
			}
		}
		slices.SortStableFunc(cards, func(a, b models.Candidate) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		columns = append(columns, Column{Stage: stage, Cards: applyHints(cards, hints)})
	}
	return columns
}

func applyHints(cards []models.Candidate, hints map[int64]int) []models.Candidate {
	if len(hints) == 0 {
		return cards
	}

	var placed []models.Candidate
	rest := make([]models.Candidate, 0, len(cards))
	for _, c := range cards {
		if _, ok := hints[c.ID]; ok {
			placed = append(placed, c)
		} else {
			rest = append(rest, c)
		}
	}

	slices.SortStableFunc(placed, func(a, b models.Candidate) int {
		return hints[a.ID] - hints[b.ID]
	})
	for _, c := range placed {
		idx := min(max(hints[c.ID], 0), len(rest))
		rest = slices.Insert(rest, idx, c)
	}
	return rest
}
