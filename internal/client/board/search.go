package board

import (
	"strings"

	"github.com/dmitrijs2005/hireboard/internal/models"
	"golang.org/x/text/cases"
)

// Search returns the candidates whose name contains query, ignoring case.
// An empty query returns cands itself. The input is never modified.
func Search(cands []models.Candidate, query string) []models.Candidate {
	if query == "" {
		return cands
	}

	// a Caser keeps state, so each call gets its own
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]models.Candidate, 0, len(cands))
	for _, c := range cands {
		if strings.Contains(fold.String(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}
