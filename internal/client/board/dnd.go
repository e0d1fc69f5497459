package board

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
)

// Location is a slot on the board: a stage column and a position in it.
type Location struct {
	Stage models.Stage
	Index int
}

// Move describes a finished drag gesture. Destination is nil when the card
// was dropped outside any column.
type Move struct {
	CandidateID int64
	Source      Location
	Destination *Location
}

// DragController turns drop gestures into stage transitions.
type DragController struct {
	store *Store
}

func NewDragController(s *Store) *DragController {
	return &DragController{store: s}
}

// Drop applies m. It reports whether a transition was issued; cancelled
// drags and drops back onto the same slot do nothing.
func (d *DragController) Drop(ctx context.Context, m Move) (bool, error) {
	if m.Destination == nil {
		return false, nil
	}
	dst := *m.Destination
	if m.Source.Stage == dst.Stage && m.Source.Index == dst.Index {
		return false, nil
	}
	if !dst.Stage.Valid() {
		return false, fmt.Errorf("%w: %q", common.ErrInvalidStage, dst.Stage)
	}

	if err := d.store.transition(ctx, m.CandidateID, dst.Stage, &dst.Index); err != nil {
		return false, err
	}

	return true, nil
}
