package board

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/hireboard/internal/common"
	"github.com/dmitrijs2005/hireboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddForm_SubmitResetsOnSuccess(t *testing.T) {
	g := newFakeGateway(seed()...)
	s, _ := loaded(g)

	f := &AddForm{}
	f.Toggle()
	f.Name = "  Jane Doe "
	f.Email = "jane@x.com"

	created, err := f.Submit(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, models.StageNew, created.Status)
	assert.Equal(t, AddForm{}, *f)

	c, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, int64(1), c.JobID)
	assert.Equal(t, models.StageNew, c.Status)
	assert.Equal(t, created.ID, s.Columns("")[0].Cards[0].ID, "newest card on top of new")
}

func TestAddForm_BlankNameNeverReachesGateway(t *testing.T) {
	g := newFakeGateway(seed()...)
	s, _ := loaded(g)

	f := &AddForm{Open: true, Name: "   ", Email: "x@x.com"}
	_, err := f.Submit(context.Background(), s)
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.True(t, f.Open)
	assert.Len(t, g.Calls(), 2)
}

func TestAddForm_KeepsDraftOnFailure(t *testing.T) {
	g := newFakeGateway(seed()...)
	g.insertErr = errGateway
	s, a := loaded(g)

	f := &AddForm{Open: true, Name: "Jane Doe", LinkedinURL: "https://li/jane"}
	_, err := f.Submit(context.Background(), s)
	require.ErrorIs(t, err, errGateway)

	assert.Equal(t, AddForm{Open: true, Name: "Jane Doe", LinkedinURL: "https://li/jane"}, *f)
	assert.Len(t, s.Candidates(), 3)
	assert.Len(t, a.all(), 1)
}

func TestAddForm_Toggle(t *testing.T) {
	f := &AddForm{Name: "kept"}
	f.Toggle()
	assert.True(t, f.Open)
	f.Toggle()
	assert.False(t, f.Open)
	assert.Equal(t, "kept", f.Name)
}
