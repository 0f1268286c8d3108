package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/validation"
)

func TestAddShoeDefaults(t *testing.T) {
	c, sh, err := testEngine().AddShoe(mustState(t, nil, nil, nil), ShoeInput{Name: " Pegasus 40 ", Brand: "Nike"}, 5)
	require.NoError(t, err)
	require.Len(t, c.Shoes, 1)

	assert.Equal(t, "Pegasus 40", sh.Name)
	assert.Equal(t, model.DefaultShoeMaxMileage, sh.MaxMileage)
	assert.Equal(t, model.DefaultShoeColor, sh.Color)
	assert.Equal(t, 0.0, sh.Mileage)
}

func TestAddShoeValidation(t *testing.T) {
	s := mustState(t, nil, nil, nil)
	e := testEngine()

	_, _, err := e.AddShoe(s, ShoeInput{Name: "Pegasus"}, 0)
	assert.ErrorIs(t, err, ErrInvalidShoe)
	assert.ErrorIs(t, err, validation.ErrBrandRequired)

	_, _, err = e.AddShoe(s, ShoeInput{Brand: "Nike"}, 0)
	assert.ErrorIs(t, err, validation.ErrNameRequired)

	_, _, err = e.AddShoe(s, ShoeInput{Name: "Pegasus", Brand: "Nike", Color: "bg-black"}, 0)
	assert.ErrorIs(t, err, ErrInvalidShoe)

	_, _, err = e.AddShoe(s, ShoeInput{Name: "Pegasus", Brand: "Nike", Mileage: -1}, 0)
	assert.ErrorIs(t, err, ErrInvalidShoe)
}

func TestAddShoeLimit(t *testing.T) {
	s := mustState(t, nil, nil, []model.Shoe{shoe("s1", 0), shoe("s2", 0)})
	in := ShoeInput{Name: "Pegasus", Brand: "Nike"}

	_, _, err := testEngine().AddShoe(s, in, 2)
	assert.ErrorIs(t, err, ErrShoeLimitReached)

	_, _, err = testEngine().AddShoe(s, in, 0)
	assert.NoError(t, err, "zero limit is unlimited")
}

func TestUpdateShoeManualMileage(t *testing.T) {
	s := mustState(t, nil, nil, []model.Shoe{shoe("s1", 40)})

	c, sh, err := testEngine().UpdateShoe(s, "s1", ShoeInput{Name: "Pegasus", Brand: "Nike", Mileage: 100, Color: model.ShoeColorSky})
	require.NoError(t, err)
	assert.Equal(t, model.ShoeColorSky, sh.Color)

	_, settled := apply(t, s, c)
	require.Len(t, settled, 1)
	assert.Equal(t, model.LedgerReasonManual, settled[0].Reason)
	assert.Equal(t, 60.0, settled[0].Applied)

	_, _, err = testEngine().UpdateShoe(s, "nope", ShoeInput{Name: "x", Brand: "y"})
	assert.ErrorIs(t, err, ErrShoeNotFound)
}

func TestRemoveShoeLeavesRecords(t *testing.T) {
	s := mustState(t, nil, []model.Record{record("r1", "2024-03-01", 5, "s1")}, []model.Shoe{shoe("s1", 5)})
	e := testEngine()

	_, err := e.RemoveShoe(s, "s1", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	c, err := e.RemoveShoe(s, "s1", true)
	require.NoError(t, err)
	next, _ := s.Apply(c)

	_, ok := next.Shoe("s1")
	assert.False(t, ok)
	rec, _ := next.Record("2024-03-01")
	assert.Equal(t, "s1", rec.Shoe())
}
