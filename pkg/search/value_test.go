package search_test

import (
	"testing"

	"github.com/herohde/tsume/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestValuePacking(t *testing.T) {
	v := search.NewValue(5, 7, 2)

	assert.True(t, v.IsMate())
	assert.Equal(t, uint32(5), v.Plies())
	assert.Equal(t, uint32(7), v.Pieces())
	assert.Equal(t, uint32(2), v.Futile())

	assert.False(t, search.InfValue.IsMate())
	assert.True(t, search.ZeroValue.IsMate())
}

func TestValueOrdering(t *testing.T) {
	// Fewer plies dominates.
	assert.Less(t, search.NewValue(3, 0, 0), search.NewValue(5, 10, 0))
	// Equal plies: a larger remaining hand sorts better.
	assert.Less(t, search.NewValue(5, 10, 0), search.NewValue(5, 3, 0))
	// Zero beats any mate, and any mate beats no mate.
	assert.Less(t, search.ZeroValue, search.NewValue(1, 38, 0))
	assert.Less(t, search.NewValue(4094, 0, 4095), search.InfValue)
}

func TestValuePliesAdded(t *testing.T) {
	v := search.NewValue(5, 7, 2)

	assert.Equal(t, uint32(8), v.PliesAdded(3).Plies())
	assert.Equal(t, v, v.PliesAdded(3).PliesAdded(-3))
	assert.Equal(t, v, v.PliesAdded(-2).PliesAdded(2))

	// The saturated plies field means no mate; InfValue is preserved.
	assert.Equal(t, search.InfValue, search.InfValue.PliesAdded(1))
	assert.Equal(t, search.InfValue, search.InfValue.PliesAdded(-1))
	assert.False(t, search.NewValue(0xfff, 0, 0).PliesAdded(1).IsMate())
}

func TestValueComponentsAdded(t *testing.T) {
	v := search.NewValue(5, 7, 2)

	assert.Equal(t, uint32(9), v.PiecesAdded(2).Pieces())
	assert.Equal(t, uint32(5), v.PiecesAdded(2).Plies())
	assert.Equal(t, uint32(3), v.FutileAdded(1).Futile())
	assert.Equal(t, search.InfValue, search.InfValue.PiecesAdded(1))
	assert.Equal(t, search.InfValue, search.InfValue.FutileAdded(1))
}
