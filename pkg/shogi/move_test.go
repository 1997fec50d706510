package shogi_test

import (
	"testing"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		str     string
		move    shogi.Move
		invalid bool
	}{
		{str: "7g7f", move: shogi.Move{From: shogi.NewSquare(7, 7), To: shogi.NewSquare(7, 6)}},
		{str: "8h2b+", move: shogi.Move{From: shogi.NewSquare(8, 8), To: shogi.NewSquare(2, 2), Promote: true}},
		{str: "S*3b", move: shogi.Move{To: shogi.NewSquare(3, 2), Piece: shogi.Silver, Drop: true}},
		{str: "P*5e", move: shogi.Move{To: shogi.NewSquare(5, 5), Piece: shogi.Pawn, Drop: true}},
		{str: "", invalid: true},
		{str: "7g", invalid: true},
		{str: "7g7z", invalid: true},
		{str: "K*5e", invalid: true},
		{str: "7g7f=", invalid: true},
	}

	for _, test := range tests {
		m, err := shogi.ParseMove(test.str)
		if test.invalid {
			assert.Error(t, err, test.str)
			continue
		}
		require.NoError(t, err, test.str)
		assert.Equal(t, test.move, m)
		assert.Equal(t, test.str, m.String())
	}
}

func TestMoveEquals(t *testing.T) {
	a, err := shogi.ParseMove("7g7f")
	require.NoError(t, err)

	// Generated moves carry metadata that parsed moves lack.
	b := shogi.Move{From: shogi.NewSquare(7, 7), To: shogi.NewSquare(7, 6), Piece: shogi.Pawn}
	assert.True(t, a.Equals(b))

	c, err := shogi.ParseMove("7g7f+")
	require.NoError(t, err)
	assert.False(t, a.Equals(c))

	d, err := shogi.ParseMove("P*7f")
	require.NoError(t, err)
	assert.False(t, a.Equals(d))
}
