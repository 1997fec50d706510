package shogi_test

import (
	"testing"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/herohde/tsume/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyPositionHashesToZero(t *testing.T) {
	pos, err := shogi.NewPosition(nil, shogi.Hand{}, shogi.Hand{}, shogi.Black)
	require.NoError(t, err)

	assert.Equal(t, shogi.ZobristHash(0), shogi.DefaultZobrist().Hash(pos))
}

func TestZobristDeterminism(t *testing.T) {
	pos, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)

	a := shogi.NewZobristTable(shogi.DefaultSeed).Hash(pos)
	b := shogi.NewZobristTable(shogi.DefaultSeed).Hash(pos)
	assert.Equal(t, a, b)

	c := shogi.NewZobristTable(42).Hash(pos)
	assert.NotEqual(t, a, c)
}

// TestIncrementalHash plays through moves with captures, promotions and
// drops and checks the incremental hash against a full recomputation
// after every mutation.
func TestIncrementalHash(t *testing.T) {
	pos, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)

	b := shogi.NewBoard(shogi.DefaultZobrist(), pos)
	for _, str := range []string{"7g7f", "3c3d", "8h2b+", "3a2b", "B*7g", "2b3a", "7g8h", "B*2b"} {
		m, err := shogi.ParseMove(str)
		require.NoError(t, err)

		b.MakeMove(m)
		assert.Equal(t, shogi.DefaultZobrist().Hash(b.Position()), b.Hash(), "after %v", str)
	}
}

// TestTranspositionHash verifies that distinct move orders reaching the
// same configuration hash equal: the bishops are traded and then put
// back on their home squares.
func TestTranspositionHash(t *testing.T) {
	pos, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)

	b := shogi.NewBoard(shogi.DefaultZobrist(), pos)
	var hashes []shogi.ZobristHash
	for _, str := range []string{"7g7f", "3c3d", "8h2b+", "3a2b", "B*7g", "2b3a", "7g8h", "B*2b"} {
		m, err := shogi.ParseMove(str)
		require.NoError(t, err)

		b.MakeMove(m)
		hashes = append(hashes, b.Hash())
	}
	assert.Equal(t, hashes[1], hashes[7])
	assert.True(t, b.Position().Hand(shogi.Black).IsEmpty())
	assert.True(t, b.Position().Hand(shogi.White).IsEmpty())
}

func TestGivePiece(t *testing.T) {
	pos, _, err := sfen.Decode("8k/9/9/9/9/9/9/9/9 b G2g 1")
	require.NoError(t, err)

	b := shogi.NewBoard(shogi.DefaultZobrist(), pos)
	require.NoError(t, b.GivePiece(shogi.Gold))

	assert.Equal(t, 0, b.Position().Hand(shogi.Black).Count(shogi.Gold))
	assert.Equal(t, 3, b.Position().Hand(shogi.White).Count(shogi.Gold))
	assert.Equal(t, shogi.DefaultZobrist().Hash(b.Position()), b.Hash())
	assert.Equal(t, shogi.Black, b.Position().Turn())

	assert.Error(t, b.GivePiece(shogi.Gold))
	assert.Error(t, b.GivePiece(shogi.Rook))
}
