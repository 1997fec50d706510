package search_test

import (
	"context"
	"testing"

	"github.com/herohde/tsume/pkg/search"
	"github.com/herohde/tsume/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchNoMate(t *testing.T) {
	ctx := context.Background()
	pos, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)

	answer := search.Search(ctx, pos, 0)
	assert.Equal(t, search.NoMate, answer.Resolution)
	assert.Empty(t, answer.Branches)
	assert.GreaterOrEqual(t, answer.Elapsed, 0.0)
}

func TestSearchMateInThree(t *testing.T) {
	ctx := context.Background()
	pos, _, err := sfen.Decode("7kl/9/6G1p/9/9/9/9/9/9 b S 1")
	require.NoError(t, err)

	solver := search.NewSolver(search.Options{})
	answer := solver.Search(ctx, pos, 0)
	require.Equal(t, search.Mate, answer.Resolution)
	require.NotEmpty(t, answer.Branches)

	// The root entry has an empty prefix and the optimal evaluation.
	root := answer.Branches[0]
	assert.Empty(t, root.Moves)
	require.NotNil(t, root.Eval)
	assert.Equal(t, int32(3), root.Eval.NumMoves)
	assert.NotEmpty(t, root.PossibleNextMoves)

	line := solver.MainLine(ctx, pos)
	var moves []string
	for _, m := range line {
		moves = append(moves, m.String())
	}
	assert.Equal(t, []string{"S*3b", "2a1b", "3c2c"}, moves)
}

func TestSearchMateInFive(t *testing.T) {
	ctx := context.Background()
	pos, _, err := sfen.Decode("3g1ks2/6g2/4S4/7B1/9/9/9/9/9 b G2rbg2s4n4l18p 1")
	require.NoError(t, err)

	solver := search.NewSolver(search.Options{})
	answer := solver.Search(ctx, pos, 0)
	require.Equal(t, search.Mate, answer.Resolution)

	line := solver.MainLine(ctx, pos)
	assert.Len(t, line, 5)
}

func TestResolutionString(t *testing.T) {
	for _, r := range []search.Resolution{search.Mate, search.NoMate, search.Unknown, search.Invalid} {
		parsed, ok := search.ParseResolution(r.String())
		require.True(t, ok, r)
		assert.Equal(t, r, parsed)
	}
	assert.Equal(t, "nomate", search.NoMate.String())
	assert.Equal(t, "unknown", search.Unknown.String())

	_, ok := search.ParseResolution("checkmate")
	assert.False(t, ok)
}
