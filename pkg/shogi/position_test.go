package shogi_test

import (
	"testing"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/herohde/tsume/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) *shogi.Position {
	t.Helper()
	pos, _, err := sfen.Decode(s)
	require.NoError(t, err)
	return pos
}

func usi(moves []shogi.Move) []string {
	var ret []string
	for _, m := range moves {
		ret = append(ret, m.String())
	}
	return ret
}

func TestStartPositionMoves(t *testing.T) {
	pos := decode(t, sfen.Initial)

	assert.Len(t, pos.AllEvasions(), 30)
	assert.Empty(t, pos.AllChecks())
}

func TestAllChecks(t *testing.T) {
	// White king on 2a beside a lance; the gold moves and silver drops
	// that touch the king give check.
	pos := decode(t, "7kl/9/6G1p/9/9/9/9/9/9 b S 1")

	checks := usi(pos.AllChecks())
	assert.Contains(t, checks, "S*3b")
	assert.Contains(t, checks, "S*1b")
	assert.Contains(t, checks, "3c3b")
	assert.NotContains(t, checks, "3c3a")
}

func TestForcedPromotion(t *testing.T) {
	pos := decode(t, "k8/8P/N8/9/9/9/9/9/9 b - 1")

	moves := usi(pos.AllEvasions())
	assert.ElementsMatch(t, []string{"1b1a+", "9c8a+"}, moves)
}

func TestDropRestrictions(t *testing.T) {
	t.Run("nifu", func(t *testing.T) {
		// A pawn on file 1 forbids another pawn drop on that file.
		pos := decode(t, "k8/9/9/9/8P/9/9/9/9 b P 1")

		for _, m := range pos.AllEvasions() {
			if m.Drop {
				assert.NotEqual(t, 1, m.To.File(), "nifu drop %v", m)
			}
		}
	})

	t.Run("deadSquares", func(t *testing.T) {
		pos := decode(t, "k8/9/9/9/9/9/9/9/9 b NL 1")

		for _, m := range pos.AllEvasions() {
			if !m.Drop {
				continue
			}
			switch m.Piece {
			case shogi.Lance:
				assert.Greater(t, m.To.Rank(), 1, "lance drop %v", m)
			case shogi.Knight:
				assert.Greater(t, m.To.Rank(), 2, "knight drop %v", m)
			}
		}
	})

	t.Run("dropPawnMate", func(t *testing.T) {
		// P*1b would be mate: the king cannot take the defended pawn and
		// 2a is covered by the gold. The drop is illegal, while the
		// checking board move 2b1b remains.
		pos := decode(t, "8k/7G1/7L1/9/9/9/9/9/9 b P 1")

		checks := usi(pos.AllChecks())
		assert.NotContains(t, checks, "P*1b")
		assert.Contains(t, checks, "2b1b")
	})
}

func TestEvasions(t *testing.T) {
	// King in check by a dropped silver: the king can step aside or take.
	pos := decode(t, "7kl/8S/9/9/9/9/9/9/9 w - 1")

	require.True(t, pos.InCheck(shogi.White))
	moves := usi(pos.AllEvasions())
	assert.Contains(t, moves, "2a1b")
	assert.Contains(t, moves, "2a2b")
}
