package notation_test

import (
	"testing"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/herohde/tsume/pkg/shogi/notation"
	"github.com/herohde/tsume/pkg/shogi/sfen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	start, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)
	tsume, _, err := sfen.Decode("7kl/9/6G1p/9/9/9/9/9/9 b S 1")
	require.NoError(t, err)

	tests := []struct {
		pos      *shogi.Position
		move     string
		format   notation.Format
		expected string
	}{
		{start, "7g7f", notation.USI, "7g7f"},
		{start, "7g7f", notation.Official, "▲7六歩(77)"},
		{start, "7g7f", notation.Traditional, "▲七六歩(77)"},
		{start, "8h2b+", notation.Traditional, "▲二二角成(88)"},
		{tsume, "S*3b", notation.Traditional, "▲三二銀打"},
		{tsume, "S*3b", notation.Official, "▲3二銀打"},
	}

	for _, test := range tests {
		m, err := shogi.ParseMove(test.move)
		require.NoError(t, err)

		actual, err := notation.Render(test.pos, m, test.format)
		require.NoError(t, err)
		assert.Equal(t, test.expected, actual, "%v as %v", test.move, test.format)
	}
}

func TestRenderWhite(t *testing.T) {
	pos, _, err := sfen.Decode("7kl/9/6G1p/9/9/9/9/9/9 w - 1")
	require.NoError(t, err)

	m, err := shogi.ParseMove("2a1b")
	require.NoError(t, err)

	actual, err := notation.Render(pos, m, notation.Traditional)
	require.NoError(t, err)
	assert.Equal(t, "△一二玉(21)", actual)
}

func TestRenderUnimplemented(t *testing.T) {
	pos, _, err := sfen.Decode(sfen.Initial)
	require.NoError(t, err)

	m, err := shogi.ParseMove("7g7f")
	require.NoError(t, err)

	for _, f := range []notation.Format{notation.KIF, notation.CSA} {
		_, err := notation.Render(pos, m, f)
		assert.Error(t, err, f)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := notation.ParseFormat("traditional")
	require.NoError(t, err)
	assert.Equal(t, notation.Traditional, f)

	_, err = notation.ParseFormat("san")
	assert.Error(t, err)
}
