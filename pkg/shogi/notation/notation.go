// Package notation renders single moves in the common Japanese and USI
// move formats.
package notation

import (
	"fmt"

	"github.com/herohde/tsume/pkg/shogi"
)

// Format selects a move rendering.
type Format string

const (
	USI         Format = "usi"
	KIF         Format = "kif"
	CSA         Format = "csa"
	Official    Format = "official"
	Traditional Format = "traditional"
)

// ParseFormat parses a --move-format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case USI, KIF, CSA, Official, Traditional:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown move format: '%v'", s)
	}
}

var (
	kanjiDigits = []rune("〇一二三四五六七八九")
	sideMarks   = map[shogi.Color]rune{shogi.Black: '▲', shogi.White: '△'}

	pieceKanji = map[shogi.Piece]rune{
		shogi.Pawn:      '歩',
		shogi.Lance:     '香',
		shogi.Knight:    '桂',
		shogi.Silver:    '銀',
		shogi.Gold:      '金',
		shogi.Bishop:    '角',
		shogi.Rook:      '飛',
		shogi.King:      '玉',
		shogi.ProPawn:   'と',
		shogi.ProLance:  '杏',
		shogi.ProKnight: '圭',
		shogi.ProSilver: '全',
		shogi.ProBishop: '馬',
		shogi.ProRook:   '龍',
	}
)

// Render renders a single move from the given position, which must be
// the position before the move. KIF and CSA are recognized but not
// implemented and return an error.
func Render(pos *shogi.Position, m shogi.Move, f Format) (string, error) {
	switch f {
	case USI:
		return m.String(), nil

	case KIF, CSA:
		return "", fmt.Errorf("move format %v not implemented", f)

	case Official, Traditional:
		side := sideMarks[pos.Turn()]
		sq := renderSquare(m.To, f == Traditional)

		if m.Drop {
			return fmt.Sprintf("%c%v%c打", side, sq, pieceKanji[m.Piece]), nil
		}

		_, piece, ok := pos.Square(m.From)
		if !ok {
			return "", fmt.Errorf("no piece on %v", m.From)
		}
		suffix := ""
		if m.Promote {
			suffix = "成"
		}
		return fmt.Sprintf("%c%v%c%v(%d%d)", side, sq, pieceKanji[piece], suffix, m.From.File(), m.From.Rank()), nil

	default:
		return "", fmt.Errorf("unknown move format: '%v'", f)
	}
}

// renderSquare prints the target square: rank always as a kanji numeral,
// file as kanji for the traditional format and as a digit otherwise.
func renderSquare(sq shogi.Square, kansuji bool) string {
	rank := kanjiDigits[sq.Rank()]
	if kansuji {
		return fmt.Sprintf("%c%c", kanjiDigits[sq.File()], rank)
	}
	return fmt.Sprintf("%d%c", sq.File(), rank)
}
