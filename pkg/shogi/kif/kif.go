// Package kif contains a reader for positions in KIF notation, the
// Kifu-for-Windows record format.
package kif

import (
	"fmt"
	"strings"

	"github.com/herohde/tsume/pkg/shogi"
)

// Detect returns true iff the input looks like a KIF record rather than
// an SFEN/PSN one.
func Detect(input string) bool {
	return strings.HasPrefix(input, "#KIF version=") || strings.HasPrefix(input, "# --- Kifu for Windows")
}

// Parse extracts the board diagram and hand lines from a KIF record and
// returns the position, with Black to move.
//
// Board rows look like "| ・ ・ ・v金 ・ ・ ・ ・ ・|一" with 'v' marking
// White pieces, and hands like "先手の持駒：銀　歩二".
func Parse(input string) (*shogi.Position, error) {
	var pieces []shogi.Placement
	var black, white shogi.Hand

	for _, line := range strings.Split(input, "\n") {
		if rest, ok := strings.CutPrefix(line, "先手の持駒："); ok {
			hand, err := parseHand(rest)
			if err != nil {
				return nil, err
			}
			black = hand
		}
		if rest, ok := strings.CutPrefix(line, "後手の持駒："); ok {
			hand, err := parseHand(rest)
			if err != nil {
				return nil, err
			}
			white = hand
		}
		if rest, ok := strings.CutPrefix(line, "|"); ok {
			row, rank, err := parseRow(rest)
			if err != nil {
				return nil, err
			}
			for i, cell := range row {
				if cell.piece == shogi.NoPiece {
					continue
				}
				pieces = append(pieces, shogi.Placement{
					Square: shogi.NewSquare(shogi.NumFiles-i, rank),
					Color:  cell.color,
					Piece:  cell.piece,
				})
			}
		}
	}
	pos, err := shogi.NewPosition(pieces, black, white, shogi.Black)
	if err != nil {
		return nil, fmt.Errorf("invalid KIF position: %v", err)
	}
	return pos, nil
}

type rowCell struct {
	piece shogi.Piece
	color shogi.Color
}

// parseRow reads one board diagram row: nine cells from file 9 down to
// file 1, terminated by the rank numeral.
func parseRow(row string) ([]rowCell, int, error) {
	var cells []rowCell
	color := shogi.Black
	for _, r := range []rune(row) {
		switch {
		case r == ' ' || r == '|':
			color = shogi.Black
		case r == 'v':
			color = shogi.White
		case r == '・':
			cells = append(cells, rowCell{})
		default:
			if p, ok := parsePieceKanji(r); ok {
				cells = append(cells, rowCell{piece: p, color: color})
				break
			}
			if n, ok := parseKansuji(r); ok {
				if len(cells) != shogi.NumFiles || n < 1 || n > shogi.NumRanks {
					return nil, 0, fmt.Errorf("malformed KIF board row: '%v'", row)
				}
				return cells, n, nil
			}
		}
	}
	return nil, 0, fmt.Errorf("unterminated KIF board row: '%v'", row)
}

// parseHand reads a hand line, e.g. "飛二　金四　銀　桂三　香三　歩十五".
// Counts follow the piece kanji, so the runes are scanned in reverse.
func parseHand(s string) (shogi.Hand, error) {
	var hand shogi.Hand
	count := 0

	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if r == '　' {
			count = 0
			continue
		}
		if n, ok := parseKansuji(r); ok {
			count += n
			continue
		}
		if p, ok := parseHandKanji(r); ok {
			for j := 0; j < max(count, 1); j++ {
				if !hand.Add(p) {
					return shogi.Hand{}, fmt.Errorf("too many %v in KIF hand: '%v'", p, s)
				}
			}
		}
	}
	return hand, nil
}

func parsePieceKanji(r rune) (shogi.Piece, bool) {
	switch r {
	case '竜', '龍':
		return shogi.ProRook, true
	case '馬':
		return shogi.ProBishop, true
	case '全':
		return shogi.ProSilver, true
	case '圭':
		return shogi.ProKnight, true
	case '杏':
		return shogi.ProLance, true
	case 'と':
		return shogi.ProPawn, true
	case '玉', '王':
		return shogi.King, true
	case '飛':
		return shogi.Rook, true
	case '角':
		return shogi.Bishop, true
	case '金':
		return shogi.Gold, true
	case '銀':
		return shogi.Silver, true
	case '桂':
		return shogi.Knight, true
	case '香':
		return shogi.Lance, true
	case '歩':
		return shogi.Pawn, true
	default:
		return shogi.NoPiece, false
	}
}

func parseHandKanji(r rune) (shogi.Piece, bool) {
	p, ok := parsePieceKanji(r)
	if !ok || p == shogi.King || p.IsPromoted() {
		return shogi.NoPiece, false
	}
	return p, true
}

func parseKansuji(r rune) (int, bool) {
	switch r {
	case '十':
		return 10, true
	case '一':
		return 1, true
	case '二':
		return 2, true
	case '三':
		return 3, true
	case '四':
		return 4, true
	case '五':
		return 5, true
	case '六':
		return 6, true
	case '七':
		return 7, true
	case '八':
		return 8, true
	case '九':
		return 9, true
	default:
		return 0, false
	}
}
