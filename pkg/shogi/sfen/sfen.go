// Package sfen contains utilities for reading and writing positions in
// SFEN notation, the USI wire format.
package sfen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/tsume/pkg/shogi"
)

const (
	Initial = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"
)

// handOrder is the canonical SFEN hand piece order.
var handOrder = []shogi.Piece{shogi.Rook, shogi.Bishop, shogi.Gold, shogi.Silver, shogi.Knight, shogi.Lance, shogi.Pawn}

// Decode returns a new position and move number from an SFEN description.
// An optional leading "sfen" token and a trailing move number are
// accepted.
//
// Example:
//
//	"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"
func Decode(s string) (*shogi.Position, int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) > 0 && parts[0] == "sfen" {
		parts = parts[1:]
	}
	if len(parts) != 3 && len(parts) != 4 {
		return nil, 0, fmt.Errorf("invalid number of sections in SFEN: '%v'", s)
	}

	// (1) Piece placement, rank a through rank i, each rank from file 9
	// through file 1. Promoted pieces carry a '+' prefix.

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != shogi.NumRanks {
		return nil, 0, fmt.Errorf("invalid number of ranks in SFEN: '%v'", s)
	}

	var pieces []shogi.Placement
	for i, row := range ranks {
		rank := i + 1
		file := shogi.NumFiles
		promoted := false
		for _, r := range []rune(row) {
			switch {
			case r == '+':
				promoted = true

			case unicode.IsDigit(r):
				if promoted {
					return nil, 0, fmt.Errorf("dangling promotion in SFEN: '%v'", s)
				}
				file -= int(r - '0')

			case unicode.IsLetter(r):
				if file < 1 {
					return nil, 0, fmt.Errorf("too many squares in rank %v in SFEN: '%v'", rank, s)
				}
				piece, ok := shogi.ParsePiece(r)
				if !ok {
					return nil, 0, fmt.Errorf("invalid piece '%c' in SFEN: '%v'", r, s)
				}
				if promoted {
					piece, ok = piece.Promoted()
					if !ok {
						return nil, 0, fmt.Errorf("invalid promoted piece '%c' in SFEN: '%v'", r, s)
					}
					promoted = false
				}
				color := shogi.White
				if unicode.IsUpper(r) {
					color = shogi.Black
				}
				pieces = append(pieces, shogi.Placement{Square: shogi.NewSquare(file, rank), Color: color, Piece: piece})
				file--

			default:
				return nil, 0, fmt.Errorf("invalid character '%c' in SFEN: '%v'", r, s)
			}
		}
		if file != 0 {
			return nil, 0, fmt.Errorf("invalid number of squares in rank %v in SFEN: '%v'", rank, s)
		}
	}

	// (2) Side to move.

	var turn shogi.Color
	switch parts[1] {
	case "b":
		turn = shogi.Black
	case "w":
		turn = shogi.White
	default:
		return nil, 0, fmt.Errorf("invalid side to move in SFEN: '%v'", s)
	}

	// (3) Hands: counts followed by piece letters, upper case for Black.

	var black, white shogi.Hand
	if parts[2] != "-" {
		count := 0
		for _, r := range []rune(parts[2]) {
			switch {
			case unicode.IsDigit(r):
				count = count*10 + int(r-'0')

			case unicode.IsLetter(r):
				piece, ok := shogi.ParsePiece(r)
				if !ok || piece == shogi.King {
					return nil, 0, fmt.Errorf("invalid hand piece '%c' in SFEN: '%v'", r, s)
				}
				hand := &white
				if unicode.IsUpper(r) {
					hand = &black
				}
				if count == 0 {
					count = 1
				}
				if !addHand(hand, piece, count) {
					return nil, 0, fmt.Errorf("too many '%c' in hand in SFEN: '%v'", r, s)
				}
				count = 0

			default:
				return nil, 0, fmt.Errorf("invalid hand character '%c' in SFEN: '%v'", r, s)
			}
		}
		if count != 0 {
			return nil, 0, fmt.Errorf("dangling hand count in SFEN: '%v'", s)
		}
	}

	// (4) Move number, if present.

	moves := 1
	if len(parts) == 4 {
		n, err := strconv.Atoi(parts[3])
		if err != nil || n < 1 {
			return nil, 0, fmt.Errorf("invalid move number in SFEN: '%v'", s)
		}
		moves = n
	}

	pos, err := shogi.NewPosition(pieces, black, white, turn)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid position in SFEN '%v': %v", s, err)
	}
	return pos, moves, nil
}

// Encode encodes the position in SFEN notation.
func Encode(pos *shogi.Position, moves int) string {
	var sb strings.Builder
	for rank := 1; rank <= shogi.NumRanks; rank++ {
		blanks := 0
		for file := shogi.NumFiles; file >= 1; file-- {
			color, piece, ok := pos.Square(shogi.NewSquare(file, rank))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank < shogi.NumRanks {
			sb.WriteString("/")
		}
	}

	turn := "b"
	if pos.Turn() == shogi.White {
		turn = "w"
	}

	return fmt.Sprintf("%v %v %v %v", sb.String(), turn, printHands(pos), moves)
}

func addHand(h *shogi.Hand, p shogi.Piece, count int) bool {
	for i := 0; i < count; i++ {
		if !h.Add(p) {
			return false
		}
	}
	return true
}

func printHands(pos *shogi.Position) string {
	var sb strings.Builder
	for _, c := range []shogi.Color{shogi.Black, shogi.White} {
		hand := pos.Hand(c)
		for _, p := range handOrder {
			n := hand.Count(p)
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			letter := p.String()
			if c == shogi.Black {
				letter = strings.ToUpper(letter)
			}
			sb.WriteString(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func printPiece(c shogi.Color, p shogi.Piece) string {
	s := p.String()
	if c == shogi.Black {
		return strings.ToUpper(s)
	}
	return s
}
