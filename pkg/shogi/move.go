package shogi

import (
	"fmt"
	"strings"
)

// Move represents a board move or a drop along with contextual metadata.
// For a board move, Piece is the moving piece before promotion and
// Capture the captured piece, if any; both are filled in by move
// generation and may be absent on parsed moves. For a drop, Piece is the
// dropped kind.
type Move struct {
	From, To Square
	Piece    Piece
	Capture  Piece
	Promote  bool
	Drop     bool
}

// ParseMove parses a move in USI notation, such as "7g7f", "2b3a+" or
// "S*3b". Parsed board moves do not carry the moving or captured piece.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	if runes[1] == '*' {
		if len(runes) != 4 {
			return Move{}, fmt.Errorf("invalid drop: '%v'", str)
		}
		piece, ok := ParsePiece(runes[0])
		if !ok || piece == King {
			return Move{}, fmt.Errorf("invalid drop piece: '%v'", str)
		}
		to, err := ParseSquare(string(runes[2:4]))
		if err != nil {
			return Move{}, fmt.Errorf("invalid drop target: '%v': %v", str, err)
		}
		return Move{To: to, Piece: piece, Drop: true}, nil
	}

	from, err := ParseSquare(string(runes[0:2]))
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(string(runes[2:4]))
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	promote := false
	if len(runes) == 5 {
		if runes[4] != '+' {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		promote = true
	}
	return Move{From: from, To: to, Promote: promote}, nil
}

// Equals returns true iff the moves denote the same game transition.
// Contextual metadata is ignored.
func (m Move) Equals(o Move) bool {
	if m.Drop != o.Drop {
		return false
	}
	if m.Drop {
		return m.Piece == o.Piece && m.To == o.To
	}
	return m.From == o.From && m.To == o.To && m.Promote == o.Promote
}

func (m Move) String() string {
	if m.Drop {
		return fmt.Sprintf("%v*%v", strings.ToUpper(m.Piece.String()), m.To)
	}
	if m.Promote {
		return fmt.Sprintf("%v%v+", m.From, m.To)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// MarshalText implements encoding.TextMarshaler using USI notation.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using USI notation.
func (m *Move) UnmarshalText(data []byte) error {
	mv, err := ParseMove(string(data))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}

// FormatMoves formats a move sequence with the given printer.
func FormatMoves(moves []Move, fn func(Move) string) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fn(m))
	}
	return sb.String()
}
