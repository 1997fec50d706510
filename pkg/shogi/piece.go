package shogi

// Piece represents a shogi piece kind with no color, including the six
// promoted kinds. 4 bits.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	ProBishop
	ProRook
	NumPieces
)

// HandPieces lists the kinds that can be held in hand, in increasing
// nominal value.
var HandPieces = []Piece{Pawn, Lance, Knight, Silver, Gold, Bishop, Rook}

const (
	// NumHandPieces is the number of in-hand piece kinds.
	NumHandPieces = 7
	// MaxHandCount is the largest per-kind hand count (18 pawns).
	MaxHandCount = 18
)

func ParsePiece(r rune) (Piece, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'l', 'L':
		return Lance, true
	case 'n', 'N':
		return Knight, true
	case 's', 'S':
		return Silver, true
	case 'g', 'G':
		return Gold, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'k', 'K':
		return King, true
	default:
		return NoPiece, false
	}
}

func (p Piece) IsValid() bool {
	return Pawn <= p && p < NumPieces
}

// IsPromoted returns true iff the piece is one of the six promoted kinds.
func (p Piece) IsPromoted() bool {
	return ProPawn <= p && p <= ProRook
}

// Promoted returns the promoted kind, if the piece promotes.
func (p Piece) Promoted() (Piece, bool) {
	switch p {
	case Pawn:
		return ProPawn, true
	case Lance:
		return ProLance, true
	case Knight:
		return ProKnight, true
	case Silver:
		return ProSilver, true
	case Bishop:
		return ProBishop, true
	case Rook:
		return ProRook, true
	default:
		return NoPiece, false
	}
}

// Demoted returns the unpromoted kind, i.e. the kind as held in hand
// after capture.
func (p Piece) Demoted() Piece {
	switch p {
	case ProPawn:
		return Pawn
	case ProLance:
		return Lance
	case ProKnight:
		return Knight
	case ProSilver:
		return Silver
	case ProBishop:
		return Bishop
	case ProRook:
		return Rook
	default:
		return p
	}
}

func (p Piece) String() string {
	switch p {
	case NoPiece:
		return " "
	case Pawn:
		return "p"
	case Lance:
		return "l"
	case Knight:
		return "n"
	case Silver:
		return "s"
	case Gold:
		return "g"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case King:
		return "k"
	case ProPawn:
		return "+p"
	case ProLance:
		return "+l"
	case ProKnight:
		return "+n"
	case ProSilver:
		return "+s"
	case ProBishop:
		return "+b"
	case ProRook:
		return "+r"
	default:
		return "?"
	}
}

// handIndex returns the dense hand index for an in-hand kind.
func handIndex(p Piece) int {
	return int(p - Pawn)
}

// handCap is the per-kind hand limit.
func handCap(p Piece) int {
	switch p {
	case Pawn:
		return 18
	case Lance, Knight, Silver, Gold:
		return 4
	case Bishop, Rook:
		return 2
	default:
		return 0
	}
}
