package shogi

type delta struct {
	df, dr int
}

var (
	orthoDirs = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagDirs  = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs  = append(append([]delta{}, orthoDirs...), diagDirs...)

	stepTable  [NumColors][NumPieces][]delta
	slideTable [NumColors][NumPieces][]delta
)

func init() {
	for c := Black; c < NumColors; c++ {
		f := forward(c)
		goldSteps := []delta{{0, f}, {1, f}, {-1, f}, {1, 0}, {-1, 0}, {0, -f}}

		stepTable[c][Pawn] = []delta{{0, f}}
		stepTable[c][Knight] = []delta{{1, 2 * f}, {-1, 2 * f}}
		stepTable[c][Silver] = []delta{{0, f}, {1, f}, {-1, f}, {1, -f}, {-1, -f}}
		for _, p := range []Piece{Gold, ProPawn, ProLance, ProKnight, ProSilver} {
			stepTable[c][p] = goldSteps
		}
		stepTable[c][King] = kingDirs
		stepTable[c][ProBishop] = orthoDirs
		stepTable[c][ProRook] = diagDirs

		slideTable[c][Lance] = []delta{{0, f}}
		slideTable[c][Bishop] = diagDirs
		slideTable[c][ProBishop] = diagDirs
		slideTable[c][Rook] = orthoDirs
		slideTable[c][ProRook] = orthoDirs
	}
}

// forward returns the rank direction of the color: Black plays towards
// rank a.
func forward(c Color) int {
	if c == Black {
		return -1
	}
	return 1
}

func hasDelta(deltas []delta, df, dr int) bool {
	for _, d := range deltas {
		if d.df == df && d.dr == dr {
			return true
		}
	}
	return false
}

// inPromotionZone returns true iff the rank is in the color's promotion
// zone (the opponent's first three ranks).
func inPromotionZone(c Color, rank int) bool {
	if c == Black {
		return rank <= 3
	}
	return rank >= 7
}

// mustPromote returns true iff a piece of the kind could never move again
// from the target square, forcing promotion.
func mustPromote(p Piece, c Color, to Square) bool {
	rank := to.Rank()
	switch p {
	case Pawn, Lance:
		if c == Black {
			return rank == 1
		}
		return rank == NumRanks
	case Knight:
		if c == Black {
			return rank <= 2
		}
		return rank >= NumRanks-1
	default:
		return false
	}
}

// canDrop returns true iff the kind may be dropped on the square, aside
// from the drop-pawn-mate rule. The square must be empty.
func (p *Position) canDrop(k Piece, c Color, to Square) bool {
	if mustPromote(k, c, to) {
		return false
	}
	if k == Pawn && p.pawnOnFile(c, to.File()) {
		return false
	}
	return true
}

func (p *Position) pawnOnFile(c Color, file int) bool {
	for r := 1; r <= NumRanks; r++ {
		if p.cells[NewSquare(file, r)] == (cell{piece: Pawn, color: c}) {
			return true
		}
	}
	return false
}

// IsAttacked returns true iff the square is attacked by the opposing
// color.
func (p *Position) IsAttacked(c Color, sq Square) bool {
	o := c.Opponent()

	for _, d := range kingDirs {
		if t, ok := sq.offset(-d.df, -d.dr); ok {
			if occ := p.cells[t]; occ.piece != NoPiece && occ.color == o && hasDelta(stepTable[o][occ.piece], d.df, d.dr) {
				return true
			}
		}
	}
	for _, d := range stepTable[o][Knight] {
		if t, ok := sq.offset(-d.df, -d.dr); ok {
			if p.cells[t] == (cell{piece: Knight, color: o}) {
				return true
			}
		}
	}
	for _, d := range kingDirs {
		t := sq
		for {
			next, ok := t.offset(-d.df, -d.dr)
			if !ok {
				break
			}
			t = next
			occ := p.cells[t]
			if occ.piece == NoPiece {
				continue
			}
			if occ.color == o && hasDelta(slideTable[o][occ.piece], d.df, d.dr) {
				return true
			}
			break
		}
	}
	return false
}

// pseudoBoardMoves generates the not-necessarily-legal board moves for
// the color, including promotion variants.
func (p *Position) pseudoBoardMoves(c Color) []Move {
	var ret []Move
	for sq := Square(0); sq < NumSquares; sq++ {
		occ := p.cells[sq]
		if occ.piece == NoPiece || occ.color != c {
			continue
		}
		for _, d := range stepTable[c][occ.piece] {
			if to, ok := sq.offset(d.df, d.dr); ok {
				ret = p.appendMoveVariants(ret, c, occ.piece, sq, to)
			}
		}
		for _, d := range slideTable[c][occ.piece] {
			to := sq
			for {
				next, ok := to.offset(d.df, d.dr)
				if !ok {
					break
				}
				to = next
				ret = p.appendMoveVariants(ret, c, occ.piece, sq, to)
				if !p.IsEmpty(to) {
					break
				}
			}
		}
	}
	return ret
}

func (p *Position) appendMoveVariants(ret []Move, c Color, pc Piece, from, to Square) []Move {
	target := p.cells[to]
	if target.piece != NoPiece && target.color == c {
		return ret
	}

	m := Move{From: from, To: to, Piece: pc, Capture: target.piece}
	if _, ok := pc.Promoted(); ok && (inPromotionZone(c, from.Rank()) || inPromotionZone(c, to.Rank())) {
		promoted := m
		promoted.Promote = true
		ret = append(ret, promoted)
	}
	if !mustPromote(pc, c, to) {
		ret = append(ret, m)
	}
	return ret
}

// dropMoves generates the drops for the color, aside from the
// drop-pawn-mate rule.
func (p *Position) dropMoves(c Color) []Move {
	var ret []Move
	for _, k := range HandPieces {
		if p.hands[c].Count(k) == 0 {
			continue
		}
		for sq := Square(0); sq < NumSquares; sq++ {
			if p.IsEmpty(sq) && p.canDrop(k, c, sq) {
				ret = append(ret, Move{To: sq, Piece: k, Drop: true})
			}
		}
	}
	return ret
}

// legalMoves generates the legal moves of the side to move. With
// checksOnly set, only moves that give check are kept.
func (p *Position) legalMoves(checksOnly bool) []Move {
	c := p.turn
	o := c.Opponent()

	candidates := p.pseudoBoardMoves(c)
	candidates = append(candidates, p.dropMoves(c)...)

	var ret []Move
	for _, m := range candidates {
		cp := *p
		if err := cp.apply(m); err != nil {
			continue
		}
		if cp.InCheck(c) {
			continue
		}
		checks := cp.InCheck(o)
		if m.Drop && m.Piece == Pawn && checks && cp.isDropPawnMate(o) {
			continue
		}
		if checksOnly && !checks {
			continue
		}
		ret = append(ret, m)
	}
	return ret
}

// isDropPawnMate reports whether the side to move (just checked by a
// pawn drop) has no reply. Drops cannot parry an adjacent pawn check, so
// board moves decide it.
func (p *Position) isDropPawnMate(c Color) bool {
	for _, m := range p.pseudoBoardMoves(c) {
		cp := *p
		if err := cp.apply(m); err != nil {
			continue
		}
		if !cp.InCheck(c) {
			return false
		}
	}
	return true
}

// AllChecks returns all legal moves of the side to move that give check.
func (p *Position) AllChecks() []Move {
	return p.legalMoves(true)
}

// AllEvasions returns all legal moves of the side to move.
func (p *Position) AllEvasions() []Move {
	return p.legalMoves(false)
}
