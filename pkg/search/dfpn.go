package search

import (
	"math"
	"sort"

	"github.com/herohde/tsume/pkg/shogi"
)

// The df-pn prover, after Nagai and Imai's application of proof-number
// search to tsume problems. It answers the yes/no mate question and
// leaves the table populated for the evaluator's move ordering.

// MaxNumber is the saturated proof/disproof number. (0, MaxNumber) at
// the root is a proven mate and (MaxNumber, 0) a proven unmate;
// MaxNumber-1 serves as a distinguishable root threshold to detect
// cycles.
const MaxNumber = math.MaxUint32

// nodeKind distinguishes attacker (or) and defender (and) nodes.
type nodeKind uint8

const (
	orNode nodeKind = iota
	andNode
)

func (k nodeKind) flip() nodeKind {
	return k ^ 1
}

// DfPn proves or refutes mate from the root position. If the first pass
// terminates in the ambiguous cycle-sentinel region, the table is
// cleared and the search re-run with maximal thresholds.
func DfPn(tbl *ProofTable, b *shogi.Board) Pair {
	r := mid(tbl, b, Pair{MaxNumber - 1, MaxNumber - 1}, orNode)
	if r.Phi != MaxNumber && r.Delta != MaxNumber {
		tbl.Clear()
		r = mid(tbl, b, Pair{MaxNumber, MaxNumber}, orNode)
	}
	return r
}

type child struct {
	move shogi.Move
	key  uint64
}

// mid expands a node with the given thresholds and returns its new
// proof/disproof pair.
func mid(tbl *ProofTable, b *shogi.Board, bounds Pair, kind nodeKind) Pair {
	hash := uint64(b.Hash())

	pd := lookup(tbl, hash)
	if bounds.Phi <= pd.Phi || bounds.Delta <= pd.Delta {
		return pd
	}

	var moves []shogi.Move
	if kind == orNode {
		moves = b.AllChecks()
	} else {
		moves = b.AllEvasions()
	}
	if len(moves) == 0 {
		out := Pair{MaxNumber, 0}
		tbl.Insert(hash, out)
		return out
	}

	children := make([]child, 0, len(moves))
	for _, mv := range moves {
		cp := b.Fork()
		cp.MakeMove(mv)
		children = append(children, child{move: mv, key: uint64(cp.Hash())})
	}
	sortChildren(children)

	// Writing the current thresholds breaks cycles: a descendant
	// re-encountering this position sees finite numbers.
	tbl.Insert(hash, bounds)

	for {
		dmin := deltaMin(tbl, children)
		psum := phiSum(tbl, children)
		if bounds.Phi <= dmin || bounds.Delta <= psum {
			out := Pair{dmin, psum}
			tbl.Insert(hash, out)
			return out
		}

		best, phiC, deltaC, delta2 := selectChild(tbl, children)

		var phiNC uint32
		switch {
		case phiC == MaxNumber-1:
			phiNC = MaxNumber
		case bounds.Delta >= MaxNumber-1:
			phiNC = MaxNumber - 1
		default:
			phiNC = childPhiBound(bounds.Delta, phiC, psum)
		}
		var deltaNC uint32
		if deltaC == MaxNumber-1 {
			deltaNC = MaxNumber
		} else {
			deltaNC = min(bounds.Phi, saturatingAdd(delta2, 1))
		}

		next := b.Fork()
		next.MakeMove(children[best].move)
		mid(tbl, next, Pair{phiNC, deltaNC}, kind.flip())
	}
}

// childPhiBound computes deltaBound + phiC - phiSum in 64 bits. The term
// cannot go negative while the table is consistent within one loop
// iteration; the clamps keep a stray table mutation from wrapping.
func childPhiBound(deltaBound, phiC, phiSum uint32) uint32 {
	t := uint64(deltaBound) + uint64(phiC)
	if t < uint64(phiSum) {
		return MaxNumber - 1
	}
	if d := t - uint64(phiSum); d < MaxNumber {
		return uint32(d)
	}
	return MaxNumber
}

// selectChild returns the child with the smallest delta, its pair, and
// the second-smallest delta among its siblings.
func selectChild(tbl *ProofTable, children []child) (best int, phiC, deltaC, delta2 uint32) {
	phiC, deltaC, delta2 = MaxNumber, MaxNumber, MaxNumber
	for i, c := range children {
		pd := lookup(tbl, c.key)
		if pd.Delta < deltaC {
			best = i
			delta2 = deltaC
			phiC = pd.Phi
			deltaC = pd.Delta
		} else if pd.Delta < delta2 {
			delta2 = pd.Delta
		}
	}
	return best, phiC, deltaC, delta2
}

// lookup fetches the pair for a position, defaulting to (1, 1).
func lookup(tbl *ProofTable, key uint64) Pair {
	if pd, ok := tbl.Fetch(key); ok {
		return pd
	}
	return Pair{1, 1}
}

func deltaMin(tbl *ProofTable, children []child) uint32 {
	mi := uint32(MaxNumber)
	for _, c := range children {
		mi = min(mi, lookup(tbl, c.key).Delta)
	}
	return mi
}

func phiSum(tbl *ProofTable, children []child) uint32 {
	var sum uint32
	for _, c := range children {
		sum = saturatingAdd(sum, lookup(tbl, c.key).Phi)
	}
	return sum
}

func saturatingAdd(a, b uint32) uint32 {
	if a > MaxNumber-b {
		return MaxNumber
	}
	return a + b
}

// sortChildren orders board moves before drops and cheap drops before
// expensive ones, ties broken by the stable sort.
func sortChildren(children []child) {
	sort.SliceStable(children, func(i, j int) bool {
		return moveOrder(children[i].move) < moveOrder(children[j].move)
	})
}

func moveOrder(m shogi.Move) int {
	if !m.Drop {
		return 0
	}
	return 60 - dropRank(m.Piece)
}

// dropRank ranks in-hand kinds, cheapest highest.
func dropRank(p shogi.Piece) int {
	switch p {
	case shogi.Pawn:
		return 7
	case shogi.Lance:
		return 6
	case shogi.Knight:
		return 5
	case shogi.Silver:
		return 4
	case shogi.Gold:
		return 3
	case shogi.Bishop:
		return 2
	case shogi.Rook:
		return 1
	default:
		return 0
	}
}
