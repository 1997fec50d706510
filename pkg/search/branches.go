package search

import (
	"context"
	"sort"
	"strings"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/seekerror/stdlib/pkg/lang"
)

// BranchEntry describes one node of the branch tree. The Moves prefix
// identifies the node; PossibleNextMoves are the replies from it that
// keep a mate within the optimal plies budget.
type BranchEntry struct {
	Moves             []shogi.Move `json:"moves"`
	PossibleNextMoves []shogi.Move `json:"possible_next_moves"`
	Eval              *Eval        `json:"eval,omitempty"`
}

// Eval is the unpacked evaluation of a branch node.
type Eval struct {
	NumMoves int32 `json:"num_moves"`
	Pieces   int32 `json:"pieces"`
	Futile   int32 `json:"futile"`
}

func evalOf(v Value) *Eval {
	return &Eval{
		NumMoves: int32(v.Plies()),
		Pieces:   int32(v.Pieces()),
		Futile:   int32(v.Futile()),
	}
}

// FindBranches walks the evaluator's best moves from the root. On the
// attacker's turn only the single best move is kept; on the defender's
// turn every evasion still refuted by the prover is explored, best
// first.
func FindBranches(ctx context.Context, dfpn *ProofTable, evals *EvalTable, b *shogi.Board, opt Value, opts Options) []BranchEntry {
	f := &finder{
		ctx:   ctx,
		dfpn:  dfpn,
		evals: evals,
		opt:   opt,
		opts:  opts,
		memo:  map[string]BranchEntry{},
	}
	f.find(b, nil)

	ret := make([]BranchEntry, 0, len(f.memo))
	for _, e := range f.memo {
		ret = append(ret, e)
	}
	sort.Slice(ret, func(i, j int) bool {
		mi, mj := ret[i].Moves, ret[j].Moves
		if len(mi) != len(mj) {
			return len(mi) < len(mj)
		}
		return sequenceKey(mi) < sequenceKey(mj)
	})
	return ret
}

type finder struct {
	ctx   context.Context
	dfpn  *ProofTable
	evals *EvalTable
	opt   Value
	opts  Options

	memo map[string]BranchEntry
}

// find returns true iff the branch is worth recording.
func (f *finder) find(b *shogi.Board, current []shogi.Move) bool {
	turn := len(current)
	if turn > int(f.opt.Plies()) {
		return false
	}
	if turn%2 == 1 && DfPn(f.dfpn, b) != (Pair{MaxNumber, 0}) {
		// The defender escaped; the reply is not worth following.
		return false
	}

	beta := f.opt.PliesAdded(int32(turn))
	r := newEvalRun(f.ctx, f.dfpn, f.evals, f.opts)
	var value Value
	var mv lang.Optional[shogi.Move]
	if turn%2 == 0 {
		value, mv = r.attacker(b, ZeroValue, beta)
	} else {
		value, mv = r.defender(b, ZeroValue, beta)
	}

	var all []shogi.Move
	if turn%2 == 0 {
		best, ok := mv.V()
		if !ok {
			return false
		}
		all = []shogi.Move{best}
	} else {
		all = b.AllEvasions()
		if best, ok := mv.V(); ok {
			for i, m := range all {
				if m.Equals(best) {
					all = append(all[:i], all[i+1:]...)
					break
				}
			}
			all = append([]shogi.Move{best}, all...)
		}
	}

	var possible []shogi.Move
	for _, m := range all {
		next := b.Fork()
		next.MakeMove(m)
		if f.find(next, append(append([]shogi.Move{}, current...), m)) {
			possible = append(possible, m)
		}
	}

	f.memo[sequenceKey(current)] = BranchEntry{
		Moves:             append([]shogi.Move{}, current...),
		PossibleNextMoves: possible,
		Eval:              evalOf(value),
	}
	return true
}

func sequenceKey(moves []shogi.Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
