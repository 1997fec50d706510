package search

import (
	"context"
	"sort"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// The alpha-beta evaluator refines a proven mate into the shortest,
// cleanest sequence. It minimizes the packed Value for the attacker and
// maximizes it for the defender, consulting the prover's table to skip
// branches already known unprovable and to order moves by disproof
// number.

// rootHorizon is the ply bound of the root search, the tournament-style
// mate-search horizon.
const rootHorizon = 12

// logDepth limits trace logging to shallow nodes.
const logDepth = 3

// Options control optional solver behavior.
type Options struct {
	// Verbose enables progress tracing on the log.
	Verbose bool
}

// Evaluate returns the optimal root value for the attacker, using and
// populating the given tables. Evaluating twice over a warm table
// returns the same value without re-entering the tree.
func Evaluate(ctx context.Context, dfpn *ProofTable, evals *EvalTable, b *shogi.Board, opts Options) Value {
	r := newEvalRun(ctx, dfpn, evals, opts)
	v, _ := r.attacker(b, ZeroValue, NewValue(rootHorizon, 0, 0))
	return v
}

type evalRun struct {
	ctx   context.Context
	dfpn  *ProofTable
	evals *EvalTable

	seen map[uint64]struct{}
	line []shogi.Move

	verbose bool
}

func newEvalRun(ctx context.Context, dfpn *ProofTable, evals *EvalTable, opts Options) *evalRun {
	return &evalRun{
		ctx:     ctx,
		dfpn:    dfpn,
		evals:   evals,
		seen:    map[uint64]struct{}{},
		verbose: opts.Verbose,
	}
}

// oneLess decrements the plies bound, saturating at ZeroValue.
func oneLess(v Value) Value {
	if v.Plies() >= 1 {
		return v.PliesAdded(-1)
	}
	return ZeroValue
}

// attacker searches an attacker-to-move node, minimizing the value.
func (r *evalRun) attacker(b *shogi.Board, alpha, beta Value) (Value, lang.Optional[shogi.Move]) {
	none := lang.Optional[shogi.Move]{}
	hash := uint64(b.Hash())

	if beta.Plies() == 0 {
		// Cannot mate in zero moves.
		return InfValue, none
	}
	if pd, ok := r.dfpn.Fetch(hash); ok && pd == (Pair{MaxNumber, 0}) {
		// Known unprovable.
		return InfValue, none
	}
	r.tracef("start: %v %016x %v %v", shogi.FormatMoves(r.line, moveUSI), hash, alpha, beta)

	if e, ok := r.evals.Fetch(hash); ok {
		return min(e.Value, beta), e.Move
	}

	all := b.AllChecks()
	if len(all) == 0 {
		r.evals.Insert(hash, EvalEntry{Value: InfValue})
		return InfValue, none
	}

	if _, ok := r.seen[hash]; ok {
		return InfValue, none
	}
	r.seen[hash] = struct{}{}

	// Most-likely-mate first.
	r.sortByDisproof(b, all)

	best := none
	for _, mv := range all {
		next := b.Fork()
		next.MakeMove(mv)
		r.line = append(r.line, mv)
		v, _ := r.defender(next, oneLess(alpha), oneLess(beta))
		r.line = r.line[:len(r.line)-1]

		v = v.PliesAdded(1)
		if v < beta {
			best = lang.Some(mv)
			beta = v
		}
		if alpha >= beta {
			delete(r.seen, hash)
			return beta, best
		}
	}
	delete(r.seen, hash)
	if _, ok := best.V(); !ok {
		r.evals.Insert(hash, EvalEntry{Value: InfValue})
		return InfValue, none
	}
	r.evals.Insert(hash, EvalEntry{Value: beta, Move: best})
	r.tracef("end  : %v %016x %v", shogi.FormatMoves(r.line, moveUSI), hash, beta)
	return beta, best
}

// defender searches a defender-to-move node, maximizing the value.
func (r *evalRun) defender(b *shogi.Board, alpha, beta Value) (Value, lang.Optional[shogi.Move]) {
	none := lang.Optional[shogi.Move]{}
	hash := uint64(b.Hash())

	// The pair meaning is reversed with the defender to move: (0,
	// MaxNumber) here is the proven unmate.
	if pd, ok := r.dfpn.Fetch(hash); ok && pd == (Pair{0, MaxNumber}) {
		return InfValue, none
	}
	r.tracef("start: %v %016x %v %v", shogi.FormatMoves(r.line, moveUSI), hash, alpha, beta)

	if alpha >= beta {
		return alpha, none
	}
	if e, ok := r.evals.Fetch(hash); ok {
		return max(e.Value, alpha), e.Move
	}

	all := b.AllEvasions()
	if len(all) == 0 {
		// Mate delivered. The attacker's remaining hand breaks ties
		// between equal-length mates.
		attacker := b.Position().Turn().Opponent()
		value := NewValue(0, uint32(b.Position().Hand(attacker).Total()), 0)
		r.evals.Insert(hash, EvalEntry{Value: value})
		r.tracef("mate : %v %016x %v", shogi.FormatMoves(r.line, moveUSI), hash, value)
		return value, none
	}

	if _, ok := r.seen[hash]; ok {
		return InfValue, none
	}
	r.seen[hash] = struct{}{}

	// Most-likely-escape first, for fast cutoffs.
	r.sortByDisproof(b, all)

	best := none
	for _, mv := range all {
		next := b.Fork()
		next.MakeMove(mv)
		r.line = append(r.line, mv)
		v, _ := r.attacker(next, oneLess(alpha), oneLess(beta))
		r.line = r.line[:len(r.line)-1]

		v = v.PliesAdded(1)
		if v > alpha {
			best = lang.Some(mv)
			alpha = v
		}
		if alpha >= beta {
			delete(r.seen, hash)
			return alpha, best
		}
	}
	delete(r.seen, hash)
	r.evals.Insert(hash, EvalEntry{Value: alpha, Move: best})
	r.tracef("end  : %v %016x %v", shogi.FormatMoves(r.line, moveUSI), hash, alpha)
	return alpha, best
}

// sortByDisproof orders moves by the prover's disproof number of the
// resulting position, ascending. Unknown positions count as 1.
func (r *evalRun) sortByDisproof(b *shogi.Board, moves []shogi.Move) {
	type ranked struct {
		move  shogi.Move
		delta uint32
	}
	all := make([]ranked, len(moves))
	for i, mv := range moves {
		cp := b.Fork()
		cp.MakeMove(mv)
		delta := uint32(1)
		if pd, ok := r.dfpn.Fetch(uint64(cp.Hash())); ok {
			delta = pd.Delta
		}
		all[i] = ranked{move: mv, delta: delta}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].delta < all[j].delta
	})
	for i, c := range all {
		moves[i] = c.move
	}
}

func (r *evalRun) tracef(format string, args ...any) {
	if r.verbose && len(r.line) <= logDepth {
		logw.Debugf(r.ctx, format, args...)
	}
}

func moveUSI(m shogi.Move) string {
	return m.String()
}
