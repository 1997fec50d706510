package search

import (
	"context"
	"time"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Resolution classifies the outcome of a mate search.
type Resolution uint8

const (
	// Mate is a proven forced mate for the side to move.
	Mate Resolution = iota
	// NoMate is a proven unmate.
	NoMate
	// Unknown means the search budget was exhausted without resolution.
	Unknown
	// Invalid means the input position could not be understood.
	Invalid
)

func (r Resolution) String() string {
	switch r {
	case Mate:
		return "mate"
	case NoMate:
		return "nomate"
	case Unknown:
		return "unknown"
	case Invalid:
		return "invalid"
	default:
		return "?"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseResolution parses a resolution name, as printed by String.
func ParseResolution(s string) (Resolution, bool) {
	switch s {
	case "mate":
		return Mate, true
	case "nomate":
		return NoMate, true
	case "unknown":
		return Unknown, true
	case "invalid":
		return Invalid, true
	default:
		return 0, false
	}
}

// Answer is the result of a mate search. Branches is empty unless the
// resolution is Mate; callers inspect Resolution.
type Answer struct {
	Resolution Resolution    `json:"resolution"`
	Reason     string        `json:"reason,omitempty"`
	Branches   []BranchEntry `json:"branches"`
	// Elapsed is the wall-clock search time in seconds.
	Elapsed float64 `json:"elapsed"`
}

// tableCapacity is the fixed bucket count of both tables.
const tableCapacity = 1 << 16

// Solver holds the prover and evaluator tables across the phases of one
// or more queries. Not safe for concurrent use.
type Solver struct {
	dfpn  *ProofTable
	evals *EvalTable
	opts  Options
}

func NewSolver(opts Options) *Solver {
	return &Solver{
		dfpn:  NewTable[Pair](tableCapacity),
		evals: NewTable[EvalEntry](tableCapacity),
		opts:  opts,
	}
}

// Search decides whether the position is a forced mate for the side to
// move and, if so, extracts the branch tree. The timeout is accepted at
// the API boundary but currently ignored; callers may abandon the search
// by other means.
func (s *Solver) Search(ctx context.Context, pos *shogi.Position, timeoutMS uint64) Answer {
	start := time.Now()
	b := shogi.NewBoard(shogi.DefaultZobrist(), pos)

	r := DfPn(s.dfpn, b)
	if s.opts.Verbose {
		logw.Debugf(ctx, "df-pn root: (%v, %v)", r.Phi, r.Delta)
	}
	switch {
	case r == (Pair{MaxNumber, 0}):
		return Answer{Resolution: NoMate, Elapsed: seconds(start)}
	case r != (Pair{0, MaxNumber}):
		return Answer{Resolution: Unknown, Elapsed: seconds(start)}
	}

	value := Evaluate(ctx, s.dfpn, s.evals, b, s.opts)
	if s.opts.Verbose {
		logw.Debugf(ctx, "evaluation: %v", value)
	}
	if !value.IsMate() {
		return Answer{Resolution: NoMate, Elapsed: seconds(start)}
	}

	branches := FindBranches(ctx, s.dfpn, s.evals, b, value, s.opts)
	return Answer{Resolution: Mate, Branches: branches, Elapsed: seconds(start)}
}

// MainLine extracts the principal mate sequence by walking best moves
// over the warm tables. Returns nil if the position is not a proven
// mate.
func (s *Solver) MainLine(ctx context.Context, pos *shogi.Position) []shogi.Move {
	b := shogi.NewBoard(shogi.DefaultZobrist(), pos)

	value := Evaluate(ctx, s.dfpn, s.evals, b, s.opts)
	if !value.IsMate() {
		return nil
	}

	var moves []shogi.Move
	beta := value.PliesAdded(1)
	for turn := 0; ; turn++ {
		r := newEvalRun(ctx, s.dfpn, s.evals, s.opts)
		var mv lang.Optional[shogi.Move]
		if turn%2 == 0 {
			_, mv = r.attacker(b, ZeroValue, beta)
		} else {
			_, mv = r.defender(b, ZeroValue, beta)
		}
		m, ok := mv.V()
		if !ok {
			return moves
		}
		moves = append(moves, m)
		b.MakeMove(m)
		beta = beta.PliesAdded(-1)
	}
}

// Search runs a one-shot query with fresh tables.
func Search(ctx context.Context, pos *shogi.Position, timeoutMS uint64) Answer {
	return NewSolver(Options{}).Search(ctx, pos, timeoutMS)
}

func seconds(start time.Time) float64 {
	return time.Since(start).Seconds()
}
