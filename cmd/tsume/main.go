package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/herohde/tsume/pkg/engine"
	"github.com/herohde/tsume/pkg/search"
	"github.com/herohde/tsume/pkg/shogi"
	"github.com/herohde/tsume/pkg/shogi/kif"
	"github.com/herohde/tsume/pkg/shogi/notation"
	"github.com/herohde/tsume/pkg/shogi/sfen"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 3, 0)

var (
	verbose    = flag.Bool("verbose", false, "Emit progress and tracing to stderr")
	output     = flag.String("output", "text", "Output format: text or json")
	moveFormat = flag.String("move-format", "traditional", "Move format: usi, kif, csa, official or traditional")
	enginePath = flag.String("engine-path", "", "Delegate to an external USI mate engine instead of the internal solver")
	cacheDir   = flag.String("cache", "", "Directory for the persistent solved-position cache")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: tsume [options] < position

TSUME reads a position in SFEN or KIF notation from stdin and prints the
mate sequence, or "nomate".
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	format, err := notation.ParseFormat(*moveFormat)
	if err != nil {
		printInvalid(err)
		return
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		logw.Exitf(ctx, "Failed to read input: %v", err)
	}

	pos, err := parsePosition(string(input))
	if err != nil {
		printInvalid(err)
		return
	}
	position := sfen.Encode(pos, 1)
	if *verbose {
		logw.Infof(ctx, "tsume %v: %v", version, position)
	}

	moves, resolution, err := solve(ctx, pos, position)
	if err != nil {
		logw.Exitf(ctx, "Search failed: %v", err)
	}
	switch resolution {
	case search.Mate:
		if err := print(pos, moves, format); err != nil {
			logw.Exitf(ctx, "Failed to print sequence: %v", err)
		}
	default:
		// NoMate and Unknown are distinct outcomes: a proven unmate
		// versus an exhausted search budget.
		fmt.Println(resolution)
	}
}

// parsePosition sniffs the record type and decodes the position. Input
// beginning with a KIF header is KIF; anything else is read as SFEN.
func parsePosition(input string) (*shogi.Position, error) {
	if kif.Detect(input) {
		return kif.Parse(input)
	}
	pos, _, err := sfen.Decode(firstLine(input))
	return pos, err
}

func firstLine(input string) string {
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			return input[:i]
		}
	}
	return input
}

// solve produces the principal mate sequence and resolution, via the
// external engine, the cache or the internal solver.
func solve(ctx context.Context, pos *shogi.Position, position string) ([]shogi.Move, search.Resolution, error) {
	if *enginePath != "" {
		moves, mate, err := engine.NewExternal(*enginePath).Solve(ctx, position)
		if err != nil {
			return nil, search.Unknown, err
		}
		if !mate {
			return nil, search.NoMate, nil
		}
		return moves, search.Mate, nil
	}

	var cache *engine.Cache
	if *cacheDir != "" {
		c, err := engine.OpenCache(*cacheDir)
		if err != nil {
			logw.Errorf(ctx, "Cache unavailable: %v", err)
		} else {
			cache = c
			defer cache.Close()

			if entry, ok, err := cache.Lookup(position); err == nil && ok {
				if resolution, ok := search.ParseResolution(entry.Resolution); ok {
					if *verbose {
						logw.Infof(ctx, "Cache hit: %v", resolution)
					}
					moves, err := parseMoves(entry.Moves)
					if err == nil {
						return moves, resolution, nil
					}
					logw.Errorf(ctx, "Broken cache entry: %v", err)
				}
			}
		}
	}

	solver := search.NewSolver(search.Options{Verbose: *verbose})
	answer := solver.Search(ctx, pos, 0)
	if *verbose {
		logw.Infof(ctx, "Resolution: %v in %.3fs", answer.Resolution, answer.Elapsed)
	}

	var moves []shogi.Move
	if answer.Resolution == search.Mate {
		moves = solver.MainLine(ctx, pos)
	}
	if cache != nil {
		entry := engine.CacheEntry{
			Resolution: answer.Resolution.String(),
			Elapsed:    answer.Elapsed,
		}
		for _, m := range moves {
			entry.Moves = append(entry.Moves, m.String())
		}
		if err := cache.Store(position, entry); err != nil {
			logw.Errorf(ctx, "Cache store failed: %v", err)
		}
	}
	return moves, answer.Resolution, nil
}

func parseMoves(strs []string) ([]shogi.Move, error) {
	var moves []shogi.Move
	for _, s := range strs {
		m, err := shogi.ParseMove(s)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// printInvalid surfaces malformed input as an invalid answer with a
// textual reason. Bad input is recoverable, not a fault.
func printInvalid(err error) {
	answer := search.Answer{Resolution: search.Invalid, Reason: err.Error()}
	if *output == "json" {
		if data, err := json.Marshal(answer); err == nil {
			fmt.Println(string(data))
			return
		}
	}
	fmt.Printf("%v: %v\n", answer.Resolution, answer.Reason)
}

// print renders the sequence in the selected move and output formats.
func print(pos *shogi.Position, moves []shogi.Move, format notation.Format) error {
	b := shogi.NewBoard(shogi.DefaultZobrist(), pos)

	var rendered []string
	for _, m := range moves {
		str, err := notation.Render(b.Position(), m, format)
		if err != nil {
			return err
		}
		rendered = append(rendered, str)
		b.MakeMove(m)
	}

	switch *output {
	case "json":
		data, err := json.Marshal(rendered)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		for i, str := range rendered {
			fmt.Printf("%2d: %v\n", i+1, str)
		}
	default:
		return fmt.Errorf("unknown output format: '%v'", *output)
	}
	return nil
}
