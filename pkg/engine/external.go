// Package engine contains the external USI mate-engine wrapper and the
// persistent answer cache used by the command-line tool.
package engine

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/herohde/tsume/pkg/shogi"
	"github.com/seekerror/logw"
)

// External delegates mate solving to an external USI engine over stdio.
type External struct {
	path string
}

func NewExternal(path string) *External {
	return &External{path: path}
}

// Solve asks the engine for a mate sequence from the SFEN position.
// Returns the sequence and true on mate, or false on "nomate".
func (e *External) Solve(ctx context.Context, sfen string) ([]shogi.Move, bool, error) {
	cmd := exec.CommandContext(ctx, e.path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, false, fmt.Errorf("engine stdin: %v", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, false, fmt.Errorf("engine stdout: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, false, fmt.Errorf("engine %v failed to start: %v", e.path, err)
	}
	defer func() {
		_, _ = fmt.Fprintln(stdin, "quit")
		_ = stdin.Close()
		_ = cmd.Wait()
	}()

	preamble := fmt.Sprintf("setoption name USI_Hash value 128\nisready\nusinewgame\nposition sfen %v\ngo\n", sfen)
	logw.Debugf(ctx, ">> %v", preamble)
	if _, err := fmt.Fprint(stdin, preamble); err != nil {
		return nil, false, fmt.Errorf("engine write: %v", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		logw.Debugf(ctx, "<< %v", line)

		rest, ok := strings.CutPrefix(line, "checkmate ")
		if !ok {
			continue
		}

		rest = strings.TrimSpace(rest)
		if rest == "nomate" {
			return nil, false, nil
		}
		var moves []shogi.Move
		for _, str := range strings.Fields(rest) {
			m, err := shogi.ParseMove(str)
			if err != nil {
				return nil, false, fmt.Errorf("invalid engine move '%v': %v", str, err)
			}
			moves = append(moves, m)
		}
		return moves, true, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("engine read: %v", err)
	}
	return nil, false, fmt.Errorf("engine %v closed without a checkmate line", e.path)
}
