package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/herohde/tsume/pkg/shogi/kif"
	"github.com/herohde/tsume/pkg/shogi/sfen"
	"github.com/seekerror/logw"
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: tosfen [file]

TOSFEN reads a KIF record from the given file, or stdin, and prints the
position in SFEN notation.
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			logw.Exitf(ctx, "Failed to open input: %v", err)
		}
		defer f.Close()
		in = f
	}
	input, err := io.ReadAll(in)
	if err != nil {
		logw.Exitf(ctx, "Failed to read input: %v", err)
	}

	pos, err := kif.Parse(string(input))
	if err != nil {
		// Malformed input is recoverable, not a fault.
		logw.Errorf(ctx, "Invalid KIF record: %v", err)
		fmt.Println("invalid")
		return
	}
	fmt.Println(sfen.Encode(pos, 1))
}
