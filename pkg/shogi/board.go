package shogi

import (
	"fmt"
)

// Board wraps a position with an incrementally maintained zobrist hash.
// The hash equals a full recomputation after every mutation.
type Board struct {
	zt   *ZobristTable
	pos  Position
	hash ZobristHash
}

// NewBoard returns a new board for the position. The initial hash is
// computed by a full scan.
func NewBoard(zt *ZobristTable, pos *Position) *Board {
	return &Board{zt: zt, pos: *pos, hash: zt.Hash(pos)}
}

// Position returns the wrapped position. The caller must not mutate it.
func (b *Board) Position() *Position {
	return &b.pos
}

// Hash returns the cached zobrist hash.
func (b *Board) Hash() ZobristHash {
	return b.hash
}

// Fork returns a deep copy of the board, hash preserved.
func (b *Board) Fork() *Board {
	cp := *b
	return &cp
}

// AllChecks returns all legal moves of the side to move that give check.
func (b *Board) AllChecks() []Move {
	return b.pos.AllChecks()
}

// AllEvasions returns all legal moves of the side to move.
func (b *Board) AllEvasions() []Move {
	return b.pos.AllEvasions()
}

// MakeMove applies the move and updates the hash incrementally. It
// panics if the position rejects the move: generated moves never do.
func (b *Board) MakeMove(m Move) {
	c := b.pos.turn

	if m.Drop {
		if err := b.pos.apply(m); err != nil {
			panic(fmt.Sprintf("make move %v: %v", m, err))
		}
		b.hash ^= b.zt.board[m.To][c][m.Piece]
		b.hash ^= b.zt.hands[c][handIndex(m.Piece)][b.pos.hands[c].Count(m.Piece)]
		b.hash ^= b.zt.color
		return
	}

	moved := b.pos.cells[m.From].piece
	if target := b.pos.cells[m.To]; target.piece != NoPiece {
		captured := target.piece.Demoted()
		b.hash ^= b.zt.board[m.To][target.color][target.piece]
		b.hash ^= b.zt.hands[c][handIndex(captured)][b.pos.hands[c].Count(captured)]
	}
	if err := b.pos.apply(m); err != nil {
		panic(fmt.Sprintf("make move %v: %v", m, err))
	}
	b.hash ^= b.zt.board[m.From][c][moved]
	b.hash ^= b.zt.board[m.To][c][b.pos.cells[m.To].piece]
	b.hash ^= b.zt.color
}

// GivePiece transfers one piece of the given kind from the hand of the
// side to move to the opponent's hand, updating the hash. The turn does
// not change.
func (b *Board) GivePiece(k Piece) error {
	c := b.pos.turn
	o := c.Opponent()

	if err := b.pos.givePiece(k); err != nil {
		return err
	}
	b.hash ^= b.zt.hands[c][handIndex(k)][b.pos.hands[c].Count(k)]
	b.hash ^= b.zt.hands[o][handIndex(k)][b.pos.hands[o].Count(k)-1]
	return nil
}
