package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

// fullBoard returns an active board with all 52 cards face-down in the
// stock, in deck order.
func fullBoard() *board.Board {
	b := board.New()
	for _, category := range card.Categories {
		for rank := card.Ace; rank <= card.King; rank++ {
			b.Stock = append(b.Stock, card.New(category, rank))
		}
	}
	return b
}

// take pulls the named card out of the stock, turned the requested way
func take(t *testing.T, b *board.Board, id string, faceUp bool) card.Card {
	t.Helper()
	for i, c := range b.Stock {
		if c.ID == id {
			b.Stock = append(b.Stock[:i:i], b.Stock[i+1:]...)
			c.FaceUp = faceUp
			return c
		}
	}
	t.Fatalf("card %s not in stock", id)
	return card.Card{}
}

// pile takes several cards from the stock; ids prefixed with "^" are
// turned face-up.
func pile(t *testing.T, b *board.Board, ids ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, len(ids))
	for _, id := range ids {
		faceUp := false
		if id[0] == '^' {
			faceUp, id = true, id[1:]
		}
		out = append(out, take(t, b, id, faceUp))
	}
	return out
}

// fillFoundation moves A..upTo of category onto its foundation
func fillFoundation(t *testing.T, b *board.Board, category card.Category, upTo card.Rank) {
	t.Helper()
	fi, _ := b.FoundationFor(category)
	for rank := card.Ace; rank <= upTo; rank++ {
		b.Foundations[fi].Cards = append(b.Foundations[fi].Cards, take(t, b, card.MakeID(category, rank), true))
	}
}

// stuckBoard deals every card into the tableaus with only fives and nines
// showing, so nothing can move and stock and waste are empty.
func stuckBoard(t *testing.T) *board.Board {
	t.Helper()
	b := fullBoard()
	tops := []string{"Java-5", "Python-5", "JavaScript-5", "C++-5", "Java-9", "Python-9", "JavaScript-9"}
	topCards := pile(t, b, tops...)

	i := 0
	for len(b.Stock) > 0 {
		last := len(b.Stock) - 1
		b.Tableaus[i%board.NumTableaus] = append(b.Tableaus[i%board.NumTableaus], b.Stock[last])
		b.Stock = b.Stock[:last]
		i++
	}
	for i, c := range topCards {
		b.Tableaus[i] = append(b.Tableaus[i], c.Up())
	}
	return b
}

// testOptions disables the wall clock so tests tick by hand
func testOptions() Options {
	return Options{
		Logger:           zap.NewNop(),
		Seed:             1,
		TickInterval:     -1,
		StrictInvariants: true,
	}
}

func newTestGame(t *testing.T, b *board.Board, opts Options) *Game {
	t.Helper()
	g, err := NewFromBoard(b, opts)
	if err != nil {
		t.Fatalf("NewFromBoard: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func boardDiff(a, b *board.Board) string {
	return cmp.Diff(a, b, cmpopts.EquateEmpty())
}
