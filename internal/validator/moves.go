package validator

import (
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

// CanMoveToFoundation reports whether c may be placed on foundation f.
// The card must belong to the foundation's category and continue its
// ascending run from the Ace.
func CanMoveToFoundation(c card.Card, f board.Foundation) bool {
	if c.Category != f.Category {
		return false
	}
	top, ok := f.Top()
	if !ok {
		return c.Rank == card.Ace
	}
	return c.Rank == top.Rank+1
}

// CanMoveToTableau reports whether c may be placed on tableau. An empty
// tableau only takes a King; otherwise the card must be one rank below the
// tableau's face-up top and of a different category.
func CanMoveToTableau(c card.Card, tableau []card.Card) bool {
	if len(tableau) == 0 {
		return c.Rank == card.King
	}
	top, ok := board.TopFaceUp(tableau)
	if !ok {
		return false
	}
	return c.Category != top.Category && c.Rank == top.Rank-1
}

// IsMovableRun reports whether the cards of tableau from idx to the end
// are all face-up and can therefore be lifted together.
func IsMovableRun(tableau []card.Card, idx int) bool {
	if idx < 0 || idx >= len(tableau) {
		return false
	}
	for _, c := range tableau[idx:] {
		if !c.FaceUp {
			return false
		}
	}
	return true
}

// IsTerminal reports whether idx addresses the last card of cards
func IsTerminal(cards []card.Card, idx int) bool {
	return len(cards) > 0 && idx == len(cards)-1
}

// CanDraw reports whether the stock can be drawn from or the waste
// recycled back into it.
func CanDraw(b *board.Board) bool {
	return len(b.Stock) > 0 || len(b.Waste) > 0
}
