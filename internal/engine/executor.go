package engine

import (
	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/validator"
)

// The functions in this file never modify their input. Each returns a new
// board with the move applied and the move counter advanced, or an error
// wrapping ErrInvalidMove.

// applyDraw turns up to three cards from the stock onto the waste, or
// recycles the waste into the stock when the stock is exhausted.
func applyDraw(b *board.Board) (*board.Board, error) {
	if !validator.CanDraw(b) {
		return nil, invalid("stock and waste are both empty")
	}

	next := b.Clone()

	if len(next.Stock) == 0 {
		stock := make([]card.Card, 0, len(next.Waste))
		for i := len(next.Waste) - 1; i >= 0; i-- {
			stock = append(stock, next.Waste[i].Down())
		}
		next.Stock = stock
		next.Waste = nil
	} else {
		n := min(board.DrawCount, len(next.Stock))
		for i := 0; i < n; i++ {
			last := len(next.Stock) - 1
			next.Waste = append(next.Waste, next.Stock[last].Up())
			next.Stock = next.Stock[:last]
		}
	}

	next.Moves++
	return next, nil
}

// applyMove moves the card with the given ID, together with every card
// stacked above it, from one pile to another.
func applyMove(b *board.Board, cardID string, from, to board.ZoneRef) (*board.Board, error) {
	if err := from.Validate(); err != nil {
		return nil, invalid("%v", err)
	}
	if err := to.Validate(); err != nil {
		return nil, invalid("%v", err)
	}
	if from.Kind != board.Waste && from.Kind != board.TableauZone {
		return nil, invalid("cards cannot be taken from the %s", from.Kind)
	}
	if to.Kind != board.FoundationZone && to.Kind != board.TableauZone {
		return nil, invalid("cards cannot be placed on the %s", to.Kind)
	}
	if from == to {
		return nil, invalid("%s is both source and target", from)
	}

	src, _ := b.Cards(from)
	idx := indexOf(src, cardID)
	if idx < 0 {
		return nil, invalid("%s is not in %s", cardID, from)
	}
	c := src[idx]
	if !c.FaceUp {
		return nil, invalid("%s is face-down", cardID)
	}
	if from.Kind == board.Waste && !validator.IsTerminal(src, idx) {
		return nil, invalid("only the top waste card can be played")
	}

	switch to.Kind {
	case board.FoundationZone:
		if !validator.IsTerminal(src, idx) {
			return nil, invalid("only a single card can go to a foundation")
		}
		if !validator.CanMoveToFoundation(c, b.Foundations[to.Index]) {
			return nil, invalid("%s does not fit on %s", cardID, to)
		}
	case board.TableauZone:
		if !validator.IsMovableRun(src, idx) {
			return nil, invalid("cards above %s are not all face-up", cardID)
		}
		if !validator.CanMoveToTableau(c, b.Tableaus[to.Index]) {
			return nil, invalid("%s does not fit on %s", cardID, to)
		}
	}

	next := b.Clone()

	src, _ = next.Cards(from)
	moved := src[idx:]
	rest := src[:idx:idx]
	if from.Kind == board.TableauZone {
		rest = reveal(rest)
	}

	dst, _ := next.Cards(to)
	dst = append(dst[:len(dst):len(dst)], moved...)

	_ = next.SetCards(from, rest)
	_ = next.SetCards(to, dst)

	next.Moves++
	return next, nil
}

// applyPromote sends a card straight to the foundation of its category. The
// card has to be the top of the waste or the last card of a tableau.
func applyPromote(b *board.Board, cardID string) (*board.Board, error) {
	from, idx, ok := b.Locate(cardID)
	if !ok {
		return nil, invalid("unknown card %s", cardID)
	}
	if from.Kind != board.Waste && from.Kind != board.TableauZone {
		return nil, invalid("%s cannot be promoted from the %s", cardID, from.Kind)
	}

	src, _ := b.Cards(from)
	if !validator.IsTerminal(src, idx) {
		return nil, invalid("%s is covered", cardID)
	}

	fi, ok := b.FoundationFor(src[idx].Category)
	if !ok {
		return nil, invalid("no foundation for %s", src[idx].Category)
	}
	return applyMove(b, cardID, from, board.FoundationRef(fi))
}

// reveal turns the new top card of a tableau face-up
func reveal(tableau []card.Card) []card.Card {
	if n := len(tableau); n > 0 && !tableau[n-1].FaceUp {
		tableau[n-1] = tableau[n-1].Up()
	}
	return tableau
}

func indexOf(cards []card.Card, id string) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
