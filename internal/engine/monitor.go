package engine

import (
	"fmt"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/validator"
)

// MoveKind classifies the entries returned by LegalMoves
type MoveKind int

const (
	DrawMove MoveKind = iota
	RecycleMove
	PlaceMove
)

// Move is one action currently accepted by the rules
type Move struct {
	Kind MoveKind
	Card string
	From board.ZoneRef
	To   board.ZoneRef
}

func (m Move) String() string {
	switch m.Kind {
	case DrawMove:
		return "draw"
	case RecycleMove:
		return "recycle"
	default:
		return fmt.Sprintf("%s %s -> %s", m.Card, m.From, m.To)
	}
}

// LegalMoves lists every move available on b: drawing or recycling, the
// waste top onto any foundation or tableau, and every face-up tableau card
// onto the foundations (when it is the last card) and onto other tableaus.
func LegalMoves(b *board.Board) []Move {
	var moves []Move

	switch {
	case len(b.Stock) > 0:
		moves = append(moves, Move{Kind: DrawMove, From: board.StockRef(), To: board.WasteRef()})
	case len(b.Waste) > 0:
		moves = append(moves, Move{Kind: RecycleMove, From: board.WasteRef(), To: board.StockRef()})
	}

	if top, ok := board.Top(b.Waste); ok {
		for i, f := range b.Foundations {
			if validator.CanMoveToFoundation(top, f) {
				moves = append(moves, Move{Kind: PlaceMove, Card: top.ID, From: board.WasteRef(), To: board.FoundationRef(i)})
			}
		}
		for i, t := range b.Tableaus {
			if validator.CanMoveToTableau(top, t) {
				moves = append(moves, Move{Kind: PlaceMove, Card: top.ID, From: board.WasteRef(), To: board.TableauRef(i)})
			}
		}
	}

	for i, tableau := range b.Tableaus {
		for j, c := range tableau {
			if !validator.IsMovableRun(tableau, j) {
				continue
			}

			if validator.IsTerminal(tableau, j) {
				for k, f := range b.Foundations {
					if validator.CanMoveToFoundation(c, f) {
						moves = append(moves, Move{Kind: PlaceMove, Card: c.ID, From: board.TableauRef(i), To: board.FoundationRef(k)})
					}
				}
			}

			for k, target := range b.Tableaus {
				if k == i {
					continue
				}
				if validator.CanMoveToTableau(c, target) {
					moves = append(moves, Move{Kind: PlaceMove, Card: c.ID, From: board.TableauRef(i), To: board.TableauRef(k)})
				}
			}
		}
	}

	return moves
}

// HasAvailableMoves reports whether any legal move exists on b
func HasAvailableMoves(b *board.Board) bool {
	return len(LegalMoves(b)) > 0
}

// isWon reports whether every card has reached the foundations
func isWon(b *board.Board) bool {
	return b.FoundationCount() == board.DeckSize
}
