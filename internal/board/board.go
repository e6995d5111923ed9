// Package board holds the solitaire table: stock, waste, the four
// category-bound foundations and the seven tableaus, plus the session
// counters. A Board is a plain value; the engine owns the live one and hands
// hosts deep copies.
package board

import (
	"fmt"

	"github.com/arcanaland/patience/internal/card"
)

const (
	DeckSize       = 52
	NumFoundations = 4
	NumTableaus    = 7
	DrawCount      = 3
)

// Status is the progress of a game
type Status int

const (
	Active Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether no further moves are accepted
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// ParseStatus is the inverse of Status.String
func ParseStatus(s string) (Status, error) {
	switch s {
	case "active", "":
		return Active, nil
	case "won":
		return Won, nil
	case "lost":
		return Lost, nil
	}
	return 0, fmt.Errorf("unknown status: %q", s)
}

// Foundation is a goal pile bound to a single category
type Foundation struct {
	Category card.Category
	Cards    []card.Card
}

// Top returns the last card of the foundation
func (f Foundation) Top() (card.Card, bool) {
	return top(f.Cards)
}

// Board represents the whole table at one point in time
type Board struct {
	Stock       []card.Card // face-down, top = last
	Waste       []card.Card // face-up, only the last card is playable
	Foundations [NumFoundations]Foundation
	Tableaus    [NumTableaus][]card.Card

	Moves   int    // accepted moves since the deal
	Elapsed int    // seconds on the session clock
	Status  Status // Active until won or lost
}

// New returns an empty board whose foundations are bound to the categories
// in card.Categories order.
func New() *Board {
	b := &Board{}
	for i, c := range card.Categories {
		b.Foundations[i].Category = c
	}
	return b
}

// Clone returns a deep copy of b
func (b *Board) Clone() *Board {
	out := *b
	out.Stock = cloneCards(b.Stock)
	out.Waste = cloneCards(b.Waste)
	for i := range b.Foundations {
		out.Foundations[i].Cards = cloneCards(b.Foundations[i].Cards)
	}
	for i := range b.Tableaus {
		out.Tableaus[i] = cloneCards(b.Tableaus[i])
	}
	return &out
}

// FoundationFor returns the index of the foundation bound to category c
func (b *Board) FoundationFor(c card.Category) (int, bool) {
	for i, f := range b.Foundations {
		if f.Category == c {
			return i, true
		}
	}
	return -1, false
}

// FoundationCount returns the number of cards across all foundations
func (b *Board) FoundationCount() int {
	n := 0
	for _, f := range b.Foundations {
		n += len(f.Cards)
	}
	return n
}

// CardCount returns the number of cards across all zones
func (b *Board) CardCount() int {
	n := len(b.Stock) + len(b.Waste) + b.FoundationCount()
	for _, t := range b.Tableaus {
		n += len(t)
	}
	return n
}

// Cards returns the contents of the zone referenced by ref
func (b *Board) Cards(ref ZoneRef) ([]card.Card, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	switch ref.Kind {
	case Stock:
		return b.Stock, nil
	case Waste:
		return b.Waste, nil
	case FoundationZone:
		return b.Foundations[ref.Index].Cards, nil
	default:
		return b.Tableaus[ref.Index], nil
	}
}

// SetCards replaces the contents of the zone referenced by ref
func (b *Board) SetCards(ref ZoneRef, cards []card.Card) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	switch ref.Kind {
	case Stock:
		b.Stock = cards
	case Waste:
		b.Waste = cards
	case FoundationZone:
		b.Foundations[ref.Index].Cards = cards
	default:
		b.Tableaus[ref.Index] = cards
	}
	return nil
}

// Locate finds the zone and position of the card with the given ID
func (b *Board) Locate(id string) (ZoneRef, int, bool) {
	for _, ref := range AllZones() {
		cards, _ := b.Cards(ref)
		for i, c := range cards {
			if c.ID == id {
				return ref, i, true
			}
		}
	}
	return ZoneRef{}, -1, false
}

// Each calls fn for every card on the board together with its zone
func (b *Board) Each(fn func(ref ZoneRef, idx int, c card.Card)) {
	for _, ref := range AllZones() {
		cards, _ := b.Cards(ref)
		for i, c := range cards {
			fn(ref, i, c)
		}
	}
}

// TopFaceUp returns the last face-up card of a tableau
func TopFaceUp(tableau []card.Card) (card.Card, bool) {
	for i := len(tableau) - 1; i >= 0; i-- {
		if tableau[i].FaceUp {
			return tableau[i], true
		}
	}
	return card.Card{}, false
}

// Top returns the last card of a zone
func Top(cards []card.Card) (card.Card, bool) {
	return top(cards)
}

func top(cards []card.Card) (card.Card, bool) {
	if len(cards) == 0 {
		return card.Card{}, false
	}
	return cards[len(cards)-1], true
}

func cloneCards(cards []card.Card) []card.Card {
	if cards == nil {
		return nil
	}
	out := make([]card.Card, len(cards))
	copy(out, cards)
	return out
}
