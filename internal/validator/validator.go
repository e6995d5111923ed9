package validator

import (
	"fmt"
	"strings"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found
func (r ValidationResults) OK() bool {
	return len(r.Errors) == 0
}

func (r ValidationResults) String() string {
	if r.OK() {
		return "board is valid"
	}
	return strings.Join(r.Errors, "; ")
}

type Validator struct {
	Board   *board.Board
	Results ValidationResults
}

func NewValidator(b *board.Board) *Validator {
	return &Validator{
		Board:   b,
		Results: ValidationResults{},
	}
}

// Validate checks every board invariant and returns the collected results
func (v *Validator) Validate() ValidationResults {
	v.Results = ValidationResults{}

	v.validateCardSet()
	v.validateFoundations()
	v.validateStock()
	v.validateWaste()
	v.validateTableaus()
	v.validateCounters()

	return v.Results
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateCardSet checks that all 52 cards are present exactly once
func (v *Validator) validateCardSet() {
	seen := make(map[string]board.ZoneRef)

	v.Board.Each(func(ref board.ZoneRef, idx int, c card.Card) {
		if !c.Category.Valid() || !c.Rank.Valid() {
			v.errorf("invalid card %q in %s", c.ID, ref)
			return
		}
		if c.ID != card.MakeID(c.Category, c.Rank) {
			v.errorf("card %q in %s does not match its category and rank", c.ID, ref)
		}
		if prev, dup := seen[c.ID]; dup {
			v.errorf("duplicate card %s in %s and %s", c.ID, prev, ref)
			return
		}
		seen[c.ID] = ref
	})

	missing := []string{}
	for _, category := range card.Categories {
		for rank := card.Ace; rank <= card.King; rank++ {
			id := card.MakeID(category, rank)
			if _, ok := seen[id]; !ok {
				missing = append(missing, id)
			}
		}
	}

	if len(missing) > 0 {
		v.errorf("missing cards: %s", strings.Join(missing, ", "))
	}
	if n := v.Board.CardCount(); n > board.DeckSize {
		v.errorf("board holds %d cards, more than a deck of %d", n, board.DeckSize)
	}
}

// validateFoundations checks that each foundation holds A..n of its category
func (v *Validator) validateFoundations() {
	bound := make(map[card.Category]int)

	for i, f := range v.Board.Foundations {
		if !f.Category.Valid() {
			v.errorf("foundation %d has no valid category", i)
			continue
		}
		if prev, dup := bound[f.Category]; dup {
			v.errorf("foundations %d and %d are both bound to %s", prev, i, f.Category)
		}
		bound[f.Category] = i

		for n, c := range f.Cards {
			if c.Category != f.Category {
				v.errorf("foundation %d (%s) holds %s", i, f.Category, c.ID)
			}
			if int(c.Rank) != n+1 {
				v.errorf("foundation %d (%s) position %d holds %s", i, f.Category, n+1, c.ID)
			}
			if !c.FaceUp {
				v.errorf("foundation %d holds face-down card %s", i, c.ID)
			}
		}
	}
}

func (v *Validator) validateStock() {
	for _, c := range v.Board.Stock {
		if c.FaceUp {
			v.errorf("stock holds face-up card %s", c.ID)
		}
	}
}

func (v *Validator) validateWaste() {
	for _, c := range v.Board.Waste {
		if !c.FaceUp {
			v.errorf("waste holds face-down card %s", c.ID)
		}
	}
}

// validateTableaus checks that no face-down card lies above a face-up one
func (v *Validator) validateTableaus() {
	for i, tableau := range v.Board.Tableaus {
		faceUpSeen := false
		for _, c := range tableau {
			if c.FaceUp {
				faceUpSeen = true
				continue
			}
			if faceUpSeen {
				v.errorf("tableau %d has face-down card %s above a face-up card", i, c.ID)
			}
		}

		if top, ok := board.Top(tableau); ok && !top.FaceUp {
			v.warnf("tableau %d top card %s is face-down", i, top.ID)
		}
	}
}

func (v *Validator) validateCounters() {
	if v.Board.Moves < 0 {
		v.errorf("negative move count: %d", v.Board.Moves)
	}
	if v.Board.Elapsed < 0 {
		v.errorf("negative elapsed time: %d", v.Board.Elapsed)
	}
	if v.Board.Status == board.Won && v.Board.FoundationCount() != board.DeckSize {
		v.errorf("status is won with %d cards on the foundations", v.Board.FoundationCount())
	}
}
