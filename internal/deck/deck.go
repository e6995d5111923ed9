package deck

import (
	"math/rand"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

// NewDeck returns the 52 cards, face-down, grouped by category then rank
func NewDeck() []card.Card {
	cards := make([]card.Card, 0, board.DeckSize)
	for _, category := range card.Categories {
		for rank := card.Ace; rank <= card.King; rank++ {
			cards = append(cards, card.New(category, rank))
		}
	}
	return cards
}

// Shuffle returns a uniformly permuted copy of cards
func Shuffle(cards []card.Card, rng *rand.Rand) []card.Card {
	out := make([]card.Card, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal shuffles a fresh deck and lays it out: tableau j receives one card
// in every round i <= j, the card dealt in round j lands face-up, and the
// 24 leftover cards form the face-down stock in remaining deck order.
func Deal(rng *rand.Rand) *board.Board {
	return Layout(Shuffle(NewDeck(), rng))
}

// Layout deals an already ordered deck without shuffling it
func Layout(cards []card.Card) *board.Board {
	b := board.New()

	idx := 0
	for i := 0; i < board.NumTableaus; i++ {
		for j := i; j < board.NumTableaus; j++ {
			c := cards[idx]
			c.FaceUp = i == j
			b.Tableaus[j] = append(b.Tableaus[j], c)
			idx++
		}
	}

	b.Stock = make([]card.Card, 0, len(cards)-idx)
	for _, c := range cards[idx:] {
		b.Stock = append(b.Stock, c.Down())
	}

	return b
}

// NewRand returns a random source for dealing. A zero seed picks a
// non-reproducible one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}
