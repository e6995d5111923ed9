package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/validator"
)

func TestNewDeck(t *testing.T) {
	cards := NewDeck()
	require.Len(t, cards, board.DeckSize)

	seen := make(map[string]bool)
	for _, c := range cards {
		assert.False(t, c.FaceUp)
		assert.False(t, seen[c.ID], "duplicate %s", c.ID)
		seen[c.ID] = true
	}
}

func TestShuffleKeepsCards(t *testing.T) {
	cards := NewDeck()
	shuffled := Shuffle(cards, NewRand(42))

	assert.ElementsMatch(t, cards, shuffled)
	assert.NotEqual(t, cards, shuffled)
	assert.Equal(t, "Java-A", cards[0].ID, "input must not be reordered")
}

func TestShuffleIsReproducible(t *testing.T) {
	a := Shuffle(NewDeck(), NewRand(7))
	b := Shuffle(NewDeck(), NewRand(7))
	assert.Equal(t, a, b)
}

func TestDealShape(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := Deal(NewRand(seed))

		assert.Equal(t, board.Active, b.Status)
		assert.Zero(t, b.Moves)
		assert.Zero(t, b.Elapsed)
		assert.Empty(t, b.Waste)
		assert.Zero(t, b.FoundationCount())

		for i, tableau := range b.Tableaus {
			require.Len(t, tableau, i+1)
			for j, c := range tableau {
				assert.Equal(t, j == i, c.FaceUp, "tableau %d card %d", i, j)
			}
		}

		require.Len(t, b.Stock, 24)
		for _, c := range b.Stock {
			assert.False(t, c.FaceUp)
		}

		results := validator.NewValidator(b).Validate()
		assert.Empty(t, results.Errors)
		assert.Empty(t, results.Warnings)
	}
}

func TestLayoutIsTriangular(t *testing.T) {
	cards := NewDeck()
	b := Layout(cards)

	// round 0 deals cards 0..6 to tableaus 0..6, round 1 deals 7..12 to 1..6
	assert.Equal(t, cards[0].ID, b.Tableaus[0][0].ID)
	assert.Equal(t, cards[6].ID, b.Tableaus[6][0].ID)
	assert.Equal(t, cards[7].ID, b.Tableaus[1][1].ID)
	assert.Equal(t, cards[27].ID, b.Tableaus[6][6].ID)

	// stock keeps the remaining deck order
	assert.Equal(t, cards[28].ID, b.Stock[0].ID)
	assert.Equal(t, cards[51].ID, b.Stock[23].ID)

	for i, c := range card.Categories {
		assert.Equal(t, c, b.Foundations[i].Category)
	}
}
