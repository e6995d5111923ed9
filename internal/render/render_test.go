package render

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/deck"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{60, "1:00"},
		{252, "4:12"},
		{3600, "60:00"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.seconds))
	}
}

func TestSummary(t *testing.T) {
	b := board.New()
	b.Moves = 87
	b.Elapsed = 252

	assert.Equal(t, "Moves: 87  Time: 4:12", Summary(b))

	b.Status = board.Won
	assert.Equal(t, "You won! 87 moves in 4:12", Summary(b))

	b.Status = board.Lost
	assert.Equal(t, "Game over - no more moves. 87 moves in 4:12", Summary(b))
}

func TestBoardPrintout(t *testing.T) {
	p := &Printer{Color: false, Width: 80}
	b := deck.Deal(deck.NewRand(5))

	var sb strings.Builder
	p.Board(&sb, b)
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")

	// stock, waste, 4 foundations, 7 tableaus, blank, summary
	require.Len(t, lines, 15)
	assert.True(t, strings.HasPrefix(lines[0], "Stock"))
	assert.Contains(t, lines[0], "## (24)")
	assert.True(t, strings.HasSuffix(lines[1], "--"))
	assert.True(t, strings.HasPrefix(lines[2], "F0 Java"))
	assert.True(t, strings.HasPrefix(lines[5], "F3 C++"))

	top := b.Tableaus[6][6]
	assert.True(t, strings.HasSuffix(lines[12], top.Short()), lines[12])
	assert.Equal(t, 6, strings.Count(lines[12], faceDown))
	assert.Equal(t, "Moves: 0  Time: 0:00", lines[14])
}

func TestBoardWrapsToWidth(t *testing.T) {
	p := &Printer{Color: false, Width: 24}
	b := board.New()
	for rank := card.Ace; rank <= card.King; rank++ {
		b.Waste = append(b.Waste, card.New(card.Python, rank).Up())
	}

	var sb strings.Builder
	p.Board(&sb, b)

	for _, l := range strings.Split(sb.String(), "\n") {
		assert.LessOrEqual(t, len(l), 24, l)
	}
	assert.Contains(t, sb.String(), "KP")
}

func TestCardLabel(t *testing.T) {
	p := &Printer{Color: false}
	assert.Equal(t, "10C", p.CardLabel(card.New(card.Cpp, 10).Up()))
	assert.Equal(t, faceDown, p.CardLabel(card.New(card.Cpp, 10)))
}

func TestNearest(t *testing.T) {
	assert.Equal(t, color.FgHiYellow, Nearest("#ffff00"))
	assert.Equal(t, color.FgBlue, Nearest("#0000ee"))
	assert.Equal(t, color.FgWhite, Nearest("not a colour"))
}

func TestVisibleLen(t *testing.T) {
	assert.Equal(t, 2, visibleLen("\x1b[31;1mQP\x1b[0m"))
	assert.Equal(t, 5, visibleLen("Waste"))
}
