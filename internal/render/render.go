// Package render prints boards as coloured text for the command line.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

const (
	defaultWidth = 80
	labelWidth   = 14
	faceDown     = "##"
)

// Printer writes boards to a terminal
type Printer struct {
	Color bool
	Width int
}

// NewPrinter sizes the printer to the terminal on stdout, falling back to
// 80 columns.
func NewPrinter(useColor bool) *Printer {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	return &Printer{Color: useColor, Width: width}
}

// Board prints every pile on its own line, top of the pile last
func (p *Printer) Board(w io.Writer, b *board.Board) {
	heading := p.paint(color.New(color.FgCyan, color.Bold))

	p.line(w, heading.Sprint("Stock"), p.stock(b.Stock))
	p.line(w, heading.Sprint("Waste"), p.cards(b.Waste))

	for i, f := range b.Foundations {
		label := fmt.Sprintf("F%d %s", i, f.Category)
		p.line(w, p.categoryColor(f.Category).Sprint(label), p.cards(f.Cards))
	}

	for i, tableau := range b.Tableaus {
		p.line(w, heading.Sprintf("T%d", i), p.cards(tableau))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(b))
}

// CardLabel returns the short label of c in its category colour, or the
// face-down marker.
func (p *Printer) CardLabel(c card.Card) string {
	if !c.FaceUp {
		return p.paint(color.New(color.Faint)).Sprint(faceDown)
	}
	return p.categoryColor(c.Category).Sprint(c.Short())
}

// stock shows the number of cards rather than every face-down back
func (p *Printer) stock(cards []card.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	return []string{p.CardLabel(cards[len(cards)-1]), fmt.Sprintf("(%d)", len(cards))}
}

func (p *Printer) cards(cards []card.Card) []string {
	labels := make([]string, 0, len(cards))
	for _, c := range cards {
		labels = append(labels, p.CardLabel(c))
	}
	return labels
}

// line writes label followed by the card labels, wrapping onto indented
// continuation lines when the terminal is too narrow.
func (p *Printer) line(w io.Writer, label string, labels []string) {
	width := p.Width
	if width <= labelWidth {
		width = defaultWidth
	}

	var sb strings.Builder
	sb.WriteString(pad(label, labelWidth))
	col := labelWidth

	if len(labels) == 0 {
		sb.WriteString(p.paint(color.New(color.Faint)).Sprint("--"))
	}
	for _, l := range labels {
		n := visibleLen(l) + 1
		if col+n > width && col > labelWidth {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", labelWidth))
			col = labelWidth
		}
		sb.WriteString(l)
		sb.WriteString(" ")
		col += n
	}

	fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
}

func (p *Printer) paint(c *color.Color) *color.Color {
	if !p.Color {
		c.DisableColor()
	}
	return c
}

func (p *Printer) categoryColor(category card.Category) *color.Color {
	return p.paint(color.New(Nearest(category.Color()), color.Bold))
}

// FormatElapsed renders a number of seconds as M:SS
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Summary describes the counters, with the end-of-game message once the
// game is over.
func Summary(b *board.Board) string {
	stats := fmt.Sprintf("%d moves in %s", b.Moves, FormatElapsed(b.Elapsed))
	switch b.Status {
	case board.Won:
		return "You won! " + stats
	case board.Lost:
		return "Game over - no more moves. " + stats
	}
	return fmt.Sprintf("Moves: %d  Time: %s", b.Moves, FormatElapsed(b.Elapsed))
}

// pad right-pads s to width visible columns
func pad(s string, width int) string {
	if n := visibleLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s + " "
}

// visibleLen counts the runes of s outside ANSI escape sequences
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// ansiPalette is the xterm rendition of the sixteen basic colours
var ansiPalette = []struct {
	attr color.Attribute
	hex  string
}{
	{color.FgRed, "#cd0000"},
	{color.FgGreen, "#00cd00"},
	{color.FgYellow, "#cdcd00"},
	{color.FgBlue, "#0000ee"},
	{color.FgMagenta, "#cd00cd"},
	{color.FgCyan, "#00cdcd"},
	{color.FgHiRed, "#ff0000"},
	{color.FgHiGreen, "#00ff00"},
	{color.FgHiYellow, "#ffff00"},
	{color.FgHiBlue, "#5c5cff"},
	{color.FgHiMagenta, "#ff00ff"},
	{color.FgHiCyan, "#00ffff"},
}

// Nearest maps a hex colour onto the closest basic terminal colour by
// perceptual distance. Unparseable input maps to white.
func Nearest(hex string) color.Attribute {
	target, err := colorful.Hex(hex)
	if err != nil {
		return color.FgWhite
	}

	best := color.FgWhite
	bestDist := 0.0
	for i, entry := range ansiPalette {
		c, _ := colorful.Hex(entry.hex)
		d := target.DistanceCIEDE2000(c)
		if i == 0 || d < bestDist {
			best, bestDist = entry.attr, d
		}
	}
	return best
}
