// Package tui is the interactive terminal host for a game. Keys are
// translated into engine actions and the screen is redrawn from board
// snapshots whenever the engine reports a change.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
	"github.com/arcanaland/patience/internal/engine"
	"github.com/arcanaland/patience/internal/render"
)

// Feed carries change notifications from the engine to the model. Pending
// notifications coalesce, the model always redraws from a fresh snapshot.
type Feed struct {
	ch   chan struct{}
	done chan struct{}
	once sync.Once
}

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Push records a change; it never blocks and is a no-op once the feed is
// closed. Its signature matches engine.Options.OnChange.
func (f *Feed) Push(*board.Board) {
	select {
	case <-f.done:
		return
	default:
	}

	select {
	case f.ch <- struct{}{}:
	default:
	}
}

// Close ends the feed and releases a pending wait. It may be called more
// than once.
func (f *Feed) Close() {
	f.once.Do(func() { close(f.done) })
}

type changeMsg struct{}

// wait blocks until the engine reports a change or the feed is closed
func (f *Feed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ch:
			return changeMsg{}
		case <-f.done:
			return nil
		}
	}
}

// selection is a card picked up and waiting to be dropped
type selection struct {
	card string
	from board.ZoneRef
}

// Model is the bubbletea model of the game screen
type Model struct {
	game  *engine.Game
	feed  *Feed
	zones []board.ZoneRef

	KeyMap KeyMap
	help   help.Model

	board  *board.Board
	cursor int // index into zones
	depth  int // cards below the top of the face-up run
	held   *selection
	flash  string
	hints  bool
}

// New creates the game screen for g. The feed must be the one passed to
// g as its change callback.
func New(g *engine.Game, feed *Feed, hints bool) Model {
	return Model{
		game:   g,
		feed:   feed,
		zones:  board.AllZones(),
		KeyMap: Keys,
		help:   help.New(),
		board:  g.Snapshot(),
		hints:  hints,
	}
}

func (m Model) Init() tea.Cmd {
	return m.feed.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		m.refresh()
		return m, m.feed.wait()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.flash = ""

		switch {
		case key.Matches(msg, m.KeyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.KeyMap.NewGame):
			m.held = nil
			m.act(func() error {
				_, err := m.game.StartNewGame()
				return err
			})

		case key.Matches(msg, m.KeyMap.Help):
			m.help.ShowAll = !m.help.ShowAll

		case m.board.Status.Terminal():
			// only a new game or quitting is accepted on the summary

		case key.Matches(msg, m.KeyMap.Left):
			m.moveCursor(-1)

		case key.Matches(msg, m.KeyMap.Right):
			m.moveCursor(1)

		case key.Matches(msg, m.KeyMap.Up):
			m.setDepth(m.depth + 1)

		case key.Matches(msg, m.KeyMap.Down):
			m.setDepth(m.depth - 1)

		case key.Matches(msg, m.KeyMap.Select):
			m.selectPile()

		case key.Matches(msg, m.KeyMap.Cancel):
			m.held = nil

		case key.Matches(msg, m.KeyMap.Draw):
			m.held = nil
			m.act(m.game.DrawFromStock)

		case key.Matches(msg, m.KeyMap.Promote):
			m.promote()

		case key.Matches(msg, m.KeyMap.Surrender):
			m.held = nil
			m.act(m.game.Surrender)
		}
	}

	return m, nil
}

// act runs an engine action and redraws. Rejections become the flash
// message.
func (m *Model) act(fn func() error) {
	if err := fn(); err != nil {
		m.flash = describe(err)
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.board = m.game.Snapshot()
	m.setDepth(m.depth)
	if m.held != nil {
		if ref, _, ok := m.board.Locate(m.held.card); !ok || ref != m.held.from {
			m.held = nil
		}
	}
}

func (m *Model) moveCursor(step int) {
	m.cursor = (m.cursor + step + len(m.zones)) % len(m.zones)
	m.depth = 0
}

// setDepth clamps depth to the face-up run of the tableau under the cursor
func (m *Model) setDepth(depth int) {
	ref := m.zones[m.cursor]
	if ref.Kind != board.TableauZone {
		m.depth = 0
		return
	}

	run := faceUpRun(m.board.Tableaus[ref.Index])
	if depth >= run {
		depth = run - 1
	}
	if depth < 0 {
		depth = 0
	}
	m.depth = depth
}

// pointed returns the card under the cursor, if it can be played
func (m *Model) pointed() (card.Card, bool) {
	ref := m.zones[m.cursor]
	switch ref.Kind {
	case board.Waste:
		return board.Top(m.board.Waste)
	case board.TableauZone:
		tableau := m.board.Tableaus[ref.Index]
		idx := len(tableau) - 1 - m.depth
		if idx < 0 || !tableau[idx].FaceUp {
			return card.Card{}, false
		}
		return tableau[idx], true
	}
	return card.Card{}, false
}

// selectPile picks up the card under the cursor, or drops the held one
func (m *Model) selectPile() {
	ref := m.zones[m.cursor]

	if m.held != nil {
		held := *m.held
		m.held = nil
		if held.from == ref {
			return
		}
		m.act(func() error { return m.game.AttemptMove(held.card, held.from, ref) })
		return
	}

	switch ref.Kind {
	case board.Stock:
		m.act(m.game.DrawFromStock)
		return
	case board.FoundationZone:
		m.flash = "cards on a foundation stay there"
		return
	}

	c, ok := m.pointed()
	if !ok {
		m.flash = "nothing to pick up"
		return
	}
	m.held = &selection{card: c.ID, from: ref}
}

func (m *Model) promote() {
	id := ""
	if m.held != nil {
		id = m.held.card
	} else if c, ok := m.pointed(); ok {
		id = c.ID
	}
	m.held = nil

	if id == "" {
		m.flash = "no card to send to a foundation"
		return
	}
	m.act(func() error { return m.game.AttemptAutoPromote(id) })
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Patience"))
	sb.WriteString("  ")
	sb.WriteString(statusStyle.Render(render.Summary(m.board)))
	sb.WriteString("\n\n")

	sb.WriteString(m.topRow())
	sb.WriteString("\n\n")
	sb.WriteString(m.tableauRow())
	sb.WriteString("\n\n")

	switch m.board.Status {
	case board.Won:
		sb.WriteString(wonStyle.Render(render.Summary(m.board)))
		sb.WriteString("\nPress n for a new game.\n")
	case board.Lost:
		sb.WriteString(lostStyle.Render(render.Summary(m.board)))
		sb.WriteString("\nPress n for a new game.\n")
	default:
		sb.WriteString(m.statusLine())
		sb.WriteString("\n")
	}

	if m.flash != "" {
		sb.WriteString(flashStyle.Render(m.flash))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.KeyMap))
	return sb.String()
}

func (m Model) statusLine() string {
	var parts []string
	if m.held != nil {
		name := m.held.card
		if c, err := card.Parse(m.held.card); err == nil {
			name = c.Name()
		}
		parts = append(parts, fmt.Sprintf("Holding %s from %s", name, m.held.from))
	}
	if m.hints {
		if n := len(m.game.Hints()); n > 0 {
			parts = append(parts, fmt.Sprintf("%d moves available", n))
		} else {
			parts = append(parts, "No moves left")
		}
	}
	return statusStyle.Render(strings.Join(parts, "  |  "))
}

func (m Model) topRow() string {
	cols := make([]string, 0, 2+board.NumFoundations)

	cols = append(cols, m.column(0, "Stock", m.stockLabel()))

	waste := []string{emptyStyle.Render("--")}
	if n := len(m.board.Waste); n > 0 {
		waste = waste[:0]
		for _, c := range m.board.Waste[max(0, n-board.DrawCount):] {
			waste = append(waste, m.cardLabel(c, board.WasteRef()))
		}
	}
	cols = append(cols, m.column(1, "Waste", strings.Join(waste, " ")))

	for i, f := range m.board.Foundations {
		label := emptyStyle.Render("--")
		if top, ok := f.Top(); ok {
			label = m.cardLabel(top, board.FoundationRef(i))
		}
		cols = append(cols, m.column(2+i, f.Category.Code()+" "+f.Category.String(), label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) tableauRow() string {
	cols := make([]string, 0, board.NumTableaus)
	for i, tableau := range m.board.Tableaus {
		ref := board.TableauRef(i)
		lines := make([]string, 0, len(tableau))
		for j, c := range tableau {
			label := m.cardLabel(c, ref)
			if m.zones[m.cursor] == ref && j == len(tableau)-1-m.depth {
				label = lipgloss.NewStyle().Reverse(true).Render(label)
			}
			lines = append(lines, label)
		}
		if len(lines) == 0 {
			lines = append(lines, emptyStyle.Render("--"))
		}
		cols = append(cols, m.column(2+board.NumFoundations+i, fmt.Sprintf("T%d", i+1), strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// column renders one pile with its header, underlining the header under
// the cursor.
func (m Model) column(idx int, title, body string) string {
	header := headerStyle
	if idx == m.cursor {
		header = cursorStyle
	}
	return lipgloss.NewStyle().Width(pileWidth + 2).Render(header.Render(title) + "\n" + body)
}

func (m Model) stockLabel() string {
	if len(m.board.Stock) == 0 {
		if len(m.board.Waste) == 0 {
			return emptyStyle.Render("--")
		}
		return emptyStyle.Render("(o)")
	}
	return backStyle.Render(fmt.Sprintf("## %d", len(m.board.Stock)))
}

func (m Model) cardLabel(c card.Card, ref board.ZoneRef) string {
	if !c.FaceUp {
		return backStyle.Render("##")
	}
	style := cardStyle(c)
	if m.held != nil && m.held.card == c.ID && m.held.from == ref {
		style = style.Underline(true)
	}
	return style.Render(c.Short())
}

// faceUpRun counts the face-up cards at the top of a tableau
func faceUpRun(tableau []card.Card) int {
	n := 0
	for i := len(tableau) - 1; i >= 0 && tableau[i].FaceUp; i-- {
		n++
	}
	return n
}

// describe turns an engine error into a short message for the flash line
func describe(err error) string {
	switch {
	case errors.Is(err, engine.ErrGameOver):
		return "The game is over. Press n for a new game."
	case errors.Is(err, engine.ErrInvalidMove):
		return strings.TrimPrefix(err.Error(), engine.ErrInvalidMove.Error()+": ")
	}
	return err.Error()
}
