// Package engine runs a solitaire session: it owns the live board, applies
// validated moves, keeps the session clock and decides when the game is won
// or lost. Hosts (the terminal UI, the HTTP server) only ever see copies of
// the board.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/deck"
	"github.com/arcanaland/patience/internal/validator"
)

const (
	DefaultLossCheckDelay = 500 * time.Millisecond
	DefaultTickInterval   = time.Second
)

// Options configures a Game
type Options struct {
	Logger *zap.Logger

	// Seed for the shuffle, 0 picks a random one
	Seed int64

	// LossCheckDelay is how long the board has to stay unchanged before the
	// no-moves-left check runs.
	LossCheckDelay time.Duration

	// TickInterval is the wall time per elapsed second. A negative value
	// disables the internal clock and leaves ticking to the caller.
	TickInterval time.Duration

	// StrictInvariants validates the board after every accepted move and
	// panics with an *InvariantError on a breach.
	StrictInvariants bool

	// OnChange receives a snapshot after every state change. It is called
	// without the game lock held, possibly from a timer goroutine, and must
	// not call Close.
	OnChange func(*board.Board)
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.LossCheckDelay <= 0 {
		o.LossCheckDelay = DefaultLossCheckDelay
	}
	if o.TickInterval == 0 {
		o.TickInterval = DefaultTickInterval
	}
	return o
}

// Game is a single solitaire session. All methods are safe for concurrent
// use; moves are serialised.
type Game struct {
	mu sync.Mutex

	opts Options
	log  *zap.Logger
	rng  *rand.Rand

	board   *board.Board
	session string

	// gen changes with every state change so a loss check scheduled for an
	// older board can tell it has been superseded.
	gen uint64

	clock     *clock
	lossCheck *Debouncer
	closed    bool

	// timers is read-held by a running loss check so Close can wait for it
	timers sync.RWMutex
}

// New deals a fresh game and starts its clock
func New(opts Options) *Game {
	g := newGame(opts)

	g.mu.Lock()
	g.deal()
	g.mu.Unlock()

	return g
}

// NewFromBoard starts a session from an existing board, typically one loaded
// from a layout file. The board must pass validation.
func NewFromBoard(b *board.Board, opts Options) (*Game, error) {
	results := validator.NewValidator(b).Validate()
	if !results.OK() {
		return nil, fmt.Errorf("invalid board: %s", results)
	}

	g := newGame(opts)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.session = uuid.NewString()
	g.board = b.Clone()
	if g.board.Status == board.Active && isWon(g.board) {
		g.board.Status = board.Won
	}
	g.log.Info("Game loaded",
		zap.String("session", g.session),
		zap.Int("moves", g.board.Moves),
		zap.Stringer("status", g.board.Status))

	if g.board.Status == board.Active {
		g.startClock()
		g.scheduleLossCheck()
	}
	return g, nil
}

func newGame(opts Options) *Game {
	opts = opts.withDefaults()
	return &Game{
		opts:      opts,
		log:       opts.Logger,
		rng:       deck.NewRand(opts.Seed),
		lossCheck: NewDebouncer(opts.LossCheckDelay),
	}
}

// StartNewGame replaces the board with a fresh deal and resets the clock.
// It is accepted in any state, including after a win or a loss.
func (g *Game) StartNewGame() (string, error) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return "", ErrClosed
	}
	old := g.clock
	g.deal()
	session := g.session
	snap := g.board.Clone()
	g.mu.Unlock()

	if old != nil {
		old.Wait()
	}
	g.notify(snap)
	return session, nil
}

// deal must be called with g.mu held
func (g *Game) deal() {
	g.stopClock()
	g.lossCheck.Cancel()

	g.board = deck.Deal(g.rng)
	g.session = uuid.NewString()
	g.gen++

	g.log.Info("New game dealt", zap.String("session", g.session))

	g.startClock()
	g.scheduleLossCheck()
}

// DrawFromStock turns up to three stock cards onto the waste, or recycles
// the waste when the stock is empty.
func (g *Game) DrawFromStock() error {
	return g.apply("draw", applyDraw)
}

// AttemptMove moves cardID, and every card stacked above it, from one pile
// to another.
func (g *Game) AttemptMove(cardID string, from, to board.ZoneRef) error {
	return g.apply("move", func(b *board.Board) (*board.Board, error) {
		return applyMove(b, cardID, from, to)
	}, zap.String("card", cardID), zap.Stringer("from", from), zap.Stringer("to", to))
}

// AttemptAutoPromote sends cardID to the foundation of its category
func (g *Game) AttemptAutoPromote(cardID string) error {
	return g.apply("promote", func(b *board.Board) (*board.Board, error) {
		return applyPromote(b, cardID)
	}, zap.String("card", cardID))
}

// Surrender ends the game as lost without looking for remaining moves
func (g *Game) Surrender() error {
	g.mu.Lock()
	if err := g.checkPlayable(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.finish(board.Lost, "surrender")
	snap := g.board.Clone()
	g.mu.Unlock()

	g.notify(snap)
	return nil
}

// Snapshot returns a copy of the current board
func (g *Game) Snapshot() *board.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

// State returns the current session and a copy of its board, read together
func (g *Game) State() (string, *board.Board) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session, g.board.Clone()
}

// Session returns the identifier of the current deal
func (g *Game) Session() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Hints lists the moves currently available
func (g *Game) Hints() []Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board.Status.Terminal() {
		return nil
	}
	return LegalMoves(g.board)
}

// Tick advances the session clock by one second while the game is active.
// It reports whether the clock advanced.
func (g *Game) Tick() bool {
	return g.advance(nil)
}

// Close stops the clock and any pending loss check. Once it returns no
// further OnChange calls are made.
func (g *Game) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	c := g.clock
	g.stopClock()
	g.lossCheck.Cancel()
	g.mu.Unlock()

	if c != nil {
		c.Wait()
	}

	// Checks that start from here on see closed and return
	g.timers.Lock()
	defer g.timers.Unlock()
}

func (g *Game) apply(action string, fn func(*board.Board) (*board.Board, error), fields ...zap.Field) error {
	g.mu.Lock()
	if err := g.checkPlayable(); err != nil {
		g.mu.Unlock()
		return err
	}

	next, err := fn(g.board)
	if err != nil {
		g.mu.Unlock()
		if errors.Is(err, ErrInvalidMove) {
			g.log.Debug("Move rejected", append(fields, zap.String("action", action), zap.Error(err))...)
		}
		return err
	}

	if err := g.verify(next); err != nil {
		g.mu.Unlock()
		panic(err)
	}

	g.commit(next)
	g.log.Debug("Move accepted", append(fields,
		zap.String("action", action),
		zap.Int("moves", g.board.Moves))...)
	snap := g.board.Clone()
	g.mu.Unlock()

	g.notify(snap)
	return nil
}

// checkPlayable must be called with g.mu held
func (g *Game) checkPlayable() error {
	if g.closed {
		return ErrClosed
	}
	if g.board.Status.Terminal() {
		return fmt.Errorf("%w: game already %s", ErrGameOver, g.board.Status)
	}
	return nil
}

// verify validates next in strict mode
func (g *Game) verify(next *board.Board) *InvariantError {
	if !g.opts.StrictInvariants {
		return nil
	}
	results := validator.NewValidator(next).Validate()
	if results.OK() {
		return nil
	}
	g.log.Error("Board invariant violated",
		zap.String("session", g.session),
		zap.Strings("errors", results.Errors))
	return &InvariantError{Results: results}
}

// commit installs next as the live board and settles the game status. It
// must be called with g.mu held.
func (g *Game) commit(next *board.Board) {
	// The clock may have ticked since next was cloned
	next.Elapsed = g.board.Elapsed
	g.board = next
	g.gen++

	if isWon(g.board) {
		g.finish(board.Won, "all cards on the foundations")
		return
	}
	g.scheduleLossCheck()
}

// finish moves the game into a terminal status. Must be called with g.mu
// held.
func (g *Game) finish(status board.Status, reason string) {
	g.board.Status = status
	g.gen++
	g.stopClock()
	g.lossCheck.Cancel()

	g.log.Info("Game finished",
		zap.String("session", g.session),
		zap.Stringer("status", status),
		zap.String("reason", reason),
		zap.Int("moves", g.board.Moves),
		zap.Int("elapsed", g.board.Elapsed))
}

func (g *Game) scheduleLossCheck() {
	gen := g.gen
	g.lossCheck.Debounce(func() {
		g.timers.RLock()
		defer g.timers.RUnlock()
		g.checkLoss(gen)
	})
}

// checkLoss declares the game lost when no move is left. It does nothing
// when the board changed after the check was scheduled.
func (g *Game) checkLoss(gen uint64) bool {
	g.mu.Lock()
	if g.closed || gen != g.gen || g.board.Status != board.Active {
		g.mu.Unlock()
		return false
	}
	if HasAvailableMoves(g.board) {
		g.mu.Unlock()
		return false
	}

	g.finish(board.Lost, "no moves left")
	snap := g.board.Clone()
	g.mu.Unlock()

	g.notify(snap)
	return true
}

// startClock must be called with g.mu held
func (g *Game) startClock() {
	if g.opts.TickInterval < 0 {
		g.clock = nil
		return
	}
	g.clock = startClock(g.opts.TickInterval, g.advance)
}

// stopClock must be called with g.mu held
func (g *Game) stopClock() {
	if g.clock != nil {
		g.clock.Stop()
	}
}

// advance adds a second to the board. Ticks from a clock that has since
// been replaced are ignored; a nil clock is a manual tick.
func (g *Game) advance(c *clock) bool {
	g.mu.Lock()
	if g.closed || g.board.Status != board.Active || (c != nil && c != g.clock) {
		g.mu.Unlock()
		return false
	}
	g.board.Elapsed++
	snap := g.board.Clone()
	g.mu.Unlock()

	g.notify(snap)
	return true
}

func (g *Game) notify(snap *board.Board) {
	if g.opts.OnChange != nil {
		g.opts.OnChange(snap)
	}
}
