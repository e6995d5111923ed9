// Package layout reads and writes boards as TOML or YAML files so a deal
// can be saved, edited by hand and replayed.
package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/card"
)

// Format is the encoding of a layout file
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("unsupported layout extension: %q", filepath.Ext(path))
}

// Layout is the file form of a board, also used as its JSON form by the
// HTTP host. Piles list card ids bottom to top;
// which way a card faces follows from its pile, except in tableaus where
// the face-down and face-up parts are listed separately.
type Layout struct {
	Status  string `toml:"status" yaml:"status" json:"status"`
	Moves   int    `toml:"moves" yaml:"moves" json:"moves"`
	Elapsed int    `toml:"elapsed" yaml:"elapsed" json:"elapsed"`

	Stock       []string     `toml:"stock" yaml:"stock" json:"stock"`
	Waste       []string     `toml:"waste" yaml:"waste" json:"waste"`
	Foundations []Foundation `toml:"foundations" yaml:"foundations" json:"foundations"`
	Tableaus    []Tableau    `toml:"tableaus" yaml:"tableaus" json:"tableaus"`
}

// Foundation is one goal pile and the category it accepts
type Foundation struct {
	Category string   `toml:"category" yaml:"category" json:"category"`
	Cards    []string `toml:"cards" yaml:"cards" json:"cards"`
}

// Tableau is one tableau pile
type Tableau struct {
	Down []string `toml:"down" yaml:"down" json:"down"`
	Up   []string `toml:"up" yaml:"up" json:"up"`
}

// FromBoard describes b as a layout
func FromBoard(b *board.Board) *Layout {
	l := &Layout{
		Status:      b.Status.String(),
		Moves:       b.Moves,
		Elapsed:     b.Elapsed,
		Stock:       ids(b.Stock),
		Waste:       ids(b.Waste),
		Foundations: make([]Foundation, 0, board.NumFoundations),
		Tableaus:    make([]Tableau, 0, board.NumTableaus),
	}

	for _, f := range b.Foundations {
		l.Foundations = append(l.Foundations, Foundation{
			Category: f.Category.String(),
			Cards:    ids(f.Cards),
		})
	}

	for _, tableau := range b.Tableaus {
		var t Tableau
		for _, c := range tableau {
			if c.FaceUp {
				t.Up = append(t.Up, c.ID)
			} else {
				t.Down = append(t.Down, c.ID)
			}
		}
		t.Down = nonNil(t.Down)
		t.Up = nonNil(t.Up)
		l.Tableaus = append(l.Tableaus, t)
	}

	return l
}

// ToBoard builds the board described by l. It checks the shape of the
// layout and every card id but leaves rule checks to the validator.
func (l *Layout) ToBoard() (*board.Board, error) {
	status, err := board.ParseStatus(l.Status)
	if err != nil {
		return nil, err
	}
	if len(l.Foundations) != board.NumFoundations {
		return nil, fmt.Errorf("layout has %d foundations, want %d", len(l.Foundations), board.NumFoundations)
	}
	if len(l.Tableaus) != board.NumTableaus {
		return nil, fmt.Errorf("layout has %d tableaus, want %d", len(l.Tableaus), board.NumTableaus)
	}

	b := &board.Board{
		Moves:   l.Moves,
		Elapsed: l.Elapsed,
		Status:  status,
	}

	if b.Stock, err = parseCards(l.Stock, false); err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	if b.Waste, err = parseCards(l.Waste, true); err != nil {
		return nil, fmt.Errorf("waste: %w", err)
	}

	for i, f := range l.Foundations {
		category, err := card.ParseCategory(f.Category)
		if err != nil {
			return nil, fmt.Errorf("foundation %d: %w", i, err)
		}
		cards, err := parseCards(f.Cards, true)
		if err != nil {
			return nil, fmt.Errorf("foundation %d: %w", i, err)
		}
		b.Foundations[i] = board.Foundation{Category: category, Cards: cards}
	}

	for i, t := range l.Tableaus {
		down, err := parseCards(t.Down, false)
		if err != nil {
			return nil, fmt.Errorf("tableau %d: %w", i, err)
		}
		up, err := parseCards(t.Up, true)
		if err != nil {
			return nil, fmt.Errorf("tableau %d: %w", i, err)
		}
		b.Tableaus[i] = append(down, up...)
	}

	return b, nil
}

// Decode reads a layout in the given format
func Decode(r io.Reader, f Format) (*Layout, error) {
	var l Layout
	switch f {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&l); err != nil {
			return nil, fmt.Errorf("error decoding yaml layout: %w", err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(&l); err != nil {
			return nil, fmt.Errorf("error decoding toml layout: %w", err)
		}
	}
	return &l, nil
}

// Encode writes b as a layout in the given format
func Encode(w io.Writer, b *board.Board, f Format) error {
	l := FromBoard(b)
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("error encoding yaml layout: %w", err)
		}
		return enc.Close()
	default:
		if err := toml.NewEncoder(w).Encode(l); err != nil {
			return fmt.Errorf("error encoding toml layout: %w", err)
		}
		return nil
	}
}

// Load reads the board stored at path, picking the format from the
// extension.
func Load(path string) (*board.Board, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading layout: %w", err)
	}

	l, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, err
	}
	b, err := l.ToBoard()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Save writes b to path, picking the format from the extension
func Save(path string, b *board.Board) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, b, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing layout: %w", err)
	}
	return nil
}

func parseCards(list []string, faceUp bool) ([]card.Card, error) {
	cards := make([]card.Card, 0, len(list))
	for _, id := range list {
		c, err := card.Parse(id)
		if err != nil {
			return nil, err
		}
		c.FaceUp = faceUp
		cards = append(cards, c)
	}
	return cards, nil
}

func ids(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
