package card

import (
	"fmt"
	"strings"
)

// Category is one of the four programming-language groups that take the
// place of suits. Each category owns exactly one foundation.
type Category int

const (
	Java Category = iota
	Python
	JavaScript
	Cpp
)

// Categories lists every category in deal order
var Categories = [...]Category{Java, Python, JavaScript, Cpp}

var categoryNames = [...]string{"Java", "Python", "JavaScript", "C++"}

// Display colours taken from each language's logo
var categoryColors = [...]string{"#FF6B35", "#3776AB", "#F7DF1E", "#00599C"}

var categoryCodes = [...]string{"J", "P", "S", "C"}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the four known categories
func (c Category) Valid() bool {
	return c >= Java && c <= Cpp
}

// Color returns the hex colour used to draw cards of this category
func (c Category) Color() string {
	if !c.Valid() {
		return "#000000"
	}
	return categoryColors[c]
}

// Code returns a one-letter abbreviation for compact layouts
func (c Category) Code() string {
	if !c.Valid() {
		return "?"
	}
	return categoryCodes[c]
}

// ParseCategory accepts a category name (case-insensitive) or its code
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(s, categoryNames[c]) || strings.EqualFold(s, categoryCodes[c]) {
			return c, nil
		}
	}
	switch strings.ToLower(s) {
	case "cpp", "c++", "cplusplus":
		return Cpp, nil
	case "js":
		return JavaScript, nil
	}
	return 0, fmt.Errorf("unknown category: %q", s)
}

// Rank is the ordinal value of a card, Ace = 1 through King = 13
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var rankLabels = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var rankNames = [...]string{
	"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
	"Jack", "Queen", "King",
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankLabels[r]
}

// Valid reports whether r lies in A..K
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Name returns the long English rank name
func (r Rank) Name() string {
	if !r.Valid() {
		return r.String()
	}
	return rankNames[r]
}

// ParseRank parses a rank label such as "A", "10" or "k"
func ParseRank(s string) (Rank, error) {
	for r := Ace; r <= King; r++ {
		if strings.EqualFold(s, rankLabels[r]) {
			return r, nil
		}
	}
	if strings.EqualFold(s, "1") {
		return Ace, nil
	}
	return 0, fmt.Errorf("unknown rank: %q", s)
}

// Card represents one of the 52 playing cards
type Card struct {
	ID       string   // Canonical ID (e.g., Java-A, C++-10)
	Category Category // Language group, plays the role of a suit
	Rank     Rank     // Ordinal 1..13
	FaceUp   bool     // Orientation, the only mutable attribute
}

// New builds a face-down card with its canonical ID
func New(category Category, rank Rank) Card {
	return Card{
		ID:       MakeID(category, rank),
		Category: category,
		Rank:     rank,
	}
}

// MakeID returns the canonical ID for a category and rank
func MakeID(category Category, rank Rank) string {
	return category.String() + "-" + rank.String()
}

// Parse builds a face-down card from its canonical ID
func Parse(id string) (Card, error) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return Card{}, fmt.Errorf("invalid card ID format: %s", id)
	}

	category, err := ParseCategory(id[:i])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card ID %s: %w", id, err)
	}
	rank, err := ParseRank(id[i+1:])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card ID %s: %w", id, err)
	}

	return New(category, rank), nil
}

// Name returns a readable name such as "Queen of Python"
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Category)
}

// Short returns the compact label used on the board, e.g. "QP" or "10C"
func (c Card) Short() string {
	return c.Rank.String() + c.Category.Code()
}

func (c Card) String() string {
	if c.FaceUp {
		return c.ID
	}
	return c.ID + "(down)"
}

// Up returns a copy of c turned face-up
func (c Card) Up() Card {
	c.FaceUp = true
	return c
}

// Down returns a copy of c turned face-down
func (c Card) Down() Card {
	c.FaceUp = false
	return c
}
