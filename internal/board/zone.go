package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ZoneKind identifies one of the four kinds of pile
type ZoneKind int

const (
	Stock ZoneKind = iota
	Waste
	FoundationZone
	TableauZone
)

func (k ZoneKind) String() string {
	switch k {
	case Stock:
		return "stock"
	case Waste:
		return "waste"
	case FoundationZone:
		return "foundation"
	case TableauZone:
		return "tableau"
	default:
		return fmt.Sprintf("ZoneKind(%d)", int(k))
	}
}

// ZoneRef names a single pile on the board. Index is only meaningful for
// foundations (0..3) and tableaus (0..6).
type ZoneRef struct {
	Kind  ZoneKind
	Index int
}

// StockRef references the stock
func StockRef() ZoneRef { return ZoneRef{Kind: Stock} }

// WasteRef references the waste
func WasteRef() ZoneRef { return ZoneRef{Kind: Waste} }

// FoundationRef references foundation i
func FoundationRef(i int) ZoneRef { return ZoneRef{Kind: FoundationZone, Index: i} }

// TableauRef references tableau i
func TableauRef(i int) ZoneRef { return ZoneRef{Kind: TableauZone, Index: i} }

// AllZones lists every pile: stock, waste, foundations then tableaus
func AllZones() []ZoneRef {
	refs := []ZoneRef{StockRef(), WasteRef()}
	for i := 0; i < NumFoundations; i++ {
		refs = append(refs, FoundationRef(i))
	}
	for i := 0; i < NumTableaus; i++ {
		refs = append(refs, TableauRef(i))
	}
	return refs
}

// Validate checks that the reference points at an existing pile
func (r ZoneRef) Validate() error {
	switch r.Kind {
	case Stock, Waste:
		return nil
	case FoundationZone:
		if r.Index < 0 || r.Index >= NumFoundations {
			return fmt.Errorf("foundation index out of range: %d", r.Index)
		}
		return nil
	case TableauZone:
		if r.Index < 0 || r.Index >= NumTableaus {
			return fmt.Errorf("tableau index out of range: %d", r.Index)
		}
		return nil
	}
	return fmt.Errorf("unknown zone kind: %d", int(r.Kind))
}

func (r ZoneRef) String() string {
	switch r.Kind {
	case FoundationZone, TableauZone:
		return fmt.Sprintf("%s:%d", r.Kind, r.Index)
	default:
		return r.Kind.String()
	}
}

// MarshalText encodes the reference in its textual form
func (r ZoneRef) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes the textual form accepted by ParseZoneRef
func (r *ZoneRef) UnmarshalText(text []byte) error {
	ref, err := ParseZoneRef(string(text))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// ParseZoneRef parses "stock", "waste", "foundation:N", "tableau:N" and the
// short forms "s", "w", "fN", "tN".
func ParseZoneRef(s string) (ZoneRef, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "stock", "s":
		return StockRef(), nil
	case "waste", "w":
		return WasteRef(), nil
	}

	var kind ZoneKind
	var rest string
	switch {
	case strings.HasPrefix(s, "foundation:"):
		kind, rest = FoundationZone, strings.TrimPrefix(s, "foundation:")
	case strings.HasPrefix(s, "tableau:"):
		kind, rest = TableauZone, strings.TrimPrefix(s, "tableau:")
	case strings.HasPrefix(s, "f"):
		kind, rest = FoundationZone, s[1:]
	case strings.HasPrefix(s, "t"):
		kind, rest = TableauZone, s[1:]
	default:
		return ZoneRef{}, fmt.Errorf("invalid zone reference: %q", s)
	}

	idx, err := strconv.Atoi(rest)
	if err != nil {
		return ZoneRef{}, fmt.Errorf("invalid zone reference: %q", s)
	}
	ref := ZoneRef{Kind: kind, Index: idx}
	if err := ref.Validate(); err != nil {
		return ZoneRef{}, err
	}
	return ref, nil
}
