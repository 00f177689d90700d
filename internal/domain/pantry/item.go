// Package pantry contains the core domain logic for pantry inventory
// management: item lifecycle, expiry classification, categorization and
// the derived inventory projection consumed by the UI shell.
package pantry

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item represents a single tracked pantry entry. The collection that
// holds items is always a point-in-time snapshot owned by the profile
// store; operations in this package take a snapshot and return a new
// one, they never mutate shared state.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Quantity   string     `json:"quantity"`
	Unit       Unit       `json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Category   Category   `json:"category"`
}

// NewItem creates a validated pantry item with a fresh identifier.
// Both manual entry and AI scan results funnel through here.
func NewItem(name, quantity string, unit Unit, expiry *time.Time, category Category) (Item, error) {
	item := Item{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Quantity:   strings.TrimSpace(quantity),
		Unit:       unit,
		ExpiryDate: expiry,
		Category:   category.orOther(),
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate checks the structural invariants of an item.
func (i Item) Validate() error {
	if i.ID == "" {
		return ErrMissingID
	}
	if i.Name == "" {
		return ErrEmptyName
	}
	if qty, ok := i.NumericQuantity(); ok && qty < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// NumericQuantity parses the textual quantity as a number. Descriptive
// quantities like "a bag" report ok=false.
func (i Item) NumericQuantity() (float64, bool) {
	qty, err := strconv.ParseFloat(strings.TrimSpace(i.Quantity), 64)
	if err != nil {
		return 0, false
	}
	return qty, true
}

// Unit represents a measurement unit code. The domain only ever stores
// and compares codes; display labels come from the i18n labeler.
type Unit string

const (
	UnitPiece      Unit = "pcs"
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitCup        Unit = "cup"
	UnitTablespoon Unit = "tbsp"
	UnitTeaspoon   Unit = "tsp"
	UnitPack       Unit = "pack"
)

// Units lists the known unit codes in display order.
func Units() []Unit {
	return []Unit{
		UnitPiece, UnitGram, UnitKilogram, UnitMilliliter, UnitLiter,
		UnitCup, UnitTablespoon, UnitTeaspoon, UnitPack,
	}
}

// Category represents a coarse pantry category.
type Category string

const (
	CategoryProduce Category = "produce"
	CategoryDairy   Category = "dairy"
	CategoryProtein Category = "protein"
	CategoryPantry  Category = "pantry"
	CategoryOther   Category = "other"
)

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryProduce, CategoryProtein, CategoryDairy, CategoryPantry, CategoryOther,
	}
}

// IsKnown reports whether the category is one of the fixed set.
func (c Category) IsKnown() bool {
	switch c {
	case CategoryProduce, CategoryDairy, CategoryProtein, CategoryPantry, CategoryOther:
		return true
	}
	return false
}

// orOther normalizes unset or unrecognized categories to other.
func (c Category) orOther() Category {
	if !c.IsKnown() {
		return CategoryOther
	}
	return c
}

// ItemAnalysis is the structured guess produced by the AI recognition
// collaborator for a scanned image. It pre-fills the add form; its
// category is taken as-is and is not run through the keyword heuristic.
type ItemAnalysis struct {
	Name       string   `json:"name"`
	Quantity   float64  `json:"quantity"`
	Unit       Unit     `json:"unit"`
	ExpiryDate string   `json:"expiry_date,omitempty"` // YYYY-MM-DD when visible on packaging
	Category   Category `json:"category"`
}
