// Package i18n provides display label lookup for unit and category
// codes. The domain stores codes only; labels exist purely for the
// presentation boundary.
package i18n

import (
	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/outbound"
)

var unitLabels = map[profile.Language]map[pantry.Unit]string{
	profile.LanguageEnglish: {
		pantry.UnitPiece:      "pcs",
		pantry.UnitGram:       "g",
		pantry.UnitKilogram:   "kg",
		pantry.UnitMilliliter: "ml",
		pantry.UnitLiter:      "l",
		pantry.UnitCup:        "cup",
		pantry.UnitTablespoon: "tbsp",
		pantry.UnitTeaspoon:   "tsp",
		pantry.UnitPack:       "pack",
	},
	profile.LanguageRussian: {
		pantry.UnitPiece:      "шт",
		pantry.UnitGram:       "г",
		pantry.UnitKilogram:   "кг",
		pantry.UnitMilliliter: "мл",
		pantry.UnitLiter:      "л",
		pantry.UnitCup:        "стакан",
		pantry.UnitTablespoon: "ст. л.",
		pantry.UnitTeaspoon:   "ч. л.",
		pantry.UnitPack:       "упаковка",
	},
}

var categoryLabels = map[profile.Language]map[pantry.Category]string{
	profile.LanguageEnglish: {
		pantry.CategoryProduce: "Produce",
		pantry.CategoryDairy:   "Dairy",
		pantry.CategoryProtein: "Protein",
		pantry.CategoryPantry:  "Pantry",
		pantry.CategoryOther:   "Other",
	},
	profile.LanguageRussian: {
		pantry.CategoryProduce: "Овощи и фрукты",
		pantry.CategoryDairy:   "Молочное",
		pantry.CategoryProtein: "Белковое",
		pantry.CategoryPantry:  "Бакалея",
		pantry.CategoryOther:   "Прочее",
	},
}

// Labeler implements outbound.UnitLabeler from static tables.
type Labeler struct{}

// NewLabeler creates a label lookup.
func NewLabeler() outbound.UnitLabeler {
	return Labeler{}
}

// UnitLabel resolves a unit code to its display label. Unknown codes
// fall back to the code itself so open-set units still round-trip.
func (Labeler) UnitLabel(unit pantry.Unit, lang profile.Language) string {
	if labels, ok := unitLabels[lang]; ok {
		if label, ok := labels[unit]; ok {
			return label
		}
	}
	if label, ok := unitLabels[profile.LanguageEnglish][unit]; ok {
		return label
	}
	return string(unit)
}

// CategoryLabel resolves a category code to its display label.
func (Labeler) CategoryLabel(category pantry.Category, lang profile.Language) string {
	if labels, ok := categoryLabels[lang]; ok {
		if label, ok := labels[category]; ok {
			return label
		}
	}
	if label, ok := categoryLabels[profile.LanguageEnglish][category]; ok {
		return label
	}
	return string(category)
}
