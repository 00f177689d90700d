// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/domain/recipe"
)

// ItemFactory provides methods to create test pantry items
type ItemFactory struct {
	faker *gofakeit.Faker
}

// NewItemFactory creates a new item factory with seeded faker
func NewItemFactory(seed int64) *ItemFactory {
	return &ItemFactory{
		faker: gofakeit.New(seed),
	}
}

// ItemBuilder provides a fluent interface for building test items
type ItemBuilder struct {
	id       string
	name     string
	quantity string
	unit     pantry.Unit
	expiry   *time.Time
	category pantry.Category
}

// NewItemBuilder creates a new item builder with default values
func NewItemBuilder() *ItemBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &ItemBuilder{
		id:       uuid.NewString(),
		name:     faker.Fruit(),
		quantity: "1",
		unit:     pantry.UnitPiece,
		category: pantry.CategoryOther,
	}
}

// WithID sets the item id
func (b *ItemBuilder) WithID(id string) *ItemBuilder {
	b.id = id
	return b
}

// WithName sets the item name
func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.name = name
	return b
}

// WithQuantity sets the textual quantity
func (b *ItemBuilder) WithQuantity(quantity string) *ItemBuilder {
	b.quantity = quantity
	return b
}

// WithUnit sets the unit code
func (b *ItemBuilder) WithUnit(unit pantry.Unit) *ItemBuilder {
	b.unit = unit
	return b
}

// WithExpiryIn sets the expiry date relative to the given reference day
func (b *ItemBuilder) WithExpiryIn(today time.Time, days int) *ItemBuilder {
	expiry := today.Add(time.Duration(days) * 24 * time.Hour)
	b.expiry = &expiry
	return b
}

// WithoutExpiry clears the expiry date
func (b *ItemBuilder) WithoutExpiry() *ItemBuilder {
	b.expiry = nil
	return b
}

// WithCategory sets the category
func (b *ItemBuilder) WithCategory(category pantry.Category) *ItemBuilder {
	b.category = category
	return b
}

// Build creates the item
func (b *ItemBuilder) Build() pantry.Item {
	return pantry.Item{
		ID:         b.id,
		Name:       b.name,
		Quantity:   b.quantity,
		Unit:       b.unit,
		ExpiryDate: b.expiry,
		Category:   b.category,
	}
}

// CreateItem creates a random valid pantry item
func (f *ItemFactory) CreateItem() pantry.Item {
	categories := pantry.Categories()
	return pantry.Item{
		ID:       uuid.NewString(),
		Name:     f.faker.Fruit(),
		Quantity: "1",
		Unit:     pantry.UnitPiece,
		Category: categories[f.faker.IntRange(0, len(categories)-1)],
	}
}

// CreateItems creates the given number of random valid items
func (f *ItemFactory) CreateItems(count int) []pantry.Item {
	items := make([]pantry.Item, count)
	for i := range items {
		items[i] = f.CreateItem()
	}
	return items
}

// CreateProfile creates a profile with a randomized pantry
func (f *ItemFactory) CreateProfile(pantrySize int) *profile.Profile {
	p := profile.Default(time.Now())
	p.SetPantry(f.CreateItems(pantrySize))
	return p
}

// CreateRecipe creates a random valid generated recipe
func (f *ItemFactory) CreateRecipe() recipe.GeneratedRecipe {
	return recipe.GeneratedRecipe{
		ID:              uuid.NewString(),
		Title:           f.faker.Dinner(),
		Description:     f.faker.Sentence(8),
		Ingredients:     []string{f.faker.Vegetable(), f.faker.Fruit()},
		Instructions:    []string{"Chop everything.", "Cook until done."},
		Calories:        f.faker.IntRange(200, 900),
		PrepTimeMinutes: f.faker.IntRange(5, 60),
		Servings:        f.faker.IntRange(1, 6),
		CreatedAt:       time.Now(),
	}
}
