package pantry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CollectionTestSuite covers the snapshot operations on a pantry
// collection.
type CollectionTestSuite struct {
	suite.Suite
	items []Item
}

func (suite *CollectionTestSuite) SetupTest() {
	suite.items = []Item{
		{ID: "a", Name: "Greek Yogurt", Quantity: "3", Unit: UnitPack, Category: CategoryDairy},
		{ID: "b", Name: "Chicken Breast", Quantity: "500", Unit: UnitGram, Category: CategoryProtein},
		{ID: "c", Name: "Olive Oil", Quantity: "a splash", Unit: UnitMilliliter, Category: CategoryPantry},
	}
}

func (suite *CollectionTestSuite) TestAddItem() {
	suite.Run("ValidItem_ShouldInsertAtFront", func() {
		item, err := NewItem("Pasta", "2", UnitPack, nil, CategoryPantry)
		require.NoError(suite.T(), err)

		next, err := AddItem(suite.items, item)

		require.NoError(suite.T(), err)
		assert.Len(suite.T(), next, 4)
		assert.Equal(suite.T(), item.ID, next[0].ID)
		assert.Equal(suite.T(), "a", next[1].ID)
	})

	suite.Run("DuplicateID_ShouldReturnError", func() {
		dup := Item{ID: "a", Name: "Imposter Yogurt", Quantity: "1", Category: CategoryDairy}

		next, err := AddItem(suite.items, dup)

		assert.Nil(suite.T(), next)
		assert.ErrorIs(suite.T(), err, ErrDuplicateID)
	})

	suite.Run("InvalidItem_ShouldReturnError", func() {
		invalid := Item{ID: "z", Name: "", Quantity: "1"}

		next, err := AddItem(suite.items, invalid)

		assert.Nil(suite.T(), next)
		assert.ErrorIs(suite.T(), err, ErrEmptyName)
	})

	suite.Run("InputSnapshot_ShouldNotBeModified", func() {
		item, err := NewItem("Rice", "1", UnitKilogram, nil, CategoryPantry)
		require.NoError(suite.T(), err)

		_, err = AddItem(suite.items, item)

		require.NoError(suite.T(), err)
		assert.Len(suite.T(), suite.items, 3)
		assert.Equal(suite.T(), "a", suite.items[0].ID)
	})
}

func (suite *CollectionTestSuite) TestUpdateItem() {
	suite.Run("ExistingID_ShouldReplaceWholesale", func() {
		replacement := Item{ID: "b", Name: "Turkey Breast", Quantity: "250", Unit: UnitGram, Category: CategoryProtein}

		next, err := UpdateItem(suite.items, replacement)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), replacement, next[1])
		// Position and neighbours are untouched.
		assert.Equal(suite.T(), "a", next[0].ID)
		assert.Equal(suite.T(), "c", next[2].ID)
	})

	suite.Run("MissingID_ShouldReturnNotFound", func() {
		replacement := Item{ID: "missing", Name: "Ghost", Quantity: "1"}

		next, err := UpdateItem(suite.items, replacement)

		assert.Nil(suite.T(), next)
		assert.ErrorIs(suite.T(), err, ErrItemNotFound)
	})

	suite.Run("InputSnapshot_ShouldNotBeModified", func() {
		replacement := Item{ID: "a", Name: "Skyr", Quantity: "1", Category: CategoryDairy}

		_, err := UpdateItem(suite.items, replacement)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Greek Yogurt", suite.items[0].Name)
	})
}

func (suite *CollectionTestSuite) TestDeleteItem() {
	suite.Run("ExistingID_ShouldRemoveItem", func() {
		next := DeleteItem(suite.items, "b")

		assert.Len(suite.T(), next, 2)
		assert.Equal(suite.T(), "a", next[0].ID)
		assert.Equal(suite.T(), "c", next[1].ID)
	})

	suite.Run("MissingID_ShouldBeNoOp", func() {
		next := DeleteItem(suite.items, "missing")

		assert.Len(suite.T(), next, 3)
	})

	suite.Run("RepeatedDelete_ShouldBeIdempotent", func() {
		once := DeleteItem(suite.items, "b")
		twice := DeleteItem(once, "b")

		assert.Equal(suite.T(), once, twice)
	})
}

func (suite *CollectionTestSuite) TestDecrementItem() {
	suite.Run("QuantityAboveOne_ShouldDecrement", func() {
		next, outcome, err := DecrementItem(suite.items, "a")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), DecrementApplied, outcome)
		assert.False(suite.T(), outcome.RequiresConfirmation())
		assert.Equal(suite.T(), "2", next[0].Quantity)
		// Source snapshot keeps its value.
		assert.Equal(suite.T(), "3", suite.items[0].Quantity)
	})

	suite.Run("FractionalQuantity_ShouldFormatWithoutTrailingZeros", func() {
		items := []Item{{ID: "f", Name: "Cream", Quantity: "2.5", Category: CategoryDairy}}

		next, outcome, err := DecrementItem(items, "f")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), DecrementApplied, outcome)
		assert.Equal(suite.T(), "1.5", next[0].Quantity)
	})

	suite.Run("QuantityOfOne_ShouldRequireConfirmation", func() {
		items := []Item{{ID: "d", Name: "Last Apple", Quantity: "1", Category: CategoryProduce}}

		next, outcome, err := DecrementItem(items, "d")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), DecrementDepleted, outcome)
		assert.True(suite.T(), outcome.RequiresConfirmation())
		// The item is still there; deletion is the caller's decision.
		assert.Len(suite.T(), next, 1)
		assert.Equal(suite.T(), "1", next[0].Quantity)
	})

	suite.Run("NonNumericQuantity_ShouldRequireConfirmation", func() {
		next, outcome, err := DecrementItem(suite.items, "c")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), DecrementNotNumeric, outcome)
		assert.True(suite.T(), outcome.RequiresConfirmation())
		assert.Equal(suite.T(), "a splash", next[2].Quantity)
	})

	suite.Run("MissingID_ShouldReturnNotFound", func() {
		_, _, err := DecrementItem(suite.items, "missing")

		assert.ErrorIs(suite.T(), err, ErrItemNotFound)
	})
}

func (suite *CollectionTestSuite) TestAddUpdateViewRoundTrip() {
	today := time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC)
	soon := today.Add(24 * time.Hour)

	item, err := NewItem("Milk", "1", UnitLiter, &soon, CategoryDairy)
	require.NoError(suite.T(), err)

	next, err := AddItem(suite.items, item)
	require.NoError(suite.T(), err)

	item.Quantity = "2"
	next, err = UpdateItem(next, item)
	require.NoError(suite.T(), err)

	view := BuildView(next, today, ViewFilter{})
	assert.Equal(suite.T(), len(next), view.Total())
	require.Len(suite.T(), view.ExpiringSoon, 1)
	assert.Equal(suite.T(), "2", view.ExpiringSoon[0].Quantity)
}

func TestCollectionTestSuite(t *testing.T) {
	suite.Run(t, new(CollectionTestSuite))
}
