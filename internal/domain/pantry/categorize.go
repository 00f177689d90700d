package pantry

import "strings"

// categoryKeywords maps each category to the name substrings that imply
// it. Evaluation order is fixed; the first match wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryDairy, []string{"milk", "cheese", "yogurt", "butter", "cream"}},
	{CategoryProtein, []string{"chicken", "beef", "egg", "fish", "meat", "tofu"}},
	{CategoryProduce, []string{"apple", "banana", "spinach", "carrot", "onion", "tomato", "fruit", "veg"}},
	{CategoryPantry, []string{"pasta", "rice", "flour", "sugar", "oil", "can"}},
}

// SuggestCategory guesses a category from an item name by keyword
// matching. It is advisory only: callers use it to pre-fill a default at
// creation time and must never overwrite an explicit user selection.
// ok is false when no keyword matches, meaning leave the category as-is.
func SuggestCategory(name string) (Category, bool) {
	lower := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category, true
			}
		}
	}
	return CategoryOther, false
}
