package pantry

import (
	"sort"
	"strings"
	"time"
)

// FilterAll selects every category in a view filter.
const FilterAll = "all"

// ViewFilter narrows the inventory projection by category and by a
// case-insensitive name search.
type ViewFilter struct {
	Category string // a Category value or FilterAll
	Search   string
}

// CategoryGroup is one category section of the grouped inventory list.
// Groups appear in first-seen order of the sorted items.
type CategoryGroup struct {
	Category Category
	Items    []Item
}

// InventoryView is the derived presentation projection of a pantry
// snapshot: urgent items first, the rest grouped by category. It is
// recomputed on demand and never persisted.
type InventoryView struct {
	ExpiringSoon []Item
	Groups       []CategoryGroup
}

// Total returns the number of items across both partitions.
func (v InventoryView) Total() int {
	n := len(v.ExpiringSoon)
	for _, g := range v.Groups {
		n += len(g.Items)
	}
	return n
}

// BuildView derives the sorted, grouped, filtered projection of a pantry
// snapshot. Items are filtered, stably sorted by expiry date ascending
// with undated items last, then partitioned into the urgent section
// (bucket expired/today/expiring-soon relative to today) and category
// groups for the rest. The same item never appears in both partitions.
func BuildView(items []Item, today time.Time, filter ViewFilter) InventoryView {
	search := strings.ToLower(filter.Search)

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if filter.Category != "" && filter.Category != FilterAll && string(item.Category.orOther()) != filter.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		filtered = append(filtered, item)
	}

	// Stable keeps insertion order among items without an expiry date.
	sort.SliceStable(filtered, func(a, b int) bool {
		left, right := filtered[a].ExpiryDate, filtered[b].ExpiryDate
		if left == nil {
			return false
		}
		if right == nil {
			return true
		}
		return left.Before(*right)
	})

	view := InventoryView{}
	groupIndex := make(map[Category]int)

	for _, item := range filtered {
		if Classify(today, item.ExpiryDate).Bucket.Urgent() {
			view.ExpiringSoon = append(view.ExpiringSoon, item)
			continue
		}

		category := item.Category.orOther()
		idx, seen := groupIndex[category]
		if !seen {
			idx = len(view.Groups)
			groupIndex[category] = idx
			view.Groups = append(view.Groups, CategoryGroup{Category: category})
		}
		view.Groups[idx].Items = append(view.Groups[idx].Items, item)
	}

	return view
}
