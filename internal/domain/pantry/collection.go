package pantry

import "strconv"

// Collection operations. Each takes a snapshot of the pantry and returns
// a new one; the caller is responsible for writing the result back to
// the profile store. The input slice is never modified.

// AddItem inserts a new item at the front of the collection, matching
// the most-recent-first ordering of raw storage. Reusing an existing id
// is an error: an update must go through UpdateItem instead.
func AddItem(items []Item, newItem Item) ([]Item, error) {
	if err := newItem.Validate(); err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == newItem.ID {
			return nil, ErrDuplicateID
		}
	}

	next := make([]Item, 0, len(items)+1)
	next = append(next, newItem)
	next = append(next, items...)
	return next, nil
}

// UpdateItem replaces the item matching replacement.ID wholesale. The
// full replacement record is supplied by the caller; there is no
// field-level merge. Returns ErrItemNotFound when the id is absent.
func UpdateItem(items []Item, replacement Item) ([]Item, error) {
	if err := replacement.Validate(); err != nil {
		return nil, err
	}

	next := make([]Item, len(items))
	copy(next, items)
	for i, item := range next {
		if item.ID == replacement.ID {
			next[i] = replacement
			return next, nil
		}
	}
	return nil, ErrItemNotFound
}

// DeleteItem removes the item with the given id. Deleting a missing id
// is a no-op, so the operation is idempotent.
func DeleteItem(items []Item, id string) []Item {
	next := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return next
}

// DecrementOutcome describes what a decrement did, or why it stopped.
type DecrementOutcome string

const (
	// DecrementApplied means the numeric quantity was reduced by one.
	DecrementApplied DecrementOutcome = "applied"
	// DecrementDepleted means the quantity is at or below the minimum
	// unit; removal needs an explicit confirmation from the caller.
	DecrementDepleted DecrementOutcome = "depleted"
	// DecrementNotNumeric means the quantity is descriptive text that
	// cannot be auto-decremented; removal also needs confirmation.
	DecrementNotNumeric DecrementOutcome = "not_numeric"
)

// RequiresConfirmation reports whether the outcome gates on a
// confirmation result before the item may be removed.
func (o DecrementOutcome) RequiresConfirmation() bool {
	return o == DecrementDepleted || o == DecrementNotNumeric
}

// DecrementItem reduces the quantity of the item with the given id by
// one. This is the pure decision half of the consume gesture: when the
// quantity is greater than one it returns the updated snapshot with
// DecrementApplied; otherwise the snapshot is returned unchanged and the
// outcome tells the caller that removal requires confirmation. The
// side-effecting prompt and the eventual DeleteItem are the caller's
// responsibility; this function never deletes.
func DecrementItem(items []Item, id string) ([]Item, DecrementOutcome, error) {
	for i, item := range items {
		if item.ID != id {
			continue
		}

		qty, numeric := item.NumericQuantity()
		if !numeric {
			return items, DecrementNotNumeric, nil
		}
		if qty <= 1 {
			return items, DecrementDepleted, nil
		}

		updated := item
		updated.Quantity = strconv.FormatFloat(qty-1, 'f', -1, 64)

		next := make([]Item, len(items))
		copy(next, items)
		next[i] = updated
		return next, DecrementApplied, nil
	}
	return nil, "", ErrItemNotFound
}
