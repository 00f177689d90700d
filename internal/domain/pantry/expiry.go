package pantry

import (
	"math"
	"time"
)

// ExpiryBucket is a coarse urgency classification derived from the days
// remaining until an item expires.
type ExpiryBucket string

const (
	BucketExpired      ExpiryBucket = "expired"
	BucketToday        ExpiryBucket = "today"
	BucketExpiringSoon ExpiryBucket = "expiring_soon"
	BucketFresh        ExpiryBucket = "fresh"
	BucketNone         ExpiryBucket = "none"
)

// Urgent reports whether the bucket belongs in the expiring-soon section
// of the inventory view.
func (b ExpiryBucket) Urgent() bool {
	switch b {
	case BucketExpired, BucketToday, BucketExpiringSoon:
		return true
	}
	return false
}

// Classification is the result of classifying an expiry date against a
// reference day. DaysRemaining is nil when the item has no expiry date.
type Classification struct {
	DaysRemaining *int
	Bucket        ExpiryBucket
}

// Classify maps an optional expiry date to an urgency bucket relative to
// today. Days remaining is ceil((expiry - today) / 24h). The reference
// time is injected so classification stays deterministic.
func Classify(today time.Time, expiry *time.Time) Classification {
	if expiry == nil {
		return Classification{Bucket: BucketNone}
	}

	days := int(math.Ceil(expiry.Sub(today).Hours() / 24))

	var bucket ExpiryBucket
	switch {
	case days < 0:
		bucket = BucketExpired
	case days <= 2:
		bucket = BucketToday
	case days <= 5:
		bucket = BucketExpiringSoon
	default:
		bucket = BucketFresh
	}

	return Classification{DaysRemaining: &days, Bucket: bucket}
}
