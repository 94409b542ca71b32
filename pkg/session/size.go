package session

import (
	"encoding/json"

	"buildlog/pkg/schema"
)

// SizeCategory buckets a document by its serialized size.
type SizeCategory string

const (
	SizeTiny   SizeCategory = "tiny"   // under 10 KiB
	SizeSmall  SizeCategory = "small"  // under 50 KiB
	SizeMedium SizeCategory = "medium" // under 500 KiB
	SizeLarge  SizeCategory = "large"
)

// EstimateSize serializes doc and buckets the byte count. The bounds
// are exclusive upper bounds: a document of exactly 10 KiB is small.
func EstimateSize(doc schema.Document) SizeCategory {
	b, err := json.Marshal(doc)
	if err != nil {
		return SizeLarge
	}
	switch n := len(b); {
	case n < 10*1024:
		return SizeTiny
	case n < 50*1024:
		return SizeSmall
	case n < 500*1024:
		return SizeMedium
	default:
		return SizeLarge
	}
}
