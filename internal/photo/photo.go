package photo

import (
	"sort"
	"time"
)

// Photo is one record in the externally maintained photo collection. The
// engine only ever reads these; it never mutates the collection.
type Photo struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"` // empty string marks an empty/placeholder entry
	CreatedAt time.Time `json:"createdAt,omitempty"`

	// Intrinsic image dimensions when known ahead of decode; zero means
	// unknown and the aspect is derived lazily from the decoded image.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Aspect returns width/height when both dimensions are known, else (0, false).
func (p Photo) Aspect() (float64, bool) {
	if p.Width <= 0 || p.Height <= 0 {
		return 0, false
	}
	return float64(p.Width) / float64(p.Height), true
}

// Sanitize filters out entries without an ID and collapses duplicate IDs,
// keeping the first occurrence. The input slice is not modified. A frame
// with malformed photos must degrade, never crash.
func Sanitize(photos []Photo) []Photo {
	out := make([]Photo, 0, len(photos))
	seen := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		if p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SortStable orders photos by (CreatedAt ascending, ID ascending) in place.
// This is the deterministic tiebreak used when handing out slots.
func SortStable(photos []Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		if !photos[i].CreatedAt.Equal(photos[j].CreatedAt) {
			return photos[i].CreatedAt.Before(photos[j].CreatedAt)
		}
		return photos[i].ID < photos[j].ID
	})
}
