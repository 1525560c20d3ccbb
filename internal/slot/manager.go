// Package slot maintains the photo-to-slot assignment: every photo in the
// live collection holds a stable integer slot in [0, totalSlots) for as long
// as it remains present and in range, so downstream transform smoothing sees
// continuous trajectories instead of re-derived ones.
package slot

import (
	"sort"

	"photo-collage-engine/internal/photo"
)

// Manager owns the assignment map and the free-slot list. It is not safe
// for concurrent use; the frame loop is its only caller.
type Manager struct {
	total    int
	assigned map[string]int // photo ID -> slot index
	occupied map[int]string // slot index -> photo ID
	free     []int          // sorted ascending
}

// New returns a Manager with n slots, all free. Negative n clamps to 0.
func New(n int) *Manager {
	m := &Manager{
		assigned: make(map[string]int),
		occupied: make(map[int]string),
	}
	m.SetTotalSlots(n)
	return m
}

// TotalSlots returns the current slot count.
func (m *Manager) TotalSlots() int { return m.total }

// SetTotalSlots resizes the slot space. Shrinking drops any assignment with
// slot index >= n and frees its slot; all other assignments keep their index.
// The free list is rebuilt as the sorted complement of occupied slots.
func (m *Manager) SetTotalSlots(n int) {
	if n < 0 {
		n = 0
	}
	if n == m.total && m.free != nil {
		return
	}
	m.total = n

	for id, idx := range m.assigned {
		if idx >= n {
			delete(m.assigned, id)
			delete(m.occupied, idx)
		}
	}

	m.free = m.free[:0]
	for i := 0; i < n; i++ {
		if _, taken := m.occupied[i]; !taken {
			m.free = append(m.free, i)
		}
	}
}

// Assign reconciles the assignment with the current photo collection and
// returns the updated map (shared, callers must not mutate). Photos no
// longer present are dropped and their slots freed; photos already assigned
// are untouched; newly seen photos are ordered by (CreatedAt, ID) and each
// takes the lowest free slot. Malformed entries are filtered, never fatal.
func (m *Manager) Assign(photos []photo.Photo) map[string]int {
	clean := photo.Sanitize(photos)

	present := make(map[string]struct{}, len(clean))
	for _, p := range clean {
		present[p.ID] = struct{}{}
	}

	// Drop departed photos first so their slots are reusable this frame.
	for id, idx := range m.assigned {
		if _, ok := present[id]; !ok {
			delete(m.assigned, id)
			delete(m.occupied, idx)
			m.release(idx)
		}
	}

	var fresh []photo.Photo
	for _, p := range clean {
		if _, ok := m.assigned[p.ID]; !ok {
			fresh = append(fresh, p)
		}
	}
	photo.SortStable(fresh)

	for _, p := range fresh {
		if len(m.free) == 0 {
			break
		}
		idx := m.free[0]
		m.free = m.free[1:]
		m.assigned[p.ID] = idx
		m.occupied[idx] = p.ID
	}

	return m.assigned
}

// Assignment returns the live assignment map (shared, read-only).
func (m *Manager) Assignment() map[string]int { return m.assigned }

// SlotFor returns the slot assigned to the photo, if any.
func (m *Manager) SlotFor(id string) (int, bool) {
	idx, ok := m.assigned[id]
	return idx, ok
}

// PhotoAt returns the photo ID occupying the slot, if any.
func (m *Manager) PhotoAt(idx int) (string, bool) {
	id, ok := m.occupied[idx]
	return id, ok
}

// OccupiedCount returns the number of slots currently holding a photo.
func (m *Manager) OccupiedCount() int { return len(m.assigned) }

// release puts a slot index back on the free list, keeping it sorted.
func (m *Manager) release(idx int) {
	if idx < 0 || idx >= m.total {
		return
	}
	at := sort.SearchInts(m.free, idx)
	if at < len(m.free) && m.free[at] == idx {
		return
	}
	m.free = append(m.free, 0)
	copy(m.free[at+1:], m.free[at:])
	m.free[at] = idx
}
