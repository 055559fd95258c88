// Package slotmap holds the in-memory slot-to-workload map that the
// device-plugin allocation ingress and the reconciler share.
//
// AddOrUpdate, Remove and Workload hold the lock for one O(1) map
// operation; RemoveByWorkload holds it while scanning every entry, so its
// critical section grows with the size of the map. No suspension point
// occurs while the lock is held.
package slotmap

import "sync"

// Map is a mutex-protected slot-to-workload-name map.
type Map struct {
	mu sync.Mutex
	m  map[string]string
}

// New returns an empty Map.
func New() *Map {
	return &Map{m: make(map[string]string)}
}

// AddOrUpdate records slot with the given workload name, overwriting any
// prior entry.  Used by the device-plugin allocation ingress, which knows
// only the slot at allocation time, so workload is usually empty.
func (m *Map) AddOrUpdate(slot, workload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[slot] = workload
}

// Remove deletes slot from the map.  No-op if absent.
func (m *Map) Remove(slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, slot)
}

// Workload returns the workload name recorded for slot, if any.
func (m *Map) Workload(slot string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.m[slot]
	return w, ok
}

// RemoveByWorkload deletes every entry whose recorded workload name
// matches workload.  Used to drop stale correlations once a workload is
// known to have been deleted.
func (m *Map) RemoveByWorkload(workload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slot, w := range m.m {
		if w == workload {
			delete(m.m, slot)
		}
	}
}
