package slots

// IDMap assigns platform contact identifiers to slot indices. A new
// identifier takes the lowest free slot; identifiers that arrive while every
// slot is taken are ignored until they end.
type IDMap struct {
	ids  [MaxFingers]int64
	used [MaxFingers]bool
}

// Acquire returns the slot for id, allocating one if needed. ok is false when
// every slot is in use.
func (m *IDMap) Acquire(id int64) (slot int, ok bool) {
	if s, found := m.Lookup(id); found {
		return s, true
	}
	for i := range m.used {
		if !m.used[i] {
			m.used[i] = true
			m.ids[i] = id
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the slot currently bound to id.
func (m *IDMap) Lookup(id int64) (int, bool) {
	for i := range m.used {
		if m.used[i] && m.ids[i] == id {
			return i, true
		}
	}
	return -1, false
}

// Release unbinds id and returns the slot it held.
func (m *IDMap) Release(id int64) (int, bool) {
	s, ok := m.Lookup(id)
	if !ok {
		return -1, false
	}
	m.used[s] = false
	m.ids[s] = 0
	return s, true
}

// Bound returns the identifiers currently holding a slot, in slot order.
func (m *IDMap) Bound() []int64 {
	var ids []int64
	for i := range m.used {
		if m.used[i] {
			ids = append(ids, m.ids[i])
		}
	}
	return ids
}

// Reset unbinds every identifier.
func (m *IDMap) Reset() {
	*m = IDMap{}
}
