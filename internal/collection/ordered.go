package collection

// OrderedMap is a map that remembers insertion order. It is not safe for
// concurrent use; callers provide their own locking.
type OrderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	items []V
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{index: make(map[K]int)}
}

func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	pos, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.items[pos], true
}

func (m *OrderedMap[K, V]) Has(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Put stores v under k. A new key is appended; an existing key keeps its position.
func (m *OrderedMap[K, V]) Put(k K, v V) {
	if pos, ok := m.index[k]; ok {
		m.items[pos] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.items = append(m.items, v)
}

// Delete removes k, preserving the relative order of the remaining keys.
func (m *OrderedMap[K, V]) Delete(k K) (V, bool) {
	pos, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	removed := m.items[pos]
	delete(m.index, k)
	m.keys = append(m.keys[:pos], m.keys[pos+1:]...)
	m.items = append(m.items[:pos], m.items[pos+1:]...)
	for i := pos; i < len(m.keys); i++ {
		m.index[m.keys[i]] = i
	}
	return removed, true
}

func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Values returns a copy of the values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	ret := make([]V, len(m.items))
	copy(ret, m.items)
	return ret
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	ret := make([]K, len(m.keys))
	copy(ret, m.keys)
	return ret
}
