// Package cache provides the slot-indexed storage substrate behind cached
// integral decompositions.
//
// Each slot is addressed two ways: by Key identity on the write path and by
// slot index on the read path. The payload of a slot may be dropped at any
// time ("sterilized") without forgetting the Key, so an owner holding a
// slot index can detect the eviction and deterministically rebuild the
// payload from the retained Key. Slot indices are stable for the lifetime
// of the Manager: a key always maps back to the slot it first occupied.
package cache

import "fmt"

// Manager is a growable slot store keyed by Key identity.
//
// The zero value is not usable; create Managers with New. A Manager is not
// safe for concurrent use; owners are expected to confine one Manager to
// one product instance.
type Manager[T any] struct {
	slots []slot[T]
	index map[uint64]int
}

type slot[T any] struct {
	key   Key
	value T
	live  bool
}

// New creates a Manager with room for initialCapacity slots before growing.
func New[T any](initialCapacity int) *Manager[T] {
	if initialCapacity < 0 {
		initialCapacity = 0
	}

	return &Manager[T]{
		slots: make([]slot[T], 0, initialCapacity),
		index: make(map[uint64]int, initialCapacity),
	}
}

// Get looks up a live entry by key identity.
//
// On a live hit it returns the payload, the slot index, and true. On a miss
// it returns the zero payload and false; the returned index is the
// sterilized slot waiting for repopulation if the key is known, or -1 if
// the key has never been stored.
func (m *Manager[T]) Get(k Key) (T, int, bool) {
	var zero T
	i, ok := m.index[k.ID()]
	if !ok {
		return zero, -1, false
	}
	m.verifyKey(i, k)
	if !m.slots[i].live {
		return zero, i, false
	}

	return m.slots[i].value, i, true
}

// Set installs value under k and returns its slot index. A key that was
// stored before, sterilized or not, reuses its original slot; at most one
// slot ever exists per key identity.
func (m *Manager[T]) Set(k Key, value T) int {
	id := k.ID()
	if i, ok := m.index[id]; ok {
		m.verifyKey(i, k)
		m.slots[i].value = value
		m.slots[i].live = true

		return i
	}

	i := len(m.slots)
	m.slots = append(m.slots, slot[T]{key: k, value: value, live: true})
	m.index[id] = i

	return i
}

// verifyKey guards the 64-bit key identity: a hash hit whose stored key
// differs from the probe is a hash collision the slot index space cannot
// represent, so it panics instead of silently aliasing two decompositions.
func (m *Manager[T]) verifyKey(i int, k Key) {
	stored := m.slots[i].key
	if stored.rng != k.rng || !equalNames(stored.names, k.names) {
		panic(fmt.Sprintf("cache: key identity collision: %s vs %s", stored, k))
	}
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// ByIndex returns the payload at slot i. ok is false when the slot has been
// sterilized; callers then recover the Key with KeyByIndex and rebuild.
func (m *Manager[T]) ByIndex(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(m.slots) || !m.slots[i].live {
		return zero, false
	}

	return m.slots[i].value, true
}

// KeyByIndex returns the Key stored at slot i. The Key survives
// sterilization; ok is false only for indices never issued.
func (m *Manager[T]) KeyByIndex(i int) (Key, bool) {
	if i < 0 || i >= len(m.slots) {
		return Key{}, false
	}

	return m.slots[i].key, true
}

// Sterilize drops the payload at slot i but retains the Key, emulating an
// external eviction. Unknown indices are ignored.
func (m *Manager[T]) Sterilize(i int) {
	if i < 0 || i >= len(m.slots) {
		return
	}

	var zero T
	m.slots[i].value = zero
	m.slots[i].live = false
}

// Len returns the number of slots ever allocated, live or sterilized.
func (m *Manager[T]) Len() int {
	return len(m.slots)
}

// Keys returns the Keys of all slots in allocation order, including
// sterilized ones. This is the snapshot export surface: replaying these
// keys through the owner reproduces the cache deterministically.
func (m *Manager[T]) Keys() []Key {
	out := make([]Key, len(m.slots))
	for i := range m.slots {
		out[i] = m.slots[i].key
	}

	return out
}
