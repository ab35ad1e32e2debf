package container

// ReactiveMap wraps a Go map so reads and writes route through a Tracker,
// the Map half of the target/key model. Go maps are already
// reference types, so the wrapper holds the map directly rather than a
// pointer to it.
type ReactiveMap[K comparable, V any] struct {
	tracker  Tracker
	m        map[K]V
	readonly bool
}

// NewReactiveMap wraps m (created fresh if nil).
func NewReactiveMap[K comparable, V any](t Tracker, m map[K]V, readonly bool) *ReactiveMap[K, V] {
	if m == nil {
		m = map[K]V{}
	}
	return &ReactiveMap[K, V]{tracker: t, m: m, readonly: readonly}
}

// Raw returns the underlying map.
func (r *ReactiveMap[K, V]) Raw() map[K]V { return r.m }

func (r *ReactiveMap[K, V]) IsReadonly() bool { return r.readonly }

// Get tracks a GET dep on key and returns its value.
func (r *ReactiveMap[K, V]) Get(key K) (V, bool) {
	r.tracker.Track(r, OpGet, key)
	v, ok := r.m[key]
	return v, ok
}

// Has tracks a HAS dep on key.
func (r *ReactiveMap[K, V]) Has(key K) bool {
	r.tracker.Track(r, OpHas, key)
	_, ok := r.m[key]
	return ok
}

// Set inserts or updates key, triggering ADD (new key) or SET (existing
// key). A no-op returning false on a locked readonly view.
func (r *ReactiveMap[K, V]) Set(key K, val V) bool {
	if r.readonly && r.tracker.Locked() {
		return false
	}
	_, existed := r.m[key]
	r.m[key] = val
	if existed {
		r.tracker.Trigger(r, OpSet, key, val)
	} else {
		r.tracker.Trigger(r, OpAdd, key, val)
	}
	return true
}

// Delete removes key, triggering DELETE. A no-op returning false if the
// key was absent, or on a locked readonly view.
func (r *ReactiveMap[K, V]) Delete(key K) bool {
	if r.readonly && r.tracker.Locked() {
		return false
	}
	if _, ok := r.m[key]; !ok {
		return false
	}
	delete(r.m, key)
	r.tracker.Trigger(r, OpDelete, key, nil)
	return true
}

// Clear empties the map, triggering CLEAR.
func (r *ReactiveMap[K, V]) Clear() bool {
	if r.readonly && r.tracker.Locked() {
		return false
	}
	if len(r.m) == 0 {
		return true
	}
	for k := range r.m {
		delete(r.m, k)
	}
	r.tracker.Trigger(r, OpClear, nil, nil)
	return true
}

// Len tracks an ITERATE dep (a size read observes every add/delete).
func (r *ReactiveMap[K, V]) Len() int {
	r.tracker.Track(r, OpIterate, IterateKey)
	return len(r.m)
}

// Keys tracks an ITERATE dep and returns every key, in map iteration order.
func (r *ReactiveMap[K, V]) Keys() []K {
	r.tracker.Track(r, OpIterate, IterateKey)
	keys := make([]K, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	return keys
}
