package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeTracker is a minimal Tracker that just records every Track/Trigger
// call, so the container wrappers can be exercised without importing
// package reactive (which would cycle back to this package).
type fakeTracker struct {
	locked   bool
	tracked  []trackCall
	triggers []triggerCall
}

type trackCall struct {
	target any
	op     OpType
	key    any
}

type triggerCall struct {
	target any
	op     OpType
	key    any
}

func (f *fakeTracker) Track(target any, op OpType, key any) {
	f.tracked = append(f.tracked, trackCall{target, op, key})
}

func (f *fakeTracker) Trigger(target any, op OpType, key any, _ ...any) {
	f.triggers = append(f.triggers, triggerCall{target, op, key})
}

func (f *fakeTracker) Locked() bool { return f.locked }

func (f *fakeTracker) lastTrigger() triggerCall {
	return f.triggers[len(f.triggers)-1]
}

func TestReactiveMap_GetSetDeleteClear(t *testing.T) {
	ft := &fakeTracker{}
	m := NewReactiveMap[string, int](ft, nil, false)

	v, ok := m.Get("a")
	require.False(t, ok)
	require.Zero(t, v)
	require.Equal(t, OpGet, ft.tracked[0].op)

	require.True(t, m.Set("a", 1))
	require.Equal(t, OpAdd, ft.lastTrigger().op, "inserting a new key triggers ADD")

	require.True(t, m.Set("a", 2))
	require.Equal(t, OpSet, ft.lastTrigger().op, "overwriting an existing key triggers SET")

	require.Equal(t, 1, m.Len())
	require.True(t, m.Has("a"))

	require.True(t, m.Delete("a"))
	require.Equal(t, OpDelete, ft.lastTrigger().op)
	require.False(t, m.Delete("a"), "deleting an absent key is a no-op")

	m.Set("x", 1)
	m.Set("y", 2)
	require.True(t, m.Clear())
	require.Equal(t, OpClear, ft.lastTrigger().op)
	require.Equal(t, 0, m.Len())
}

func TestReactiveMap_ReadonlyLockedBlocksMutation(t *testing.T) {
	ft := &fakeTracker{locked: true}
	m := NewReactiveMap[string, int](ft, map[string]int{"a": 1}, true)

	require.False(t, m.Set("a", 2))
	require.False(t, m.Delete("a"))
	require.False(t, m.Clear())
	require.Equal(t, 1, m.Raw()["a"], "locked readonly mutations must not touch the underlying map")

	ft.locked = false
	require.True(t, m.Set("a", 2), "unlocking restores normal mutation")
}

func TestReactiveSlice_AppendSetRemoveClear(t *testing.T) {
	ft := &fakeTracker{}
	s := NewReactiveSlice[int](ft, nil, false)

	require.True(t, s.Append(10))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 10, s.Get(0))

	require.True(t, s.Append(20))
	require.Equal(t, []int{10, 20}, s.Raw())

	require.True(t, s.Set(0, 99))
	require.Equal(t, 99, s.Get(0))

	require.True(t, s.RemoveAt(0))
	require.Equal(t, []int{20}, s.Raw())

	require.False(t, s.Set(5, 1), "out-of-range Set is a no-op")
	require.False(t, s.RemoveAt(5), "out-of-range RemoveAt is a no-op")

	require.True(t, s.Clear())
	require.Equal(t, 0, s.Len())
}

func TestReactiveSlice_AppendTriggersAddThenLengthSet(t *testing.T) {
	ft := &fakeTracker{}
	s := NewReactiveSlice[int](ft, nil, false)
	s.Append(1)

	require.Len(t, ft.triggers, 2)
	require.Equal(t, OpAdd, ft.triggers[0].op)
	require.Equal(t, OpSet, ft.triggers[1].op)
	require.Equal(t, "length", ft.triggers[1].key)
}

func TestReactiveSlice_ReadonlyLockedBlocksMutation(t *testing.T) {
	ft := &fakeTracker{locked: true}
	s := NewReactiveSlice[int](ft, []int{1, 2}, true)

	require.False(t, s.Set(0, 9))
	require.False(t, s.Append(3))
	require.False(t, s.RemoveAt(0))
	require.False(t, s.Clear())
	require.Equal(t, []int{1, 2}, s.Raw())
}

type widget struct {
	Name   string
	Amount int
}

func TestReactiveStruct_GetSetFields(t *testing.T) {
	ft := &fakeTracker{}
	w := &widget{Name: "a", Amount: 1}
	rs := NewReactiveStruct(ft, w, false)

	require.Equal(t, "a", rs.Get("Name"))
	require.Equal(t, OpGet, ft.tracked[0].op)

	require.True(t, rs.Set("Amount", 5))
	require.Equal(t, 5, w.Amount, "Set must mutate the wrapped struct in place")
	require.Equal(t, OpSet, ft.lastTrigger().op)

	require.ElementsMatch(t, []string{"Name", "Amount"}, rs.Fields())
	require.Nil(t, rs.Get("NoSuchField"))
	require.False(t, rs.Set("NoSuchField", 1))
}

func TestReactiveStruct_ReadonlyLockedBlocksMutation(t *testing.T) {
	ft := &fakeTracker{locked: true}
	w := &widget{Name: "a", Amount: 1}
	rs := NewReactiveStruct(ft, w, true)

	require.False(t, rs.Set("Amount", 5))
	require.Equal(t, 1, w.Amount)
}

func TestReactiveStruct_PanicsOnNonStructPointer(t *testing.T) {
	ft := &fakeTracker{}
	require.Panics(t, func() { NewReactiveStruct(ft, 42, false) })
	var nilPtr *widget
	require.Panics(t, func() { NewReactiveStruct(ft, nilPtr, false) })
}
