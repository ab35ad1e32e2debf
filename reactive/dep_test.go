package reactive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDep_AddIsIdempotentAndOrderPreserving(t *testing.T) {
	d := newDep()
	e1 := &Effect{}
	e2 := &Effect{}
	e3 := &Effect{}

	require.True(t, d.add(e1))
	require.True(t, d.add(e2))
	require.False(t, d.add(e1), "re-adding an already-subscribed effect is a no-op")
	require.True(t, d.add(e3))

	require.Equal(t, []*Effect{e1, e2, e3}, d.effects, "iteration order must be insertion order")
	require.Equal(t, 3, d.len())
}

func TestDep_DeleteReindexesRemaining(t *testing.T) {
	d := newDep()
	e1, e2, e3 := &Effect{}, &Effect{}, &Effect{}
	d.add(e1)
	d.add(e2)
	d.add(e3)

	d.delete(e2)
	require.False(t, d.has(e2))
	require.Equal(t, []*Effect{e1, e3}, d.effects)
	require.Equal(t, 0, d.index[e1])
	require.Equal(t, 1, d.index[e3])

	d.delete(e2) // deleting an absent effect is a no-op
	require.Equal(t, 2, d.len())
}

func TestTargetMap_GetDepCreatesOnDemandAndIsStable(t *testing.T) {
	ctx := NewContext()
	target := &counter{}

	require.Nil(t, ctx.getDep(target, "N", false), "create=false must not allocate a bucket")

	d1 := ctx.getDep(target, "N", true)
	d2 := ctx.getDep(target, "N", true)
	require.Same(t, d1, d2, "the same (target, key) must always resolve to the same Dep")

	dOther := ctx.getDep(target, "M", true)
	require.NotSame(t, d1, dOther)
}

func TestTrigger_ClearRunsEveryKeysBucketOnce(t *testing.T) {
	ctx := NewContext()
	target := &counter{}

	var seenA, seenB int
	ctx.Effect(func() {
		ctx.Track(target, OpGet, "a")
		seenA++
	}, EffectOptions{})
	ctx.Effect(func() {
		ctx.Track(target, OpGet, "b")
		seenB++
	}, EffectOptions{})
	require.Equal(t, 1, seenA)
	require.Equal(t, 1, seenB)

	ctx.Trigger(target, OpClear, nil)
	require.Equal(t, 2, seenA, "OpClear must re-run every key's subscribers")
	require.Equal(t, 2, seenB)
}

func TestTrigger_AddAlsoRunsIterateAndLengthKeys(t *testing.T) {
	ctx := NewContext()
	target := &counter{}

	var iterateRuns, lengthRuns, keyRuns int
	ctx.Effect(func() {
		ctx.Track(target, OpIterate, IterateKey)
		iterateRuns++
	}, EffectOptions{})
	ctx.Effect(func() {
		ctx.Track(target, OpGet, "length")
		lengthRuns++
	}, EffectOptions{})
	ctx.Effect(func() {
		ctx.Track(target, OpGet, "0")
		keyRuns++
	}, EffectOptions{})

	ctx.Trigger(target, OpAdd, "0")
	require.Equal(t, 2, iterateRuns, "OpAdd must also trigger the iterate-key bucket")
	require.Equal(t, 2, lengthRuns, "OpAdd must also trigger the length bucket")
	require.Equal(t, 2, keyRuns)
}

func TestTrigger_PlainSetDoesNotTouchIterateBucket(t *testing.T) {
	ctx := NewContext()
	target := &counter{}

	var iterateRuns int
	ctx.Effect(func() {
		ctx.Track(target, OpIterate, IterateKey)
		iterateRuns++
	}, EffectOptions{})

	ctx.Trigger(target, OpSet, "0")
	require.Equal(t, 1, iterateRuns, "a plain OpSet on an existing index must not re-run iteration-shaped effects")
}
