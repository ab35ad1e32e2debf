package reactive

import "github.com/dpotapov/tmplreactive/reactive/container"

// OpType is shared with package container (the Tracker seam) so the two
// packages speak the same vocabulary without an import cycle: container
// cannot import reactive, so the enum lives there and reactive aliases it.
type OpType = container.OpType

const (
	OpGet     = container.OpGet
	OpHas     = container.OpHas
	OpIterate = container.OpIterate
	OpSet     = container.OpSet
	OpAdd     = container.OpAdd
	OpDelete  = container.OpDelete
	OpClear   = container.OpClear
)

// IterateKey is the sentinel key for iteration-shaped deps.
const IterateKey = container.IterateKey

// Context holds every piece of reactivity state the source treats as
// process-wide globals ( "Global mutable state"): the
// targetMap, the effect activation stack, the tracking gate, the lock
// gate, and the raw<->observed identity maps. A single DefaultContext is
// kept for ergonomics; tests that need isolation construct their own with
// NewContext.
type Context struct {
	targetMap   map[any]map[any]*dep
	stack       []*Effect
	shouldTrack bool
	locked      bool

	rawToObserved map[any]any  // raw pointer -> reactive wrapper
	rawToReadonly map[any]any  // raw pointer -> readonly wrapper
	observedToRaw map[any]any  // either wrapper -> raw pointer
	readonlySet   map[any]bool // wrapper (or value) marked readonly
	nonReactive   map[any]bool // raw pointer marked non-reactive
}

// NewContext creates an independent reactivity context, e.g. for test
// isolation ( prescribes exactly this: "keep a single default
// context for ergonomics but allow tests to instantiate independent
// ones").
func NewContext() *Context {
	return &Context{
		targetMap:     map[any]map[any]*dep{},
		shouldTrack:   true,
		rawToObserved: map[any]any{},
		rawToReadonly: map[any]any{},
		observedToRaw: map[any]any{},
		readonlySet:   map[any]bool{},
		nonReactive:   map[any]bool{},
	}
}

// DefaultContext is the process-wide reactivity context used by the
// package-level convenience functions (Effect, Ref, Computed, ...).
var DefaultContext = NewContext()

func (c *Context) activeEffect() *Effect {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Track implements  track: a no-op when tracking is paused or
// no effect is active; otherwise subscribes the active effect to the
// (target, key) Dep, in both directions.
func (c *Context) Track(target any, op OpType, key any) {
	if !c.shouldTrack {
		return
	}
	e := c.activeEffect()
	if e == nil {
		return
	}
	d := c.getDep(target, key, true)
	if d.add(e) {
		e.deps = append(e.deps, d)
		if e.onTrack != nil {
			e.onTrack(TrackEvent{Target: target, Op: op, Key: key})
		}
	}
}

// Trigger implements  trigger: collects the Deps affected by
// op on (target, key), partitions their Effects into computed runners and
// plain effects, and schedules computed runners first.
func (c *Context) Trigger(target any, op OpType, key any, extra ...any) {
	keys, ok := c.targetMap[target]
	if !ok {
		return
	}

	var deps []*dep
	switch op {
	case OpClear:
		for _, d := range keys {
			deps = append(deps, d)
		}
	default:
		if key != nil {
			if d, ok := keys[key]; ok {
				deps = append(deps, d)
			}
		}
		if op == OpAdd || op == OpDelete {
			if d, ok := keys[IterateKey]; ok {
				deps = append(deps, d)
			}
			if d, ok := keys["length"]; ok {
				deps = append(deps, d)
			}
		}
	}
	if len(deps) == 0 {
		return
	}

	var newVal, oldVal any
	if len(extra) > 0 {
		newVal = extra[0]
	}
	if len(extra) > 1 {
		oldVal = extra[1]
	}

	var computedEffects, plainEffects []*Effect
	seen := map[*Effect]bool{}
	for _, d := range deps {
		for _, e := range d.effects {
			if seen[e] {
				continue
			}
			seen[e] = true
			if e.isComputed {
				computedEffects = append(computedEffects, e)
			} else {
				plainEffects = append(plainEffects, e)
			}
		}
	}

	ev := TriggerEvent{Target: target, Op: op, Key: key, NewValue: newVal, OldValue: oldVal}
	for _, e := range computedEffects {
		c.scheduleRun(e, ev)
	}
	for _, e := range plainEffects {
		c.scheduleRun(e, ev)
	}
}

func (c *Context) scheduleRun(e *Effect, ev TriggerEvent) {
	if e.onTrigger != nil {
		e.onTrigger(ev)
	}
	if e.scheduler != nil {
		e.scheduler(e)
		return
	}
	e.Run()
}

// PauseTracking / ResumeTracking implement the process-wide (re-entrant,
// non-counting) tracking gate read by Track.
func (c *Context) PauseTracking()  { c.shouldTrack = false }
func (c *Context) ResumeTracking() { c.shouldTrack = true }

func PauseTracking()  { DefaultContext.PauseTracking() }
func ResumeTracking() { DefaultContext.ResumeTracking() }

var _ container.Tracker = (*Context)(nil)
