package reactive

// Computed is a lazily-recomputed derived value. It wraps
// a dirty-bit effect: reads trigger a recompute only if something it
// depends on has changed since the last read.
type Computed struct {
	ctx    *Context
	effect *Effect
	dirty  bool
	value  any
	setter func(any)
}

// Computed constructs a read-only Computed against the DefaultContext.
func Computed(getter func() any) *Computed {
	return DefaultContext.Computed(getter, nil)
}

// ComputedWithSet constructs a writable Computed (a getter/setter pair)
// against the DefaultContext.
func ComputedWithSet(getter func() any, setter func(any)) *Computed {
	return DefaultContext.Computed(getter, setter)
}

// Computed constructs a Computed against this Context. getter runs inside
// a dedicated computed effect whose scheduler merely flips the dirty bit
// rather than eagerly recomputing (: "a computed's scheduler
// merely marks it dirty").
func (c *Context) Computed(getter func() any, setter func(any)) *Computed {
	cm := &Computed{ctx: c, dirty: true, setter: setter}
	cm.effect = &Effect{
		ctx:        c,
		active:     true,
		isComputed: true,
	}
	cm.effect.fn = func() { cm.value = getter() }
	cm.effect.scheduler = func(*Effect) { cm.dirty = true }
	return cm
}

// Value reads the computed value, recomputing first if dirty, then
// performing child-run tracking: if a parent effect is currently active,
// it is subscribed to every Dep this computed depends on, so dependency
// changes propagate through computed chains.
func (cm *Computed) Value() any {
	if cm.dirty {
		cm.effect.Run()
		cm.dirty = false
	}
	if parent := cm.ctx.activeEffect(); parent != nil {
		for _, d := range cm.effect.deps {
			if d.add(parent) {
				parent.deps = append(parent.deps, d)
			}
		}
	}
	return cm.value
}

// Set invokes the writable Computed's setter, if any; a no-op otherwise.
func (cm *Computed) Set(v any) {
	if cm.setter != nil {
		cm.setter(v)
	}
}

// Stop detaches the computed from everything it depends on.
func (cm *Computed) Stop() { cm.effect.Stop() }
