package reactive

// TrackEvent is passed to an Effect's onTrack hook, fired the moment the
// effect newly subscribes to a (target, key) dep.
type TrackEvent struct {
	Target any
	Op     OpType
	Key    any
}

// TriggerEvent is passed to an Effect's onTrigger hook, fired just before
// the effect is scheduled to re-run because of a trigger.
type TriggerEvent struct {
	Target           any
	Op               OpType
	Key              any
	NewValue, OldValue any
}

// Effect is a unit of reactive work: a function that, while running,
// tracks whatever reactive cells it reads, and re-runs (or is rescheduled)
// whenever one of them is triggered.
type Effect struct {
	ctx  *Context
	fn   func()
	deps []*dep

	active     bool
	isComputed bool
	scheduler  func(*Effect)

	onTrack   func(TrackEvent)
	onTrigger func(TriggerEvent)
	onStop    func()
}

// EffectOptions configures Effect/Context.Effect.
type EffectOptions struct {
	// Lazy suppresses the initial run; the effect only runs once
	// triggered or explicitly invoked via Run.
	Lazy bool

	// Scheduler, if set, is called instead of re-running the effect
	// directly on trigger; it decides when (or whether) to call Run.
	Scheduler func(*Effect)

	OnTrack   func(TrackEvent)
	OnTrigger func(TriggerEvent)
	OnStop    func()
}

// Effect constructs and (unless Lazy) immediately runs an effect against
// the DefaultContext.
func Effect(fn func(), opts EffectOptions) *Effect {
	return DefaultContext.Effect(fn, opts)
}

// Effect constructs an effect against this Context.
func (c *Context) Effect(fn func(), opts EffectOptions) *Effect {
	e := &Effect{
		ctx:       c,
		fn:        fn,
		active:    true,
		scheduler: opts.Scheduler,
		onTrack:   opts.OnTrack,
		onTrigger: opts.OnTrigger,
		onStop:    opts.OnStop,
	}
	if !opts.Lazy {
		e.Run()
	}
	return e
}

// Run invokes the effect run(effect, args):
//   - if stopped, just calls fn with no tracking;
//   - if already on the activation stack, skips (suppresses self-trigger
//     recursion);
//   - otherwise cleans up prior deps, pushes onto the stack, calls fn
//     (which may call Track), and pops in every exit path.
func (e *Effect) Run() {
	if !e.active {
		e.fn()
		return
	}
	for _, s := range e.ctx.stack {
		if s == e {
			return
		}
	}

	e.cleanup()
	e.ctx.stack = append(e.ctx.stack, e)
	defer func() {
		e.ctx.stack = e.ctx.stack[:len(e.ctx.stack)-1]
	}()
	e.fn()
}

// cleanup removes e from every Dep it currently belongs to and clears its
// own dep list ( step 1 of run).
func (e *Effect) cleanup() {
	for _, d := range e.deps {
		d.delete(e)
	}
	e.deps = e.deps[:0]
}

// Stop cleans up, invokes onStop, and marks the effect inactive.
// Idempotent.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.active = false
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool { return e.active }
