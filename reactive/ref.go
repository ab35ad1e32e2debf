package reactive

import "reflect"

// Ref wraps a single mutable cell. Reads track a GET dep
// keyed by "" on the Ref itself; writes trigger a SET dep the same way.
// If the wrapped raw value is itself reactive-capable, it is first run
// through MakeReactive.
type Ref struct {
	ctx   *Context
	value any
}

// Ref constructs a Ref against the DefaultContext.
func Ref(raw any) *Ref { return DefaultContext.Ref(raw) }

// Ref constructs a Ref against this Context.
func (c *Context) Ref(raw any) *Ref {
	return &Ref{ctx: c, value: c.MakeReactive(raw)}
}

// Value reads the ref, tracking a dep. A ToRefs-produced Ref reads
// straight through to its backing struct field.
func (r *Ref) Value() any {
	r.ctx.Track(r, OpGet, "")
	if fr, ok := r.value.(*fieldRef); ok {
		return fr.field.Interface()
	}
	return r.value
}

// Set writes the ref, triggering its dep. If v is reactive-capable it is
// wrapped via MakeReactive first, matching construction-time behavior. A
// ToRefs-produced Ref writes straight through to its backing struct field.
func (r *Ref) Set(v any) {
	if fr, ok := r.value.(*fieldRef); ok {
		old := fr.field.Interface()
		fr.field.Set(reflect.ValueOf(v))
		r.ctx.Trigger(r, OpSet, "", v, old)
		return
	}
	old := r.value
	r.value = r.ctx.MakeReactive(v)
	r.ctx.Trigger(r, OpSet, "", r.value, old)
}

// IsRef reports whether v is a *Ref.
func IsRef(v any) bool {
	_, ok := v.(*Ref)
	return ok
}

// ToRefs returns, for every exported field of the struct pointed to by
// ptr, a Ref that reads/writes straight through to that field. Each
// returned Ref is backed by a fieldRef rather than copying the value out, so
// writes through the Ref are visible on ptr and vice versa.
func ToRefs(ptr any) map[string]*Ref {
	return DefaultContext.ToRefs(ptr)
}

func (c *Context) ToRefs(ptr any) map[string]*Ref {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		panic("reactive: ToRefs requires a pointer to a struct")
	}
	elem := rv.Elem()
	t := elem.Type()

	refs := make(map[string]*Ref, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fr := &fieldRef{field: elem.Field(i)}
		refs[f.Name] = &Ref{ctx: c, value: fr}
	}
	return refs
}

// fieldRef backs a ToRefs entry; Ref.Value/Set special-case it below so
// that reading/writing the Ref reaches straight into the source struct
// field instead of a detached copy.
type fieldRef struct {
	field reflect.Value
}
