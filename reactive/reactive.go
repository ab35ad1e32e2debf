package reactive

import (
	"reflect"

	"github.com/dpotapov/tmplreactive/reactive/container"
)

// reactiveCapable reports whether v is a kind MakeReactive/MakeReadonly
// will wrap: only pointer-to-struct values are proxied generically here;
// everything else is returned as-is. MakeReactive wraps pointer-to-struct
// values generically via container.ReactiveStruct; map and slice values
// are reactive-capable in principle but, since Go cannot instantiate a
// generic container.ReactiveMap[K,V]/ReactiveSlice[T] from a reflect.Value
// alone, they are wrapped by calling
// container.NewReactiveMap/NewReactiveSlice directly rather than through
// this dynamic path.
func reactiveCapable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct
}

// MakeReactive returns a mutable reactive wrapper around v against the
// DefaultContext. Idempotent: wrapping an already-observed value, or a
// value already wrapped, returns the existing wrapper.
func MakeReactive(v any) any { return DefaultContext.MakeReactive(v) }

// MakeReadonly is MakeReactive's readonly counterpart.
func MakeReadonly(v any) any { return DefaultContext.MakeReadonly(v) }

func (c *Context) MakeReactive(v any) any { return c.wrap(v, false) }
func (c *Context) MakeReadonly(v any) any { return c.wrap(v, true) }

func (c *Context) wrap(v any, readonly bool) any {
	if v == nil {
		return v
	}

	rv := reflect.ValueOf(v)
	cacheable := rv.Kind() == reflect.Ptr && !rv.IsNil()

	if cacheable {
		if c.nonReactive[v] {
			return v
		}
		cache := c.rawToObserved
		if readonly {
			cache = c.rawToReadonly
		}
		if existing, ok := cache[v]; ok {
			return existing
		}
		if _, isWrapper := c.observedToRaw[v]; isWrapper {
			return v // v is itself already a wrapper
		}
	}

	if !reactiveCapable(v) {
		return v
	}

	wrapped := any(container.NewReactiveStruct(c, v, readonly))

	cache := c.rawToObserved
	if readonly {
		cache = c.rawToReadonly
	}
	cache[v] = wrapped
	c.observedToRaw[wrapped] = v
	if readonly {
		c.readonlySet[wrapped] = true
	}
	return wrapped
}

// ToRaw unwraps a reactive or readonly wrapper back to its underlying raw
// value; returns v unchanged if it is not a wrapper.
func ToRaw(v any) any { return DefaultContext.ToRaw(v) }

func (c *Context) ToRaw(v any) any {
	if raw, ok := c.observedToRaw[v]; ok {
		return raw
	}
	return v
}

// IsReactive reports whether v is a mutable (non-readonly) wrapper.
func IsReactive(v any) bool { return DefaultContext.IsReactive(v) }

func (c *Context) IsReactive(v any) bool {
	_, ok := c.observedToRaw[v]
	return ok && !c.readonlySet[v]
}

// IsReadonly reports whether v is a readonly wrapper, or was explicitly
// marked readonly via MarkReadonly.
func IsReadonly(v any) bool { return DefaultContext.IsReadonly(v) }

func (c *Context) IsReadonly(v any) bool { return c.readonlySet[v] }

// MarkReadonly flags v as readonly without wrapping it: IsReadonly(v)
// reports true from then on. Used for values that come pre-wrapped from
// elsewhere in the tree but should still be treated as readonly views.
func MarkReadonly(v any) { DefaultContext.MarkReadonly(v) }

func (c *Context) MarkReadonly(v any) { c.readonlySet[v] = true }

// MarkNonReactive flags v so future MakeReactive/MakeReadonly calls on it
// return v unchanged instead of wrapping it.
func MarkNonReactive(v any) { DefaultContext.MarkNonReactive(v) }

func (c *Context) MarkNonReactive(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		c.nonReactive[v] = true
	}
}
