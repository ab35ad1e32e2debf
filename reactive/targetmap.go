package reactive

// getDep looks up the Dep for (target, key), creating it (and the
// target's key map) on demand when create is true. This is the
// targetMap of : a weak mapping Target -> (Key -> Dep); Go has
// no weak maps, so entries simply live for the Context's lifetime (the
// teacher's own in-process maps make the same tradeoff).
func (c *Context) getDep(target any, key any, create bool) *dep {
	keys, ok := c.targetMap[target]
	if !ok {
		if !create {
			return nil
		}
		keys = map[any]*dep{}
		c.targetMap[target] = keys
	}
	d, ok := keys[key]
	if !ok {
		if !create {
			return nil
		}
		d = newDep()
		keys[key] = d
	}
	return d
}
