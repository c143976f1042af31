package http

// Attributes is an ordered key/value bag. The zero value is empty and ready
// to use. Like Headers, assignment shares storage; use Clone for a copy.
type Attributes struct {
	keys   []string
	values map[string]interface{}
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (interface{}, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is set.
func (a Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Set stores value under key. An existing key keeps its position.
func (a *Attributes) Set(key string, value interface{}) {
	if a.values == nil {
		a.values = make(map[string]interface{})
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Remove deletes key. Removing an absent key is a no-op.
func (a *Attributes) Remove(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (a Attributes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of keys.
func (a Attributes) Len() int { return len(a.keys) }

// Clone returns a copy of the bag. Values are copied shallowly.
func (a Attributes) Clone() Attributes {
	if a.values == nil {
		return Attributes{}
	}
	c := Attributes{
		keys:   make([]string, len(a.keys)),
		values: make(map[string]interface{}, len(a.values)),
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}
