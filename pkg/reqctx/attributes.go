package reqctx

// Attribute is a named request-scoped value.
type Attribute struct {
	Name  string
	Value any
}

// Attributes is an insertion-ordered name to value mapping. The zero value is
// ready to use. Re-setting an existing name keeps its original position.
type Attributes struct {
	names  []string
	values map[string]any
}

// NewAttributes builds an ordered mapping from name/value pairs.
func NewAttributes(attrs ...Attribute) *Attributes {
	a := &Attributes{}
	for _, attr := range attrs {
		a.Set(attr.Name, attr.Value)
	}
	return a
}

// Set stores value under name.
func (a *Attributes) Set(name string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[name]; !exists {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the value stored under name.
func (a *Attributes) Get(name string) (any, bool) {
	if a == nil || a.values == nil {
		return nil, false
	}
	v, ok := a.values[name]
	return v, ok
}

// Remove deletes name from the mapping.
func (a *Attributes) Remove(name string) {
	if a == nil {
		return
	}
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.names {
		if n == name {
			a.names = append(a.names[:i], a.names[i+1:]...)
			break
		}
	}
}

// Names returns attribute names in insertion order.
func (a *Attributes) Names() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

// All returns a snapshot of the attributes in insertion order.
func (a *Attributes) All() []Attribute {
	if a == nil {
		return nil
	}
	out := make([]Attribute, 0, len(a.names))
	for _, name := range a.names {
		out = append(out, Attribute{Name: name, Value: a.values[name]})
	}
	return out
}
