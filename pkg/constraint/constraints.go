package constraint

import "sync"

// Constraints holds the descriptors of one type, grouped by property in
// declaration order.
type Constraints struct {
	order  []string
	byProp map[string][]Descriptor
}

// NewConstraints groups descs by property, keeping their order.
func NewConstraints(descs ...Descriptor) *Constraints {
	c := &Constraints{}
	for _, d := range descs {
		c.Add(d)
	}
	return c
}

// Add appends d to the descriptors of its property.
func (c *Constraints) Add(d Descriptor) {
	if c.byProp == nil {
		c.byProp = make(map[string][]Descriptor)
	}
	if _, ok := c.byProp[d.Property]; !ok {
		c.order = append(c.order, d.Property)
	}
	c.byProp[d.Property] = append(c.byProp[d.Property], d)
}

// Properties returns the constrained properties in declaration order.
func (c *Constraints) Properties() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// For returns the descriptors of property.
func (c *Constraints) For(property string) []Descriptor {
	if c == nil {
		return nil
	}
	return c.byProp[property]
}

// All returns every descriptor, property by property.
func (c *Constraints) All() []Descriptor {
	if c == nil {
		return nil
	}
	var out []Descriptor
	for _, p := range c.order {
		out = append(out, c.byProp[p]...)
	}
	return out
}

// Len returns the number of constrained properties.
func (c *Constraints) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Source provides constraint metadata by type name.
type Source interface {
	ConstraintsForType(typeName string) (*Constraints, bool)
}

// Sources queries each source in turn and returns the first hit.
type Sources []Source

func (s Sources) ConstraintsForType(typeName string) (*Constraints, bool) {
	for _, src := range s {
		if src == nil {
			continue
		}
		if c, ok := src.ConstraintsForType(typeName); ok && c.Len() > 0 {
			return c, true
		}
	}
	return nil, false
}

// OnChange registers fn with every member that is a Notifier.
func (s Sources) OnChange(fn func(typeName string)) {
	for _, src := range s {
		if n, ok := src.(Notifier); ok {
			n.OnChange(fn)
		}
	}
}

// Notifier is implemented by sources whose metadata can change after
// construction. fn receives the name of the type that changed.
type Notifier interface {
	OnChange(fn func(typeName string))
}

// Registry is an in-memory Source. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	types     map[string]*Constraints
	listeners []func(string)
}

var (
	_ Source   = (*Registry)(nil)
	_ Notifier = (*Registry)(nil)
	_ Notifier = Sources(nil)
)

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Constraints)}
}

// Register stores c under typeName, replacing earlier metadata.
func (r *Registry) Register(typeName string, c *Constraints) error {
	if typeName == "" {
		return ErrEmptyTypeName
	}
	r.mu.Lock()
	r.types[typeName] = c
	listeners := r.listeners
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(typeName)
	}
	return nil
}

// OnChange calls fn after every Register. Nil is ignored.
func (r *Registry) OnChange(fn func(typeName string)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// RegisterStruct reads the struct tags of v and registers them under the
// struct's type name.
func (r *Registry) RegisterStruct(v any) error {
	name, c, err := FromStruct(v)
	if err != nil {
		return err
	}
	return r.Register(name, c)
}

// LoadYAML registers every type declared in data.
func (r *Registry) LoadYAML(data []byte) error {
	types, err := LoadYAML(data)
	if err != nil {
		return err
	}
	for _, t := range types {
		if err := r.Register(t.Name, t.Constraints); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) ConstraintsForType(typeName string) (*Constraints, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.types[typeName]
	if !ok || c.Len() == 0 {
		return nil, false
	}
	return c, true
}

// TypeNames returns the registered type names.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}
