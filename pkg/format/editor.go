package format

import (
	"fmt"
	"reflect"
	"sync"
)

// Editor converts a value to display text. Editors are stateful and are
// created per use by an EditorFactory.
type Editor interface {
	SetValue(value any)
	AsText() string
}

// EditorFactory creates a fresh Editor.
type EditorFactory func() Editor

// EditorRegistry finds the editor for a value type, optionally narrowed to
// a field path such as "author.birthday".
type EditorRegistry interface {
	FindEditor(t reflect.Type, fieldPath string) (Editor, bool)
}

// Registry is the default EditorRegistry. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]EditorFactory
	byPath map[pathKey]EditorFactory
}

type pathKey struct {
	t    reflect.Type
	path string
}

var _ EditorRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]EditorFactory),
		byPath: make(map[pathKey]EditorFactory),
	}
}

// Register binds factory to every value of type t.
func (r *Registry) Register(t reflect.Type, factory EditorFactory) {
	if t == nil || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[t] = factory
}

// RegisterForPath binds factory to values of type t found at fieldPath.
// Path-specific editors win over type-wide ones.
func (r *Registry) RegisterForPath(t reflect.Type, fieldPath string, factory EditorFactory) {
	if t == nil || factory == nil {
		return
	}
	if fieldPath == "" {
		r.Register(t, factory)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPath[pathKey{t: t, path: fieldPath}] = factory
}

func (r *Registry) FindEditor(t reflect.Type, fieldPath string) (Editor, bool) {
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if fieldPath != "" {
		if f, ok := r.byPath[pathKey{t: t, path: fieldPath}]; ok {
			return f(), true
		}
	}
	if f, ok := r.byType[t]; ok {
		return f(), true
	}
	return nil, false
}

// TypeOf is a convenience for registering editors: TypeOf[time.Time]().
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// FuncEditor adapts a plain function to the Editor interface.
type FuncEditor struct {
	fn    func(any) string
	value any
}

// EditorFunc returns a factory producing FuncEditors backed by fn.
func EditorFunc(fn func(any) string) EditorFactory {
	return func() Editor { return &FuncEditor{fn: fn} }
}

func (e *FuncEditor) SetValue(value any) { e.value = value }

func (e *FuncEditor) AsText() string {
	if e.fn == nil {
		return fmt.Sprint(e.value)
	}
	return e.fn(e.value)
}
