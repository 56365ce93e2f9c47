package render

import "github.com/dmitrymomot/viewkit/pkg/binding"

// Flatten returns the errors of containers in visiting order.
func Flatten(containers []binding.Container, field string) []binding.Error {
	var out []binding.Error
	for _, c := range containers {
		if c == nil {
			continue
		}
		if field == "" {
			out = append(out, c.AllErrors()...)
			continue
		}
		for _, fe := range c.FieldErrors(field) {
			out = append(out, fe)
		}
	}
	return out
}

// ForEach calls fn for every error selected by opts.Field. When opts.Var is
// set fn receives map[string]any{opts.Var: err} instead of the error
// itself. The first error returned by fn stops the iteration.
func ForEach(containers []binding.Container, opts Options, fn func(item any) error) error {
	for _, err := range Flatten(containers, opts.Field) {
		var item any = err
		if opts.Var != "" {
			item = map[string]any{opts.Var: err}
		}
		if cbErr := fn(item); cbErr != nil {
			return cbErr
		}
	}
	return nil
}
