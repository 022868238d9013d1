package calculator

import (
	"fmt"
	"slices"

	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
)

// Registry looks calculators up by slug, preserving registration order.
type Registry struct {
	order  []Calculator
	bySlug map[string]Calculator
}

// NewRegistry validates the calculators' field definitions and registers them.
func NewRegistry(calcs ...Calculator) (*Registry, error) {
	r := &Registry{bySlug: make(map[string]Calculator, len(calcs))}
	for _, c := range calcs {
		if _, dup := r.bySlug[c.Slug()]; dup {
			return nil, fmt.Errorf("duplicate calculator slug %q", c.Slug())
		}
		seen := make(map[string]bool)
		for _, f := range c.Fields() {
			if err := f.Validate(); err != nil {
				return nil, fmt.Errorf("calculator %s: %w", c.Slug(), err)
			}
			if seen[f.Key] {
				return nil, fmt.Errorf("calculator %s: duplicate field %q", c.Slug(), f.Key)
			}
			seen[f.Key] = true
		}
		r.bySlug[c.Slug()] = c
		r.order = append(r.order, c)
	}
	return r, nil
}

// All returns the calculators that every front end offers, in menu order.
func All() []Calculator {
	return []Calculator{
		Mortgage{},
		EMI{},
		DownPayment{},
		Lease{},
		SIP{},
		SimpleInterest{},
		CompoundInterest{},
		SWP{},
		Retirement{},
		MutualFund{},
		TaxSaving{},
		Salary{},
	}
}

// Default returns a registry of every calculator.
func Default() *Registry {
	r, err := NewRegistry(All()...)
	if err != nil {
		// The built-in definitions are covered by tests.
		panic(err)
	}
	return r
}

// Get returns the calculator registered under slug.
func (r *Registry) Get(slug string) (Calculator, error) {
	c, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%q: %w", slug, ErrUnknownCalculator)
	}
	return c, nil
}

// List returns the registered calculators in order.
func (r *Registry) List() []Calculator {
	return slices.Clone(r.order)
}

// WithDefaults replaces the default values of the registered calculators.
// Override values are clamped like any other input; unknown calculators and
// fields are reported as warnings.
func (r *Registry) WithDefaults(overrides map[string]map[string]float64) (*Registry, []string) {
	var warnings []string
	calcs := make([]Calculator, 0, len(r.order))
	for _, c := range r.order {
		values, ok := overrides[c.Slug()]
		if !ok {
			calcs = append(calcs, c)
			continue
		}
		overridden, w := Override(c, values)
		warnings = append(warnings, w...)
		calcs = append(calcs, overridden)
	}
	for slug := range overrides {
		if _, ok := r.bySlug[slug]; !ok {
			warnings = append(warnings, fmt.Sprintf("%q: %v", slug, ErrUnknownCalculator))
		}
	}
	slices.Sort(warnings)

	next := &Registry{bySlug: make(map[string]Calculator, len(calcs)), order: calcs}
	for _, c := range calcs {
		next.bySlug[c.Slug()] = c
	}
	return next, warnings
}

// Override returns c with its field defaults replaced by values.
func Override(c Calculator, values map[string]float64) (Calculator, []string) {
	fields := slices.Clone(c.Fields())
	var warnings []string
	for key, v := range values {
		i := slices.IndexFunc(fields, func(f input.Field) bool { return f.Key == key })
		if i < 0 {
			warnings = append(warnings, fmt.Sprintf("%s %q: %v", c.Slug(), key, ErrUnknownField))
			continue
		}
		clamped := fields[i].Clamp(v)
		if clamped != v {
			warnings = append(warnings, fmt.Sprintf("%s %q: default %v clamped to %v", c.Slug(), key, v, clamped))
		}
		fields[i].Default = clamped
	}
	slices.Sort(warnings)
	return overridden{Calculator: c, fields: fields}, warnings
}

// overridden wraps a calculator with replacement field definitions. The
// cross-field interfaces are forwarded so pages keep their links and bounds.
type overridden struct {
	Calculator
	fields []input.Field
}

func (o overridden) Fields() []input.Field {
	return slices.Clone(o.fields)
}

func (o overridden) Link(changed string, v Values) {
	if l, ok := o.Calculator.(Linker); ok {
		l.Link(changed, v)
	}
}

func (o overridden) ComputeIn(f *format.Formatter, v Values) Result {
	return ComputeIn(o.Calculator, f, v)
}

func (o overridden) Bounds(v Values) map[string]Range {
	if b, ok := o.Calculator.(Bounder); ok {
		return b.Bounds(v)
	}
	return nil
}
