package calculator

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
)

// State is the lifecycle state of a page.
type State int

const (
	Idle State = iota
	Recomputing
)

func (s State) String() string {
	if s == Recomputing {
		return "recomputing"
	}
	return "idle"
}

// Page holds the controls of one calculator and the result for their current
// values. Every committed change recomputes synchronously; the result is
// swapped in whole, so readers see either the previous or the new result.
type Page struct {
	mu        sync.RWMutex
	calc      Calculator
	formatter *format.Formatter
	order     []string
	controls  map[string]*input.Control
	dirty     map[string]bool
	values    Values
	result    Result
	state     State
}

// NewPage builds a page at the calculator's defaults and computes the first
// result in the default locale.
func NewPage(c Calculator) *Page {
	return NewPageIn(c, format.Default())
}

// NewPageIn is NewPage with results rendered by f. A nil f means the
// default locale.
func NewPageIn(c Calculator, f *format.Formatter) *Page {
	if f == nil {
		f = format.Default()
	}
	p := &Page{
		calc:      c,
		formatter: f,
		controls:  make(map[string]*input.Control),
		dirty:     make(map[string]bool),
	}
	for _, f := range c.Fields() {
		ctrl := input.NewControl(f)
		ctrl.OnChange(func(key string, _ float64) { p.dirty[key] = true })
		p.controls[f.Key] = ctrl
		p.order = append(p.order, f.Key)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.settle("")
	return p
}

// Calculator returns the page's calculator.
func (p *Page) Calculator() Calculator {
	return p.calc
}

// Formatter returns the formatter the page renders with.
func (p *Page) Formatter() *format.Formatter {
	return p.formatter
}

// Result returns the current result.
func (p *Page) Result() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result
}

// Values returns a copy of the committed values.
func (p *Page) Values() Values {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values.Clone()
}

// State reports the page's lifecycle state. Recomputation runs under the
// write lock and State takes the read lock, so callers always observe Idle:
// a caller arriving mid-recompute blocks until the new result is in place.
// Recomputing is set only while that lock is held.
func (p *Page) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Fields returns the field definitions with their current dynamic bounds.
func (p *Page) Fields() []input.Field {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fields := make([]input.Field, 0, len(p.order))
	for _, key := range p.order {
		fields = append(fields, p.controls[key].Field())
	}
	return fields
}

// Set commits a numeric value for key, clamped to the field's range.
func (p *Page) Set(key string, v float64) (Result, error) {
	return p.update(key, func(c *input.Control) error {
		_, err := c.Set(v)
		return err
	})
}

// SetText commits text entry for key. Non-numeric text is rejected and the
// page is left unchanged.
func (p *Page) SetText(key, text string) (Result, error) {
	return p.update(key, func(c *input.Control) error {
		_, err := c.SetText(text)
		return err
	})
}

// Apply commits several values at once and recomputes once. Unknown keys
// and rejected values are returned as warnings; the remaining values are
// still applied. A single value links like Set; several link as a bulk
// update.
func (p *Page) Apply(values map[string]float64) (Result, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var warnings []string
	for _, key := range slices.Sorted(maps.Keys(values)) {
		ctrl, ok := p.controls[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, ErrUnknownField))
			continue
		}
		if _, err := ctrl.Set(values[key]); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	changed := ""
	if len(values) == 1 {
		for key := range values {
			changed = key
		}
	}
	p.settle(changed)
	return p.result, warnings
}

// ApplyText parses text entries, such as query parameters, and applies the
// ones that parse. Unknown keys and unparseable text become warnings.
func (p *Page) ApplyText(entries map[string]string) (Result, []string) {
	var warnings []string
	values := make(map[string]float64, len(entries))
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		ctrl, ok := p.controls[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, ErrUnknownField))
			continue
		}
		v, err := ctrl.Field().Parse(entries[key])
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		values[key] = v
	}
	if len(values) == 0 {
		return p.Result(), warnings
	}
	result, more := p.Apply(values)
	return result, append(warnings, more...)
}

func (p *Page) update(key string, set func(*input.Control) error) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctrl, ok := p.controls[key]
	if !ok {
		return p.result, fmt.Errorf("%s %q: %w", p.calc.Slug(), key, ErrUnknownField)
	}
	if err := set(ctrl); err != nil {
		return p.result, err
	}
	if len(p.dirty) == 0 {
		return p.result, nil
	}
	p.settle(key)
	return p.result, nil
}

// settle applies dynamic bounds and field links, then recomputes. Callers
// hold the write lock.
func (p *Page) settle(changed string) {
	p.state = Recomputing
	defer func() { p.state = Idle }()

	p.applyBounds()
	if linker, ok := p.calc.(Linker); ok {
		values := p.snapshot()
		linker.Link(changed, values)
		for _, key := range p.order {
			if v, ok := values[key]; ok {
				_, _ = p.controls[key].Set(v)
			}
		}
		p.applyBounds()
	}

	values := p.snapshot()
	result := ComputeIn(p.calc, p.formatter, values.Clone())
	p.values, p.result = values, result
	clear(p.dirty)
}

func (p *Page) applyBounds() {
	bounder, ok := p.calc.(Bounder)
	if !ok {
		return
	}
	for key, r := range bounder.Bounds(p.snapshot()) {
		if ctrl, ok := p.controls[key]; ok {
			ctrl.SetBounds(r.Min, r.Max)
		}
	}
}

func (p *Page) snapshot() Values {
	values := make(Values, len(p.controls))
	for key, ctrl := range p.controls {
		values[key] = ctrl.Value()
	}
	return values
}
