package input

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Control holds the committed value of one field. The slider position and
// the text box are both views of Value, so they can never disagree.
type Control struct {
	mu       sync.Mutex
	field    Field
	value    float64
	onChange func(key string, value float64)
}

// NewControl returns a control at the field's default.
func NewControl(field Field) *Control {
	return &Control{field: field, value: field.Clamp(field.Default)}
}

// Field returns the current definition, including any dynamic bounds.
func (c *Control) Field() Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.field
}

// Value returns the committed value.
func (c *Control) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Text returns the text box representation of the committed value.
func (c *Control) Text() string {
	return strconv.FormatFloat(c.Value(), 'f', -1, 64)
}

// OnChange registers the callback fired after every committed change.
func (c *Control) OnChange(fn func(key string, value float64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Set commits v clamped to the field's bounds and returns the committed value.
// NaN and infinities are rejected and leave the value unchanged.
func (c *Control) Set(v float64) (float64, error) {
	if !mathutil.IsFinite(v) {
		return c.Value(), fmt.Errorf("%s: %w", c.field.Key, ErrNotFinite)
	}
	return c.commit(func(f Field) float64 { return f.Clamp(v) }), nil
}

// Slide commits a slider position, snapped to the step grid.
func (c *Control) Slide(v float64) (float64, error) {
	if !mathutil.IsFinite(v) {
		return c.Value(), fmt.Errorf("%s: %w", c.field.Key, ErrNotFinite)
	}
	return c.commit(func(f Field) float64 { return f.Snap(v) }), nil
}

// SetText parses and commits text entry. Non-numeric text is rejected and
// leaves the value unchanged without firing the callback; numeric text out
// of range is clamped to the nearest bound.
func (c *Control) SetText(text string) (float64, error) {
	v, err := c.Field().Parse(text)
	if err != nil {
		return c.Value(), err
	}
	return c.Set(v)
}

// SetBounds replaces the range, re-clamping the committed value.
func (c *Control) SetBounds(lo, hi float64) float64 {
	return c.commit(func(f Field) float64 {
		if lo > hi {
			lo, hi = hi, lo
		}
		c.field.Min, c.field.Max = lo, hi
		return c.field.Clamp(c.value)
	})
}

func (c *Control) commit(next func(Field) float64) float64 {
	c.mu.Lock()
	prev := c.value
	c.value = next(c.field)
	value, key, fn := c.value, c.field.Key, c.onChange
	c.mu.Unlock()

	if fn != nil && value != prev {
		fn(key, value)
	}
	return value
}
