package series

import "github.com/jacobbishopxy/fabrix/value"

// Stepper enforces single-pass, bounded iteration: Next reports done once
// step reaches len, regardless of how many times it's called afterwards.
type Stepper struct {
	len  int
	step int
}

// NewStepper builds a Stepper bounded at length.
func NewStepper(length int) *Stepper { return &Stepper{len: length} }

// Next advances the stepper, returning the next position and whether one
// was available.
func (s *Stepper) Next() (int, bool) {
	if s.step >= s.len {
		return 0, false
	}
	i := s.step
	s.step++
	return i, true
}

// Done reports whether the stepper is exhausted.
func (s *Stepper) Done() bool { return s.step >= s.len }

// Iter is a lazy, zero-copy-for-primitives iterator over a Series' values.
type Iter struct {
	s       *Series
	stepper *Stepper
}

// Iter returns a fresh lazy iterator over s, bounded by s.Len() at the
// moment Iter is called (mutating s afterwards does not extend iteration,
// matching the Stepper's single-pass contract).
func (s *Series) Iter() *Iter {
	return &Iter{s: s, stepper: NewStepper(s.Len())}
}

// Next returns the next value, or false once the stepper is exhausted.
func (it *Iter) Next() (value.Value, bool) {
	i, ok := it.stepper.Next()
	if !ok {
		return value.Value{}, false
	}
	return it.s.getUnchecked(i), true
}
