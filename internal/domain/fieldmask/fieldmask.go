// Package fieldmask applies partial updates guarded by an update mask.
//
// Each resource kind declares a closed set of updatable field identifiers
// and binds a setter to each. A mask is parsed and validated against that
// set before anything is written; an eligible field is then written only
// when the request carries a value for it.
package fieldmask

import (
	"strings"
	"time"
)

// InvalidMaskError reports the first mask entry outside the resource's field set.
type InvalidMaskError struct {
	Field string
}

func (e *InvalidMaskError) Error() string {
	return "Unknown field in updateMask: " + e.Field
}

// Mask is a parsed update mask. The zero value is the absent mask, which
// makes every field eligible.
type Mask[F ~string] struct {
	fields map[F]struct{}
	order  []F
}

// Absent reports whether no mask was supplied.
func (m Mask[F]) Absent() bool {
	return m.fields == nil
}

// Eligible reports whether f may be written under m.
func (m Mask[F]) Eligible(f F) bool {
	if m.Absent() {
		return true
	}
	_, ok := m.fields[f]
	return ok
}

// Fields returns the masked fields in the order given.
func (m Mask[F]) Fields() []F {
	return append([]F(nil), m.order...)
}

// Setter writes the candidate for one field onto target and reports whether
// a value was present.
type Setter[T any, C any] func(target *T, candidates *C) bool

// Engine holds the field set of one resource kind.
type Engine[F ~string, T any, C any] struct {
	order   []F
	setters map[F]Setter[T, C]
	touch   func(*T, time.Time)
}

// New returns an engine whose touch hook runs after every successful apply.
func New[F ~string, T any, C any](touch func(target *T, now time.Time)) *Engine[F, T, C] {
	return &Engine[F, T, C]{
		setters: make(map[F]Setter[T, C]),
		touch:   touch,
	}
}

// Field registers an updatable field.
func (e *Engine[F, T, C]) Field(f F, set Setter[T, C]) *Engine[F, T, C] {
	if _, dup := e.setters[f]; !dup {
		e.order = append(e.order, f)
	}
	e.setters[f] = set
	return e
}

// Fields lists the updatable fields in registration order.
func (e *Engine[F, T, C]) Fields() []F {
	return append([]F(nil), e.order...)
}

// ParseMask splits a comma-separated mask. Blank entries are dropped and a
// mask with no entries left, including "", is absent.
func (e *Engine[F, T, C]) ParseMask(raw string) (Mask[F], error) {
	var mask Mask[F]
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		f := F(name)
		if _, ok := e.setters[f]; !ok {
			return Mask[F]{}, &InvalidMaskError{Field: name}
		}
		if mask.fields == nil {
			mask.fields = make(map[F]struct{})
		}
		if _, seen := mask.fields[f]; !seen {
			mask.fields[f] = struct{}{}
			mask.order = append(mask.order, f)
		}
	}
	return mask, nil
}

// Apply writes every eligible field whose candidate is present, then runs
// the touch hook. It returns the fields actually written.
func (e *Engine[F, T, C]) Apply(target *T, candidates *C, mask Mask[F], now time.Time) []F {
	var written []F
	if candidates != nil {
		for _, f := range e.order {
			if !mask.Eligible(f) {
				continue
			}
			if e.setters[f](target, candidates) {
				written = append(written, f)
			}
		}
	}
	if e.touch != nil {
		e.touch(target, now)
	}
	return written
}

// ApplyString parses raw and applies it. On a mask error target is untouched.
func (e *Engine[F, T, C]) ApplyString(target *T, candidates *C, raw string, now time.Time) ([]F, error) {
	mask, err := e.ParseMask(raw)
	if err != nil {
		return nil, err
	}
	return e.Apply(target, candidates, mask, now), nil
}

// Assign copies *src into *dst when src is non-nil.
func Assign[V any](dst *V, src *V) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

// AssignPtr stores a copy of *src in *dst when src is non-nil.
func AssignPtr[V any](dst **V, src *V) bool {
	if src == nil {
		return false
	}
	v := *src
	*dst = &v
	return true
}
