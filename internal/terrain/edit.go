package terrain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/rampsim/internal/engine"
)

// FieldCount is dx and dy for each of the three editable segments.
const FieldCount = 6

var ErrInvalidEdit = errors.New("terrain: invalid segment edit")

// FieldNames label the edit fields in the order ParseFields expects.
var FieldNames = [FieldCount]string{"3a.dx", "3a.dy", "3b.dx", "3b.dy", "3c.dx", "3c.dy"}

// ParseFields converts raw field text to centimeter values. A single
// unparsable or NaN value rejects the whole batch.
func ParseFields(fields [FieldCount]string) ([FieldCount]float64, error) {
	var vals [FieldCount]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) {
			return vals, fmt.Errorf("%w: %s=%q", ErrInvalidEdit, FieldNames[i], f)
		}
		vals[i] = v
	}
	return vals, nil
}

// Fields formats the editable segments of p as field text.
func (p Profile) Fields() [FieldCount]string {
	var out [FieldCount]string
	for i, s := range p.Segments {
		out[2*i] = strconv.FormatFloat(s.DxCm, 'f', -1, 64)
		out[2*i+1] = strconv.FormatFloat(s.DyCm, 'f', -1, 64)
	}
	return out
}

// WithValues returns a copy of p with all six segment values replaced.
func (p Profile) WithValues(vals [FieldCount]float64) Profile {
	for i := range p.Segments {
		p.Segments[i].DxCm = vals[2*i]
		p.Segments[i].DyCm = vals[2*i+1]
	}
	return p
}

// Edit applies a batch of raw field values and rebuilds the ground. Invalid
// input leaves the profile and the ground untouched.
func (t *Terrain) Edit(w engine.World, fields [FieldCount]string) error {
	vals, err := ParseFields(fields)
	if err != nil {
		return err
	}
	return t.SetProfile(w, t.profile.WithValues(vals))
}

// Nudge steps for the live editors, in cm.
const (
	NudgeDx = 10.0
	NudgeDy = 5.0
)

// Nudged returns p's fields with field i moved by dir steps.
func (p Profile) Nudged(i int, dir float64) [FieldCount]string {
	vals := p.Fields()
	if i < 0 || i >= FieldCount {
		return vals
	}
	seg := p.Segments[i/2]
	v, step := seg.DxCm, NudgeDx
	if i%2 == 1 {
		v, step = seg.DyCm, NudgeDy
	}
	vals[i] = strconv.FormatFloat(v+dir*step, 'f', -1, 64)
	return vals
}
