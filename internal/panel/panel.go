// Package panel models the parameter editing panel: a list of fields with
// declared ranges, staged edits, and a Commit each time one field's edit
// session finishes.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/galaxy/internal/galaxy"
)

type Field struct {
	Name   string
	Bounds galaxy.Bounds
	Color  bool
}

// Commit is emitted when an edit finishes with a changed value.
type Commit struct {
	Field  string
	Params galaxy.Parameters
}

type Panel struct {
	params  galaxy.Parameters
	fields  []Field
	cursor  int
	dirty   bool
	editing bool
	buf     string
}

func New(p galaxy.Parameters) *Panel {
	fields := make([]Field, 0, len(galaxy.NumericFields)+2)
	for _, name := range galaxy.NumericFields {
		fields = append(fields, Field{Name: name, Bounds: galaxy.Limits[name]})
	}
	fields = append(fields,
		Field{Name: galaxy.FieldInsideColor, Color: true},
		Field{Name: galaxy.FieldOutsideColor, Color: true},
	)
	return &Panel{params: p.Clamp(), fields: fields}
}

func (p *Panel) Params() galaxy.Parameters { return p.params }
func (p *Panel) Fields() []Field           { return p.fields }
func (p *Panel) Cursor() int               { return p.cursor }
func (p *Panel) Selected() Field           { return p.fields[p.cursor] }
func (p *Panel) Editing() bool             { return p.editing }
func (p *Panel) Buffer() string            { return p.buf }
func (p *Panel) Dirty() bool               { return p.dirty }

// Value formats a field for display.
func (p *Panel) Value(name string) string {
	switch name {
	case galaxy.FieldInsideColor:
		return p.params.InsideColor.Hex()
	case galaxy.FieldOutsideColor:
		return p.params.OutsideColor.Hex()
	case galaxy.FieldCount, galaxy.FieldBranches:
		v, _ := p.params.Get(name)
		return strconv.Itoa(int(v))
	}
	v, _ := p.params.Get(name)
	return strconv.FormatFloat(v, 'f', decimals(galaxy.Limits[name].Step), 64)
}

// Move changes the selected field. Leaving a field with staged changes
// finishes its edit session.
func (p *Panel) Move(delta int) *Commit {
	c := p.finishStaged()
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.fields) {
		p.cursor = len(p.fields) - 1
	}
	return c
}

// Adjust nudges the selected numeric field by whole steps.
func (p *Panel) Adjust(steps int) {
	f := p.Selected()
	if f.Color || p.editing {
		return
	}
	v, _ := p.params.Get(f.Name)
	p.stage(f, v+float64(steps)*f.Bounds.Step)
}

func (p *Panel) BeginEdit() {
	if p.editing {
		return
	}
	p.editing = true
	p.buf = p.Value(p.Selected().Name)
}

func (p *Panel) Type(s string) {
	if !p.editing {
		return
	}
	for _, r := range s {
		if accepts(p.Selected(), r) {
			p.buf += string(r)
		}
	}
}

func (p *Panel) Backspace() {
	if p.editing && len(p.buf) > 0 {
		p.buf = p.buf[:len(p.buf)-1]
	}
}

func (p *Panel) CancelEdit() {
	p.editing, p.buf = false, ""
}

// Finish ends the current edit session, applying a typed value if one is
// pending. It returns a Commit when the field actually changed.
func (p *Panel) Finish() (*Commit, error) {
	if p.editing {
		text := strings.TrimSpace(p.buf)
		p.editing, p.buf = false, ""
		if err := p.apply(p.Selected(), text); err != nil {
			return nil, err
		}
	}
	return p.finishStaged(), nil
}

// Set applies a value to a named field and finishes the edit. Moving off a
// field with staged changes finishes that edit as well, so the returned
// Commit covers it even when the new value changes nothing. A rejected
// value still returns the earlier field's Commit alongside the error.
func (p *Panel) Set(name, text string) (*Commit, error) {
	for i, f := range p.fields {
		if f.Name != name {
			continue
		}
		var prior *Commit
		if p.cursor != i {
			prior = p.finishStaged()
			p.cursor = i
		}
		if err := p.apply(f, strings.TrimSpace(text)); err != nil {
			return prior, err
		}
		if c := p.finishStaged(); c != nil {
			return c, nil
		}
		return prior, nil
	}
	return nil, fmt.Errorf("panel: unknown field %q", name)
}

// Load replaces every value at once, e.g. from a preset.
func (p *Panel) Load(params galaxy.Parameters) *Commit {
	p.CancelEdit()
	p.params = params.Clamp()
	p.dirty = false
	return &Commit{Field: "*", Params: p.params}
}

func (p *Panel) apply(f Field, text string) error {
	if f.Color {
		c, err := galaxy.ParseColor(text)
		if err != nil {
			return err
		}
		prev := p.params.InsideColor
		if f.Name == galaxy.FieldOutsideColor {
			prev = p.params.OutsideColor
			p.params.OutsideColor = c
		} else {
			p.params.InsideColor = c
		}
		if prev.Hex() != c.Hex() {
			p.dirty = true
		}
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return fmt.Errorf("panel: %s: %q is not a number", f.Name, text)
	}
	p.stage(f, v)
	return nil
}

func (p *Panel) stage(f Field, v float64) {
	v = snap(v, f.Bounds)
	old, _ := p.params.Get(f.Name)
	p.params.Set(f.Name, v)
	if now, _ := p.params.Get(f.Name); now != old {
		p.dirty = true
	}
}

func (p *Panel) finishStaged() *Commit {
	if !p.dirty {
		return nil
	}
	p.dirty = false
	return &Commit{Field: p.Selected().Name, Params: p.params}
}

// snap rounds to the step grid, clamps, then trims float noise.
func snap(v float64, b galaxy.Bounds) float64 {
	if b.Step > 0 {
		v = math.Round(v/b.Step) * b.Step
	}
	v = b.Clamp(v)
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	return r
}

func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func accepts(f Field, r rune) bool {
	if f.Color {
		return r == '#' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return (r >= '0' && r <= '9') || r == '.' || r == '-' || r == 'e'
}
