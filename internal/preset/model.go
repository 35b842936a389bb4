// Package preset stores named click parameter sets.
package preset

import (
	"errors"
	"sort"
	"strings"

	"github.com/frudas24/airclick/internal/clicker"
)

// ErrNotFound is returned when a named preset does not exist.
var ErrNotFound = errors.New("preset not found")

// Preset is a named parameter set. Values are stored as the operator typed
// them and validated when the preset is used.
type Preset struct {
	Name     string `yaml:"name" json:"name"`
	Interval string `yaml:"interval" json:"interval"`
	Limit    string `yaml:"limit,omitempty" json:"limit"`
	Button   string `yaml:"button,omitempty" json:"button"`
}

// Params validates the preset and converts it into run parameters.
func (p Preset) Params(opts clicker.ParseOptions) (clicker.Params, error) {
	return clicker.ParseParams(p.Interval, p.Limit, p.Button, opts)
}

// Validate checks the name and the parameter values.
func (p Preset) Validate(opts clicker.ParseOptions) error {
	if strings.TrimSpace(p.Name) == "" {
		return &clicker.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	_, err := p.Params(opts)
	return err
}

// List is an ordered set of presets keyed by name (case-insensitive).
type List []Preset

// Find returns the preset with the given name.
func (l List) Find(name string) (Preset, bool) {
	i := l.index(name)
	if i < 0 {
		return Preset{}, false
	}
	return l[i], true
}

// Upsert returns a copy of the list with p added or replacing the preset of
// the same name, sorted by name.
func (l List) Upsert(p Preset) List {
	p.Name = strings.TrimSpace(p.Name)
	out := make(List, 0, len(l)+1)
	for _, existing := range l {
		if !sameName(existing.Name, p.Name) {
			out = append(out, existing)
		}
	}
	out = append(out, p)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Delete returns a copy of the list without the named preset.
func (l List) Delete(name string) (List, error) {
	i := l.index(name)
	if i < 0 {
		return l, ErrNotFound
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), nil
}

func (l List) index(name string) int {
	for i, p := range l {
		if sameName(p.Name, name) {
			return i
		}
	}
	return -1
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
