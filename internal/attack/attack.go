// Package attack implements image-degrading transforms used to test
// watermark robustness.
//
// Every attack maps an image to a same-sized image; dimension preservation
// is what allows the attacked copy to be compared against the fixed-size
// original and watermark afterwards. Attacks are registered by name with
// typed parameter ranges and defaults, so a batch harness can sweep them
// generically.
package attack

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

var (
	// ErrUnknownAttack is returned when an attack name is not registered.
	ErrUnknownAttack = errors.New("unknown attack")

	// ErrInvalidParameter is returned when a parameter value is outside
	// its documented range or an unknown parameter name is supplied.
	ErrInvalidParameter = errors.New("invalid attack parameter")
)

// Params holds named scalar parameters for one attack invocation.
type Params map[string]float64

// Range documents one parameter: its default and the closed valid range.
type Range struct {
	Default  float64
	Min, Max float64
}

// Attack is a single image-degrading transform.
type Attack interface {
	// Name returns the registry name of the attack.
	Name() string
	// Ranges returns the parameter ranges the attack accepts.
	Ranges() map[string]Range
	// Apply runs the attack. The result has the bounds of img.
	Apply(img image.Image, p Params) (image.Image, error)
}

var registry = map[string]Attack{}

// Register adds an attack to the registry. Registering a duplicate name
// panics; attacks are registered once from init.
func Register(a Attack) {
	if _, ok := registry[a.Name()]; ok {
		panic("attack: duplicate registration of " + a.Name())
	}
	registry[a.Name()] = a
}

// Get looks up a registered attack by name.
func Get(name string) (Attack, error) {
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttack, name)
	}
	return a, nil
}

// Names returns the registered attack names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve validates p against the named attack's ranges and returns the
// full parameter map the attack will run with, defaults included. It is
// what a report should record so a run can be reproduced.
func Resolve(name string, p Params) (Params, error) {
	a, err := Get(name)
	if err != nil {
		return nil, err
	}
	return resolve(a, p)
}

// Apply looks up and runs a registered attack.
func Apply(name string, img image.Image, p Params) (image.Image, error) {
	a, err := Get(name)
	if err != nil {
		return nil, err
	}
	return a.Apply(img, p)
}

// resolve validates p against the attack's ranges and fills in defaults for
// parameters the caller omitted.
func resolve(a Attack, p Params) (Params, error) {
	ranges := a.Ranges()
	out := make(Params, len(ranges))
	for name, r := range ranges {
		out[name] = r.Default
	}
	for name, v := range p {
		r, ok := ranges[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidParameter, a.Name(), name)
		}
		if v < r.Min || v > r.Max {
			return nil, fmt.Errorf("%w: %s.%s=%g outside [%g,%g]",
				ErrInvalidParameter, a.Name(), name, v, r.Min, r.Max)
		}
		out[name] = v
	}
	return out, nil
}
